package rule

import "github.com/palemoky/uno/internal/game/card"

// Direction 出牌方向
type Direction int

const (
	Clockwise        Direction = 1
	Counterclockwise Direction = -1
)

func (d Direction) String() string {
	if d == Counterclockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// Reverse 返回相反方向
func (d Direction) Reverse() Direction {
	if d == Counterclockwise {
		return Clockwise
	}
	return Counterclockwise
}

// Step 每一步的座位偏移
func (d Direction) Step() int {
	if d == Counterclockwise {
		return -1
	}
	return 1
}

// Next 从 cur 出发按方向走 steps 步，结果始终落在 [0, n)
func Next(cur, n, steps int, dir Direction) int {
	if n <= 0 {
		return 0
	}
	return ((cur+steps*dir.Step())%n + n) % n
}

// Advance 根据刚出的牌计算下一个出牌座位和方向
//
//   - Reverse: 先反转方向，再沿新方向走一步
//   - Skip: 沿当前方向走两步
//   - 其他: 沿当前方向走一步
func Advance(cur, n int, dir Direction, played card.Rank) (int, Direction) {
	switch played {
	case card.Reverse:
		dir = dir.Reverse()
		return Next(cur, n, 1, dir), dir
	case card.Skip:
		return Next(cur, n, 2, dir), dir
	default:
		return Next(cur, n, 1, dir), dir
	}
}
