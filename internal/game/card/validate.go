package card

import (
	"fmt"

	"github.com/palemoky/uno/internal/apperrors"
)

const (
	cardsPerColor  = 25
	wildsPerRank   = 4
	actionsPerKind = 2
)

// Validate 检查牌堆是否恰好是一副完整的 UNO 牌
//
// 万能牌按牌面统计，不关心其是否已被指定颜色。
func Validate(cards []Card) error {
	if len(cards) != DeckSize {
		return fmt.Errorf("%w: 期望 %d 张，实际 %d 张", apperrors.ErrDeckLength, DeckSize, len(cards))
	}

	perColor := make(map[Color]int)
	counts := make(map[Card]int)
	wilds := make(map[Rank]int)
	for _, c := range cards {
		if c.IsWild() {
			wilds[c.Rank]++
			continue
		}
		if !c.Color.IsPlayColor() {
			return fmt.Errorf("%w: %s 不能是 %s", apperrors.ErrDeckColor, c.Rank, c.Color)
		}
		perColor[c.Color]++
		counts[c]++
	}

	for _, color := range PlayColors {
		if perColor[color] != cardsPerColor {
			return fmt.Errorf("%w: %s 有 %d 张", apperrors.ErrDeckColor, color, perColor[color])
		}
	}

	for _, color := range PlayColors {
		for r := Rank0; r <= Rank9; r++ {
			want := 2
			if r == Rank0 {
				want = 1
			}
			if n := counts[Card{Color: color, Rank: r}]; n != want {
				return fmt.Errorf("%w: %s %s 有 %d 张", apperrors.ErrDeckNumber, color, r, n)
			}
		}
		for _, r := range []Rank{Skip, Reverse, DrawTwo} {
			if n := counts[Card{Color: color, Rank: r}]; n != actionsPerKind {
				return fmt.Errorf("%w: %s %s 有 %d 张", apperrors.ErrDeckAction, color, r, n)
			}
		}
	}

	for _, r := range []Rank{Wild, WildDrawFour} {
		if wilds[r] != wildsPerRank {
			return fmt.Errorf("%w: %s 有 %d 张", apperrors.ErrDeckWild, r, wilds[r])
		}
	}
	return nil
}
