package card

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// IndexOf 查找手牌中与 c 匹配的第一张牌
func IndexOf(hand []Card, c Card) int {
	return slices.IndexFunc(hand, c.Matches)
}

// RemoveOne 从手牌中移除一张与 c 匹配的牌，返回新手牌和被移除的牌
func RemoveOne(hand []Card, c Card) ([]Card, Card, bool) {
	i := IndexOf(hand, c)
	if i < 0 {
		return hand, Card{}, false
	}
	removed := hand[i]
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	out = append(out, hand[i+1:]...)
	return out, removed, true
}

// CountColor 统计手牌中某种颜色的牌数（万能牌按当前颜色统计）
func CountColor(hand []Card, color Color) int {
	n := 0
	for _, c := range hand {
		if c.Color == color {
			n++
		}
	}
	return n
}

// MostCommonColor 返回手牌中最多的非万能牌颜色，平局时按 Red/Green/Blue/Yellow 顺序取先者
func MostCommonColor(hand []Card) (Color, bool) {
	best, bestCount := Wildcard, 0
	for _, color := range PlayColors {
		n := 0
		for _, c := range hand {
			if !c.IsWild() && c.Color == color {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = color, n
		}
	}
	return best, bestCount > 0
}

// Points 结算分值：数字牌按点数，Skip/Reverse/+2 记 20，Wild/+4 记 50
func (c Card) Points() int {
	switch {
	case c.Rank.IsNumber():
		return int(c.Rank)
	case c.Rank.IsWild():
		return 50
	default:
		return 20
	}
}

// HandPoints 手牌总分值
func HandPoints(hand []Card) int {
	n := 0
	for _, c := range hand {
		n += c.Points()
	}
	return n
}

// 客户端输入的解析错误
var (
	ErrEmptyInput   = errors.New("请输入要出的牌")
	ErrUnknownColor = errors.New("颜色请用 r/g/b/y 表示")
	ErrNotInHand    = errors.New("手牌中没有这张牌")
)

var colorShort = map[string]Color{
	"r": Red, "red": Red,
	"g": Green, "green": Green,
	"b": Blue, "blue": Blue,
	"y": Yellow, "yellow": Yellow,
}

var rankShort = map[string]Rank{
	"s": Skip, "skip": Skip,
	"r": Reverse, "rev": Reverse, "reverse": Reverse,
	"+2": DrawTwo, "d2": DrawTwo,
}

var wildShort = map[string]Rank{
	"w": Wild, "wild": Wild,
	"+4": WildDrawFour, "w4": WildDrawFour, "w+4": WildDrawFour,
}

// ParseColorShort 解析颜色简写（r / red 等）
func ParseColorShort(s string) (Color, error) {
	if c, ok := colorShort[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return Wildcard, ErrUnknownColor
}

// ParseShort 解析客户端输入的简写
//
//	r7 / g+2 / bs / yr / yrev     有色牌
//	w / wild / +4 / w4            万能牌，未选色
//	w red / +4 b / wg / +4b       万能牌并指定颜色
func ParseShort(input string) (Card, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Card{}, ErrEmptyInput
	}
	if len(fields) > 2 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", input)
	}
	head := fields[0]

	if rank, ok := wildShort[head]; ok {
		c := Card{Color: Wildcard, Rank: rank}
		if len(fields) == 2 {
			color, err := ParseColorShort(fields[1])
			if err != nil {
				return Card{}, err
			}
			c.Color = color
		}
		return c, nil
	}
	// 紧凑写法：wg、+4b
	for _, prefix := range []string{"+4", "w"} {
		if len(fields) == 1 && strings.HasPrefix(head, prefix) {
			if color, err := ParseColorShort(head[len(prefix):]); err == nil {
				return Card{Color: color, Rank: wildShort[prefix]}, nil
			}
		}
	}

	if len(fields) != 1 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", input)
	}
	color, ok := colorShort[head[:1]]
	if !ok {
		return Card{}, fmt.Errorf("无法识别的牌: %q", input)
	}
	rest := head[1:]
	if r, ok := rankShort[rest]; ok {
		return Card{Color: color, Rank: r}, nil
	}
	if len(rest) == 1 && rest[0] >= '0' && rest[0] <= '9' {
		return Card{Color: color, Rank: Rank(rest[0] - '0')}, nil
	}
	return Card{}, fmt.Errorf("无法识别的牌: %q", input)
}

// FindCardInHand 根据简写在手牌中找到对应的牌
//
// 万能牌只按牌面匹配；输入指定了颜色时使用输入的颜色，否则沿用手牌上的颜色。
func FindCardInHand(hand []Card, input string) (Card, error) {
	c, err := ParseShort(input)
	if err != nil {
		return Card{}, err
	}
	i := IndexOf(hand, c)
	if i < 0 {
		return Card{}, fmt.Errorf("%w: %s", ErrNotInHand, c)
	}
	if c.IsWild() && c.Color.IsPlayColor() {
		return c, nil
	}
	return hand[i], nil
}
