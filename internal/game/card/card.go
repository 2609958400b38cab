package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Color 定义牌的颜色
type Color int

// Rank 定义牌面，数字牌 0-9 直接使用点数，功能牌从 10 开始
type Rank int

// Card 定义一张牌
type Card struct {
	Color Color
	Rank  Rank
}

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Wildcard // 万能牌出牌前的占位颜色
)

// PlayColors 可以被选择的出牌颜色
var PlayColors = []Color{Red, Green, Blue, Yellow}

var colorNames = map[Color]string{
	Red:      "Red",
	Green:    "Green",
	Blue:     "Blue",
	Yellow:   "Yellow",
	Wildcard: "Wildcard",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// IsPlayColor 是否为四种可出牌颜色之一
func (c Color) IsPlayColor() bool {
	return c >= Red && c <= Yellow
}

// ParseColor 解析颜色名称
func ParseColor(s string) (Color, error) {
	for c, name := range colorNames {
		if name == s {
			return c, nil
		}
	}
	return Wildcard, fmt.Errorf("无法识别的颜色: %q", s)
}

const (
	Rank0 Rank = iota
	Rank1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Skip
	Reverse
	DrawTwo
	Wild
	WildDrawFour
)

var rankNames = map[Rank]string{
	Skip:         "Skip",
	Reverse:      "Reverse",
	DrawTwo:      "+2",
	Wild:         "Wild",
	WildDrawFour: "+4",
}

func (r Rank) String() string {
	if r.IsNumber() {
		return strconv.Itoa(int(r))
	}
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "Rank(" + strconv.Itoa(int(r)) + ")"
}

// IsNumber 是否为数字牌
func (r Rank) IsNumber() bool {
	return r >= Rank0 && r <= Rank9
}

// IsWild 是否为 Wild 或 +4
func (r Rank) IsWild() bool {
	return r == Wild || r == WildDrawFour
}

// IsAction 是否为带效果的牌（Skip / Reverse / +2 / Wild / +4）
func (r Rank) IsAction() bool {
	return r >= Skip && r <= WildDrawFour
}

// IsDraw 是否为罚牌（+2 / +4）
func (r Rank) IsDraw() bool {
	return r == DrawTwo || r == WildDrawFour
}

// ParseRank 解析牌面，兼容 "DrawTwo" / "WildDrawFour" 写法
func ParseRank(s string) (Rank, error) {
	// 数字牌只接受单个数字，"+2" / "+4" 不能走数字分支
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	switch s {
	case "DrawTwo":
		return DrawTwo, nil
	case "WildDrawFour":
		return WildDrawFour, nil
	}
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return -1, fmt.Errorf("无法识别的牌面: %q", s)
}

func (c Card) String() string {
	if c.Color == Wildcard {
		return c.Rank.String()
	}
	return c.Color.String() + " " + c.Rank.String()
}

// IsWild 是否为万能牌
func (c Card) IsWild() bool {
	return c.Rank.IsWild()
}

// Matches 判断手牌 h 是否就是要出的牌 c：万能牌只比较牌面，其他牌比较颜色和牌面
func (c Card) Matches(h Card) bool {
	if c.Rank != h.Rank {
		return false
	}
	return c.Rank.IsWild() || c.Color == h.Color
}

// Deck 定义一副牌，末尾为牌顶
type Deck []Card

// DeckSize 一副完整 UNO 牌的张数
const DeckSize = 108

// NewOrderedDeck 按固定顺序生成一副完整的牌
func NewOrderedDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, c := range PlayColors {
		deck = append(deck, Card{Color: c, Rank: Rank0})
		for r := Rank1; r <= Rank9; r++ {
			deck = append(deck, Card{Color: c, Rank: r}, Card{Color: c, Rank: r})
		}
		for _, r := range []Rank{Skip, Reverse, DrawTwo} {
			deck = append(deck, Card{Color: c, Rank: r}, Card{Color: c, Rank: r})
		}
	}
	for range 4 {
		deck = append(deck,
			Card{Color: Wildcard, Rank: Wild},
			Card{Color: Wildcard, Rank: WildDrawFour},
		)
	}
	return deck
}

// NewDeck 生成一副洗好的牌
func NewDeck(r *rand.Rand) Deck {
	deck := NewOrderedDeck()
	deck.Shuffle(r)
	return deck
}

// Shuffle 原地洗牌，r 为 nil 时使用全局随机源
func (d Deck) Shuffle(r *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if r == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	r.Shuffle(len(d), swap)
}

// Draw 从牌顶取一张牌
func (d Deck) Draw() (Deck, Card, bool) {
	if len(d) == 0 {
		return d, Card{}, false
	}
	top := d[len(d)-1]
	return d[:len(d)-1], top, true
}

// PutBottom 把牌放回牌底；万能牌恢复占位颜色
func (d Deck) PutBottom(cards ...Card) Deck {
	out := make(Deck, 0, len(d)+len(cards))
	for _, c := range cards {
		if c.IsWild() {
			c.Color = Wildcard
		}
		out = append(out, c)
	}
	return append(out, d...)
}
