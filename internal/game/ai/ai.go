// Package ai 电脑托管的座位
//
// 策略只能看到座位上玩家能看到的信息：自己的手牌、顶牌、累计罚牌和其他座位的张数。
package ai

import (
	"fmt"
	"strings"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
)

// Level AI 难度
type Level int

const (
	Easy Level = iota
	Medium
)

func (l Level) String() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel 解析难度，接受 "Easy"、"Medium" 和简写 "Med"，不区分大小写
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "med":
		return Medium, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidLevel, s)
	}
}

// View 一个座位可见的局面
type View struct {
	Hand          []card.Card
	Top           card.Card
	DrawStack     int
	NextSeatCards int   // 下家手牌数
	OpponentCards []int // 其他座位的手牌数
}

// Decision 摸牌或出一张牌，万能牌已指定颜色
type Decision struct {
	Draw bool
	Card card.Card
}

// Strategy 为一个座位选择操作
type Strategy interface {
	Choose(v View) (Decision, error)
	Level() Level
	SeatID() string
}

// New 创建绑定到 seatID 的策略
func New(level Level, seatID string) (Strategy, error) {
	switch level {
	case Easy:
		return &EasyBot{seat: seatID}, nil
	case Medium:
		return &MediumBot{seat: seatID}, nil
	default:
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidLevel, int(level))
	}
}

// ChooseColor 为万能牌选色：手中最多的非万能牌颜色，其次顶牌颜色，最后红色
func ChooseColor(remaining []card.Card, top card.Card) card.Color {
	if c, ok := card.MostCommonColor(remaining); ok {
		return c
	}
	if top.Color.IsPlayColor() {
		return top.Color
	}
	return card.Red
}

// play 把 c 包装成出牌决定，万能牌按剩余手牌选色
func play(hand []card.Card, c, top card.Card) Decision {
	if c.IsWild() {
		rest, _, _ := card.RemoveOne(hand, c)
		c.Color = ChooseColor(rest, top)
	}
	return Decision{Card: c}
}

func legal(v View) ([]card.Card, error) {
	return rule.LegalCards(v.Hand, v.Top, v.DrawStack)
}
