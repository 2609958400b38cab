package ai

import (
	"cmp"
	"slices"

	"github.com/palemoky/uno/internal/game/card"
)

// MediumBot 合法牌依次经过规则筛选，再出优先级最高的一张
type MediumBot struct {
	seat string
}

func (b *MediumBot) Level() Level   { return Medium }
func (b *MediumBot) SeatID() string { return b.seat }

// selection 规则筛选过程中的候选牌
type selection struct {
	view       View
	candidates []card.Card
}

// selectionRule 缩小候选范围，筛完为空时保留原候选
type selectionRule interface {
	Name() string
	Apply(s *selection)
}

// mediumRules 按顺序执行
var mediumRules = []selectionRule{
	finishNextSeatRule{},
	holdWildsRule{},
	tempoRule{},
	thinColorRule{},
}

func (b *MediumBot) Choose(v View) (Decision, error) {
	cands, err := legal(v)
	if err != nil {
		return Decision{}, err
	}
	if len(cands) == 0 {
		return Decision{Draw: true}, nil
	}

	s := &selection{view: v, candidates: cands}
	for _, r := range mediumRules {
		r.Apply(s)
	}
	return play(v.Hand, pickBest(v.Hand, s.candidates), v.Top), nil
}

// narrow 只保留满足 keep 的候选，一张都不满足时不变
func (s *selection) narrow(keep func(card.Card) bool) {
	out := slices.DeleteFunc(slices.Clone(s.candidates), func(c card.Card) bool { return !keep(c) })
	if len(out) > 0 {
		s.candidates = out
	}
}

func isAttack(c card.Card) bool {
	switch c.Rank {
	case card.Skip, card.Reverse, card.DrawTwo, card.WildDrawFour:
		return true
	}
	return false
}

// finishNextSeatRule 下家快出完时优先压制
type finishNextSeatRule struct{}

func (finishNextSeatRule) Name() string { return "FinishNextSeat" }

func (finishNextSeatRule) Apply(s *selection) {
	if s.view.NextSeatCards > 2 {
		return
	}
	s.narrow(isAttack)
}

// holdWildsRule 万能牌留到残局
type holdWildsRule struct{}

func (holdWildsRule) Name() string { return "HoldWilds" }

func (holdWildsRule) Apply(s *selection) {
	if s.view.NextSeatCards <= 2 {
		return
	}
	if !slices.ContainsFunc(s.view.OpponentCards, func(n int) bool { return n > 2 }) {
		return
	}
	s.narrow(func(c card.Card) bool { return !c.IsWild() })
}

// tempoRule 手牌多时优先出功能牌
type tempoRule struct{}

func (tempoRule) Name() string { return "Tempo" }

func (tempoRule) Apply(s *selection) {
	if len(s.view.Hand) <= 4 {
		return
	}
	s.narrow(func(c card.Card) bool { return c.Rank.IsAction() })
}

// thinColorRule 优先出手中数量多的颜色
type thinColorRule struct{}

func (thinColorRule) Name() string { return "ThinColor" }

func (thinColorRule) Apply(s *selection) {
	s.narrow(func(c card.Card) bool {
		return !c.IsWild() && card.CountColor(s.view.Hand, c.Color) > 2
	})
}

func actionPriority(r card.Rank) int {
	switch r {
	case card.WildDrawFour:
		return 3
	case card.Wild:
		return 2
	case card.Skip, card.Reverse, card.DrawTwo:
		return 1
	default:
		return 0
	}
}

// pickBest 先比功能牌优先级，再比手中同色张数，相同时按手牌顺序
func pickBest(hand, cands []card.Card) card.Card {
	sameColor := func(c card.Card) int {
		if c.IsWild() {
			return 0
		}
		return card.CountColor(hand, c.Color) - 1
	}
	ranked := slices.Clone(cands)
	slices.SortStableFunc(ranked, func(a, b card.Card) int {
		if d := cmp.Compare(actionPriority(b.Rank), actionPriority(a.Rank)); d != 0 {
			return d
		}
		return cmp.Compare(sameColor(b), sameColor(a))
	})
	return ranked[0]
}
