package rule

import (
	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/card"
)

// IsLegal 判断 c 能否压在顶牌 top 上
//
// 罚牌累计未清时只能接龙：顶牌为 +4 只能出 +4，顶牌为 +2 可出 +2 或 +4。
// 累计大于 0 而顶牌不是罚牌属于内部状态错误。
func IsLegal(c, top card.Card, drawStack int) (bool, error) {
	if drawStack > 0 {
		switch top.Rank {
		case card.WildDrawFour:
			return c.Rank == card.WildDrawFour, nil
		case card.DrawTwo:
			return c.Rank.IsDraw(), nil
		default:
			return false, apperrors.ErrInconsistent
		}
	}
	if c.IsWild() {
		return true, nil
	}
	return c.Color == top.Color || c.Rank == top.Rank, nil
}

// LegalCards 返回手牌中所有可以出的牌，保持手牌顺序
func LegalCards(hand []card.Card, top card.Card, drawStack int) ([]card.Card, error) {
	var legal []card.Card
	for _, c := range hand {
		ok, err := IsLegal(c, top, drawStack)
		if err != nil {
			return nil, err
		}
		if ok {
			legal = append(legal, c)
		}
	}
	return legal, nil
}

// CanContinue 手牌中是否有能接住当前罚牌的牌
func CanContinue(hand []card.Card, top card.Card) bool {
	for _, c := range hand {
		if ok, _ := IsLegal(c, top, 1); ok {
			return true
		}
	}
	return false
}

// Penalty 出牌后累计的罚牌数
func Penalty(r card.Rank) int {
	switch r {
	case card.DrawTwo:
		return 2
	case card.WildDrawFour:
		return 4
	default:
		return 0
	}
}
