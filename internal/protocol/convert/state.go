package convert

import (
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
	"github.com/palemoky/uno/internal/protocol"
)

// NameFunc 根据玩家 ID 返回显示名
type NameFunc func(playerID string) string

// PlayerInfos 座位列表
func PlayerInfos(s *game.State, nameOf NameFunc) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(s.Players))
	for i, p := range s.Players {
		infos[i] = protocol.PlayerInfo{
			ID:         p.ID,
			Name:       nameOf(p.ID),
			Seat:       i,
			IsAI:       p.IsAI,
			CardsCount: len(p.Hand),
			Online:     true,
		}
		if p.IsAI {
			infos[i].Level = p.Level.String()
		}
	}
	return infos
}

// MoveToInfo 将一条操作记录转换为 protocol.MoveInfo
func MoveToInfo(m game.Move) protocol.MoveInfo {
	info := protocol.MoveInfo{
		PlayerID: m.PlayerID,
		Kind:     m.Kind.String(),
		Count:    m.Count,
	}
	if m.Kind == game.MovePlay {
		c := CardToInfo(m.Card)
		info.Card = &c
	}
	return info
}

// StateForViewer 生成某个玩家视角的快照：只包含自己的手牌，其他人只有张数
func StateForViewer(gameID string, s *game.State, viewerID string, nameOf NameFunc) protocol.GameStateDTO {
	dto := protocol.GameStateDTO{
		GameID:    gameID,
		Status:    s.Status.String(),
		Players:   PlayerInfos(s, nameOf),
		Hand:      []protocol.CardInfo{},
		Direction: s.Direction.String(),
		DrawStack: s.DrawStack,
		DeckCount: len(s.Deck),
		Winner:    s.Winner,
	}
	if s.TopCard != nil {
		top := CardToInfo(*s.TopCard)
		dto.TopCard = &top
	}
	if cur, ok := s.CurrentPlayer(); ok && s.Status == game.InProgress {
		dto.CurrentTurn = cur.ID
	}
	if n := len(s.Moves); n > 0 {
		last := MoveToInfo(s.Moves[n-1])
		dto.LastMove = &last
	}

	idx := s.PlayerIndex(viewerID)
	if idx < 0 {
		return dto
	}
	hand := s.Players[idx].Hand
	dto.Hand = CardsToInfos(hand)
	if dto.CurrentTurn == viewerID && s.TopCard != nil {
		if legal, err := rule.LegalCards(hand, *s.TopCard, s.DrawStack); err == nil {
			dto.Playable = CardsToInfos(legal)
		}
	}
	return dto
}

// PlayerHands 所有座位的剩余手牌，游戏结束时公开
func PlayerHands(s *game.State, nameOf NameFunc) []protocol.PlayerHand {
	hands := make([]protocol.PlayerHand, len(s.Players))
	for i, p := range s.Players {
		hands[i] = protocol.PlayerHand{
			PlayerID:   p.ID,
			PlayerName: nameOf(p.ID),
			Cards:      CardsToInfos(p.Hand),
			Points:     card.HandPoints(p.Hand),
		}
	}
	return hands
}
