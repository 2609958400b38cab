package game

import (
	"slices"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/ai"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
)

// ApplyMove 出牌
//
// 罚牌累计未清且玩家接不住时，本次调用改为罚摸 DrawStack 张，累计清零，
// 不轮转座位。万能牌使用 c 中的颜色；c 未指定颜色时沿用 ColorChange 设定的颜色。
// 轮到 AI 时在返回前代为出牌，最多连续处理一轮座位。
func (g *Game) ApplyMove(playerID string, c card.Card) (State, error) {
	s := g.state.Clone()
	if err := g.applyMove(&s, playerID, c); err != nil {
		return State{}, err
	}
	if err := g.runAI(&s); err != nil {
		return State{}, err
	}
	return g.commit(s), nil
}

func (g *Game) applyMove(s *State, playerID string, c card.Card) error {
	if s.Status != InProgress {
		return apperrors.ErrGameNotInProgress
	}
	if s.TopCard == nil {
		return apperrors.ErrNoTopCard
	}
	idx := s.CurrentPlayerIndex
	p, ok := s.CurrentPlayer()
	if !ok {
		return apperrors.ErrNoCurrentPlayer
	}
	if p.ID != playerID {
		return apperrors.ErrNotYourTurn
	}
	top := *s.TopCard

	if s.DrawStack > 0 && !rule.CanContinue(p.Hand, top) {
		if !top.Rank.IsDraw() {
			return apperrors.ErrInconsistent
		}
		n := s.DrawStack
		g.drawInto(s, idx, n)
		s.DrawStack = 0
		s.Moves = append(s.Moves, Move{PlayerID: playerID, Kind: MoveForcedDraw, Count: n})
		return nil
	}

	hi := card.IndexOf(p.Hand, c)
	if hi < 0 {
		return apperrors.ErrCardNotInHand
	}
	played := p.Hand[hi]
	if played.IsWild() {
		switch {
		case c.Color.IsPlayColor():
			played.Color = c.Color
		case played.Color.IsPlayColor():
		default:
			return apperrors.ErrInvalidColor
		}
	}
	legal, err := rule.IsLegal(played, top, s.DrawStack)
	if err != nil {
		return err
	}
	if !legal {
		return apperrors.ErrInvalidCard
	}

	p.Hand = slices.Delete(p.Hand, hi, hi+1)
	s.Deck = s.Deck.PutBottom(top)
	s.TopCard = &played
	s.Moves = append(s.Moves, Move{PlayerID: playerID, Kind: MovePlay, Card: played})

	if len(p.Hand) == 0 {
		s.Status = Over
		s.Winner = playerID
		return nil
	}

	s.CurrentPlayerIndex, s.Direction = rule.Advance(idx, len(s.Players), s.Direction, played.Rank)
	s.DrawStack += rule.Penalty(played.Rank)
	return nil
}

// DrawCard 当前玩家摸一张牌，不轮转座位
func (g *Game) DrawCard(playerID string) (State, error) {
	s := g.state.Clone()
	if s.Status != InProgress {
		return State{}, apperrors.ErrGameNotInProgress
	}
	p, ok := s.CurrentPlayer()
	if !ok || p.ID != playerID {
		return State{}, apperrors.ErrNotYourTurn
	}
	g.drawInto(&s, s.CurrentPlayerIndex, 1)
	s.Moves = append(s.Moves, Move{PlayerID: playerID, Kind: MoveDraw, Count: 1})
	return g.commit(s), nil
}

// ColorChange 把当前玩家手中所有 Wild/+4 改成指定颜色
func (g *Game) ColorChange(color card.Color) (State, error) {
	s := g.state.Clone()
	if s.Status != InProgress {
		return State{}, apperrors.ErrGameNotInProgress
	}
	if !color.IsPlayColor() {
		return State{}, apperrors.ErrInvalidColor
	}
	p, ok := s.CurrentPlayer()
	if !ok {
		return State{}, apperrors.ErrNoCurrentPlayer
	}
	for i := range p.Hand {
		if p.Hand[i].IsWild() {
			p.Hand[i].Color = color
		}
	}
	return g.commit(s), nil
}

// ResumeAI 当前座位是 AI 时继续代打，用于单次命令处理到上限后的续跑
func (g *Game) ResumeAI() (State, error) {
	s := g.state.Clone()
	if err := g.runAI(&s); err != nil {
		return State{}, err
	}
	return g.commit(s), nil
}

// NeedsAI 游戏进行中且当前座位由 AI 托管
func (g *Game) NeedsAI() bool {
	if g.state.Status != InProgress {
		return false
	}
	p, ok := g.state.CurrentPlayer()
	return ok && p.IsAI
}

// runAI 连续处理 AI 座位，最多一轮
func (g *Game) runAI(s *State) error {
	for range len(s.Players) {
		if s.Status != InProgress {
			return nil
		}
		p, ok := s.CurrentPlayer()
		if !ok || !p.IsAI {
			return nil
		}
		if err := g.aiTurn(s); err != nil {
			return err
		}
	}
	return nil
}

// aiTurn AI 完成一个回合：必要时先罚摸，然后出牌；摸牌达到上限仍无牌可出则跳过
func (g *Game) aiTurn(s *State) error {
	idx := s.CurrentPlayerIndex
	p := s.Players[idx]
	bot, err := g.bot(p)
	if err != nil {
		return err
	}

	if s.DrawStack > 0 && !rule.CanContinue(p.Hand, *s.TopCard) {
		if err := g.applyMove(s, p.ID, card.Card{}); err != nil {
			return err
		}
	}

	for draws := 0; ; draws++ {
		d, err := bot.Choose(g.view(s, idx))
		if err != nil {
			return err
		}
		if !d.Draw {
			return g.applyMove(s, p.ID, d.Card)
		}
		if draws >= g.maxAIDraws {
			s.CurrentPlayerIndex = rule.Next(idx, len(s.Players), 1, s.Direction)
			s.Moves = append(s.Moves, Move{PlayerID: p.ID, Kind: MovePass})
			return nil
		}
		g.drawInto(s, idx, 1)
		s.Moves = append(s.Moves, Move{PlayerID: p.ID, Kind: MoveDraw, Count: 1})
	}
}

// bot 返回座位绑定的策略，缺失时按座位难度补建
func (g *Game) bot(p Player) (ai.Strategy, error) {
	if b, ok := g.bots[p.ID]; ok {
		return b, nil
	}
	b, err := ai.New(p.Level, p.ID)
	if err != nil {
		return nil, err
	}
	g.bots[p.ID] = b
	return b, nil
}

// view 座位 idx 能看到的信息
func (g *Game) view(s *State, idx int) ai.View {
	n := len(s.Players)
	next := rule.Next(idx, n, 1, s.Direction)
	opponents := make([]int, 0, n-1)
	for i, p := range s.Players {
		if i != idx {
			opponents = append(opponents, len(p.Hand))
		}
	}
	return ai.View{
		Hand:          slices.Clone(s.Players[idx].Hand),
		Top:           *s.TopCard,
		DrawStack:     s.DrawStack,
		NextSeatCards: len(s.Players[next].Hand),
		OpponentCards: opponents,
	}
}
