// Package game 实现 UNO 规则引擎：座位管理、发牌、出牌、摸牌、变色与 AI 托管。
//
// Game 不加锁，调用方需要保证同一局的命令串行执行。每个命令先在工作副本上
// 完成全部校验和修改，成功后才提交，失败时状态保持不变。
package game

import (
	"math/rand/v2"
	"slices"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/ai"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
	HandSize   = 7

	DefaultMaxAIDraws = 15
)

// Game 一局游戏
type Game struct {
	state      State
	bots       map[string]ai.Strategy
	rng        *rand.Rand
	maxAIDraws int
}

// Option 配置 Game
type Option func(*Game)

// WithRand 指定随机源，测试中用于固定洗牌结果
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithMaxAIDraws AI 每回合最多摸牌次数，超过后跳过
func WithMaxAIDraws(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.maxAIDraws = n
		}
	}
}

// New 创建一局空游戏
func New(opts ...Option) *Game {
	g := &Game{
		state: State{
			Status:    WaitingToStart,
			Direction: rule.Clockwise,
		},
		bots:       make(map[string]ai.Strategy),
		maxAIDraws: DefaultMaxAIDraws,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Snapshot 当前状态的深拷贝
func (g *Game) Snapshot() State {
	return g.state.Clone()
}

// IsPlayersTurn 是否轮到该玩家
func (g *Game) IsPlayersTurn(playerID string) bool {
	p, ok := g.state.CurrentPlayer()
	return ok && p.ID == playerID
}

// IsAISeat 该玩家的座位是否由 AI 托管
func (g *Game) IsAISeat(playerID string) bool {
	i := g.state.PlayerIndex(playerID)
	return i >= 0 && g.state.Players[i].IsAI
}

// commit 提交工作副本并返回快照
func (g *Game) commit(s State) State {
	g.state = s
	return s.Clone()
}

// Join 玩家入座，坐满时自动开局
func (g *Game) Join(playerID string) (State, error) {
	s := g.state.Clone()
	if s.PlayerIndex(playerID) >= 0 {
		return State{}, apperrors.ErrAlreadySeated
	}
	if len(s.Players) >= MaxPlayers {
		return State{}, apperrors.ErrRoomFull
	}
	if s.Status == InProgress {
		return State{}, apperrors.ErrGameStarted
	}

	s.Players = append(s.Players, Player{ID: playerID})
	if err := g.startIfFull(&s); err != nil {
		return State{}, err
	}
	return g.commit(s), nil
}

// AddAI 追加一个 AI 座位，坐满时自动开局
func (g *Game) AddAI(botID string, level ai.Level) (State, error) {
	s := g.state.Clone()
	if s.PlayerIndex(botID) >= 0 {
		return State{}, apperrors.ErrAlreadySeated
	}
	if len(s.Players) >= MaxPlayers {
		return State{}, apperrors.ErrRoomFull
	}
	if s.Status == InProgress {
		return State{}, apperrors.ErrGameStarted
	}
	bot, err := ai.New(level, botID)
	if err != nil {
		return State{}, err
	}

	s.Players = append(s.Players, Player{ID: botID, IsAI: true, Level: level})
	g.bots[botID] = bot
	if err := g.startIfFull(&s); err != nil {
		delete(g.bots, botID)
		return State{}, err
	}
	return g.commit(s), nil
}

// JoinAI 把最后入座的真人座位交给 AI 托管，手牌与座位不变
func (g *Game) JoinAI(level ai.Level) (State, error) {
	s := g.state.Clone()
	if len(s.Players) >= MaxPlayers {
		return State{}, apperrors.ErrRoomFull
	}

	idx := -1
	for i := len(s.Players) - 1; i >= 0; i-- {
		if !s.Players[i].IsAI {
			idx = i
			break
		}
	}
	if idx < 0 {
		return State{}, apperrors.ErrNoHumanToReplace
	}

	p := &s.Players[idx]
	bot, err := ai.New(level, p.ID)
	if err != nil {
		return State{}, err
	}
	p.IsAI, p.Level = true, level

	prev, had := g.bots[p.ID]
	g.bots[p.ID] = bot
	if err := g.runAI(&s); err != nil {
		if had {
			g.bots[p.ID] = prev
		} else {
			delete(g.bots, p.ID)
		}
		return State{}, err
	}
	return g.commit(s), nil
}

// Leave 玩家离座，手牌放回牌底
//
// 进行中的游戏只剩一人时该玩家获胜；剩两人及以上继续；全部离开后回到等待状态。
// 不在局中的玩家离开不做任何事。
func (g *Game) Leave(playerID string) (State, error) {
	s := g.state.Clone()
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return s, nil
	}

	s.Deck = s.Deck.PutBottom(s.Players[idx].Hand...)
	s.Players = slices.Delete(s.Players, idx, idx+1)
	s.CurrentPlayerIndex = seatAfterLeave(s.CurrentPlayerIndex, idx, len(s.Players), s.Direction)

	switch {
	case s.Status == InProgress && len(s.Players) == 1:
		s.Status = Over
		s.Winner = s.Players[0].ID
	case len(s.Players) == 0:
		s.Status = WaitingToStart
		s.Winner = ""
	}

	if s.Status == InProgress {
		if err := g.runAI(&s); err != nil {
			return State{}, err
		}
	}
	delete(g.bots, playerID)
	return g.commit(s), nil
}

// seatAfterLeave 计算座位 left 离开后新的当前座位
//
// 当前玩家离开时由其下家接手。
func seatAfterLeave(cur, left, n int, dir rule.Direction) int {
	switch {
	case n == 0:
		return 0
	case left < cur:
		return cur - 1
	case left > cur:
		return cur
	case dir == rule.Counterclockwise:
		return rule.Next(left, n, 1, dir)
	default:
		return left % n
	}
}

// Start 开局（总是完全重置），要求至少 2 名玩家
func (g *Game) Start() (State, error) {
	s := g.state.Clone()
	if err := g.start(&s); err != nil {
		return State{}, err
	}
	if err := g.runAI(&s); err != nil {
		return State{}, err
	}
	return g.commit(s), nil
}

func (g *Game) startIfFull(s *State) error {
	if len(s.Players) < MaxPlayers {
		return nil
	}
	if err := g.start(s); err != nil {
		return err
	}
	return g.runAI(s)
}

func (g *Game) start(s *State) error {
	if len(s.Players) < MinPlayers {
		return apperrors.ErrNotEnoughPlayers
	}

	s.Deck = card.NewDeck(g.rng)
	s.Decks = 1
	for i := range s.Players {
		s.Players[i].Hand = nil
	}
	s.TopCard = nil
	s.CurrentPlayerIndex = 0
	s.Direction = rule.Clockwise
	s.DrawStack = 0
	s.Winner = ""
	s.Moves = nil

	for range HandSize {
		for i := range s.Players {
			s.Players[i].Hand = append(s.Players[i].Hand, g.take(s))
		}
	}

	// 起始牌不能是 Wild、+4、+2
	for {
		top := g.take(s)
		if !top.IsWild() && top.Rank != card.DrawTwo {
			s.TopCard = &top
			break
		}
		s.Deck = s.Deck.PutBottom(top)
		s.Deck.Shuffle(g.rng)
	}

	s.Status = InProgress
	return nil
}

// take 从牌顶摸一张，牌堆为空时补一副洗好的新牌
func (g *Game) take(s *State) card.Card {
	if len(s.Deck) == 0 {
		s.Deck = card.NewDeck(g.rng)
		s.Decks++
	}
	var c card.Card
	s.Deck, c, _ = s.Deck.Draw()
	return c
}

// drawInto 给座位 idx 摸 n 张牌
func (g *Game) drawInto(s *State, idx, n int) {
	for range n {
		s.Players[idx].Hand = append(s.Players[idx].Hand, g.take(s))
	}
}
