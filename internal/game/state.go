package game

import (
	"slices"

	"github.com/palemoky/uno/internal/game/ai"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
)

// Status 游戏阶段
type Status int

const (
	WaitingToStart Status = iota
	InProgress
	Over
)

var statusNames = map[Status]string{
	WaitingToStart: "WAITING_TO_START",
	InProgress:     "IN_PROGRESS",
	Over:           "OVER",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Player 座位
type Player struct {
	ID    string
	Hand  []card.Card
	IsAI  bool
	Level ai.Level // 仅 IsAI 时有效
}

// MoveKind 操作记录类型
type MoveKind int

const (
	MovePlay       MoveKind = iota // 出牌
	MoveDraw                       // 主动摸牌
	MoveForcedDraw                 // 罚牌
	MovePass                       // AI 摸牌上限后跳过
)

var moveKindNames = map[MoveKind]string{
	MovePlay:       "play",
	MoveDraw:       "draw",
	MoveForcedDraw: "forced_draw",
	MovePass:       "pass",
}

func (k MoveKind) String() string {
	return moveKindNames[k]
}

// Move 一条已生效的操作记录
type Move struct {
	PlayerID string
	Kind     MoveKind
	Card     card.Card // MovePlay
	Count    int       // MoveDraw / MoveForcedDraw 摸牌张数
}

// State 一局游戏的完整状态
//
// Game 每次返回的都是深拷贝，调用方可以随意持有。
type State struct {
	Status             Status
	Players            []Player
	Deck               card.Deck // 末尾为牌顶
	TopCard            *card.Card
	CurrentPlayerIndex int
	Direction          rule.Direction
	DrawStack          int
	Winner             string
	Moves              []Move
	Decks              int // 已投入的整副牌数，牌堆摸空时会补一副新牌
}

// Clone 深拷贝
func (s State) Clone() State {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hand = slices.Clone(p.Hand)
		out.Players[i] = p
	}
	out.Deck = slices.Clone(s.Deck)
	if s.TopCard != nil {
		top := *s.TopCard
		out.TopCard = &top
	}
	out.Moves = slices.Clone(s.Moves)
	return out
}

// PlayerIndex 返回玩家座位号，不在局中返回 -1
func (s *State) PlayerIndex(id string) int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == id })
}

// CurrentPlayer 当前出牌的玩家
func (s *State) CurrentPlayer() (*Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil, false
	}
	return &s.Players[s.CurrentPlayerIndex], true
}

// CardCount 牌堆、所有手牌与顶牌的总张数
func (s *State) CardCount() int {
	n := len(s.Deck)
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	if s.TopCard != nil {
		n++
	}
	return n
}
