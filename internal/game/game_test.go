package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/ai"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/game/rule"
)

func c(color card.Color, rank card.Rank) card.Card {
	return card.Card{Color: color, Rank: rank}
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// withState 直接构造一个进行中的牌局
func withState(players []Player, top card.Card, deck card.Deck, opts ...Option) *Game {
	g := New(append([]Option{seeded(1)}, opts...)...)
	g.state = State{
		Status:    InProgress,
		Players:   players,
		Deck:      deck,
		TopCard:   &top,
		Direction: rule.Clockwise,
	}
	return g
}

func human(id string, hand ...card.Card) Player {
	return Player{ID: id, Hand: hand}
}

func bot(id string, hand ...card.Card) Player {
	return Player{ID: id, Hand: hand, IsAI: true, Level: ai.Easy}
}

func assertConserved(t *testing.T, s State) {
	t.Helper()
	assert.Equal(t, card.DeckSize*s.Decks, s.CardCount(), "牌数守恒")
}

func TestStart(t *testing.T) {
	t.Parallel()

	for seed := range uint64(40) {
		g := New(seeded(seed))
		_, err := g.Join("p1")
		require.NoError(t, err)
		_, err = g.Join("p2")
		require.NoError(t, err)

		s, err := g.Start()
		require.NoError(t, err)

		assert.Equal(t, InProgress, s.Status)
		assert.Len(t, s.Players[0].Hand, HandSize)
		assert.Len(t, s.Players[1].Hand, HandSize)
		assert.Len(t, s.Deck, card.DeckSize-2*HandSize-1)
		require.NotNil(t, s.TopCard)
		assert.False(t, s.TopCard.IsWild(), "起始牌不能是万能牌")
		assert.NotEqual(t, card.DrawTwo, s.TopCard.Rank, "起始牌不能是 +2")
		assert.Equal(t, 0, s.CurrentPlayerIndex)
		assert.Equal(t, rule.Clockwise, s.Direction)
		assert.Zero(t, s.DrawStack)
		assertConserved(t, s)
	}
}

func TestStart_NotEnoughPlayers(t *testing.T) {
	t.Parallel()

	g := New()
	_, err := g.Start()
	assert.ErrorIs(t, err, apperrors.ErrNotEnoughPlayers)

	_, err = g.Join("p1")
	require.NoError(t, err)
	_, err = g.Start()
	assert.ErrorIs(t, err, apperrors.ErrNotEnoughPlayers)
	assert.Equal(t, WaitingToStart, g.Snapshot().Status)
}

func TestStart_ResetsFinishedGame(t *testing.T) {
	t.Parallel()

	g := withState(
		[]Player{human("p1", c(card.Red, card.Rank5)), human("p2", c(card.Blue, card.Rank1))},
		c(card.Red, card.Rank4), nil,
	)
	s, err := g.ApplyMove("p1", c(card.Red, card.Rank5))
	require.NoError(t, err)
	require.Equal(t, Over, s.Status)

	_, err = g.ApplyMove("p2", c(card.Blue, card.Rank1))
	assert.ErrorIs(t, err, apperrors.ErrGameNotInProgress)

	s, err = g.Start()
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Status)
	assert.Empty(t, s.Winner)
	assert.Empty(t, s.Moves)
	assert.Equal(t, 1, s.Decks)
	assertConserved(t, s)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	g := New(seeded(3))
	s, err := g.Join("p1")
	require.NoError(t, err)
	assert.Equal(t, WaitingToStart, s.Status)
	assert.Len(t, s.Players, 1)

	_, err = g.Join("p1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadySeated)

	for _, id := range []string{"p2", "p3"} {
		s, err = g.Join(id)
		require.NoError(t, err)
		assert.Equal(t, WaitingToStart, s.Status)
	}

	s, err = g.Join("p4")
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Status, "坐满自动开局")
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(s))
	assert.Len(t, s.Deck, card.DeckSize-4*HandSize-1)
	assertConserved(t, s)

	_, err = g.Join("p5")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
}

func TestJoin_GameStarted(t *testing.T) {
	t.Parallel()

	g := New(seeded(4))
	_, _ = g.Join("p1")
	_, _ = g.Join("p2")
	_, err := g.Start()
	require.NoError(t, err)

	_, err = g.Join("p3")
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestJoinAI(t *testing.T) {
	t.Parallel()

	t.Run("converts most recent human", func(t *testing.T) {
		t.Parallel()
		g := New()
		_, _ = g.Join("p1")
		_, _ = g.Join("p2")

		s, err := g.JoinAI(ai.Medium)
		require.NoError(t, err)
		assert.False(t, s.Players[0].IsAI)
		assert.True(t, s.Players[1].IsAI)
		assert.Equal(t, ai.Medium, s.Players[1].Level)
		assert.Equal(t, "p2", s.Players[1].ID, "座位身份不变")

		s, err = g.JoinAI(ai.Easy)
		require.NoError(t, err)
		assert.True(t, s.Players[0].IsAI)

		_, err = g.JoinAI(ai.Easy)
		assert.ErrorIs(t, err, apperrors.ErrNoHumanToReplace)
	})

	t.Run("empty roster", func(t *testing.T) {
		t.Parallel()
		_, err := New().JoinAI(ai.Easy)
		assert.ErrorIs(t, err, apperrors.ErrNoHumanToReplace)
	})

	t.Run("full roster", func(t *testing.T) {
		t.Parallel()
		g := New()
		for _, id := range []string{"p1", "p2", "p3", "p4"} {
			_, err := g.Join(id)
			require.NoError(t, err)
		}
		_, err := g.JoinAI(ai.Easy)
		assert.ErrorIs(t, err, apperrors.ErrRoomFull)
	})

	t.Run("invalid level leaves seat human", func(t *testing.T) {
		t.Parallel()
		g := New()
		_, _ = g.Join("p1")
		_, err := g.JoinAI(ai.Level(7))
		assert.ErrorIs(t, err, apperrors.ErrInvalidLevel)
		assert.False(t, g.Snapshot().Players[0].IsAI)
	})

	t.Run("converted current seat plays immediately", func(t *testing.T) {
		t.Parallel()
		g := withState(
			[]Player{human("p1", c(card.Red, card.Rank9), c(card.Blue, card.Rank2)), human("p2", c(card.Green, card.Rank1))},
			c(card.Red, card.Rank4), card.Deck{c(card.Yellow, card.Rank1)},
			WithMaxAIDraws(1),
		)
		g.state.CurrentPlayerIndex = 1
		s, err := g.JoinAI(ai.Easy)
		require.NoError(t, err)
		assert.Equal(t, "p2", s.Players[1].ID)
		// p2 摸一张仍无牌可出，跳过，轮回 p1
		assert.Len(t, s.Players[1].Hand, 2)
		assert.Equal(t, 0, s.CurrentPlayerIndex)
		require.Len(t, s.Moves, 2)
		assert.Equal(t, MovePass, s.Moves[1].Kind)
	})
}

func TestAddAI(t *testing.T) {
	t.Parallel()

	g := New(seeded(5))
	_, err := g.Join("p1")
	require.NoError(t, err)

	s, err := g.AddAI("bot-1", ai.Medium)
	require.NoError(t, err)
	require.Len(t, s.Players, 2)
	assert.True(t, s.Players[1].IsAI)
	assert.Equal(t, WaitingToStart, s.Status)

	_, err = g.AddAI("bot-1", ai.Easy)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySeated)
	_, err = g.AddAI("bot-x", ai.Level(9))
	assert.ErrorIs(t, err, apperrors.ErrInvalidLevel)

	_, err = g.AddAI("bot-2", ai.Easy)
	require.NoError(t, err)
	s, err = g.AddAI("bot-3", ai.Easy)
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Status, "坐满自动开局")
	assertConserved(t, s)
}

func ids(s State) []string {
	out := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p.ID)
	}
	return out
}

func TestLeave(t *testing.T) {
	t.Parallel()

	three := func() []Player {
		return []Player{
			human("p1", c(card.Red, card.Rank1)),
			human("p2", c(card.Red, card.Rank2), c(card.Red, card.Rank3)),
			human("p3", c(card.Red, card.Rank4)),
		}
	}

	t.Run("last one standing wins", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)

		s, err := g.Leave("p2")
		require.NoError(t, err)
		assert.Equal(t, InProgress, s.Status, "剩两人继续")
		assert.Len(t, s.Deck, 2, "离开玩家的手牌回到牌堆")

		s, err = g.Leave("p3")
		require.NoError(t, err)
		assert.Equal(t, Over, s.Status)
		assert.Equal(t, "p1", s.Winner)
	})

	t.Run("current seat leaves clockwise", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)
		g.state.CurrentPlayerIndex = 1
		s, err := g.Leave("p2")
		require.NoError(t, err)
		assert.Equal(t, "p3", s.Players[s.CurrentPlayerIndex].ID)
	})

	t.Run("current seat leaves counterclockwise", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)
		g.state.CurrentPlayerIndex = 1
		g.state.Direction = rule.Counterclockwise
		s, err := g.Leave("p2")
		require.NoError(t, err)
		assert.Equal(t, "p1", s.Players[s.CurrentPlayerIndex].ID)
	})

	t.Run("earlier seat leaves", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)
		g.state.CurrentPlayerIndex = 2
		s, err := g.Leave("p1")
		require.NoError(t, err)
		assert.Equal(t, "p3", s.Players[s.CurrentPlayerIndex].ID)
	})

	t.Run("last seat leaves while current", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)
		g.state.CurrentPlayerIndex = 2
		s, err := g.Leave("p3")
		require.NoError(t, err)
		assert.Equal(t, "p1", s.Players[s.CurrentPlayerIndex].ID)
	})

	t.Run("unknown player is a no-op", func(t *testing.T) {
		t.Parallel()
		g := withState(three(), c(card.Blue, card.Rank5), nil)
		before := g.Snapshot()
		s, err := g.Leave("nobody")
		require.NoError(t, err)
		assert.Equal(t, before, s)
	})

	t.Run("waiting room empties", func(t *testing.T) {
		t.Parallel()
		g := New()
		_, _ = g.Join("p1")
		_, _ = g.Join("p2")
		s, err := g.Leave("p1")
		require.NoError(t, err)
		assert.Equal(t, WaitingToStart, s.Status)
		s, err = g.Leave("p2")
		require.NoError(t, err)
		assert.Equal(t, WaitingToStart, s.Status)
		assert.Empty(t, s.Players)
	})

	t.Run("conservation after leave", func(t *testing.T) {
		t.Parallel()
		g := New(seeded(9))
		for _, id := range []string{"p1", "p2", "p3"} {
			_, _ = g.Join(id)
		}
		_, err := g.Start()
		require.NoError(t, err)
		s, err := g.Leave("p2")
		require.NoError(t, err)
		assertConserved(t, s)
	})
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	t.Parallel()

	g := withState([]Player{human("p1", c(card.Red, card.Rank1)), human("p2")}, c(card.Red, card.Rank4), card.Deck{c(card.Blue, card.Rank1)})
	s := g.Snapshot()
	s.Players[0].Hand[0] = c(card.Green, card.Rank9)
	s.Deck[0] = c(card.Green, card.Rank9)
	*s.TopCard = c(card.Green, card.Rank9)

	fresh := g.Snapshot()
	assert.Equal(t, c(card.Red, card.Rank1), fresh.Players[0].Hand[0])
	assert.Equal(t, c(card.Blue, card.Rank1), fresh.Deck[0])
	assert.Equal(t, c(card.Red, card.Rank4), *fresh.TopCard)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "WAITING_TO_START", WaitingToStart.String())
	assert.Equal(t, "IN_PROGRESS", InProgress.String())
	assert.Equal(t, "OVER", Over.String())
	assert.Equal(t, "forced_draw", MoveForcedDraw.String())
}
