package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/room"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/server/storage"
	"github.com/palemoky/uno/internal/testutil"
)

func newTestHandler(t *testing.T, lb Leaderboard) (*Handler, *testutil.MockServer, *room.RoomManager) {
	t.Helper()
	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(false).Maybe()
	srv.On("GetOnlineCount").Return(3).Maybe()

	rm := room.NewRoomManager(nil, nil, room.Config{AIDelay: time.Millisecond})
	t.Cleanup(rm.Close)

	h := NewHandler(HandlerDeps{Server: srv, RoomManager: rm, Leaderboard: lb})
	return h, srv, rm
}

func msg(t *testing.T, msgType protocol.MessageType, payload any) *protocol.Message {
	t.Helper()
	m, err := codec.NewMessage(msgType, payload)
	require.NoError(t, err)
	return m
}

func errorCode(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()
	m := c.LastOfType(protocol.MsgError)
	require.NotNil(t, m, "expected an error message")
	p, err := codec.ParsePayload[protocol.ErrorPayload](m)
	require.NoError(t, err)
	return p.Code
}

func TestHandler_UnknownMessage(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t, nil)
	c := testutil.NewSimpleClient("p1", "Alice")

	h.Handle(c, &protocol.Message{Type: "chat"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t, nil)
	c := testutil.NewSimpleClient("p1", "Alice")

	h.Handle(c, msg(t, protocol.MsgPing, protocol.PingPayload{Timestamp: 42}))
	pong := c.LastOfType(protocol.MsgPong)
	require.NotNil(t, pong)
	p, err := codec.ParsePayload[protocol.PongPayload](pong)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ClientTimestamp)
	assert.Positive(t, p.ServerTimestamp)
}

func TestHandler_RoomFlow(t *testing.T) {
	t.Parallel()

	h, _, rm := newTestHandler(t, nil)
	alice := testutil.NewSimpleClient("p1", "Alice")
	bob := testutil.NewSimpleClient("p2", "Bob")

	h.Handle(alice, &protocol.Message{Type: protocol.MsgCreateRoom})
	created := alice.LastOfType(protocol.MsgRoomCreated)
	require.NotNil(t, created)
	cp, err := codec.ParsePayload[protocol.RoomCreatedPayload](created)
	require.NoError(t, err)
	assert.NotEmpty(t, cp.GameID)
	assert.Equal(t, "Alice", cp.Player.Name)

	h.Handle(bob, msg(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: cp.RoomCode}))
	joined := bob.LastOfType(protocol.MsgRoomJoined)
	require.NotNil(t, joined)
	jp, err := codec.ParsePayload[protocol.RoomJoinedPayload](joined)
	require.NoError(t, err)
	assert.Equal(t, cp.GameID, jp.GameID)
	assert.Len(t, jp.Players, 2)
	require.NotNil(t, jp.State)
	assert.Equal(t, "WAITING_TO_START", jp.State.Status)
	assert.Equal(t, cp.GameID, jp.State.GameID)
	assert.Len(t, jp.State.Players, 2)

	h.Handle(bob, msg(t, protocol.MsgStartGame, protocol.GameCommandPayload{GameID: "wrong"}))
	assert.Equal(t, protocol.ErrCodeGameIDMismatch, errorCode(t, bob))

	h.Handle(bob, msg(t, protocol.MsgStartGame, protocol.GameCommandPayload{GameID: cp.GameID}))
	assert.Equal(t, game.InProgress, rm.GetRoom(cp.RoomCode).Status())

	h.Handle(bob, msg(t, protocol.MsgDrawCard, protocol.GameCommandPayload{GameID: cp.GameID}))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, errorCode(t, bob))

	alice.Reset()
	h.Handle(alice, msg(t, protocol.MsgDrawCard, protocol.GameCommandPayload{GameID: cp.GameID}))
	assert.Nil(t, alice.LastOfType(protocol.MsgError))
	require.NotNil(t, alice.LastOfType(protocol.MsgGameState))

	h.Handle(alice, msg(t, protocol.MsgChangeColor, protocol.ChangeColorPayload{GameID: cp.GameID, Color: "Pink"}))
	assert.Equal(t, protocol.ErrCodeInvalidColor, errorCode(t, alice))

	h.Handle(alice, msg(t, protocol.MsgPlayCard, protocol.PlayCardPayload{
		GameID: cp.GameID, Card: protocol.CardInfo{Color: "Red", Rank: "Nope"},
	}))
	assert.Equal(t, protocol.ErrCodeInvalidCard, errorCode(t, alice))

	h.Handle(bob, &protocol.Message{Type: protocol.MsgLeaveRoom})
	assert.Empty(t, bob.GetRoom())
	assert.Equal(t, game.Over, rm.GetRoom(cp.RoomCode).Status())
}

func TestHandler_AddBotAndJoinAI(t *testing.T) {
	t.Parallel()

	h, _, rm := newTestHandler(t, nil)
	alice := testutil.NewSimpleClient("p1", "Alice")
	h.Handle(alice, &protocol.Message{Type: protocol.MsgCreateRoom})
	r := rm.GetRoom(alice.GetRoom())
	require.NotNil(t, r)
	gameID := r.CurrentGameID()

	h.Handle(alice, msg(t, protocol.MsgAddBot, protocol.JoinAIPayload{GameID: gameID, Difficulty: "Expert"}))
	assert.Equal(t, protocol.ErrCodeBadDifficulty, errorCode(t, alice))

	alice.Reset()
	h.Handle(alice, msg(t, protocol.MsgAddBot, protocol.JoinAIPayload{GameID: gameID, Difficulty: "Easy"}))
	assert.Nil(t, alice.LastOfType(protocol.MsgError))
	assert.Len(t, r.Snapshot().Players, 2)

	h.Handle(alice, msg(t, protocol.MsgJoinAI, protocol.JoinAIPayload{GameID: gameID, Difficulty: "Med"}))
	assert.Nil(t, alice.LastOfType(protocol.MsgError))
	for _, p := range r.Snapshot().Players {
		assert.True(t, p.IsAI)
	}

	h.Handle(alice, msg(t, protocol.MsgJoinAI, protocol.JoinAIPayload{GameID: gameID, Difficulty: "Easy"}))
	assert.Equal(t, protocol.ErrCodeNoHumanToSwap, errorCode(t, alice))
}

func TestHandler_NotInRoom(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t, nil)
	c := testutil.NewSimpleClient("p1", "Alice")

	h.Handle(c, msg(t, protocol.MsgDrawCard, protocol.GameCommandPayload{GameID: "g"}))
	assert.Equal(t, protocol.ErrCodeNotInRoom, errorCode(t, c))

	c.SetRoom("999999")
	h.Handle(c, msg(t, protocol.MsgStartGame, protocol.GameCommandPayload{GameID: "g"}))
	assert.Equal(t, protocol.ErrCodeRoomNotFound, errorCode(t, c))

	h.Handle(c, msg(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))
}

func TestHandler_Maintenance(t *testing.T) {
	t.Parallel()

	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(true)
	rm := room.NewRoomManager(nil, nil, room.Config{})
	t.Cleanup(rm.Close)
	h := NewHandler(HandlerDeps{Server: srv, RoomManager: rm})

	c := testutil.NewSimpleClient("p1", "Alice")
	h.Handle(c, &protocol.Message{Type: protocol.MsgCreateRoom})
	assert.Equal(t, protocol.ErrCodeServerMaintenance, errorCode(t, c))
	assert.Zero(t, rm.GetRoomCount())
	srv.AssertExpectations(t)
}

func TestHandler_MaintenanceRejectsJoin(t *testing.T) {
	t.Parallel()

	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(true)
	rm := room.NewRoomManager(nil, nil, room.Config{})
	t.Cleanup(rm.Close)
	h := NewHandler(HandlerDeps{Server: srv, RoomManager: rm})

	c := new(testutil.MockClient)
	c.On("SendMessage", mock.MatchedBy(func(m *protocol.Message) bool {
		if m.Type != protocol.MsgError {
			return false
		}
		p, err := codec.ParsePayload[protocol.ErrorPayload](m)
		return err == nil && p.Code == protocol.ErrCodeServerMaintenance
	})).Once()

	h.Handle(c, msg(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "123456"}))
	c.AssertExpectations(t)
	c.AssertNotCalled(t, "SetRoom", mock.Anything)
}

func TestHandler_RoomListAndOnlineCount(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t, nil)
	owner := testutil.NewSimpleClient("p1", "Alice")
	h.Handle(owner, &protocol.Message{Type: protocol.MsgCreateRoom})

	c := testutil.NewSimpleClient("p2", "Bob")
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetRoomList})
	list := c.LastOfType(protocol.MsgRoomListResult)
	require.NotNil(t, list)
	lp, err := codec.ParsePayload[protocol.RoomListResultPayload](list)
	require.NoError(t, err)
	require.Len(t, lp.Rooms, 1)
	assert.Equal(t, owner.GetRoom(), lp.Rooms[0].RoomCode)

	h.Handle(c, &protocol.Message{Type: protocol.MsgGetOnlineCount})
	oc := c.LastOfType(protocol.MsgOnlineCount)
	require.NotNil(t, oc)
	op, err := codec.ParsePayload[protocol.OnlineCountPayload](oc)
	require.NoError(t, err)
	assert.Equal(t, 3, op.Count)
}

func TestHandler_Stats(t *testing.T) {
	t.Parallel()

	lb := new(testutil.MockLeaderboard)
	lb.On("GetPlayerStats", mock.Anything, "p1").Return(&storage.PlayerStats{
		PlayerID: "p1", PlayerName: "Alice", TotalGames: 4, Wins: 3, Losses: 1, Score: 55, CurrentStreak: 2, MaxWinStreak: 2,
		PointsWon: 61, BestGame: 38,
	}, nil)
	lb.On("GetPlayerRank", mock.Anything, "p1").Return(int64(1), nil)
	lb.On("GetPlayerStats", mock.Anything, "p2").Return(nil, nil)

	h, _, _ := newTestHandler(t, lb)

	alice := testutil.NewSimpleClient("p1", "Alice")
	h.Handle(alice, &protocol.Message{Type: protocol.MsgGetStats})
	res := alice.LastOfType(protocol.MsgStatsResult)
	require.NotNil(t, res)
	sp, err := codec.ParsePayload[protocol.StatsResultPayload](res)
	require.NoError(t, err)
	assert.Equal(t, 3, sp.Wins)
	assert.Equal(t, 1, sp.Rank)
	assert.InDelta(t, 75.0, sp.WinRate, 0.001)
	assert.Equal(t, 61, sp.PointsWon)
	assert.Equal(t, 38, sp.BestGame)

	bob := testutil.NewSimpleClient("p2", "Bob")
	h.Handle(bob, &protocol.Message{Type: protocol.MsgGetStats})
	res = bob.LastOfType(protocol.MsgStatsResult)
	require.NotNil(t, res)
	sp, err = codec.ParsePayload[protocol.StatsResultPayload](res)
	require.NoError(t, err)
	assert.Equal(t, "Bob", sp.PlayerName)
	assert.Zero(t, sp.TotalGames)

	lb.AssertExpectations(t)
}

func TestHandler_Leaderboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   protocol.GetLeaderboardPayload
		wantType  string
		wantLimit int
		wantOff   int
	}{
		{"defaults", protocol.GetLeaderboardPayload{}, "total", 10, 0},
		{"weekly page", protocol.GetLeaderboardPayload{Type: "weekly", Offset: 10, Limit: 5}, "weekly", 5, 10},
		{"clamped", protocol.GetLeaderboardPayload{Type: "monthly", Offset: -3, Limit: 500}, "total", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lb := new(testutil.MockLeaderboard)
			lb.On("GetLeaderboard", mock.Anything, tt.wantType, tt.wantOff, tt.wantLimit).
				Return([]storage.LeaderboardEntry{{Rank: 1, PlayerID: "p1", PlayerName: "Alice", Score: 40}}, nil)
			h, _, _ := newTestHandler(t, lb)

			c := testutil.NewSimpleClient("p9", "Zed")
			h.Handle(c, msg(t, protocol.MsgGetLeaderboard, tt.payload))
			res := c.LastOfType(protocol.MsgLeaderboardResult)
			require.NotNil(t, res)
			p, err := codec.ParsePayload[protocol.LeaderboardResultPayload](res)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, p.Type)
			require.Len(t, p.Entries, 1)
			assert.Equal(t, "Alice", p.Entries[0].PlayerName)
			lb.AssertExpectations(t)
		})
	}
}

func TestHandler_LeaderboardErrors(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler(t, nil)
	c := testutil.NewSimpleClient("p1", "Alice")
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetStats})
	assert.Equal(t, protocol.ErrCodeUnknown, errorCode(t, c))

	lb := new(testutil.MockLeaderboard)
	lb.On("GetLeaderboard", mock.Anything, "total", 0, 10).Return(nil, errors.New("redis down"))
	h, _, _ = newTestHandler(t, lb)
	c.Reset()
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetLeaderboard})
	assert.Equal(t, protocol.ErrCodeUnknown, errorCode(t, c))
}
