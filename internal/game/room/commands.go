package room

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/ai"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/protocol/convert"
	"github.com/palemoky/uno/internal/types"
)

// JoinGame 入座当前牌局
//
// 没有牌局或上一局已结束时先换一局新的实例。
func (r *Room) JoinGame(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.Snapshot().Status == game.Over {
		r.resetGame()
		log.Printf("🎲 房间 %s 开始新牌局 %s", r.Code, r.GameID)
	}

	id := client.GetID()
	r.names[id] = client.GetName()
	st, err := r.game.Join(id)
	if err != nil {
		return err
	}
	r.Players[id] = &RoomPlayer{Client: client}
	client.SetRoom(r.Code)

	r.broadcastExcept(id, codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: r.playerInfo(id),
	}))
	r.afterCommand(st)
	return nil
}

// LeaveGame 离开房间，返回房间内是否已没有真人
func (r *Room) LeaveGame(client types.ClientInterface) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := client.GetID()
	if _, ok := r.Players[id]; !ok {
		return len(r.Players) == 0
	}
	delete(r.Players, id)
	client.SetRoom("")

	st, err := r.game.Leave(id)
	if err != nil {
		log.Printf("⚠️  房间 %s 玩家 %s 离座失败: %v", r.Code, id, err)
		st = r.game.Snapshot()
	}

	r.broadcast(codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   id,
		PlayerName: client.GetName(),
	}))

	if len(r.Players) == 0 {
		r.closed = true
		r.stopAI()
		return true
	}
	r.afterCommand(st)
	return false
}

// checkGameID 命令必须指向当前牌局
func (r *Room) checkGameID(gameID string) error {
	if gameID != r.GameID {
		return apperrors.ErrGameIDMismatch
	}
	return nil
}

// member 命令发起者必须在房间中
func (r *Room) member(playerID string) error {
	if _, ok := r.Players[playerID]; !ok {
		return apperrors.ErrNotInRoom
	}
	return nil
}

// guard 房间内命令的公共校验
func (r *Room) guard(playerID, gameID string) error {
	if err := r.member(playerID); err != nil {
		return err
	}
	return r.checkGameID(gameID)
}

// guardSeat 出牌类命令：座位交给 AI 后本人不能再操作
func (r *Room) guardSeat(playerID, gameID string) error {
	if err := r.guard(playerID, gameID); err != nil {
		return err
	}
	if r.game.IsAISeat(playerID) {
		return apperrors.ErrSeatIsAI
	}
	return nil
}

// StartGame 开局
//
// 上一局已结束时用同一批座位重开，并换一个新的实例 ID。
func (r *Room) StartGame(playerID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(playerID, gameID); err != nil {
		return err
	}
	status := r.game.Snapshot().Status
	if status == game.InProgress {
		return apperrors.ErrGameStarted
	}

	st, err := r.game.Start()
	if err != nil {
		return err
	}
	if status == game.Over {
		r.GameID = uuid.NewString()
		r.recorded = false
	}
	log.Printf("🎮 房间 %s 牌局 %s 开始，%d 名玩家", r.Code, r.GameID, len(st.Players))
	r.afterCommand(st)
	return nil
}

// JoinAI 把最后入座的真人交给 AI 托管
func (r *Room) JoinAI(playerID, gameID, difficulty string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(playerID, gameID); err != nil {
		return err
	}
	level, err := ai.ParseLevel(difficulty)
	if err != nil {
		return err
	}
	st, err := r.game.JoinAI(level)
	if err != nil {
		return err
	}
	r.afterCommand(st)
	return nil
}

// AddBot 追加一个 AI 座位
func (r *Room) AddBot(playerID, gameID, difficulty string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(playerID, gameID); err != nil {
		return err
	}
	level, err := ai.ParseLevel(difficulty)
	if err != nil {
		return err
	}

	botID := botIDPrefix + uuid.NewString()[:8]
	st, err := r.game.AddAI(botID, level)
	if err != nil {
		return err
	}
	r.names[botID] = fmt.Sprintf("AI-%d (%s)", len(st.Players), level)

	r.broadcast(codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: r.playerInfo(botID),
	}))
	r.afterCommand(st)
	return nil
}

// PlayCard 出牌
func (r *Room) PlayCard(playerID, gameID string, info protocol.CardInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guardSeat(playerID, gameID); err != nil {
		return err
	}
	c, err := convert.InfoToCard(info)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidCard, err)
	}
	st, err := r.game.ApplyMove(playerID, c)
	if err != nil {
		return err
	}
	r.afterCommand(st)
	return nil
}

// DrawCard 摸牌
func (r *Room) DrawCard(playerID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guardSeat(playerID, gameID); err != nil {
		return err
	}
	st, err := r.game.DrawCard(playerID)
	if err != nil {
		return err
	}
	r.afterCommand(st)
	return nil
}

// ChangeColor 把自己手中的万能牌变成指定颜色，只能在自己的回合使用
func (r *Room) ChangeColor(playerID, gameID, color string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guardSeat(playerID, gameID); err != nil {
		return err
	}
	c, err := card.ParseColor(color)
	if err != nil {
		return apperrors.ErrInvalidColor
	}
	if r.game.Snapshot().Status == game.InProgress && !r.game.IsPlayersTurn(playerID) {
		return apperrors.ErrNotYourTurn
	}
	st, err := r.game.ColorChange(c)
	if err != nil {
		return err
	}
	r.afterCommand(st)
	return nil
}
