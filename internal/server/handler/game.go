package handler

import (
	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/room"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/types"
)

// currentRoom 客户端所在的房间
func (h *Handler) currentRoom(client types.ClientInterface) (*room.Room, error) {
	code := client.GetRoom()
	if code == "" {
		return nil, apperrors.ErrNotInRoom
	}
	r := h.roomManager.GetRoom(code)
	if r == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// roomCommand 解析载荷、定位房间、执行命令，失败时回复错误
func roomCommand[T any](h *Handler, client types.ClientInterface, msg *protocol.Message, run func(*room.Room, *T) error) {
	payload, err := codec.ParsePayload[T](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}
	if err := run(r, payload); err != nil {
		sendError(client, err)
	}
}

// handleStartGame 处理开局
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.GameCommandPayload) error {
		return r.StartGame(client.GetID(), p.GameID)
	})
}

// handleJoinAI 处理 AI 托管
func (h *Handler) handleJoinAI(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.JoinAIPayload) error {
		return r.JoinAI(client.GetID(), p.GameID, p.Difficulty)
	})
}

// handleAddBot 处理添加 AI 座位
func (h *Handler) handleAddBot(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.JoinAIPayload) error {
		return r.AddBot(client.GetID(), p.GameID, p.Difficulty)
	})
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.PlayCardPayload) error {
		return r.PlayCard(client.GetID(), p.GameID, p.Card)
	})
}

// handleDrawCard 处理摸牌
func (h *Handler) handleDrawCard(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.GameCommandPayload) error {
		return r.DrawCard(client.GetID(), p.GameID)
	})
}

// handleChangeColor 处理万能牌变色
func (h *Handler) handleChangeColor(client types.ClientInterface, msg *protocol.Message) {
	roomCommand(h, client, msg, func(r *room.Room, p *protocol.ChangeColorPayload) error {
		return r.ChangeColor(client.GetID(), p.GameID, p.Color)
	})
}
