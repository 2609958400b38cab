package handler

import (
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	room, err := h.roomManager.CreateRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		GameID:   room.CurrentGameID(),
		Player:   room.GetPlayerInfo(client.GetID()),
	}))
}

// handleJoinRoom 处理加入房间（入座当前牌局）
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || payload.RoomCode == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 已在别的房间中，先离开
	if code := client.GetRoom(); code != "" && code != payload.RoomCode {
		h.roomManager.LeaveRoom(client)
	}

	room, err := h.roomManager.JoinRoom(client, payload.RoomCode)
	if err != nil {
		sendError(client, err)
		return
	}

	st := room.StateFor(client.GetID())
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		GameID:   st.GameID,
		Player:   room.GetPlayerInfo(client.GetID()),
		Players:  room.GetAllPlayersInfo(),
		State:    &st,
	}))
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.roomManager.LeaveRoom(client)
}
