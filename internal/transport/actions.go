package transport

import (
	"time"

	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
)

func (c *Client) sendTyped(t protocol.MessageType, payload any) error {
	msg, err := codec.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// CreateRoom 创建房间
func (c *Client) CreateRoom() error {
	return c.sendTyped(protocol.MsgCreateRoom, nil)
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomCode string) error {
	return c.sendTyped(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: roomCode})
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom() error {
	return c.sendTyped(protocol.MsgLeaveRoom, nil)
}

// StartGame 开局
func (c *Client) StartGame(gameID string) error {
	return c.sendTyped(protocol.MsgStartGame, protocol.GameCommandPayload{GameID: gameID})
}

// JoinAI 把最后入座的真人交给 AI
func (c *Client) JoinAI(gameID, difficulty string) error {
	return c.sendTyped(protocol.MsgJoinAI, protocol.JoinAIPayload{GameID: gameID, Difficulty: difficulty})
}

// AddBot 追加 AI 座位
func (c *Client) AddBot(gameID, difficulty string) error {
	return c.sendTyped(protocol.MsgAddBot, protocol.JoinAIPayload{GameID: gameID, Difficulty: difficulty})
}

// PlayCard 出牌，万能牌需带颜色
func (c *Client) PlayCard(gameID string, card protocol.CardInfo) error {
	return c.sendTyped(protocol.MsgPlayCard, protocol.PlayCardPayload{GameID: gameID, Card: card})
}

// DrawCard 摸牌
func (c *Client) DrawCard(gameID string) error {
	return c.sendTyped(protocol.MsgDrawCard, protocol.GameCommandPayload{GameID: gameID})
}

// ChangeColor 万能牌变色
func (c *Client) ChangeColor(gameID, color string) error {
	return c.sendTyped(protocol.MsgChangeColor, protocol.ChangeColorPayload{GameID: gameID, Color: color})
}

// GetStats 获取个人统计
func (c *Client) GetStats() error {
	return c.sendTyped(protocol.MsgGetStats, nil)
}

// GetLeaderboard 获取排行榜
func (c *Client) GetLeaderboard(boardType string, offset, limit int) error {
	return c.sendTyped(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Type: boardType, Offset: offset, Limit: limit})
}

// GetRoomList 获取房间列表
func (c *Client) GetRoomList() error {
	return c.sendTyped(protocol.MsgGetRoomList, nil)
}

// GetOnlineCount 获取在线人数
func (c *Client) GetOnlineCount() error {
	return c.sendTyped(protocol.MsgGetOnlineCount, nil)
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.sendTyped(protocol.MsgPing, protocol.PingPayload{Timestamp: time.Now().UnixMilli()})
}
