package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间（入座当前牌局）
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间

	// 游戏操作，均需携带 game_id
	MsgStartGame   MessageType = "start_game"   // 开局
	MsgJoinAI      MessageType = "join_ai"      // 最后入座的真人交给 AI 托管
	MsgAddBot      MessageType = "add_bot"      // 追加一个 AI 座位
	MsgPlayCard    MessageType = "play_card"    // 出牌
	MsgDrawCard    MessageType = "draw_card"    // 摸牌
	MsgChangeColor MessageType = "change_color" // 万能牌变色

	// 排行榜
	MsgGetStats       MessageType = "get_stats"        // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard"  // 获取排行榜
	MsgGetRoomList    MessageType = "get_room_list"    // 获取房间列表
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"    // 连接成功
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgOnlineCount MessageType = "online_count" // 在线人数更新

	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开

	// 游戏流程
	MsgGameState MessageType = "game_state" // 牌局快照（每次命令成功后按玩家视角推送）
	MsgGameOver  MessageType = "game_over"  // 游戏结束

	// 排行榜
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果
	MsgRoomListResult    MessageType = "room_list_result"   // 房间列表结果

	// 系统通知
	MsgMaintenancePush MessageType = "maintenance_push" // 维护通知

	// 错误
	MsgError MessageType = "error" // 错误消息
)
