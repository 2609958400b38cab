package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// GameCommandPayload 不带参数的牌局命令（start_game / draw_card）
type GameCommandPayload struct {
	GameID string `json:"game_id"`
}

// JoinAIPayload AI 托管 / 追加 AI 请求
type JoinAIPayload struct {
	GameID     string `json:"game_id"`
	Difficulty string `json:"difficulty"` // Easy / Medium（兼容 Med）
}

// PlayCardPayload 出牌请求，万能牌在 Card.Color 中指定颜色
type PlayCardPayload struct {
	GameID string   `json:"game_id"`
	Card   CardInfo `json:"card"`
}

// ChangeColorPayload 变色请求
type ChangeColorPayload struct {
	GameID string `json:"game_id"`
	Color  string `json:"color"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// OnlineCountPayload 在线人数更新
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	GameID   string     `json:"game_id"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string        `json:"room_code"`
	GameID   string        `json:"game_id"`
	Player   PlayerInfo    `json:"player"`
	Players  []PlayerInfo  `json:"players"`         // 房间内所有座位
	State    *GameStateDTO `json:"state,omitempty"` // 加入者视角的当前快照
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// GameStateDTO 某个玩家视角的牌局快照，其他人的手牌只给张数
type GameStateDTO struct {
	GameID      string       `json:"game_id"`
	Status      string       `json:"status"` // WAITING_TO_START / IN_PROGRESS / OVER
	Players     []PlayerInfo `json:"players"`
	Hand        []CardInfo   `json:"hand"`               // 自己的手牌
	Playable    []CardInfo   `json:"playable,omitempty"` // 轮到自己时可出的牌
	TopCard     *CardInfo    `json:"top_card,omitempty"`
	CurrentTurn string       `json:"current_turn"` // 当前回合玩家 ID
	Direction   string       `json:"direction"`    // clockwise / counterclockwise
	DrawStack   int          `json:"draw_stack"`   // 累计罚牌
	DeckCount   int          `json:"deck_count"`   // 牌堆剩余
	Winner      string       `json:"winner,omitempty"`
	LastMove    *MoveInfo    `json:"last_move,omitempty"`
}

// MoveInfo 一条操作记录
type MoveInfo struct {
	PlayerID string    `json:"player_id"`
	Kind     string    `json:"kind"` // play/draw/forced_draw/pass
	Card     *CardInfo `json:"card,omitempty"`
	Count    int       `json:"count,omitempty"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	GameID      string       `json:"game_id"`
	WinnerID    string       `json:"winner_id"`
	WinnerName  string       `json:"winner_name"`
	PlayerHands []PlayerHand `json:"player_hands"` // 所有玩家剩余手牌
}

// PlayerHand 玩家手牌信息（用于游戏结束展示）
type PlayerHand struct {
	PlayerID   string     `json:"player_id"`
	PlayerName string     `json:"player_name"`
	Cards      []CardInfo `json:"cards"`
	Points     int        `json:"points"` // 剩余手牌分值
}

// MaintenancePayload 维护模式通知
type MaintenancePayload struct {
	Maintenance bool `json:"maintenance"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalGames    int     `json:"total_games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	Score         int     `json:"score"`
	Rank          int     `json:"rank"`
	CurrentStreak int     `json:"current_streak"`
	MaxWinStreak  int     `json:"max_win_streak"`
	PointsWon     int     `json:"points_won"`
	BestGame      int     `json:"best_game"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string             `json:"type"` // total/daily/weekly
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Status      string `json:"status"`
}

// --- 通用数据结构 ---

// PlayerInfo 座位信息
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"` // 座位号 0-3
	IsAI       bool   `json:"is_ai"`
	Level      string `json:"level,omitempty"` // AI 难度
	CardsCount int    `json:"cards_count"`     // 手牌数量
	Online     bool   `json:"online"`
}

// CardInfo 牌信息
type CardInfo struct {
	Color string `json:"color"` // Red/Green/Blue/Yellow/Wildcard
	Rank  string `json:"rank"`  // 0-9/Skip/Reverse/+2/Wild/+4
}
