package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound    = 2001
	ErrCodeRoomFull        = 2002 // 座位已满
	ErrCodeNotInRoom       = 2003
	ErrCodeGameStarted     = 2004 // 游戏已开始
	ErrCodeAlreadySeated   = 2005 // 已经在游戏中
	ErrCodeNotEnoughPlayer = 2006 // 人数不足
	ErrCodeNoHumanToSwap   = 2007 // 没有可替换为 AI 的真人座位
	ErrCodeBadDifficulty   = 2008 // AI 难度无效
	ErrCodeGameIDMismatch  = 2009 // 游戏实例 ID 不匹配
	ErrCodeSeatIsAI        = 2010 // 座位已交给 AI

	ErrCodeGameNotInProgress = 3001
	ErrCodeNotYourTurn       = 3002
	ErrCodeCardNotInHand     = 3003
	ErrCodeInvalidCard       = 3004
	ErrCodeInvalidColor      = 3005
	ErrCodeNoCurrentPlayer   = 3006

	ErrCodeDeckIntegrity   = 4001
	ErrCodeInconsistentRun = 4002 // 内部状态不一致

	ErrCodeRateLimit         = 5001 // 请求过于频繁
	ErrCodeServerFull        = 5002 // 连接数已满
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeRoomNotFound:      "房间不存在",
	ErrCodeRoomFull:          "房间已满",
	ErrCodeNotInRoom:         "您不在房间中",
	ErrCodeGameStarted:       "游戏已开始",
	ErrCodeAlreadySeated:     "您已经在游戏中",
	ErrCodeNotEnoughPlayer:   "至少需要 2 名玩家",
	ErrCodeNoHumanToSwap:     "没有可替换的真人玩家",
	ErrCodeBadDifficulty:     "无效的 AI 难度",
	ErrCodeGameIDMismatch:    "游戏 ID 不匹配",
	ErrCodeSeatIsAI:          "座位已由 AI 托管",
	ErrCodeGameNotInProgress: "游戏未在进行中",
	ErrCodeNotYourTurn:       "还没轮到您",
	ErrCodeCardNotInHand:     "手牌中没有这张牌",
	ErrCodeInvalidCard:       "这张牌不能出",
	ErrCodeInvalidColor:      "无效的颜色",
	ErrCodeNoCurrentPlayer:   "找不到当前玩家",
	ErrCodeDeckIntegrity:     "牌堆校验失败",
	ErrCodeInconsistentRun:   "游戏状态异常",
	ErrCodeRateLimit:         "请求过于频繁",
	ErrCodeServerFull:        "服务器繁忙，请稍后再试",
	ErrCodeServerMaintenance: "服务器维护中",
}
