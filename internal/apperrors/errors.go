package apperrors

import (
	"github.com/palemoky/uno/internal/protocol"
)

// GameError 游戏错误（规则引擎与房间共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 房间与座位
var (
	ErrRoomNotFound     = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull         = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom        = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrGameStarted      = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrAlreadySeated    = &GameError{Code: protocol.ErrCodeAlreadySeated, Message: "玩家已在游戏中"}
	ErrNotEnoughPlayers = &GameError{Code: protocol.ErrCodeNotEnoughPlayer, Message: "至少需要 2 名玩家才能开始"}
	ErrNoHumanToReplace = &GameError{Code: protocol.ErrCodeNoHumanToSwap, Message: "所有座位都已是 AI"}
	ErrInvalidLevel     = &GameError{Code: protocol.ErrCodeBadDifficulty, Message: "无效的 AI 难度"}
	ErrGameIDMismatch   = &GameError{Code: protocol.ErrCodeGameIDMismatch, Message: "游戏 ID 不匹配"}
	ErrSeatIsAI         = &GameError{Code: protocol.ErrCodeSeatIsAI, Message: "座位已由 AI 托管"}
)

// 出牌流程
var (
	ErrGameNotInProgress = &GameError{Code: protocol.ErrCodeGameNotInProgress, Message: "游戏未在进行中"}
	ErrNotYourTurn       = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrCardNotInHand     = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "手牌中没有这张牌"}
	ErrInvalidCard       = &GameError{Code: protocol.ErrCodeInvalidCard, Message: "这张牌不能压在顶牌上"}
	ErrInvalidColor      = &GameError{Code: protocol.ErrCodeInvalidColor, Message: "无效的颜色"}
	ErrNoCurrentPlayer   = &GameError{Code: protocol.ErrCodeNoCurrentPlayer, Message: "找不到当前玩家"}
	ErrInconsistent      = &GameError{Code: protocol.ErrCodeInconsistentRun, Message: "罚牌累计与顶牌不一致"}
	ErrNoTopCard         = &GameError{Code: protocol.ErrCodeInconsistentRun, Message: "没有顶牌"}
)

// 牌堆校验，按失败类别区分
var (
	ErrDeckLength = &GameError{Code: protocol.ErrCodeDeckIntegrity, Message: "牌堆张数错误"}
	ErrDeckColor  = &GameError{Code: protocol.ErrCodeDeckIntegrity, Message: "牌堆颜色张数错误"}
	ErrDeckNumber = &GameError{Code: protocol.ErrCodeDeckIntegrity, Message: "牌堆数字牌张数错误"}
	ErrDeckAction = &GameError{Code: protocol.ErrCodeDeckIntegrity, Message: "牌堆功能牌张数错误"}
	ErrDeckWild   = &GameError{Code: protocol.ErrCodeDeckIntegrity, Message: "牌堆万能牌张数错误"}
)
