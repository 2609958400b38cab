// Package room 托管牌局：一个房间承载一局 game.Game，负责串行化命令、
// 按玩家视角广播快照、保存快照、记录战绩以及 AI 续跑。
package room

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/server/storage"
	"github.com/palemoky/uno/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集
)

// RoomStore 房间快照存储
type RoomStore interface {
	SaveRoom(ctx context.Context, data *storage.RoomData) error
	DeleteRoom(ctx context.Context, code string) error
}

// ResultRecorder 战绩记录
type ResultRecorder interface {
	RecordGameResult(ctx context.Context, res storage.GameResult) error
}

// Config 房间参数
type Config struct {
	RoomTimeout time.Duration // 空闲房间超时
	AIDelay     time.Duration // AI 续跑间隔
	MaxAIDraws  int           // AI 每回合最多摸牌次数

	// GameOptions 创建牌局时附加的选项，测试中用于固定随机源
	GameOptions []game.Option
}

// RoomPlayer 房间中的真人玩家
type RoomPlayer struct {
	Client types.ClientInterface
}

// Room 游戏房间
type Room struct {
	Code      string                 // 房间号
	GameID    string                 // 当前牌局实例 ID
	Players   map[string]*RoomPlayer // 在房间中的真人连接
	CreatedAt time.Time              // 创建时间
	UpdatedAt time.Time              // 最近一次命令成功的时间

	game     *game.Game
	names    map[string]string // 座位 ID -> 显示名（含 AI）
	recorded bool              // 当前牌局战绩是否已记录
	aiTimer  *time.Timer
	closed   bool

	store    RoomStore
	recorder ResultRecorder
	cfg      Config

	mu sync.RWMutex
}

// RoomManager 房间管理器
type RoomManager struct {
	store    RoomStore
	recorder ResultRecorder
	cfg      Config
	rooms    map[string]*Room
	done     chan struct{}
	once     sync.Once
	mu       sync.RWMutex
}

// NewRoomManager 创建房间管理器，store 与 recorder 可以为 nil
func NewRoomManager(store RoomStore, recorder ResultRecorder, cfg Config) *RoomManager {
	if cfg.MaxAIDraws <= 0 {
		cfg.MaxAIDraws = game.DefaultMaxAIDraws
	}
	rm := &RoomManager{
		store:    store,
		recorder: recorder,
		cfg:      cfg,
		rooms:    make(map[string]*Room),
		done:     make(chan struct{}),
	}

	// 启动房间清理协程
	if cfg.RoomTimeout > 0 {
		go rm.cleanupLoop()
	}

	return rm
}

func (rm *RoomManager) newRoom(code string) *Room {
	now := time.Now()
	r := &Room{
		Code:      code,
		Players:   make(map[string]*RoomPlayer),
		CreatedAt: now,
		UpdatedAt: now,
		names:     make(map[string]string),
		store:     rm.store,
		recorder:  rm.recorder,
		cfg:       rm.cfg,
	}
	r.resetGame()
	return r
}
