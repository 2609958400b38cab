package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix    = "player:stats:" // Hash
	totalBoardKey     = "leaderboard:score"
	dailyBoardPrefix  = "leaderboard:daily:"
	weeklyBoardPrefix = "leaderboard:weekly:"

	maxTxRetries = 5
)

// 积分规则：胜者得到其余座位剩余手牌的分值
const (
	MinWinScore = 10 // 对手手里只剩 0 点牌时的保底
	LosePenalty = 5

	StreakBonus3  = 5
	StreakBonus5  = 10
	StreakBonus10 = 20
)

// GameResult 一个座位在一局结束时的结果
type GameResult struct {
	PlayerID   string
	PlayerName string
	Won        bool
	Points     int // 仅胜者有效：其余座位剩余手牌分值之和
}

// PlayerStats 玩家统计，存为 Redis Hash
type PlayerStats struct {
	PlayerID   string `redis:"player_id" json:"player_id"`
	PlayerName string `redis:"player_name" json:"player_name"`

	TotalGames int `redis:"total_games" json:"total_games"`
	Wins       int `redis:"wins" json:"wins"`
	Losses     int `redis:"losses" json:"losses"`
	Score      int `redis:"score" json:"score"`
	PointsWon  int `redis:"points_won" json:"points_won"` // 累计赢得的手牌分
	BestGame   int `redis:"best_game" json:"best_game"`   // 单局最高手牌分

	CurrentStreak int `redis:"current_streak" json:"current_streak"` // 正数连胜，负数连败
	MaxWinStreak  int `redis:"max_win_streak" json:"max_win_streak"`

	LastPlayedAt int64 `redis:"last_played_at" json:"last_played_at"`
	CreatedAt    int64 `redis:"created_at" json:"created_at"`
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// apply 把一局结果计入统计，返回本局积分变化
func (s *PlayerStats) apply(res GameResult, now time.Time) int {
	if s.CreatedAt == 0 {
		s.CreatedAt = now.Unix()
	}
	s.PlayerID = res.PlayerID
	s.PlayerName = res.PlayerName
	s.TotalGames++
	s.LastPlayedAt = now.Unix()

	if !res.Won {
		s.Losses++
		s.CurrentStreak = min(-1, s.CurrentStreak-1)
		delta := -min(LosePenalty, s.Score)
		s.Score += delta
		return delta
	}

	s.Wins++
	s.CurrentStreak = max(1, s.CurrentStreak+1)
	s.MaxWinStreak = max(s.MaxWinStreak, s.CurrentStreak)
	s.PointsWon += res.Points
	s.BestGame = max(s.BestGame, res.Points)

	delta := max(MinWinScore, res.Points) + streakBonus(s.CurrentStreak)
	s.Score += delta
	return delta
}

func streakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
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

// LeaderboardManager 战绩与排行榜
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

func statsKey(playerID string) string {
	return statsKeyPrefix + playerID
}

func (lm *LeaderboardManager) dailyKey() string {
	return dailyBoardPrefix + lm.now().Format("2006-01-02")
}

func (lm *LeaderboardManager) weeklyKey() string {
	year, week := lm.now().ISOWeek()
	return fmt.Sprintf("%s%d-W%02d", weeklyBoardPrefix, year, week)
}

func (lm *LeaderboardManager) boardKey(boardType string) string {
	switch boardType {
	case "daily":
		return lm.dailyKey()
	case "weekly":
		return lm.weeklyKey()
	default:
		return totalBoardKey
	}
}

// readStats 读取统计 Hash，不存在时返回 nil
func readStats(cmd *redis.MapStringStringCmd) (*PlayerStats, error) {
	fields, err := cmd.Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	var stats PlayerStats
	if err := cmd.Scan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetPlayerStats 获取玩家统计，没有记录时返回 nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	return readStats(lm.redis.HGetAll(ctx, statsKey(playerID)))
}

// RecordGameResult 记录一局结果
//
// 统计的读改写放在 WATCH 事务里，同一玩家的并发结算会重试。
// 总榜存累计积分，日榜、周榜存当期积分增量。
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, res GameResult) error {
	key := statsKey(res.PlayerID)
	txf := func(tx *redis.Tx) error {
		stats, err := readStats(tx.HGetAll(ctx, key))
		if err != nil {
			return err
		}
		if stats == nil {
			stats = &PlayerStats{}
		}
		delta := stats.apply(res, lm.now())

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, stats)
			pipe.ZAdd(ctx, totalBoardKey, redis.Z{Score: float64(stats.Score), Member: res.PlayerID})
			daily, weekly := lm.dailyKey(), lm.weeklyKey()
			pipe.ZIncrBy(ctx, daily, float64(delta), res.PlayerID)
			pipe.Expire(ctx, daily, 48*time.Hour)
			pipe.ZIncrBy(ctx, weekly, float64(delta), res.PlayerID)
			pipe.Expire(ctx, weekly, 8*24*time.Hour)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := lm.redis.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("record result for %s: %w", res.PlayerID, redis.TxFailedErr)
}

// GetLeaderboard 获取排行榜，boardType 为 total/daily/weekly
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, boardType string, offset, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	offset = max(0, offset)

	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.boardKey(boardType), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []LeaderboardEntry{}, nil
	}

	// 一次往返取回所有上榜玩家的统计
	cmds := make([]*redis.MapStringStringCmd, len(results))
	pipe := lm.redis.Pipeline()
	for i, z := range results {
		id, _ := z.Member.(string)
		cmds[i] = pipe.HGetAll(ctx, statsKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		stats, err := readStats(cmds[i])
		if err != nil || stats == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   stats.PlayerID,
			PlayerName: stats.PlayerName,
			Score:      int(z.Score),
			Wins:       stats.Wins,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家总榜排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, totalBoardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
