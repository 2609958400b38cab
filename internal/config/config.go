package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"` // 最大并发连接数
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	RoomTimeout           int `yaml:"room_timeout"`            // 空闲房间超时（分钟）
	AIDelay               int `yaml:"ai_delay_ms"`             // AI 续跑间隔（毫秒）
	MaxAIDraws            int `yaml:"max_ai_draws"`            // AI 每回合最多摸牌次数
	ShutdownTimeout       int `yaml:"shutdown_timeout"`        // 优雅关闭最长等待（秒）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 关闭时检查牌局的间隔（秒）
}

// SecurityConfig 连接安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig 按 IP 的建连速率
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 封禁时长（秒）
}

// MessageLimitConfig 每个连接的消息速率
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// RoomTimeoutDuration 返回房间空闲超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// AIDelayDuration 返回 AI 续跑间隔
func (c *GameConfig) AIDelayDuration() time.Duration {
	return time.Duration(c.AIDelay) * time.Millisecond
}

// ShutdownTimeoutDuration 返回优雅关闭最长等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// ShutdownCheckIntervalDuration 返回关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// BanDurationTime 返回封禁时长
func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// Load 加载配置文件，未填写的字段使用默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// fillDefaults 显式写成 0 或空的字段回退到默认值
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.MaxConnections <= 0 {
		c.Server.MaxConnections = def.Server.MaxConnections
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Game.RoomTimeout <= 0 {
		c.Game.RoomTimeout = def.Game.RoomTimeout
	}
	if c.Game.AIDelay < 0 {
		c.Game.AIDelay = def.Game.AIDelay
	}
	if c.Game.MaxAIDraws <= 0 {
		c.Game.MaxAIDraws = def.Game.MaxAIDraws
	}
	if c.Game.ShutdownTimeout <= 0 {
		c.Game.ShutdownTimeout = def.Game.ShutdownTimeout
	}
	if c.Game.ShutdownCheckInterval <= 0 {
		c.Game.ShutdownCheckInterval = def.Game.ShutdownCheckInterval
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = def.Security.AllowedOrigins
	}
	if c.Security.RateLimit.MaxPerSecond <= 0 {
		c.Security.RateLimit.MaxPerSecond = def.Security.RateLimit.MaxPerSecond
	}
	if c.Security.RateLimit.MaxPerMinute <= 0 {
		c.Security.RateLimit.MaxPerMinute = def.Security.RateLimit.MaxPerMinute
	}
	if c.Security.RateLimit.BanDuration <= 0 {
		c.Security.RateLimit.BanDuration = def.Security.RateLimit.BanDuration
	}
	if c.Security.MessageLimit.MaxPerSecond <= 0 {
		c.Security.MessageLimit.MaxPerSecond = def.Security.MessageLimit.MaxPerSecond
	}
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           1790,
			MaxConnections: 1000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			RoomTimeout:           10,
			AIDelay:               800,
			MaxAIDraws:            15,
			ShutdownTimeout:       300,
			ShutdownCheckInterval: 10,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				MaxPerSecond: 10,
				MaxPerMinute: 60,
				BanDuration:  60,
			},
			MessageLimit: MessageLimitConfig{
				MaxPerSecond: 20,
			},
		},
	}
}
