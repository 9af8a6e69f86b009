package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultAddr     = ":2888"
	DefaultWebDir   = "./web"
	DefaultDepth    = 3
	MaxAllowedDepth = 8
)

type Config struct {
	Addr             string `json:"addr"`
	WebDir           string `json:"web_dir"`
	MobileWebDir     string `json:"mobile_web_dir"`
	SearchDepth      int    `json:"search_depth"`
	MaxDepth         int    `json:"max_depth"` // 请求里的 max_depth 不能超过它
	Parallel         bool   `json:"parallel"`
	Workers          int    `json:"workers"`
	UseTT            bool   `json:"use_tt"`
	TTCap            int    `json:"tt_cap"`
	LogLevel         string `json:"log_level"`
	WSPingIntervalMs int    `json:"ws_ping_interval_ms"`
	OpenBrowser      bool   `json:"open_browser"`
}

func DefaultConfig() Config {
	return Config{
		Addr:             DefaultAddr,
		WebDir:           DefaultWebDir,
		SearchDepth:      DefaultDepth,
		MaxDepth:         6,
		Parallel:         false,
		Workers:          0,
		UseTT:            false,
		TTCap:            1_000_000,
		LogLevel:         "info",
		WSPingIntervalMs: 30_000,
		OpenBrowser:      true,
	}
}

// Normalize 把越界或缺省的值拉回合理范围
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = def.MaxDepth
	}
	if c.MaxDepth > MaxAllowedDepth {
		c.MaxDepth = MaxAllowedDepth
	}
	if c.SearchDepth <= 0 {
		c.SearchDepth = def.SearchDepth
	}
	if c.SearchDepth > c.MaxDepth {
		c.SearchDepth = c.MaxDepth
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.TTCap <= 0 {
		c.TTCap = def.TTCap
	}
	if c.WSPingIntervalMs <= 0 {
		c.WSPingIntervalMs = def.WSPingIntervalMs
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}

// ClampDepth 请求深度：<=0 用配置的默认深度，超过上限截断
func (c Config) ClampDepth(requested int) int {
	if requested <= 0 {
		return c.SearchDepth
	}
	if requested > c.MaxDepth {
		return c.MaxDepth
	}
	return requested
}

func (c Config) PingInterval() time.Duration {
	return time.Duration(c.WSPingIntervalMs) * time.Millisecond
}

func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Load 读 JSON 配置；文件不存在时返回默认配置。
// 相对路径先按当前目录找，找不到再按可执行文件所在目录找。
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	resolved, err := resolvePath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", resolved, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return cfg.Normalize(), nil
}

type Store struct {
	mu     sync.RWMutex
	config Config
}

func NewStore(cfg Config) *Store {
	return &Store{config: cfg.Normalize()}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) Update(cfg Config) Config {
	cfg = cfg.Normalize()
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return cfg
}
