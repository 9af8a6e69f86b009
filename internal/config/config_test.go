package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDepth, cfg.SearchDepth)
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grape.json")
	body := `{"addr":":9000","search_depth":12,"max_depth":20,"use_tt":true,"log_level":"loud","ws_ping_interval_ms":0}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.UseTT)
	assert.Equal(t, MaxAllowedDepth, cfg.MaxDepth)
	assert.Equal(t, MaxAllowedDepth, cfg.SearchDepth)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.PingInterval())
	// 没写的字段保持默认
	assert.Equal(t, DefaultWebDir, cfg.WebDir)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestClampDepth(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.ClampDepth(0))
	assert.Equal(t, 2, cfg.ClampDepth(2))
	assert.Equal(t, cfg.MaxDepth, cfg.ClampDepth(100))
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(depth int) {
			defer wg.Done()
			cfg := store.Get()
			cfg.SearchDepth = depth
			store.Update(cfg)
		}(i + 1)
	}
	wg.Wait()
	got := store.Get()
	assert.GreaterOrEqual(t, got.SearchDepth, 1)
	assert.LessOrEqual(t, got.SearchDepth, got.MaxDepth)

	updated := store.Update(Config{SearchDepth: -1})
	assert.Equal(t, DefaultDepth, updated.SearchDepth)
	assert.Equal(t, DefaultAddr, updated.Addr)
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "grape.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	got, err := resolvePath(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = resolvePath(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// 目录不算
	_, err = resolvePath(dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
