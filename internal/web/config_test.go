package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("QUIZFORGE_ADDR", "")
		t.Setenv("PORT", "")
		t.Setenv("QUIZFORGE_SESSION_KEY", "")
		cfg := ConfigFromEnv()
		assert.Equal(t, ":8180", cfg.Addr)
		assert.Empty(t, cfg.SessionKey)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("port fallback", func(t *testing.T) {
		t.Setenv("QUIZFORGE_ADDR", "")
		t.Setenv("PORT", "9000")
		assert.Equal(t, ":9000", ConfigFromEnv().Addr)
	})

	t.Run("explicit", func(t *testing.T) {
		t.Setenv("QUIZFORGE_ADDR", "127.0.0.1:7000")
		t.Setenv("PORT", "9000")
		t.Setenv("QUIZFORGE_SESSION_KEY", strings.Repeat("s", 32))
		t.Setenv("QUIZFORGE_SESSION_TTL", "30m")
		cfg := ConfigFromEnv()
		assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
		assert.Len(t, cfg.SessionKey, 32)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no addr", func(c *Config) { c.Addr = "" }, true},
		{"short key", func(c *Config) { c.SessionKey = []byte("short") }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"zero sweep", func(c *Config) { c.SweepInterval = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() = %v", err)
		})
	}
}
