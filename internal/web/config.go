package web

import (
	"fmt"
	"os"
	"time"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8180".
	Addr string

	// SessionKey signs the session cookie. When empty a random key is
	// generated at startup, which logs everyone out on restart.
	SessionKey []byte

	// CookieName is the name of the session cookie.
	CookieName string

	// SecureCookie marks the cookie Secure. Enable behind TLS.
	SecureCookie bool

	// SessionTTL is how long an idle quiz session is kept in memory.
	SessionTTL time.Duration

	// SweepInterval is how often idle sessions are looked for.
	SweepInterval time.Duration

	// RefreshSeconds is how often the generating page reloads itself.
	RefreshSeconds int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8180",
		CookieName:     "quizforge",
		SessionTTL:     2 * time.Hour,
		SweepInterval:  5 * time.Minute,
		RefreshSeconds: 2,
	}
}

// ConfigFromEnv applies QUIZFORGE_ADDR (or PORT), QUIZFORGE_SESSION_KEY,
// QUIZFORGE_SESSION_TTL and QUIZFORGE_SECURE_COOKIE to the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if addr := os.Getenv("QUIZFORGE_ADDR"); addr != "" {
		cfg.Addr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if key := os.Getenv("QUIZFORGE_SESSION_KEY"); key != "" {
		cfg.SessionKey = []byte(key)
	}
	if v := os.Getenv("QUIZFORGE_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = d
		}
	}
	if os.Getenv("QUIZFORGE_SECURE_COOKIE") == "1" {
		cfg.SecureCookie = true
	}

	return cfg
}

// Validate checks the settings for obvious mistakes.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.CookieName == "" {
		return fmt.Errorf("cookie name is required")
	}
	if n := len(c.SessionKey); n != 0 && n < 32 {
		return fmt.Errorf("session key must be at least 32 bytes, got %d", n)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
