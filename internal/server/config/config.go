// Package config handles configuration for the server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/cryptox"
	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the snipkeeper server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - EncryptionKey: AES-256 key for snippet bodies, 32 raw bytes or 64 hex chars. Required.
//   - SigningSecret: HMAC secret for tokens. Empty means a random per-process secret.
//   - BcryptCost: adaptive hash cost for passwords.
//   - HashWorkers: how many password hashes may run at once.
//   - SeedFile: optional YAML file with public snippets loaded at startup.
//   - LogFormat: json, text or zap.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	ListenAddr      string
	EncryptionKey   string
	SigningSecret   string
	BcryptCost      int
	HashWorkers     int
	SeedFile        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults. There is no
// default encryption key on purpose.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BcryptCost = bcrypt.DefaultCost
	c.HashWorkers = runtime.NumCPU()
	c.LogFormat = logging.FormatJSON
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the server cannot start with. Every error
// wraps common.ErrFatalConfiguration.
func (c *Config) Validate() error {
	if _, err := cryptox.ParseKey(c.EncryptionKey); err != nil {
		return err
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be in [%d, %d], got %d",
			common.ErrFatalConfiguration, bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.HashWorkers < 1 {
		return fmt.Errorf("%w: hash workers must be positive, got %d", common.ErrFatalConfiguration, c.HashWorkers)
	}
	if !slices.Contains([]string{logging.FormatJSON, logging.FormatText, logging.FormatZap}, c.LogFormat) {
		return fmt.Errorf("%w: unknown log format %q", common.ErrFatalConfiguration, c.LogFormat)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen address is required", common.ErrFatalConfiguration)
	}
	return nil
}
