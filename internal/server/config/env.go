package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvListenAddr      = "SERVER_ADDRESS"
	EnvEncryptionKey   = "SNIPPET_ENCRYPTION_KEY"
	EnvSigningSecret   = "JWT_SECRET"
	EnvBcryptCost      = "BCRYPT_COST"
	EnvHashWorkers     = "HASH_WORKERS"
	EnvSeedFile        = "SEED_FILE"
	EnvLogFormat       = "LOG_FORMAT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// parseEnv overlays non-empty environment variables onto config. A value
// that cannot be parsed panics, same as a broken config file.
func parseEnv(config *Config) {
	if v, ok := lookup(EnvListenAddr); ok {
		config.ListenAddr = v
	}
	if v, ok := lookup(EnvEncryptionKey); ok {
		config.EncryptionKey = v
	}
	if v, ok := lookup(EnvSigningSecret); ok {
		config.SigningSecret = v
	}
	if v, ok := lookup(EnvBcryptCost); ok {
		config.BcryptCost = mustAtoi(EnvBcryptCost, v)
	}
	if v, ok := lookup(EnvHashWorkers); ok {
		config.HashWorkers = mustAtoi(EnvHashWorkers, v)
	}
	if v, ok := lookup(EnvSeedFile); ok {
		config.SeedFile = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		config.LogFormat = v
	}
	if v, ok := lookup(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvShutdownTimeout, err))
		}
		config.ShutdownTimeout = d
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	return v, ok && v != ""
}

func mustAtoi(name, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return n
}
