package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/snipkeeper/internal/flagx"
	"github.com/dmitrijs2005/snipkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only fields present
// in the file override what is already set.
type JsonConfig struct {
	ListenAddr      *string         `json:"listen_addr"`
	EncryptionKey   *string         `json:"encryption_key"`
	SigningSecret   *string         `json:"signing_secret"`
	BcryptCost      *int            `json:"bcrypt_cost"`
	HashWorkers     *int            `json:"hash_workers"`
	SeedFile        *string         `json:"seed_file"`
	LogFormat       *string         `json:"log_format"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable or invalid file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.ListenAddr, c.ListenAddr)
	setIf(&config.EncryptionKey, c.EncryptionKey)
	setIf(&config.SigningSecret, c.SigningSecret)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.HashWorkers, c.HashWorkers)
	setIf(&config.SeedFile, c.SeedFile)
	setIf(&config.LogFormat, c.LogFormat)
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
