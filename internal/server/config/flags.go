package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/snipkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   encryption key (32 bytes or 64 hex chars)
//	-s string   token signing secret
//	-b int      bcrypt cost
//	-w int      concurrent password hashes
//	-f string   seed file (YAML)
//	-l string   log format: json, text or zap
//
// os.Args is first filtered with flagx.FilterArgs so that -c/-config and
// unknown flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-s", "-b", "-w", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "snippet encryption key")
	fs.StringVar(&config.SigningSecret, "s", config.SigningSecret, "token signing secret")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.HashWorkers, "w", config.HashWorkers, "concurrent password hashes")
	fs.StringVar(&config.SeedFile, "f", config.SeedFile, "seed file")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json, text, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
