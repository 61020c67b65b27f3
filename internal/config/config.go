// Package config reads the server settings from flags, the environment
// and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/amaralimoveis/vitrine/internal/postal"
)

// EnvFile is loaded from the working directory when present. Variables
// already set in the environment win.
const EnvFile = ".env"

// Config holds the server settings.
type Config struct {
	DBPath    string
	Addr      string
	AdminUser string
	LogPath   string

	// MongoURI switches listings and photos to MongoDB when set.
	MongoURI string
	MongoDB  string

	// RedisURL enables the postal code cache when set.
	RedisURL    string
	CEPCacheTTL time.Duration
	CEPBaseURL  string

	WhatsApp  string
	Instagram string
}

const usage = `Usage: vitrine [flags]

Flags:
  -d, -db <path>          SQLite database path (default: vitrine.sqlite3, env VITRINE_DB)
  -a, -addr <host:port>   listen address (default: :8080, env VITRINE_ADDR)
  -u, -user <name>        admin username on first run (default: admin, env VITRINE_ADMIN_USER)
  -l, -log <path>         log file path (env VITRINE_LOG)
  -mongo <uri>            store listings and photos in MongoDB (env VITRINE_MONGO_URI)
  -mongo-db <name>        MongoDB database name (default: vitrine, env VITRINE_MONGO_DB)
  -redis <url>            cache postal code lookups in Redis (env VITRINE_REDIS_URL)
  -cep-ttl <duration>     postal code cache lifetime (default: 720h, env VITRINE_CEP_TTL)
  -cep-url <url>          ViaCEP base URL (env VITRINE_CEP_URL)
  -whatsapp <url>         WhatsApp contact link (env VITRINE_WHATSAPP)
  -instagram <url>        Instagram profile link (env VITRINE_INSTAGRAM)
  -h, -help               show this help and exit
`

// Load reads .env, then parses args over defaults taken from the
// environment. It returns flag.ErrHelp when help was requested.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
	}

	ttl, err := envDuration("VITRINE_CEP_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fset := flag.NewFlagSet("vitrine", flag.ContinueOnError)
	fset.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	stringFlag(fset, &cfg.DBPath, env("VITRINE_DB", "vitrine.sqlite3"), "db", "d")
	stringFlag(fset, &cfg.Addr, env("VITRINE_ADDR", ":8080"), "addr", "a")
	stringFlag(fset, &cfg.AdminUser, env("VITRINE_ADMIN_USER", "admin"), "user", "u")
	stringFlag(fset, &cfg.LogPath, env("VITRINE_LOG", ""), "log", "l")
	stringFlag(fset, &cfg.MongoURI, env("VITRINE_MONGO_URI", ""), "mongo")
	stringFlag(fset, &cfg.MongoDB, env("VITRINE_MONGO_DB", "vitrine"), "mongo-db")
	stringFlag(fset, &cfg.RedisURL, env("VITRINE_REDIS_URL", ""), "redis")
	fset.DurationVar(&cfg.CEPCacheTTL, "cep-ttl", ttl, "")
	stringFlag(fset, &cfg.CEPBaseURL, env("VITRINE_CEP_URL", postal.DefaultBaseURL), "cep-url")
	stringFlag(fset, &cfg.WhatsApp, env("VITRINE_WHATSAPP", ""), "whatsapp")
	stringFlag(fset, &cfg.Instagram, env("VITRINE_INSTAGRAM", ""), "instagram")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() > 0 {
		fset.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fset.Arg(0))
	}
	if cfg.CEPCacheTTL <= 0 {
		return nil, fmt.Errorf("cep-ttl must be positive, got %s", cfg.CEPCacheTTL)
	}
	return cfg, nil
}

func stringFlag(fset *flag.FlagSet, p *string, value string, names ...string) {
	for _, name := range names {
		fset.StringVar(p, name, value, "")
	}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment", "key", key, "value", v)
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
