package config

import "time"

// Lockout store kinds.
const (
	LockoutStoreMemory = "memory"
	LockoutStoreSQLite = "sqlite"
	LockoutStoreRedis  = "redis"
)

// Config holds runtime settings for the GophVault CLI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration

	// DatabasePath is the local SQLite file.
	DatabasePath string
	// Offline starts the client without a server; folders live only in the
	// local database.
	Offline bool

	LockoutStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// ShareLockout counts failed delete confirmations against the unlock budget.
	ShareLockout      bool
	MaxAttachmentSize int64

	BackupDir     string
	UploadTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "gophvault.db"
	c.Offline = false
	c.LockoutStore = LockoutStoreSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.RedisPrefix = "gophvault:lockout:"
	c.ShareLockout = false
	c.MaxAttachmentSize = 10 * 1024 * 1024
	c.BackupDir = "."
	c.UploadTimeout = 60 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
