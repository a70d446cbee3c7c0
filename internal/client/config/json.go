package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
	"github.com/dmitrijs2005/gophvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "3s" or integer nanoseconds. Booleans are pointers so
// an explicit false can override a default.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabasePath        string         `json:"database_path"`
	Offline             *bool          `json:"offline"`
	LockoutStore        string         `json:"lockout_store"`
	RedisAddr           string         `json:"redis_addr"`
	RedisPassword       string         `json:"redis_password"`
	RedisDB             int            `json:"redis_db"`
	RedisPrefix         string         `json:"redis_prefix"`
	ShareLockout        *bool          `json:"share_lockout"`
	MaxAttachmentSize   int64          `json:"max_attachment_size"`
	BackupDir           string         `json:"backup_dir"`
	UploadTimeout       timex.Duration `json:"upload_timeout"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the file named by
// -c/-config. Only keys present with a non-zero value override. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LockoutStore, jc.LockoutStore)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.BackupDir, jc.BackupDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.UploadTimeout.Duration > 0 {
		cfg.UploadTimeout = jc.UploadTimeout.Duration
	}
	if jc.RedisDB > 0 {
		cfg.RedisDB = jc.RedisDB
	}
	if jc.MaxAttachmentSize > 0 {
		cfg.MaxAttachmentSize = jc.MaxAttachmentSize
	}
	if jc.Offline != nil {
		cfg.Offline = *jc.Offline
	}
	if jc.ShareLockout != nil {
		cfg.ShareLockout = *jc.ShareLockout
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
