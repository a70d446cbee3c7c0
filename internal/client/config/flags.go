package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-d string   local database file
//	-o bool     offline mode, no server
//	-m string   lockout store: memory, sqlite or redis
//	-r string   redis address for the redis lockout store
//	-s bool     failed delete confirmations count against the unlock budget
//	-b string   directory for exported backups
//	-l string   log level
//	-f string   log format (json, text)
//
// os.Args is first narrowed with flagx.FilterArgsWithBool so that -o and -s
// never swallow a following argument.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsWithBool(os.Args[1:],
		[]string{"-a", "-i", "-d", "-m", "-r", "-b", "-l", "-f"},
		[]string{"-o", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.BoolVar(&cfg.Offline, "o", cfg.Offline, "offline mode")
	fs.StringVar(&cfg.LockoutStore, "m", cfg.LockoutStore, "lockout store (memory|sqlite|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.BoolVar(&cfg.ShareLockout, "s", cfg.ShareLockout, "share lockout budget between unlock and delete")
	fs.StringVar(&cfg.BackupDir, "b", cfg.BackupDir, "backup export directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (json|text)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
