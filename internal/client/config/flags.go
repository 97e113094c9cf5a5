package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout in seconds
//	-d string   local database path
//	-debug      debug logging
//
// Unknown arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"}, "-debug")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
