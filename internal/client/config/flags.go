package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/flagx"
)

// FlagNames lists every spelling parseFlags understands. The cobra root
// declares the same flags so it does not reject them.
var FlagNames = []string{"-a", "--a", "-api", "--api", "-t", "--t", "-timeout", "--timeout", "-d", "--d", "-data", "--data"}

// parseFlags populates cfg from the flags it knows, ignoring everything
// else on the command line. Invalid values panic.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, FlagNames)

	fs := flag.NewFlagSet("nexaboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "path of the local session database")
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "path of the local session database")

	timeout := int(cfg.RequestTimeout.Seconds())
	fs.IntVar(&timeout, "t", timeout, "request timeout (in seconds)")
	fs.IntVar(&timeout, "timeout", timeout, "request timeout (in seconds)")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" || f.Name == "timeout" {
			cfg.RequestTimeout = time.Duration(timeout) * time.Second
		}
	})
}
