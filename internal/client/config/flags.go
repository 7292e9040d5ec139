package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/wghub/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-l", "-v", "-p", "-s", "-t", "-k"}

// parseFlags applies the command-line overrides. Flags owned by other
// loaders (-c, -e) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("wghub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GatewayAddr, "a", cfg.GatewayAddr, "address:port of the backend gateway")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local cache database path")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "shell log file")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.PushListenAddr, "p", cfg.PushListenAddr, "push relay listen address")
	fs.StringVar(&cfg.SweepSchedule, "s", cfg.SweepSchedule, "reconciliation sweep cron spec")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "gateway request timeout")
	fs.StringVar(&cfg.PushToken, "k", cfg.PushToken, "device push token")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
