package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/wghub/internal/client/app"
	"github.com/dmitrijs2005/wghub/internal/client/cli"
	"github.com/dmitrijs2005/wghub/internal/client/config"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

var Version = "dev"

const flagsHelp = `Flags:
  -a addr      backend gateway address
  -d path      local cache database
  -l path      shell log file
  -v level     log level (debug, info, warn, error)
  -p addr      push relay listen address (daemon)
  -s spec      sweep cron spec (daemon)
  -t duration  gateway request timeout
  -k token     device push token
  -c path      JSON config file
  -e path      dotenv file with WGHUB_* variables`

func main() {
	rootCmd := &cobra.Command{
		Use:     "wghub",
		Short:   "wghub - shared household client",
		Version: Version,
	}

	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(daemonCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "shell [flags]",
		Short:              "Start the interactive shell",
		Long:               "Start the interactive shell. Logs go to the rotating log file.\n\n" + flagsHelp,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			cfg, err := config.LoadConfig(args)
			if err != nil {
				return err
			}

			logger, closer := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
			defer closer.Close()

			ctx := context.Background()
			core, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer core.Close()

			cli.NewApp(core).Run(ctx)
			return nil
		},
	}
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon [flags]",
		Short: "Serve relayed push notifications and run the reconciliation sweep",
		Long: "Serve relayed push notifications and run the reconciliation sweep.\n" +
			"Logs are written to stdout as JSON.\n\n" + flagsHelp,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			cfg, err := config.LoadConfig(args)
			if err != nil {
				return err
			}

			logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

			ctx := context.Background()
			core, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer core.Close()

			return core.RunDaemon(ctx)
		},
	}
}

// wantsHelp reports a help flag. Flag parsing is left to config.LoadConfig,
// so cobra does not see it.
func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "-help" || a == "--help" {
			return true
		}
	}
	return false
}
