// Command wfcsolve is a batch CLI driver over the wfc core: it loads a
// tileset from disk, runs a solve, and prints the resulting grid. It is
// glue over the core's one entry point (wfc.Solve), not part of the core
// itself — an interactive front-end (picker, renderer, animation pacing)
// is a separate concern this headless driver does not attempt.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgLogFormat string
	logger       *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wfcsolve",
		Short:         "Run the wave-function-collapse constraint solver over a tileset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
	}

	root.PersistentFlags().StringVar(&cfgLogFormat, "log-format", "console", "log output format: console or json")
	_ = viper.BindPFlag("log-format", root.PersistentFlags().Lookup("log-format"))
	viper.SetEnvPrefix("WFCSOLVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(newSolveCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func initLogger() error {
	format := viper.GetString("log-format")
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wfcsolve:", err)
		os.Exit(1)
	}
}
