package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/logging"
	"github.com/philipparndt/gomeasure/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the settings shared by all subcommands
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "gomeasure",
		Short: "Measure distances on STL and OpenSCAD models",
		Long: `gomeasure picks points on a 3D model, snaps them to nearby vertices and
reports the measured length, the label position and whether the label
would be readable on screen.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	_ = a.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newMeasureCmd(a),
		newProjectCmd(a),
		newInfoCmd(a),
		newCompletionCmd(rootCmd),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log.Level, cmd.ErrOrStderr())
	a.log.Debug().Str("version", version.GetFullVersion()).Str("config", a.v.ConfigFileUsed()).Msg("starting")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
