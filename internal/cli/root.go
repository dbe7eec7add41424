// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeranaias/rexidian/internal/config"
	"github.com/jeranaias/rexidian/internal/logging"
)

// annotationFullScreen marks commands that own the terminal; their logs go
// only to the log file.
const annotationFullScreen = "fullscreen"

// Version is set at build time.
var Version = "dev"

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Each call has its own viper
// instance and App.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           "rexidian",
		Short:         "rexidian is a recipe chat assistant for the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd, v)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default ~/.rexidian/config.toml)")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (json, text)")
	flags.String("log-file", "", "Log file (default: stderr)")
	flags.Bool("with-caller", false, "Log caller")
	flags.Bool("verbose", false, "Verbose output")
	flags.String("data-dir", "", "Directory holding the settings (default ~/.rexidian)")
	flags.String("backend", "", "Settings storage: file, sqlite or memory")
	flags.Bool("ephemeral", false, "Keep settings in memory only")

	v.SetEnvPrefix("rexidian")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	cobra.CheckErr(v.BindPFlags(flags))

	rootCmd.AddCommand(
		newChatCommand(app),
		newRecipeCommand(app),
		newSettingsCommand(app),
		newHistoryCommand(app),
		newExportCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// init loads configuration, applies flag overrides and starts logging.
func (a *App) init(cmd *cobra.Command, v *viper.Viper) error {
	var (
		cfg *config.Config
		err error
	)
	if path := v.GetString("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if v.IsSet("log-level") {
		cfg.Log.Level = v.GetString("log-level")
	}
	if v.GetBool("verbose") && cfg.Log.Level != "trace" {
		cfg.Log.Level = "debug"
	}
	if v.IsSet("log-format") {
		cfg.Log.Format = v.GetString("log-format")
	}
	if v.IsSet("log-file") {
		cfg.Log.File = v.GetString("log-file")
	}
	if v.IsSet("data-dir") {
		cfg.DataDir = v.GetString("data-dir")
	}
	if v.IsSet("backend") {
		cfg.Backend = strings.ToLower(v.GetString("backend"))
	}
	if v.GetBool("ephemeral") {
		cfg.Backend = config.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	logger, err := logging.Init(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		Console:    cmd.ErrOrStderr(),
		NoConsole:  cmd.Annotations[annotationFullScreen] == "true",
		WithCaller: v.GetBool("with-caller"),
	})
	if err != nil {
		return err
	}
	a.Log = logger

	log.Debug().
		Str("command", cmd.Name()).
		Str("backend", cfg.Backend).
		Str("data_dir", cfg.DataDir).
		Msg("Loaded configuration")
	return nil
}
