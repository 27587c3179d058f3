// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the exhibition-curator CLI, a thin
// shell over the search session and the collection store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/exhibition-curator/internal/logging"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig and logger are populated by the root command before any
// subcommand runs.
var (
	appConfig types.Config
	logger    *logrus.Logger
)

// rootCmd is the base command for the exhibition-curator CLI.
var rootCmd = &cobra.Command{
	Use:   "exhibition-curator",
	Short: "Search museum collections and curate artworks into collections",
	Long: `exhibition-curator searches several open museum collection APIs (The Met,
the Cleveland Museum of Art) with one query, merges the results into one
sorted, paginated list, and lets you curate artworks into named collections.

Collections live in memory for the duration of a curate session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := decodeConfig(viper.GetViper())
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./exhibition-curator.yaml or ~/.config/exhibition-curator/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("exhibition-curator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "exhibition-curator"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("EXHIBITION_CURATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables can
// override keys that the config file leaves out.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("search.timeout", d.Search.Timeout)
	v.SetDefault("search.user_agent", d.Search.UserAgent)
	v.SetDefault("search.partial_results", d.Search.PartialResults)
	v.SetDefault("search.page_size", d.Search.PageSize)
	v.SetDefault("search.met.enabled", d.Search.Met.Enabled)
	v.SetDefault("search.met.base_url", d.Search.Met.BaseURL)
	v.SetDefault("search.met.max_objects", d.Search.Met.MaxObjects)
	v.SetDefault("search.cleveland.enabled", d.Search.Cleveland.Enabled)
	v.SetDefault("search.cleveland.base_url", d.Search.Cleveland.BaseURL)
	v.SetDefault("collections.default_name", d.Collections.DefaultName)
}

// decodeConfig unmarshals v into a Config and checks the values that
// would otherwise fail later.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Search.PageSize < 1 {
		return cfg, fmt.Errorf("search.page_size must be positive, got %d", cfg.Search.PageSize)
	}
	if !cfg.Search.Met.Enabled && !cfg.Search.Cleveland.Enabled {
		return cfg, fmt.Errorf("no search backends enabled: set search.met.enabled or search.cleveland.enabled")
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
