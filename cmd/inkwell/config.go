package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/inkwell"
	"github.com/aretw0/inkwell/pkg/core"
)

// Config is the effective CLI configuration, merged from defaults, the
// optional inkwell.yaml file, INKWELL_* environment variables, and flags.
type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	Journal        bool   `mapstructure:"journal"`
	ReadTimeoutMs  int    `mapstructure:"read_timeout_ms"`
	WriteTimeoutMs int    `mapstructure:"write_timeout_ms"`
}

// defaultDataDir places the store under the user config directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".inkwell"
	}
	return filepath.Join(base, "inkwell")
}

// loadConfig merges all configuration sources for the given command.
func loadConfig(cmd *cobra.Command) (Config, error) {
	var c Config
	v := viper.New()

	// 1. Defaults
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("journal", true)
	v.SetDefault("read_timeout_ms", int(core.DefaultReadTimeout/time.Millisecond))
	v.SetDefault("write_timeout_ms", int(core.DefaultWriteTimeout/time.Millisecond))

	// 2. Config file locations
	v.SetConfigName("inkwell")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(userDir, "inkwell"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// 3. Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("inkwell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Flags win over everything
	if dataDir != "" {
		v.Set("data_dir", dataDir)
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// openRepo builds a repository from the merged configuration.
func openRepo(cmd *cobra.Command) (*core.Repository, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return inkwell.New(cfg.DataDir,
		inkwell.WithLogger(slog.Default()),
		inkwell.WithJournal(cfg.Journal),
		inkwell.WithReadTimeout(time.Duration(cfg.ReadTimeoutMs)*time.Millisecond),
		inkwell.WithWriteTimeout(time.Duration(cfg.WriteTimeoutMs)*time.Millisecond),
	)
}
