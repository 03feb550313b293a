package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/ccpanel/pkg/mutate"
	"github.com/mattsolo1/ccpanel/pkg/service"
)

var (
	cfgFile    string
	projectDir string
	globalOnly bool
)

// InitConfig wires viper: config file at ~/.config/ccpanel/config.yaml,
// CCPANEL_* environment overrides, and defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "ccpanel")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CCPANEL")

	viper.SetDefault("claude_dir", "")
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("debounce_ms", 300)
	viper.SetDefault("max_memory_results", 100)

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// InitService builds the service from viper config and the global flags.
// The project root is the working directory unless overridden with
// --project or disabled with --global.
func InitService(prompter mutate.Prompter) (*service.Service, error) {
	project := projectDir
	if project == "" && !globalOnly {
		if cwd, err := os.Getwd(); err == nil {
			project = cwd
		}
	}
	if globalOnly {
		project = ""
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := service.Config{
		ClaudeDir:        viper.GetString("claude_dir"),
		ProjectDir:       project,
		Editor:           viper.GetString("editor"),
		Debounce:         time.Duration(viper.GetInt("debounce_ms")) * time.Millisecond,
		ExcludeDirs:      viper.GetStringSlice("exclude_dirs"),
		MaxMemoryResults: viper.GetInt("max_memory_results"),
	}
	return service.New(cfg, prompter, logger)
}

// AddGlobalFlags registers the persistent flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ccpanel/config.yaml)")
	cmd.PersistentFlags().StringVarP(&projectDir, "project", "P", "", "project directory (default is the working directory)")
	cmd.PersistentFlags().BoolVarP(&globalOnly, "global", "g", false, "ignore the project, operate on global configuration only")
	cmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
}
