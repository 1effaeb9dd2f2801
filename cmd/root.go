package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vimotion/internal/config"
	"github.com/zjrosen/vimotion/internal/log"
)

const defaultConfigPath = ".vimotion/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       = config.Defaults()
	configErr error
	logClose  func()
)

var rootCmd = &cobra.Command{
	Use:   "vimotion",
	Short: "Resolve vim motions and text objects against a file",
	Long: `vimotion resolves vim-style motions and text objects (w, f<char>, i(, at, ii, ...)
to the exact range an operator would act on, and shows what deleting it would do.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vimotion/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by VIMOTION_DEBUG)")
}

func initConfig() {
	cfg, configErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads the config file into v and decodes it. Lookup order:
// explicit path, .vimotion/config.yaml, ~/.config/vimotion/config.yaml.
// When no file exists a commented default is written to .vimotion/.
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		v.SetConfigFile(defaultConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "vimotion"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				v.SetConfigFile(defaultConfigPath)
				_ = v.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		case explicit != "":
			return config.Defaults(), fmt.Errorf("reading config %s: %w", explicit, err)
		default:
			return config.Defaults(), fmt.Errorf("reading config: %w", err)
		}
	}

	return config.Load(v)
}

func setup(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}

	// Initialize logging if debug mode enabled (via flag or env var)
	if debugFlag || os.Getenv("VIMOTION_DEBUG") != "" {
		logPath := os.Getenv("VIMOTION_LOG")
		if logPath == "" {
			logPath = cfg.Log.Path
		}
		cleanup, err := log.InitWithTeaLog(logPath, "vimotion")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logClose = cleanup
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			log.SetMinLevel(level)
		}
		log.Info(log.CatCLI, "vimotion starting", "run", uuid.New().String(), "command", cmd.Name(), "config", viper.ConfigFileUsed())
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logClose != nil {
		logClose()
		logClose = nil
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
