package main

import (
	"fmt"
	"os"

	"atomkv/internal/config"
	"atomkv/internal/engine"
	"atomkv/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	storePath  string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "atomkv",
	Short: "atomkv - inspect and mutate an embedded key-value store",
	Long: `atomkv is the operational companion to the atomkv storage library.

It opens a store file directly and exposes the facade operations for
inspection and repair: get, set, remove, keys, has, clear, stat.

Values are typed by domain (string, number, bool, json); reads report the
domain a key was written through.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if storePath == "" {
			storePath = cfg.Store.Path
		}
		if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging.Debug, cfg.Logging.Level); err != nil {
			logger.Warn("category logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openEngine opens the store selected by --store / config.
func openEngine() (*engine.Engine, error) {
	logger.Debug("Opening store", zap.String("path", storePath))
	eng, err := engine.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", storePath, err)
	}
	return eng, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "Store file path (default: from config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "atomkv.yaml", "Config file path")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(hasCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
