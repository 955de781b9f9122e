// Package cmd implements the dailydo command-line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/luoxin/dailydo/internal/config"
	"github.com/luoxin/dailydo/internal/errors"
	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/llm"
	"github.com/luoxin/dailydo/internal/logging"
	"github.com/luoxin/dailydo/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

var rootCmd = &cobra.Command{
	Use:   "dailydo",
	Short: "LLM-assisted daily task journal",
	Long: `Dailydo keeps one Markdown journal file per day and uses a language
model to plan each morning's task list, interpret plain-language
updates ("完成第1项，再加一个买菜"), and write daily and weekly
summaries.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/dailydo/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// A .env next to the journal is the common place for the API key.
	_ = gotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/dailydo")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DAILYDO")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DAILYDO_LLM_MODEL for llm.model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig reads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, config.ValidationErrors(problems)
	}
	return cfg, nil
}

// openStore resolves the journal directory and returns a store over it.
func openStore(cfg *config.Config) (*storage.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return storage.New(cfg.Paths.ResolveBaseDir(cwd)), nil
}

// newOracle builds the chat client, failing early when no API key is
// available.
func newOracle(cfg *config.Config) (llm.Oracle, error) {
	key := cfg.LLM.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%w: set %s in the environment or a .env file",
			errors.ErrAPIKeyMissing, cfg.LLM.APIKeyEnv)
	}
	return llm.NewClient(llm.Config{
		APIKey:     key,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		MaxRetries: cfg.LLM.MaxRetries,
	}), nil
}

// newLogger opens the debug log under the config directory when logging
// is enabled, and a no-op logger otherwise.
func newLogger(cfg *config.Config, command string) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.Nop()
	}
	logPath := filepath.Join(config.ConfigDir(), "debug.log")
	logger, err := logging.NewFile(logPath, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file: %v\n", err)
		return logging.Nop()
	}
	return logger.WithCommand(command)
}

// resolveDate parses a --date flag value, defaulting to today.
func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.Parse(journal.DateFormat, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", flag)
	}
	return d, nil
}

// loadOrCreate returns the day's document, starting from a fresh empty
// one when no file exists yet. Updating or summarizing a day you never
// generated works on the empty document: "新增X" still adds, and the
// file is created on save with the date as its title.
func loadOrCreate(store *storage.Store, date time.Time) (*journal.Document, error) {
	doc, warnings, err := store.Load(date)
	if err != nil {
		if errors.Is(err, errors.ErrDocumentNotFound) {
			return journal.NewDocument(date), nil
		}
		return nil, err
	}
	printWarnings(warnings)
	return doc, nil
}

// printWarnings reports recoverable parse problems without failing the
// command.
func printWarnings(warnings []journal.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: line %d: %s (%s)\n", w.Line, w.Text, w.Reason)
	}
}
