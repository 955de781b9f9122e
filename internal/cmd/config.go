package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/luoxin/dailydo/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify dailydo configuration",
	Long: `View or modify dailydo configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  dailydo config set llm.model gpt-4o
  dailydo config set paths.base_dir ~/notes/daily
  dailydo config set logging.level debug

Valid keys:
  paths.base_dir       - Journal directory
  llm.base_url         - OpenAI-compatible endpoint root
  llm.model            - Chat model name
  llm.api_key_env      - Environment variable holding the API key
  llm.timeout_seconds  - Per-command model timeout
  llm.max_retries      - Retry attempts for transient failures
  logging.enabled      - Write a debug log (true/false)
  logging.level        - debug, info, warn or error
  logging.max_size_mb  - Log size before rotation
  logging.max_backups  - Rotated files to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/dailydo/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	fmt.Println("paths:")
	fmt.Printf("  base_dir: %s\n", cfg.Paths.ResolveBaseDir(cwd))

	fmt.Println("llm:")
	fmt.Printf("  base_url: %s\n", cfg.LLM.BaseURL)
	fmt.Printf("  model: %s\n", cfg.LLM.Model)
	fmt.Printf("  api_key_env: %s\n", cfg.LLM.APIKeyEnv)
	if cfg.LLM.APIKey() != "" {
		fmt.Printf("  api_key: (set)\n")
	} else {
		fmt.Printf("  api_key: (not set)\n")
	}
	fmt.Printf("  timeout_seconds: %d\n", cfg.LLM.TimeoutSeconds)
	fmt.Printf("  max_retries: %d\n", cfg.LLM.MaxRetries)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"paths.base_dir":      "string",
		"llm.base_url":        "string",
		"llm.model":           "string",
		"llm.api_key_env":     "string",
		"llm.timeout_seconds": "int",
		"llm.max_retries":     "int",
		"logging.enabled":     "bool",
		"logging.level":       "string",
		"logging.max_size_mb": "int",
		"logging.max_backups": "int",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'dailydo config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.Default()
	content := fmt.Sprintf(`# dailydo configuration
paths:
  # Journal directory. Empty means $DAILY_TODO_DIR, falling back to
  # ./daily-todo under the current directory.
  base_dir: %q

llm:
  base_url: %q
  model: %q
  api_key_env: %q
  timeout_seconds: %d
  max_retries: %d

logging:
  enabled: %v
  level: %q
  max_size_mb: %d
  max_backups: %d
`,
		defaults.Paths.BaseDir,
		defaults.LLM.BaseURL,
		defaults.LLM.Model,
		defaults.LLM.APIKeyEnv,
		defaults.LLM.TimeoutSeconds,
		defaults.LLM.MaxRetries,
		defaults.Logging.Enabled,
		defaults.Logging.Level,
		defaults.Logging.MaxSizeMB,
		defaults.Logging.MaxBackups,
	)

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file: %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}
