package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/luoxin/dailydo/internal/errors"
	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/planner"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's task list",
	Long: `Generate creates the journal file for a day. Unfinished tasks from the
previous day are carried over and the model may break them down or
reorder them; completed and abandoned tasks are left behind.

If the previous day has no pending tasks (or no file), an empty
document is created without calling the model.`,
	RunE: runGenerate,
}

var (
	generateDate  string
	generateForce bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateDate, "date", "", "Target date (YYYY-MM-DD, default today)")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "Overwrite an existing file without asking")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := resolveDate(generateDate)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, "generate").WithDate(date.Format(journal.DateFormat))
	defer logger.Close()

	if store.Exists(date) && !generateForce {
		fmt.Printf("%s already exists. Overwrite? [y/N] ", store.PathFor(date))
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Generation cancelled.")
			return nil
		}
	}

	yesterday, warnings, err := store.Load(date.AddDate(0, 0, -1))
	if err != nil {
		if !errors.Is(err, errors.ErrDocumentNotFound) {
			return err
		}
		yesterday = nil
	}
	printWarnings(warnings)

	oracle, err := newOracle(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout())
	defer cancel()

	logger.Info("planning day", "carry_over", yesterday != nil)
	doc, err := planner.New(oracle).Plan(ctx, date, yesterday)
	if err != nil {
		logger.Error("planning failed", "error", err.Error())
		return fmt.Errorf("failed to generate task list: %w", err)
	}

	if err := store.Save(doc); err != nil {
		return err
	}
	logger.Info("document written", "path", store.PathFor(date), "tasks", len(doc.Tasks))

	fmt.Printf("Created %s with %d task(s).\n", store.PathFor(date), len(doc.Tasks))
	printTasks(doc)
	return nil
}
