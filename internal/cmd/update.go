package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/luoxin/dailydo/internal/intent"
	"github.com/luoxin/dailydo/internal/journal"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <message>",
	Short: "Update tasks from a plain-language message",
	Long: `Update sends your message and the day's task list to the model, turns
the reply into concrete operations (complete, abandon, reopen, edit,
add), and applies them to the journal file.

Operations referring to tasks the model got wrong are skipped with a
warning; the rest still apply.

Examples:
  dailydo update "完成第1项"
  dailydo update "第2项不做了，再加一个：预订会议室"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpdate,
}

var updateDate string

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateDate, "date", "", "Target date (YYYY-MM-DD, default today)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return fmt.Errorf("update message is empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := resolveDate(updateDate)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, "update").WithDate(date.Format(journal.DateFormat))
	defer logger.Close()

	doc, err := loadOrCreate(store, date)
	if err != nil {
		return err
	}

	oracle, err := newOracle(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout())
	defer cancel()

	logger.Info("resolving intent", "message", message, "tasks", len(doc.Tasks))
	result, err := intent.NewResolver(oracle).Resolve(ctx, message, doc.Tasks)
	if err != nil {
		logger.Error("intent resolution failed", "error", err.Error())
		return fmt.Errorf("failed to interpret message: %w", err)
	}

	for _, unresolved := range result.Unresolved {
		fmt.Fprintf(os.Stderr, "could not interpret: %s\n", unresolved)
	}
	if len(result.Ops) == 0 {
		fmt.Println("No changes to apply.")
		return nil
	}

	updated, applied, skipped := intent.Apply(doc, result.Ops)
	for _, s := range skipped {
		logger.Warn("operation skipped", "op", s.Op.String(), "reason", s.Reason)
		fmt.Fprintf(os.Stderr, "skipped: %s\n", s.String())
	}
	if applied == 0 {
		fmt.Println("No changes applied.")
		return nil
	}

	if err := store.Save(updated); err != nil {
		return err
	}
	logger.Info("document updated", "applied", applied, "skipped", len(skipped))

	fmt.Printf("Applied %d change(s).\n\n", applied)
	printTasks(updated)
	return nil
}
