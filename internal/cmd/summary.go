package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/llm"
	"github.com/luoxin/dailydo/internal/storage"
	"github.com/luoxin/dailydo/internal/summary"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [daily|weekly]",
	Short: "Summarize a day or the past week",
	Long: `Summary asks the model to write a short review of a day's journal and
saves it into the file's 日总结 section. In weekly mode it reviews the
seven days ending at the target date instead; the weekly text is
printed but not written back.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"daily", "weekly"},
	RunE:      runSummary,
}

var (
	summaryDate   string
	summaryWeekly bool
)

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Target date (YYYY-MM-DD, default today)")
	summaryCmd.Flags().BoolVarP(&summaryWeekly, "weekly", "w", false, "Summarize the 7 days ending at the target date")
}

func runSummary(cmd *cobra.Command, args []string) error {
	weekly := summaryWeekly
	if len(args) == 1 {
		switch args[0] {
		case "weekly":
			weekly = true
		case "daily":
			weekly = false
		default:
			return fmt.Errorf("unknown summary mode %q: expected daily or weekly", args[0])
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := resolveDate(summaryDate)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, "summary").WithDate(date.Format(journal.DateFormat))
	defer logger.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout())
	defer cancel()

	if weekly {
		docs, err := loadWindow(store, date)
		if err != nil {
			return err
		}

		// An empty week needs no model call, so don't demand a key for it.
		var oracle llm.Oracle
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			if oracle, err = newOracle(cfg); err != nil {
				return err
			}
			break
		}

		logger.Info("building weekly summary")
		text, err := summary.New(oracle).Weekly(ctx, docs)
		if err != nil {
			logger.Error("weekly summary failed", "error", err.Error())
			return fmt.Errorf("failed to build weekly summary: %w", err)
		}
		fmt.Println(text)
		return nil
	}

	doc, err := loadOrCreate(store, date)
	if err != nil {
		return err
	}

	oracle, err := newOracle(cfg)
	if err != nil {
		return err
	}

	logger.Info("building daily summary")
	text, err := summary.New(oracle).Daily(ctx, doc)
	if err != nil {
		logger.Error("daily summary failed", "error", err.Error())
		return fmt.Errorf("failed to build daily summary: %w", err)
	}

	doc.SetSection(journal.SummarySectionName, text)
	if err := store.Save(doc); err != nil {
		return err
	}
	logger.Info("summary written", "path", store.PathFor(date))

	fmt.Println(text)
	return nil
}

// loadWindow loads the documents of the seven days ending at end into a
// fixed seven-slot window, oldest first. Days without a file stay nil.
// The window is normalized to UTC calendar days so it lines up with the
// file-name dates the store reports.
func loadWindow(store *storage.Store, end time.Time) ([]*journal.Document, error) {
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -summary.WindowDays+1)

	slots := make(map[string]int, summary.WindowDays)
	for i := 0; i < summary.WindowDays; i++ {
		slots[start.AddDate(0, 0, i).Format(journal.DateFormat)] = i
	}

	days, err := store.List(start, end)
	if err != nil {
		return nil, err
	}

	docs := make([]*journal.Document, summary.WindowDays)
	for _, day := range days {
		i, ok := slots[day.Format(journal.DateFormat)]
		if !ok {
			continue
		}
		doc, warnings, err := store.Load(day)
		if err != nil {
			return nil, err
		}
		printWarnings(warnings)
		docs[i] = doc
	}
	return docs, nil
}
