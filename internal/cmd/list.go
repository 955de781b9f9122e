package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/luoxin/dailydo/internal/errors"
	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/util"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show a day's tasks",
	Long:  `List prints the task list for a day with one status glyph per task.`,
	RunE:  runList,
}

var listDate string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDate, "date", "", "Target date (YYYY-MM-DD, default today)")
}

var (
	pendingStyle   = lipgloss.NewStyle()
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	abandonedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

// taskLineWidth caps rendered task lines so long descriptions don't
// wrap awkwardly in narrow terminals.
const taskLineWidth = 100

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	date, err := resolveDate(listDate)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	doc, warnings, err := store.Load(date)
	if err != nil {
		if errors.Is(err, errors.ErrDocumentNotFound) {
			fmt.Printf("No journal for %s. Run 'dailydo generate' to create one.\n", date.Format(journal.DateFormat))
			return nil
		}
		return err
	}
	printWarnings(warnings)

	fmt.Printf("%s\n\n", doc.Title)
	if len(doc.Tasks) == 0 {
		fmt.Println("(no tasks)")
		return nil
	}
	printTasks(doc)

	if body, ok := doc.Section(journal.SummarySectionName); ok && body != "" {
		fmt.Printf("\n%s\n", body)
	}
	return nil
}

// printTasks renders the task list with status glyphs: ○ pending,
// ✓ done, ~ abandoned.
func printTasks(doc *journal.Document) {
	for _, task := range doc.Tasks {
		var line string
		switch task.Status {
		case journal.StatusDone:
			line = doneStyle.Render(fmt.Sprintf("✓ %d. %s", task.Index, task.Description))
		case journal.StatusAbandoned:
			line = abandonedStyle.Render(fmt.Sprintf("~ %d. %s", task.Index, task.Description))
		default:
			line = pendingStyle.Render(fmt.Sprintf("○ %d. %s", task.Index, task.Description))
		}
		fmt.Println(util.TruncateANSI(line, taskLineWidth))
	}
}
