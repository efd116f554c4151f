package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/db"
	"github.com/example/nestforge/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded batch runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		limit, _ := cmd.Flags().GetInt("limit")

		database, err := db.Open(path)
		if err != nil {
			return err
		}
		defer database.Close()

		runs, err := history.NewStore(database).ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No batch runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("#%d  %s  %s  %d module(s), %d entit(y/ies)  %s\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				statusMarker(r.Status), r.Modules, r.Entities, r.SchemaPath)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the steps of one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		path, _ := cmd.Flags().GetString("path")

		database, err := db.Open(path)
		if err != nil {
			return err
		}
		defer database.Close()

		steps, err := history.NewStore(database).GetSteps(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			return fmt.Errorf("run %d not found", runID)
		}

		for i, s := range steps {
			marker := color.New(color.FgGreen).Sprint("✓")
			if s.Status == history.StepSkipped {
				marker = color.New(color.FgYellow).Sprint("!")
			}
			fmt.Printf("  %2d. %s [%s] %s\n", i+1, marker, s.Type, s.Name)
		}
		return nil
	},
}

func statusMarker(status string) string {
	switch status {
	case history.StatusSuccess:
		return color.New(color.FgGreen).Sprint("[success]")
	case history.StatusPartial:
		return color.New(color.FgYellow).Sprint("[partial]")
	default:
		return color.New(color.FgRed).Sprint("[failed]")
	}
}

func init() {
	historyCmd.PersistentFlags().String("path", ".", "Project root holding the history database")
	historyCmd.Flags().Int("limit", 10, "Maximum runs to list")

	historyCmd.AddCommand(historyShowCmd)
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	return historyCmd
}
