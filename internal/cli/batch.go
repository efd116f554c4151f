package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/batch"
	"github.com/example/nestforge/internal/config"
	"github.com/example/nestforge/internal/db"
	"github.com/example/nestforge/internal/generate"
	"github.com/example/nestforge/internal/history"
	"github.com/example/nestforge/internal/txn"
)

var batchCmd = &cobra.Command{
	Use:   "batch [schema-file]",
	Short: "Generate modules and entities from a declarative schema",
	Long: `Load a schema file (JSON or YAML), derive a dependency-respecting
generation order, and run every step inside one filesystem transaction.

A failing step rolls back everything generated so far unless
--continue-on-error is set, in which case the step is skipped and logged.

Examples:
  nestforge batch schema.yaml
  nestforge batch schema.json --dry-run
  nestforge batch schema.yaml --continue-on-error --path ./api`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath := args[0]
		opts := batch.Options{}
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
		opts.InstallDeps, _ = cmd.Flags().GetBool("install-deps")
		opts.Path, _ = cmd.Flags().GetString("path")

		// Project config supplies defaults; flags win when set explicitly.
		if cfg, cfgErr := config.LoadConfig(opts.Path); cfgErr == nil {
			opts.SourceRoot = cfg.SourceRoot
			if !cmd.Flags().Changed("install-deps") {
				opts.InstallDeps = cfg.InstallDeps
			}
		}

		scope := txn.NewScope()
		exec := batch.NewExecutor(generate.NewNestGenerator(scope), scope, os.Stdout)

		started := time.Now()
		result, err := exec.Run(cmd.Context(), schemaPath, opts)
		if err != nil {
			var verr *batch.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Schema validation failed:"))
				for _, msg := range verr.Errors {
					fmt.Fprintf(os.Stderr, "  - %s\n", msg)
				}
				return fmt.Errorf("%d validation error(s)", len(verr.Errors))
			}
			if !opts.DryRun {
				recordRun(cmd.Context(), schemaPath, opts.Path, nil, started)
			}
			return err
		}

		if opts.DryRun {
			fmt.Println()
			fmt.Println("(dry-run mode - no files written)")
			return nil
		}

		fmt.Println()
		fmt.Printf("%s Generated %d module(s) and %d entit(y/ies) under %s\n",
			color.New(color.FgGreen).Sprint("✓"),
			result.ModulesGenerated, result.EntitiesGenerated, opts.Path)
		if len(result.Skipped) > 0 {
			fmt.Printf("%s %d step(s) skipped: %v\n",
				color.New(color.FgYellow).Sprint("!"), len(result.Skipped), result.Skipped)
		}
		if opts.InstallDeps {
			fmt.Println("Next: run 'npm install' in the project root to install NestJS dependencies")
		}

		recordRun(cmd.Context(), schemaPath, opts.Path, result, started)
		return nil
	},
}

// recordRun persists the run in the history ledger. A nil result means the
// run failed and was rolled back, so nothing was generated. Best effort: a
// history failure must not fail the command further.
func recordRun(ctx context.Context, schemaPath, path string, result *batch.Result, started time.Time) {
	database, err := db.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
		return
	}
	defer database.Close()

	run := &history.Run{
		SchemaPath: schemaPath,
		Status:     history.StatusFailed,
		StartedAt:  started.UTC(),
		FinishedAt: time.Now().UTC(),
	}

	if result != nil {
		run.Status = history.StatusSuccess
		if len(result.Skipped) > 0 {
			run.Status = history.StatusPartial
		}
		run.Modules = result.ModulesGenerated
		run.Entities = result.EntitiesGenerated

		skipped := make(map[string]bool, len(result.Skipped))
		for _, name := range result.Skipped {
			skipped[name] = true
		}
		for _, s := range result.Plan.Steps {
			stepStatus := history.StepGenerated
			if skipped[s.QualifiedName()] {
				stepStatus = history.StepSkipped
			}
			run.Steps = append(run.Steps, history.Step{Type: string(s.Type), Name: s.QualifiedName(), Status: stepStatus})
		}
	}

	if err := history.NewStore(database).RecordRun(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
	}
}

func init() {
	batchCmd.Flags().Bool("dry-run", false, "Print the generation plan without writing files")
	batchCmd.Flags().Bool("continue-on-error", false, "Skip failing steps instead of rolling back the run")
	batchCmd.Flags().Bool("install-deps", false, "Report the dependency install step after generation")
	batchCmd.Flags().String("path", ".", "Project root to generate into")
}

// BatchCmd returns the batch command
func BatchCmd() *cobra.Command {
	return batchCmd
}
