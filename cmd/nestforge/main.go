package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/cli"
	"github.com/example/nestforge/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nestforge",
		Short:   "nestforge - NestJS boilerplate generator",
		Version: version.String(),
		Long: `nestforge generates NestJS/TypeORM boilerplate from one-shot commands
or declarative schema files. Batch runs are planned in dependency order and
executed inside a filesystem transaction.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.BatchCmd())
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.SchemaCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
