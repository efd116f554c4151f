package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with batch schema files",
}

var schemaSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write an example schema file",
	Long: `Write an example schema demonstrating both field forms and the
relation types that affect generation order.

Examples:
  nestforge schema sample
  nestforge schema sample --format json -o example.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			ext := format
			if ext == "yml" {
				ext = "yaml"
			}
			out = "nestforge.schema." + ext
		}

		if err := schema.WriteSample(out, format); err != nil {
			return err
		}
		fmt.Printf("%s Wrote sample schema to %s\n", color.New(color.FgGreen).Sprint("✓"), out)
		return nil
	},
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate [schema-file]",
	Short: "Validate a schema file without generating anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.Load(args[0])
		if err != nil {
			return err
		}

		result := schema.Validate(s)
		if !result.Valid {
			fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Schema validation failed:"))
			for _, msg := range result.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", msg)
			}
			return fmt.Errorf("%d validation error(s)", len(result.Errors))
		}

		entities := 0
		for _, m := range s.Modules {
			entities += len(m.Entities)
		}
		fmt.Printf("%s Schema is valid: %d module(s), %d entit(y/ies), %d relation(s)\n",
			color.New(color.FgGreen).Sprint("✓"), len(s.Modules), entities, len(s.Relations))
		return nil
	},
}

func init() {
	schemaSampleCmd.Flags().String("format", "yaml", "Sample format: json or yaml")
	schemaSampleCmd.Flags().StringP("out", "o", "", "Output file (defaults to nestforge.schema.<ext>)")

	schemaCmd.AddCommand(schemaSampleCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
}

// SchemaCmd returns the schema command
func SchemaCmd() *cobra.Command {
	return schemaCmd
}
