package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/config"
	"github.com/example/nestforge/internal/generate"
	"github.com/example/nestforge/internal/txn"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Generate a single module or entity",
	Long:    "One-shot generation of NestJS boilerplate, outside of a batch schema.",
}

var generateModuleCmd = &cobra.Command{
	Use:   "module [name]",
	Short: "Generate an empty NestJS module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		opts := generate.ModuleOptions{Path: path, SourceRoot: configuredSourceRoot(path)}

		scope := txn.NewScope()
		gen := generate.NewNestGenerator(scope)
		err := scope.Run("generate-module", func() error {
			return gen.GenerateModule(cmd.Context(), args[0], opts)
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Generated module %s\n", color.New(color.FgGreen).Sprint("✓"), args[0])
		return nil
	},
}

var generateEntityCmd = &cobra.Command{
	Use:   "entity [name]",
	Short: "Generate a full entity stack",
	Long: `Generate the entity, DTOs, service, controller, repository, and module
wiring for one entity.

Field tokens are "name:type" with optional modifiers:
  nestforge generate entity User --fields "email:string:unique name:string"
  nestforge generate entity Order --module orders --fields "total:int" --with-tests`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generate.EntityOptions{}
		opts.Path, _ = cmd.Flags().GetString("path")
		opts.SourceRoot = configuredSourceRoot(opts.Path)
		opts.Module, _ = cmd.Flags().GetString("module")
		opts.Fields, _ = cmd.Flags().GetString("fields")
		opts.WithTests, _ = cmd.Flags().GetBool("with-tests")
		opts.WithGraphql, _ = cmd.Flags().GetBool("with-graphql")
		opts.WithEvents, _ = cmd.Flags().GetBool("with-events")
		opts.WithQueries, _ = cmd.Flags().GetBool("with-queries")

		scope := txn.NewScope()
		gen := generate.NewNestGenerator(scope)
		err := scope.Run("generate-entity", func() error {
			return gen.GenerateEntity(cmd.Context(), args[0], opts)
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Generated entity %s\n", color.New(color.FgGreen).Sprint("✓"), args[0])
		return nil
	},
}

// configuredSourceRoot reads the project config's source_root, if a config
// exists; the generator falls back to "src" when it is empty.
func configuredSourceRoot(path string) string {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return ""
	}
	return cfg.SourceRoot
}

func init() {
	generateModuleCmd.Flags().String("path", ".", "Project root to generate into")

	generateEntityCmd.Flags().String("path", ".", "Project root to generate into")
	generateEntityCmd.Flags().String("module", "", "Owning module (defaults to the pluralized entity name)")
	generateEntityCmd.Flags().String("fields", "", "Field tokens (e.g. 'email:string:unique age:int')")
	generateEntityCmd.Flags().Bool("with-tests", false, "Also generate a service spec file")
	generateEntityCmd.Flags().Bool("with-graphql", false, "Also generate a GraphQL resolver")
	generateEntityCmd.Flags().Bool("with-events", false, "Also generate event classes")
	generateEntityCmd.Flags().Bool("with-queries", false, "Also generate query classes")

	generateCmd.AddCommand(generateModuleCmd)
	generateCmd.AddCommand(generateEntityCmd)
}

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	return generateCmd
}
