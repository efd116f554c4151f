package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/nestforge/internal/config"
	"github.com/example/nestforge/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a project for nestforge",
	Long:  "Write .nestforge/config.json and create the run-history database.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")

		project := ""
		if len(args) == 1 {
			project = args[0]
		} else if abs, err := filepath.Abs(path); err == nil {
			project = filepath.Base(abs)
		}

		if _, err := config.LoadConfig(path); err == nil {
			return fmt.Errorf("project already initialized: %s exists", filepath.Join(path, config.ConfigDir, "config.json"))
		}

		if err := config.SaveConfig(path, config.Default(project)); err != nil {
			return err
		}

		database, err := db.Open(path)
		if err != nil {
			return err
		}
		database.Close()

		fmt.Printf("%s Initialized nestforge project %q\n", color.New(color.FgGreen).Sprint("✓"), project)
		return nil
	},
}

func init() {
	initCmd.Flags().String("path", ".", "Project root to initialize")
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return initCmd
}
