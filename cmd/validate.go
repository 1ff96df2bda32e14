package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/shufflegrid/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [projects.json]",
	Short: "Validate a projects file",
	Long: `Validate checks that a projects file holds records the grid can show:
ids, titles and links are present, ids are unique and do not claim the
intro slot, and accent colors parse.

Without an argument the projects file from the config is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var projectsPath string
		if len(args) == 1 {
			projectsPath = args[0]
		} else {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			projectsPath = cfg.Projects
		}

		v := validator.NewValidator(projectsPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("%s Projects file '%s' is valid.\n", colorize.GreenString("✅"), projectsPath)
		} else {
			fmt.Printf("%s Projects file '%s' has %d validation errors:\n",
				colorize.RedString("❌"), projectsPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, colorize.YellowString("%s", warn))
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
