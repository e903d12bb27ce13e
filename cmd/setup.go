package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure worktrack (re-run anytime to edit settings)",
	// Bypass the normal PersistentPreRunE so setup works before a config exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd)
	},
}

// runSetup runs the interactive setup wizard against the command's
// input and output and saves the result as the global config.
func runSetup(cmd *cobra.Command) error {
	existing, err := config.LoadGlobal()
	if err != nil {
		// A broken file is replaced rather than blocking setup.
		d := config.Defaults()
		existing = &d
	}

	updated, err := config.RunSetup(cmd.InOrStdin(), cmd.OutOrStdout(), *existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if err := config.SaveGlobal(updated); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	path, _ := config.GlobalPath()
	cmd.Printf("  ✓ Config saved to %s.\n", path)
	cmd.Println("  Setup complete. Run 'worktrack login <name>' to get started.")
	cmd.Println()
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
