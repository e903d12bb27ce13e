package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's work status for the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func runStatus(cmd *cobra.Command) error {
	id, err := currentIdentity()
	if err != nil {
		if errors.Is(err, errNotLoggedIn) {
			cmd.Println("Not logged in. Run 'worktrack login <name>'.")
			return nil
		}
		return err
	}

	st, out := run(cmd, id, tracker.Refresh{})
	printView(cmd, id.Username, st.View)
	if res, ok := out.(tracker.StatusResult); ok && res.Err != nil {
		return userError(tracker.Describe(res.Err))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
