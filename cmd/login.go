package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/tracker"
)

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Log in as <name> and remember it for later runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _ := run(cmd, currentOrZero(), tracker.Login{Username: args[0]})
		if st.LoginError != "" {
			return userError(st.LoginError)
		}
		cmd.Printf("Logged in as %s.\n", st.Identity.Username)
		printView(cmd, st.Identity.Username, st.View)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored username",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, out := run(cmd, currentOrZero(), tracker.Logout{})
		if res, ok := out.(tracker.LogoutResult); ok && res.Err != nil {
			return res.Err
		}
		cmd.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged-in username",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := currentIdentity()
		if err != nil {
			if errors.Is(err, errNotLoggedIn) {
				cmd.Println("Not logged in.")
				return nil
			}
			return err
		}
		cmd.Println(id.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
