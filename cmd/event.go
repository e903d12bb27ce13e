package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/session"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

var eventShort = map[session.EventType]string{
	session.EventStart:  "Start the work day",
	session.EventPause:  "Pause the current work session",
	session.EventResume: "Resume after a pause",
	session.EventEnd:    "End the work day",
}

// newEventCmd builds the command that records ev for the logged-in user.
func newEventCmd(ev session.EventType) *cobra.Command {
	return &cobra.Command{
		Use:   string(ev),
		Short: eventShort[ev],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := currentIdentity()
			if err != nil {
				return err
			}

			st, out := run(cmd, id, tracker.Post{Event: ev})
			res, ok := out.(tracker.EventResult)
			if !ok {
				return fmt.Errorf("%s: no result", ev)
			}
			if res.Err != nil {
				return userError(st.Message)
			}
			cmd.Println(st.Message)
			printView(cmd, id.Username, st.View)
			return nil
		},
	}
}

func init() {
	for _, ev := range session.EventTypes {
		rootCmd.AddCommand(newEventCmd(ev))
	}
}
