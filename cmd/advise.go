package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Ask for a motivational quote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdvise(cmd, advisory.Quote)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Ask for a plan for the next hour of work",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdvise(cmd, advisory.PlanHour)
	},
}

func runAdvise(cmd *cobra.Command, kind advisory.Kind) error {
	in := tracker.Advise{Kind: kind, Seq: dispatcher.Ticket()}
	st, out := run(cmd, currentOrZero(), in)
	res, _ := out.(tracker.AdviceResult)
	if res.Err != nil || st.Advice == nil {
		text := "Sorry, I could not get a response. Please try again."
		if st.Advice != nil {
			text = st.Advice.Text
		}
		return userError(text)
	}
	cmd.Println(kind.Title())
	cmd.Println()
	cmd.Println(st.Advice.Text)
	return nil
}

func init() {
	rootCmd.AddCommand(quoteCmd, planCmd)
}
