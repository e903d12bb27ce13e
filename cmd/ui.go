package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive tracker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd)
	},
}

func runUI(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	changes := make(chan identity.Identity, 1)
	go func() {
		err := identity.Watch(ctx, identities, func(id identity.Identity) {
			select {
			case changes <- id:
			case <-ctx.Done():
			}
		})
		if err != nil {
			log.Printf("identity watch stopped: %v", err)
		}
	}()

	return tui.Run(tui.Options{
		Dispatcher:      dispatcher,
		Identity:        currentOrZero(),
		DiscardStale:    cfg.StaleGuard(),
		RequestTimeout:  cfg.RequestTimeout.Std(),
		RefreshInterval: cfg.RefreshInterval.Std(),
		Identities:      changes,
	})
}

// currentOrZero returns the stored identity, or the zero Identity when
// nobody is logged in or the file cannot be read.
func currentOrZero() identity.Identity {
	id, err := identities.Load()
	if err != nil {
		return identity.Identity{}
	}
	return id
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
