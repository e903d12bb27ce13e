package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

// errNotLoggedIn is returned by commands that act on behalf of a user.
var errNotLoggedIn = errors.New("not logged in: run 'worktrack login <name>' first")

// currentIdentity loads the stored identity, mapping a missing one to
// errNotLoggedIn.
func currentIdentity() (identity.Identity, error) {
	id, err := identities.Load()
	if errors.Is(err, identity.ErrNoIdentity) {
		return identity.Identity{}, errNotLoggedIn
	}
	return id, err
}

// run dispatches in and folds the outcome into a fresh state for id.
func run(cmd *cobra.Command, id identity.Identity, in tracker.Intent) (tracker.State, tracker.Outcome) {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout.Std())
	defer cancel()

	st := tracker.NewState(id, cfg.StaleGuard()).Begin(in)
	out := dispatcher.Dispatch(ctx, id, in)
	if out == nil {
		return st, nil
	}
	return st.Apply(out), out
}

// printView writes the tracker screen as plain lines.
func printView(cmd *cobra.Command, username string, v tracker.View) {
	cmd.Printf("User:    %s\n", username)
	cmd.Printf("Status:  %s\n", v.Label)
	cmd.Printf("Worked:  %s\n", v.Worked)
	if len(v.Actions) > 0 {
		names := make([]string, len(v.Actions))
		for i, a := range v.Actions {
			names[i] = string(a)
		}
		cmd.Printf("Next:    %s\n", strings.Join(names, ", "))
	}
}

// userError turns a tracker message into a returned error. cobra adds its
// own "Error: " prefix.
func userError(msg string) error {
	return errors.New(strings.TrimPrefix(msg, "Error: "))
}
