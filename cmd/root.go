package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/api"
	"github.com/fakeyudi/worktrack/internal/clock"
	"github.com/fakeyudi/worktrack/internal/config"
	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// identities and dispatcher are built from cfg in PersistentPreRunE.
var (
	identities identity.Store
	dispatcher *tracker.Dispatcher
)

var (
	apiURLFlag string
	debugFlag  bool
	logFile    *os.File
)

var rootCmd = &cobra.Command{
	Use:   "worktrack",
	Short: "Track your work day: start, pause, resume and end it from the terminal",
	Long: `worktrack records work sessions against a worktrack backend.

Run it without arguments for the interactive tracker, or use the
subcommands from scripts and shell prompts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// First run: no global config yet, so offer the setup wizard.
		// Only do this when stdin is an interactive terminal.
		if !config.GlobalExists() && term.IsTerminal(os.Stdin.Fd()) {
			cmd.Println()
			cmd.Println("  Welcome to worktrack! Looks like this is your first time.")
			if err := runSetup(cmd); err != nil {
				return err
			}
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("api-url") {
			loaded.APIURL = apiURLFlag
		}
		if debugFlag {
			loaded.Debug = &debugFlag
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		if err := setupLogging(cfg.DebugLog()); err != nil {
			return err
		}
		return wire(cfg)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			err := logFile.Close()
			logFile = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(os.Stdin.Fd()) {
			return runUI(cmd)
		}
		return runStatus(cmd)
	},
}

// setupLogging sends the std logger to debug.log in the data directory when
// debug is on and discards it otherwise, since the TUI owns the terminal.
func setupLogging(debug bool) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	dir, err := identity.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "worktrack")
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	return nil
}

// wire builds the identity store, the HTTP clients and the dispatcher.
func wire(c config.Config) error {
	store, err := identity.NewStore()
	if err != nil {
		return err
	}
	httpClient := &http.Client{Timeout: c.RequestTimeout.Std()}
	backend := api.New(api.Config{
		BaseURL:     c.APIURL,
		HTTPClient:  httpClient,
		UpperEvents: c.UpperEvents(),
	})
	advisor := advisory.New(advisory.Config{
		URL:        c.AdvisoryURL,
		APIKey:     c.AdvisoryKey,
		HTTPClient: httpClient,
	})
	identities = store
	dispatcher = tracker.NewDispatcher(backend, advisor, store, clock.System)
	return nil
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to the data directory")
}
