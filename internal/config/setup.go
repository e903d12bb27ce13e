package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunSetup runs the interactive setup wizard reading answers from in.
// existing supplies the default for each prompt (edit mode).
func RunSetup(in io.Reader, out io.Writer, existing Config) (Config, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	cfg := existing

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(out, "  │   worktrack — first-time setup  │")
	fmt.Fprintln(out, "  └─────────────────────────────────┘")
	fmt.Fprintln(out)

	var err error

	cfg.APIURL, err = ask("  Backend API URL", cfg.APIURL)
	if err != nil {
		return Config{}, err
	}

	// Never echo an existing key back as the default.
	keyPrompt := "  Gemini API key (blank to keep current)"
	if cfg.AdvisoryKey == "" {
		keyPrompt = "  Gemini API key (optional)"
	}
	key, err := ask(keyPrompt, "")
	if err != nil {
		return Config{}, err
	}
	if key != "" {
		cfg.AdvisoryKey = key
	}

	eventCase, err := ask("  Event name case sent to the backend (upper/lower)", cfg.EventCase)
	if err != nil {
		return Config{}, err
	}
	if eventCase == "lower" {
		cfg.EventCase = "lower"
	} else {
		cfg.EventCase = "upper"
	}

	fmt.Fprintln(out)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
