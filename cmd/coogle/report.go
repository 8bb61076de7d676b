package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cloudlet-dev/coogle"
)

// styles holds color formatters for human-readable output
type styles struct {
	heading   *color.Color
	name      *color.Color
	signature *color.Color
	location  *color.Color
	summary   *color.Color
}

// newStyles creates color formatters for search output
// enabled=false respects --color never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:   color.New(color.Bold),
		name:      color.New(color.Bold, color.FgHiBlue),
		signature: color.New(color.FgYellow),
		location:  color.New(color.FgHiGreen),
		summary:   color.New(color.Bold, color.FgHiWhite),
	}

	if !enabled {
		s.heading.DisableColor()
		s.name.DisableColor()
		s.signature.DisableColor()
		s.location.DisableColor()
		s.summary.DisableColor()
	}

	return s
}

// setupColor resolves the --color flag against the terminal state.
func setupColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		// Check if stdout is a TTY and NO_COLOR is not set
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
}

func outputJSON(cmd *cobra.Command, matches []coogle.Match) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(matches); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d matches\n", len(matches))
	return nil
}

func outputHuman(cmd *cobra.Command, query string, matches []coogle.Match, colorMode string) error {
	out := cmd.OutOrStdout()

	setupColor(colorMode)
	s := newStyles(!color.NoColor)

	if len(matches) == 0 {
		fmt.Fprintf(out, "No matches for %s\n", s.signature.Sprint(query))
		return nil
	}

	for i, m := range matches {
		fmt.Fprintf(out, "%s\n", s.heading.Sprintf("Match %d/%d", i+1, len(matches)))
		fmt.Fprintf(out, "    %s %s\n",
			s.heading.Sprint("File:"),
			s.location.Sprintf("%s:%d", m.File, m.Line))
		fmt.Fprintf(out, "    %s %s\n", s.heading.Sprint("Function:"), s.name.Sprint(m.Name))
		fmt.Fprintf(out, "    %s %s\n\n", s.heading.Sprint("Signature:"), s.signature.Sprint(m.Signature))
	}

	fmt.Fprintf(out, "%s\n", s.summary.Sprintf("%d matches for %s", len(matches), query))
	return nil
}
