// Package report renders discovery results for the find-mods subcommand.
// Grounded on the teacher's internal/output formatters (one type per output
// format, a shared config struct) but backed by github.com/pterm/pterm
// instead of the teacher's hand-rolled ANSI escape constants
// (internal/output/text.go) — pterm is the pack's answer to colorized CLI
// output (rybkr/gitvista's internal/termcolor serves the same role there).
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/bmt-toolkit/bmt/internal/manifest"
	"github.com/bmt-toolkit/bmt/internal/walker"
)

// Summary is the result of one discovery run, ready to be rendered as a
// table or as JSON.
type Summary struct {
	Root     string                         `json:"root"`
	Found    []manifest.DiscoveredManifest  `json:"found"`
	Warnings []walker.Warning               `json:"warnings,omitempty"`
	Elapsed  time.Duration                  `json:"elapsedNanoseconds"`
}

// PrintTable renders a summary as a pterm table to w.
func PrintTable(w io.Writer, s Summary) error {
	rows := pterm.TableData{{"Mod", "Version", "Manifest"}}
	for _, d := range s.Found {
		rows = append(rows, []string{d.Metadata.Name, d.Metadata.Version, d.AbsPath})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(w).Render(); err != nil {
		return err
	}

	pterm.DefaultBasicText.WithWriter(w).Println(
		pterm.Sprintf("found %d mod(s) under %s in %s", len(s.Found), s.Root, s.Elapsed),
	)

	if len(s.Warnings) > 0 {
		warn := pterm.Warning.WithWriter(w)
		for _, wrn := range s.Warnings {
			warn.Printfln("%s: %v", wrn.Path, wrn.Err)
		}
	}
	return nil
}

// PrintJSON renders a summary for --json output: pterm is presentation
// only, so JSON mode skips it entirely and encodes the Summary directly,
// the way the teacher's JSONFormatter (internal/output/json.go) disables
// HTML escaping for a clean, tool-friendly stream.
func PrintJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
