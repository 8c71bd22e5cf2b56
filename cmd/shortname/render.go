package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cognicore/shortname/pkg/shortname"
	"github.com/cognicore/shortname/pkg/shortname/result"
)

// printResult writes a human-readable report of one result.
func printResult(w io.Writer, r result.ProcessingResult, limit int) {
	if r.Success {
		fmt.Fprintf(w, "Short name: %s\n", r.ShortName)
	} else {
		fmt.Fprintf(w, "Short name: %s (FAILED)\n", r.ShortName)
	}
	fmt.Fprintf(w, "Characters: %d/%d\n\n", r.CharacterCount, limit)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tNAME\tVALUE\tORIGINAL\tRULES")
	for _, c := range r.Components {
		rules := make([]string, len(c.RulesApplied))
		for i, rule := range c.RulesApplied {
			rules[i] = string(rule)
		}
		name := c.PositionName
		if c.Mandatory {
			name += "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Position, name, dash(c.Value), dash(c.Original), dash(strings.Join(rules, ", ")))
	}
	tw.Flush()

	if len(r.Messages) > 0 {
		fmt.Fprintln(w)
		for _, m := range r.Messages {
			fmt.Fprintln(w, "  "+m.String())
		}
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printStatus(w io.Writer, st shortname.Status) {
	if !st.Loaded {
		fmt.Fprintln(w, "Dictionary: not loaded")
		return
	}
	fmt.Fprintf(w, "Dictionary: %s\n", st.Source)
	fmt.Fprintf(w, "Entries:    %d\n", st.Entries)
	if st.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:    %d malformed row(s)\n", st.Skipped)
	}
	fmt.Fprintf(w, "Revision:   %s\n", st.Revision)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
