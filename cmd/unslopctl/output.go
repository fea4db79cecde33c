package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/use-agent/unslop/analyzer"
	"github.com/use-agent/unslop/textutil"
)

// wantJSON reports whether output to w should be JSON: forced by --json,
// or because w is not a terminal.
func (g *globalFlags) wantJSON(w io.Writer) bool {
	if g.json {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// inputSummary is one line describing the input size.
func inputSummary(name, text string) string {
	return fmt.Sprintf("%s: %s, %s words", name,
		humanize.Bytes(uint64(len(text))),
		humanize.Comma(int64(textutil.WordCount(text))))
}

// writeResultTable prints the metrics as an aligned table. after may be nil.
func writeResultTable(w io.Writer, before analyzer.Result, after *analyzer.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if after == nil {
		fmt.Fprintln(tw, "METRIC\tVALUE")
	} else {
		fmt.Fprintln(tw, "METRIC\tBEFORE\tAFTER")
	}

	rows := []struct {
		name string
		get  func(analyzer.Result) string
	}{
		{"score", func(r analyzer.Result) string { return fmt.Sprintf("%d/100", r.Score) }},
		{"emojis", func(r analyzer.Result) string { return fmt.Sprint(r.EmojiCount) }},
		{"em dashes", func(r analyzer.Result) string { return fmt.Sprint(r.EmDashCount) }},
		{"clichés", func(r analyzer.Result) string { return fmt.Sprint(r.ClicheCount) }},
		{"buzzwords", func(r analyzer.Result) string { return fmt.Sprint(r.BuzzwordCount) }},
		{"avg sentence", func(r analyzer.Result) string { return fmt.Sprintf("%.1f words", r.AvgSentenceLength) }},
		{"repetition", func(r analyzer.Result) string { return fmt.Sprintf("%.0f%%", r.RepetitionRatio*100) }},
	}
	for _, row := range rows {
		if after == nil {
			fmt.Fprintf(tw, "%s\t%s\n", row.name, row.get(before))
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.name, row.get(before), row.get(*after))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	final := before
	if after != nil {
		final = *after
	}
	if ws := final.Warnings(); len(ws) > 0 {
		names := make([]string, len(ws))
		for i, w := range ws {
			names[i] = string(w)
		}
		_, err := fmt.Fprintf(w, "\nwarnings: %s\n", strings.Join(names, ", "))
		return err
	}
	return nil
}
