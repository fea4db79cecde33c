package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/use-agent/unslop/analyzer"
)

type analyzeOutput struct {
	Input    string             `json:"input"`
	Bytes    int                `json:"bytes"`
	Analysis analyzer.Result    `json:"analysis"`
	Warnings []analyzer.Warning `json:"warnings"`
}

// newAnalyzeOutput reports an empty warning list as [] rather than null.
func newAnalyzeOutput(name, text string, result analyzer.Result) analyzeOutput {
	warnings := result.Warnings()
	if warnings == nil {
		warnings = []analyzer.Warning{}
	}
	return analyzeOutput{
		Input:    name,
		Bytes:    len(text),
		Analysis: result,
		Warnings: warnings,
	}
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Score a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine()
			if err != nil {
				return err
			}
			text, name, err := g.readInput(cmd, args)
			if err != nil {
				return err
			}

			result := eng.Analyze(text)
			out := cmd.OutOrStdout()
			if g.wantJSON(out) {
				return writeJSON(out, newAnalyzeOutput(name, text, result))
			}

			fmt.Fprintln(out, inputSummary(name, text))
			fmt.Fprintln(out)
			return writeResultTable(out, result, nil)
		},
	}
}
