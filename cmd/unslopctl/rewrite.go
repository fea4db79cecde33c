package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/use-agent/unslop/pipeline"
	"github.com/use-agent/unslop/rewriter"
)

type rewriteOutput struct {
	Input   string          `json:"input"`
	Applied []string        `json:"applied"`
	Report  pipeline.Report `json:"report"`
}

func newRewriteCmd(g *globalFlags) *cobra.Command {
	var (
		noEmojis       bool
		noEmDashes     bool
		noTransitions  bool
		noContractions bool
		noVary         bool
		noBuzzwords    bool
		jitter         bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite [file|-]",
		Short: "Apply the local rewrite rules and print the result",
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

			opts := rewriter.Options{
				ReduceEmojis:        !noEmojis,
				LimitEmDashes:       !noEmDashes,
				SimplifyTransitions: !noTransitions,
				UseContractions:     !noContractions,
				VarySentenceLength:  !noVary,
				ReplaceBuzzwords:    !noBuzzwords,
				JitterSyntax:        jitter,
			}
			report := eng.Run(text, opts)

			out := cmd.OutOrStdout()
			if g.wantJSON(out) {
				applied := opts.Enabled()
				if applied == nil {
					applied = []string{}
				}
				return writeJSON(out, rewriteOutput{Input: name, Applied: applied, Report: report})
			}

			fmt.Fprintln(out, report.Output)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s, similarity %.2f\n\n", inputSummary(name, text), report.Similarity)
			return writeResultTable(out, report.Before, &report.After)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&noEmojis, "no-emojis", false, "keep emojis")
	f.BoolVar(&noEmDashes, "no-em-dashes", false, "keep em dashes")
	f.BoolVar(&noTransitions, "no-transitions", false, "keep formal transitions")
	f.BoolVar(&noContractions, "no-contractions", false, "do not add contractions")
	f.BoolVar(&noVary, "no-vary", false, "do not merge or split sentences")
	f.BoolVar(&noBuzzwords, "no-buzzwords", false, "keep buzzwords and clichés")
	f.BoolVar(&jitter, "jitter", false, "make small syntactic substitutions")
	return cmd
}
