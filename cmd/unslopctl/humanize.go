package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/pipeline"
)

type humanizeOutput struct {
	Input  string          `json:"input"`
	Model  string          `json:"model"`
	Report pipeline.Report `json:"report"`
}

func newHumanizeCmd(g *globalFlags) *cobra.Command {
	opts := llm.DefaultHumanizeOptions()
	var keepEmojis, keepEmDashes, keepBuzzwords, keepRhythm, keepCliches bool

	cmd := &cobra.Command{
		Use:   "humanize [file|-]",
		Short: "Rewrite with an LLM and score the result",
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

			opts.RemoveEmojis = !keepEmojis
			opts.LimitEmDashes = !keepEmDashes
			opts.ReduceBuzzwords = !keepBuzzwords
			opts.VarySentenceLength = !keepRhythm
			opts.SimplifyCliches = !keepCliches
			if err := opts.Validate(); err != nil {
				return err
			}

			cfg := config.Load().LLM
			client := llm.NewClient(llm.Options{
				APIKey:  cfg.APIKey,
				Model:   cfg.Model,
				BaseURL: cfg.BaseURL,
			}, &http.Client{Timeout: cfg.Timeout}, nil)

			out, err := client.Humanize(cmd.Context(), text, opts)
			if err != nil {
				return err
			}
			report := eng.Compare(text, out)

			w := cmd.OutOrStdout()
			if g.wantJSON(w) {
				return writeJSON(w, humanizeOutput{Input: name, Model: client.Model(), Report: report})
			}

			fmt.Fprintln(w, out)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s, model %s, similarity %.2f\n\n", inputSummary(name, text), client.Model(), report.Similarity)
			return writeResultTable(w, report.Before, &report.After)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Tone, "tone", opts.Tone, "neutral, casual, friendly, professional or academic")
	f.StringVar(&opts.Strength, "strength", opts.Strength, "light, medium or strong")
	f.BoolVar(&keepEmojis, "keep-emojis", false, "do not ask the model to remove emojis")
	f.BoolVar(&keepEmDashes, "keep-em-dashes", false, "do not ask the model to limit em dashes")
	f.BoolVar(&keepBuzzwords, "keep-buzzwords", false, "do not ask the model to cut buzzwords")
	f.BoolVar(&keepRhythm, "keep-rhythm", false, "do not ask the model to vary sentence length")
	f.BoolVar(&keepCliches, "keep-cliches", false, "do not ask the model to replace clichés")
	return cmd
}
