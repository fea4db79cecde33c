package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/pipeline"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	lexiconPath string
	json        bool
	sample      bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "unslopctl",
		Short: "Score and rewrite text that reads as machine-written",
		Long: `unslopctl scores text for common signs of machine writing and rewrites it.

Commands:
  analyze   Score a file or stdin
  rewrite   Apply the local rewrite rules and print the result
  humanize  Rewrite with an LLM (needs UNSLOP_LLM_API_KEY or OPENROUTER_API_KEY)
  watch     Re-score a file every time it is saved`,
		Version:      Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.lexiconPath, "lexicon", os.Getenv("UNSLOP_LEXICON_FILE"), "YAML or TOML file extending the built-in lexicon")
	root.PersistentFlags().BoolVar(&g.json, "json", false, "always print JSON, even on a terminal")
	root.PersistentFlags().BoolVar(&g.sample, "sample", false, "use the built-in sample passage as input")

	root.AddCommand(
		newAnalyzeCmd(g),
		newRewriteCmd(g),
		newHumanizeCmd(g),
		newWatchCmd(g),
	)
	return root
}

// engine builds a pipeline for the --lexicon flag.
func (g *globalFlags) engine() (*pipeline.Engine, error) {
	lex, err := lexicon.Load(g.lexiconPath)
	if err != nil {
		return nil, err
	}
	return pipeline.New(lex), nil
}

// readInput reads the named file, or stdin for "" and "-". With --sample
// it returns lexicon.SampleText and rejects a file argument.
func (g *globalFlags) readInput(cmd *cobra.Command, args []string) (text, name string, err error) {
	if g.sample {
		if len(args) > 0 {
			return "", "", fmt.Errorf("--sample takes no input argument, got %q", args[0])
		}
		return lexicon.SampleText, "sample", nil
	}
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return string(b), filepath.Base(args[0]), nil
}
