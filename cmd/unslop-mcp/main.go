package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/unslop/cache"
	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/pipeline"
	"github.com/use-agent/unslop/rewriter"
)

func main() {
	cfg := config.Load()

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load lexicon: %v\n", err)
		os.Exit(1)
	}
	eng := pipeline.New(lex)

	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	defer cc.Close()
	llmClient := llm.NewClient(llm.Options{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	}, &http.Client{Timeout: cfg.LLM.Timeout}, cc)

	s := server.NewMCPServer(
		"unslop",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	analyzeTool := mcp.NewTool("analyze_text",
		mcp.WithDescription("Score how machine-written a passage looks (0-100) and report emoji, em dash, cliché, buzzword, sentence length and repetition metrics. Runs locally; no LLM call."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to analyze"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyze(eng))

	rewriteTool := mcp.NewTool("rewrite_text",
		mcp.WithDescription("Rewrite a passage with deterministic local rules (strip emojis, replace em dashes and buzzwords, add contractions, simplify transitions, vary sentence length) and report the score before and after."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to rewrite"),
		),
		mcp.WithBoolean("reduce_emojis", mcp.Description("Strip emojis (default true)")),
		mcp.WithBoolean("limit_em_dashes", mcp.Description("Replace em dashes with commas (default true)")),
		mcp.WithBoolean("simplify_transitions", mcp.Description("Swap formal transitions such as 'however' (default true)")),
		mcp.WithBoolean("use_contractions", mcp.Description("Contract 'do not' and similar (default true)")),
		mcp.WithBoolean("vary_sentence_length", mcp.Description("Merge very short sentences and split very long ones (default true)")),
		mcp.WithBoolean("replace_buzzwords", mcp.Description("Replace buzzwords and clichés with plain words (default true)")),
		mcp.WithBoolean("jitter_syntax", mcp.Description("Make small syntactic substitutions (default false)")),
	)
	s.AddTool(rewriteTool, handleRewrite(eng))

	humanizeTool := mcp.NewTool("humanize_text",
		mcp.WithDescription("Rewrite a passage with an LLM so it reads like natural human writing, then score the result locally. Requires UNSLOP_LLM_API_KEY or OPENROUTER_API_KEY."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to humanize"),
		),
		mcp.WithString("tone",
			mcp.Description("Target tone (default neutral)"),
			mcp.Enum(llm.Tones...),
		),
		mcp.WithString("strength",
			mcp.Description("How much to change (default medium)"),
			mcp.Enum(llm.Strengths...),
		),
	)
	s.AddTool(humanizeTool, handleHumanize(eng, llmClient))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}

func handleAnalyze(eng *pipeline.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		if strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("text is empty"), nil
		}

		result := eng.Analyze(text)
		return jsonResult(map[string]any{
			"analysis": result,
			"warnings": result.Warnings(),
		})
	}
}

func handleRewrite(eng *pipeline.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		def := rewriter.DefaultOptions()
		opts := rewriter.Options{
			ReduceEmojis:        request.GetBool("reduce_emojis", def.ReduceEmojis),
			LimitEmDashes:       request.GetBool("limit_em_dashes", def.LimitEmDashes),
			SimplifyTransitions: request.GetBool("simplify_transitions", def.SimplifyTransitions),
			UseContractions:     request.GetBool("use_contractions", def.UseContractions),
			VarySentenceLength:  request.GetBool("vary_sentence_length", def.VarySentenceLength),
			ReplaceBuzzwords:    request.GetBool("replace_buzzwords", def.ReplaceBuzzwords),
			JitterSyntax:        request.GetBool("jitter_syntax", def.JitterSyntax),
		}

		report := eng.Run(text, opts)
		var sb strings.Builder
		sb.WriteString(report.Output)
		fmt.Fprintf(&sb, "\n\n---\nScore: %d → %d (similarity %.2f)", report.Before.Score, report.After.Score, report.Similarity)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleHumanize(eng *pipeline.Engine, client *llm.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		opts := llm.DefaultHumanizeOptions()
		opts.Tone = request.GetString("tone", opts.Tone)
		opts.Strength = request.GetString("strength", opts.Strength)
		if err := opts.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := client.Humanize(ctx, text, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("humanize failed: %v", err)), nil
		}

		report := eng.Compare(text, out)
		return mcp.NewToolResultText(fmt.Sprintf("%s\n\n---\nScore: %d → %d (model %s)",
			out, report.Before.Score, report.After.Score, client.Model())), nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
