package models

import (
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/rewriter"
)

// Source describes where the text to work on comes from. Exactly one of
// Text, Data or URL is used, chosen by Format.
type Source struct {
	// Format is one of "text" (default), "html", "pdf", "docx", "url".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=text html pdf docx url"`

	// Text is the raw input for "text" and "html".
	Text string `json:"text,omitempty"`

	// Data is the base64-encoded document for "pdf" and "docx".
	Data string `json:"data,omitempty"`

	// URL is the page to fetch for "url".
	URL string `json:"url,omitempty" binding:"omitempty,url"`

	// CSSSelector optionally narrows HTML to the matched elements.
	CSSSelector string `json:"css_selector,omitempty"`

	// OutputFormat is "text" (default) or "markdown" for HTML sources.
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=text markdown"`
}

// AnalyzeRequest is the payload for POST /api/v1/analyze. Text is a
// shorthand for Source{Format: "text", Text: ...}.
type AnalyzeRequest struct {
	Text   string  `json:"text,omitempty"`
	Source *Source `json:"source,omitempty"`
}

// RewriteRequest is the payload for POST /api/v1/rewrite.
type RewriteRequest struct {
	Text   string  `json:"text,omitempty"`
	Source *Source `json:"source,omitempty"`

	// Options selects rewrite passes. Default: every pass but jitter.
	Options *rewriter.Options `json:"options,omitempty"`
}

// HumanizeRequest is the payload for POST /api/v1/humanize.
type HumanizeRequest struct {
	Text string `json:"text" binding:"required"`

	// Options steer the prompt. Default: neutral tone, medium strength,
	// every toggle on.
	Options *llm.HumanizeOptions `json:"options,omitempty"`
}

// CritiqueRequest is the payload for POST /api/v1/critique.
type CritiqueRequest struct {
	Text string `json:"text" binding:"required"`
}

// ResolveSource folds the Text shorthand into a Source.
func ResolveSource(text string, src *Source) Source {
	if src != nil {
		s := *src
		if s.Format == "" {
			s.Format = "text"
		}
		if s.Text == "" && text != "" && (s.Format == "text" || s.Format == "html") {
			s.Text = text
		}
		return s
	}
	return Source{Format: "text", Text: text}
}
