package models

import (
	"time"

	"github.com/use-agent/unslop/analyzer"
	"github.com/use-agent/unslop/lexicon"
)

// DocumentInfo describes the ingested input.
type DocumentInfo struct {
	Format string `json:"format"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Bytes  int    `json:"bytes"`
	Words  int    `json:"words"`
	Tokens int    `json:"estimated_tokens"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	TotalMs  int64 `json:"total_ms"`
	IngestMs int64 `json:"ingest_ms"`
}

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	Success  bool               `json:"success"`
	Analysis analyzer.Result    `json:"analysis"`
	Warnings []analyzer.Warning `json:"warnings"`
	Document DocumentInfo       `json:"document"`
	Timing   TimingInfo         `json:"timing"`
	Error    *ErrorDetail       `json:"error,omitempty"`
}

// RewriteResponse is the response for POST /api/v1/rewrite.
type RewriteResponse struct {
	Success    bool               `json:"success"`
	Output     string             `json:"output"`
	Before     analyzer.Result    `json:"before"`
	After      analyzer.Result    `json:"after"`
	ScoreDelta int                `json:"score_delta"`
	Similarity float64            `json:"similarity"`
	Warnings   []analyzer.Warning `json:"warnings"`
	Applied    []string           `json:"applied"`
	Document   DocumentInfo       `json:"document"`
	Timing     TimingInfo         `json:"timing"`
	Error      *ErrorDetail       `json:"error,omitempty"`
}

// HumanizeResponse is the response for POST /api/v1/humanize.
type HumanizeResponse struct {
	Success    bool            `json:"success"`
	Output     string          `json:"output"`
	Model      string          `json:"model,omitempty"`
	Before     analyzer.Result `json:"before"`
	After      analyzer.Result `json:"after"`
	ScoreDelta int             `json:"score_delta"`
	Similarity float64         `json:"similarity"`
	Timing     TimingInfo      `json:"timing"`
	Error      *ErrorDetail    `json:"error,omitempty"`
}

// CritiqueResponse is the response for POST /api/v1/critique.
type CritiqueResponse struct {
	Success  bool            `json:"success"`
	Critique string          `json:"critique"`
	Model    string          `json:"model,omitempty"`
	Analysis analyzer.Result `json:"analysis"`
	Timing   TimingInfo      `json:"timing"`
	Error    *ErrorDetail    `json:"error,omitempty"`
}

// HistoryEntry is one recorded run. The text itself is never stored.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	InputSHA256 string    `json:"input_sha256"`
	ScoreBefore int       `json:"score_before"`
	ScoreAfter  int       `json:"score_after"`
	Options     []string  `json:"options"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse is the response for GET /api/v1/history.
type HistoryResponse struct {
	Success bool           `json:"success"`
	Runs    []HistoryEntry `json:"runs"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status        string        `json:"status"` // "healthy" or "degraded"
	Uptime        string        `json:"uptime"`
	Version       string        `json:"version"`
	Lexicon       lexicon.Stats `json:"lexicon"`
	LLMConfigured bool          `json:"llm_configured"`
	History       string        `json:"history"`
}

// ErrorResponse is the body of every failed request that has no richer
// response type.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
