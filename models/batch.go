package models

import "github.com/use-agent/unslop/llm"

// Batch job states.
const (
	BatchProcessing = "processing"
	BatchCompleted  = "completed"
	BatchPartial    = "partial"
	BatchFailed     = "failed"
)

// BatchHumanizeRequest is the payload for POST /api/v1/batch/humanize.
type BatchHumanizeRequest struct {
	// Texts is the list of passages to humanize. Required.
	Texts []string `json:"texts" binding:"required,min=1"`

	// Options are applied to every text.
	Options *llm.HumanizeOptions `json:"options,omitempty"`

	// WebhookURL receives a batch.completed event when the job ends.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// WebhookSecret signs the webhook body (HMAC-SHA256).
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// BatchResponse is the immediate response for POST /api/v1/batch/humanize.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchItem is the outcome for one text of a batch.
type BatchItem struct {
	Index       int          `json:"index"`
	Success     bool         `json:"success"`
	Output      string       `json:"output,omitempty"`
	ScoreBefore int          `json:"score_before"`
	ScoreAfter  int          `json:"score_after"`
	Error       *ErrorDetail `json:"error,omitempty"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Results   []*BatchItem `json:"results,omitempty"`
}
