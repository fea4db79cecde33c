package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/ingest"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/pipeline"
)

// Humanize returns a handler for POST /api/v1/humanize.
//
// The text is normalised and size-checked by the extractor, rewritten by
// the model, then both versions are scored locally.
func Humanize(eng *pipeline.Engine, ex *ingest.Extractor, client *llm.Client, hist history.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.HumanizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		opts, err := humanizeOptions(req.Options)
		if err != nil {
			respondError(c, err)
			return
		}

		ingestStart := time.Now()
		doc, err := ex.Extract(c.Request.Context(), models.Source{Format: ingest.FormatText, Text: req.Text})
		ingestMs := time.Since(ingestStart).Milliseconds()
		if err != nil {
			respondError(c, err)
			return
		}

		out, err := client.Humanize(c.Request.Context(), doc.Text, opts)
		if err != nil {
			respondError(c, err)
			return
		}

		report := eng.Compare(doc.Text, out)
		record(c.Request.Context(), hist, history.NewRun(history.KindHumanize, doc.Text, report.Before.Score, report.After.Score, humanizeLabels(opts)))

		c.JSON(http.StatusOK, models.HumanizeResponse{
			Success:    true,
			Output:     out,
			Model:      client.Model(),
			Before:     report.Before,
			After:      report.After,
			ScoreDelta: report.ScoreDelta,
			Similarity: report.Similarity,
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				IngestMs: ingestMs,
			},
		})
	}
}

// Critique returns a handler for POST /api/v1/critique.
func Critique(eng *pipeline.Engine, ex *ingest.Extractor, client *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.CritiqueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ingestStart := time.Now()
		doc, err := ex.Extract(c.Request.Context(), models.Source{Format: ingest.FormatText, Text: req.Text})
		ingestMs := time.Since(ingestStart).Milliseconds()
		if err != nil {
			respondError(c, err)
			return
		}

		critique, err := client.Critique(c.Request.Context(), doc.Text)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CritiqueResponse{
			Success:  true,
			Critique: critique,
			Model:    client.Model(),
			Analysis: eng.Analyze(doc.Text),
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				IngestMs: ingestMs,
			},
		})
	}
}

// humanizeOptions applies defaults and validates tone and strength.
func humanizeOptions(in *llm.HumanizeOptions) (llm.HumanizeOptions, error) {
	if in == nil {
		return llm.DefaultHumanizeOptions(), nil
	}
	opts := *in
	opts.Defaults()
	if err := opts.Validate(); err != nil {
		return opts, models.NewServiceError(models.ErrCodeInvalidInput, err.Error(), err)
	}
	return opts, nil
}

// humanizeLabels names the prompt settings for the run history.
func humanizeLabels(o llm.HumanizeOptions) []string {
	labels := []string{"tone=" + o.Tone, "strength=" + o.Strength}
	for _, f := range []struct {
		on   bool
		name string
	}{
		{o.RemoveEmojis, "remove_emojis"},
		{o.LimitEmDashes, "limit_em_dashes"},
		{o.ReduceBuzzwords, "reduce_buzzwords"},
		{o.VarySentenceLength, "vary_sentence_length"},
		{o.SimplifyCliches, "simplify_cliches"},
	} {
		if f.on {
			labels = append(labels, f.name)
		}
	}
	return labels
}
