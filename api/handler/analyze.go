package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/ingest"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/pipeline"
	"github.com/use-agent/unslop/rewriter"
)

// Analyze returns a handler for POST /api/v1/analyze.
//
// Orchestration flow:
//  1. Parse the request and resolve the text shorthand into a source.
//  2. Extractor.Extract → plain text   (records ingest_ms)
//  3. Engine.Analyze    → metrics and score
//  4. Record the run and respond.
func Analyze(eng *pipeline.Engine, ex *ingest.Extractor, hist history.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ingestStart := time.Now()
		doc, err := ex.Extract(c.Request.Context(), models.ResolveSource(req.Text, req.Source))
		ingestMs := time.Since(ingestStart).Milliseconds()
		if err != nil {
			respondError(c, err)
			return
		}

		result := eng.Analyze(doc.Text)
		record(c.Request.Context(), hist, history.NewRun(history.KindAnalyze, doc.Text, result.Score, result.Score, nil))

		c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:  true,
			Analysis: result,
			Warnings: nonNil(result.Warnings()),
			Document: doc.Info(),
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				IngestMs: ingestMs,
			},
		})
	}
}

// Rewrite returns a handler for POST /api/v1/rewrite.
//
// Same ingestion as Analyze, then Engine.Run with the requested passes
// (every pass but jitter when options are omitted).
func Rewrite(eng *pipeline.Engine, ex *ingest.Extractor, hist history.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.RewriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		opts := rewriter.DefaultOptions()
		if req.Options != nil {
			opts = *req.Options
		}

		ingestStart := time.Now()
		doc, err := ex.Extract(c.Request.Context(), models.ResolveSource(req.Text, req.Source))
		ingestMs := time.Since(ingestStart).Milliseconds()
		if err != nil {
			respondError(c, err)
			return
		}

		report := eng.Run(doc.Text, opts)
		applied := opts.Enabled()
		record(c.Request.Context(), hist, history.NewRun(history.KindRewrite, doc.Text, report.Before.Score, report.After.Score, applied))

		c.JSON(http.StatusOK, models.RewriteResponse{
			Success:    true,
			Output:     report.Output,
			Before:     report.Before,
			After:      report.After,
			ScoreDelta: report.ScoreDelta,
			Similarity: report.Similarity,
			Warnings:   nonNil(report.After.Warnings()),
			Applied:    nonNil(applied),
			Document:   doc.Info(),
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				IngestMs: ingestMs,
			},
		})
	}
}
