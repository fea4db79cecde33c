package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/pipeline"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Reports lexicon sizes and whether the LLM is configured. Status degrades
// when the history store cannot be read.
func Health(eng *pipeline.Engine, client *llm.Client, hist history.Store, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		backend := "disabled"
		if hist != nil {
			backend = hist.Backend()
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			if _, err := hist.Recent(ctx, 1); err != nil {
				status = "degraded"
			}
			cancel()
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:        status,
			Uptime:        time.Since(startTime).Round(time.Second).String(),
			Version:       Version,
			Lexicon:       eng.Lexicon().Stats(),
			LLMConfigured: client.Configured(),
			History:       backend,
		})
	}
}
