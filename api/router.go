package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"github.com/use-agent/unslop/api/handler"
	"github.com/use-agent/unslop/api/middleware"
	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/ingest"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/pipeline"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Engine    *pipeline.Engine
	Extractor *ingest.Extractor
	LLM       *llm.Client
	History   history.Store
	Batches   *handler.Batches
	StartTime time.Time
}

// bodyOverhead leaves room for JSON framing and base64 expansion on top of
// the text size limit.
const bodyOverhead = 64 << 10

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → BodyLimit
//	API:     Auth (if enabled) → RateLimit
//
// /health is served without auth.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.BodyLimit(cfg.Server.MaxTextBytes*4/3 + bodyOverhead))

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(d.Engine, d.LLM, d.History, d.StartTime))

	// Everything else needs auth and is rate limited.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Local heuristics
	protected.POST("/analyze", handler.Analyze(d.Engine, d.Extractor, d.History))
	protected.POST("/rewrite", handler.Rewrite(d.Engine, d.Extractor, d.History))

	// LLM
	protected.POST("/humanize", handler.Humanize(d.Engine, d.Extractor, d.LLM, d.History))
	protected.POST("/critique", handler.Critique(d.Engine, d.Extractor, d.LLM))

	// Batch
	protected.POST("/batch/humanize", d.Batches.Post())
	protected.GET("/batch/:id", d.Batches.Get())

	// History
	protected.GET("/history", handler.History(d.History))

	return r
}

// NewHandler wraps the router with gzip response compression.
func NewHandler(cfg *config.Config, d Deps) http.Handler {
	return gzhttp.GzipHandler(NewRouter(cfg, d))
}
