package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/models"
)

const recordTimeout = 2 * time.Second

// respondError classifies err and writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	svcErr := toServiceError(err)
	if svcErr.Code == models.ErrCodeInternal {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(mapErrorToStatus(svcErr), models.ErrorResponse{
		Success: false,
		Error:   svcErr.ToDetail(),
	})
}

// badRequest reports a body that failed to bind.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}

// toServiceError maps ingest, LLM and context errors onto error codes.
func toServiceError(err error) *models.ServiceError {
	var (
		svcErr  *models.ServiceError
		confErr *llm.ConfigurationError
		remote  *llm.RemoteServiceError
	)
	switch {
	case errors.As(err, &svcErr):
		return svcErr
	case errors.As(err, &confErr):
		return models.NewServiceError(models.ErrCodeLLMNotConfigured, confErr.Message, err)
	case errors.As(err, &remote):
		switch {
		case errors.Is(remote, llm.ErrEmptyCompletion):
			return models.NewServiceError(models.ErrCodeLLMEmpty, "the model returned no text; try again", err)
		case remote.IsAuth():
			return models.NewServiceError(models.ErrCodeLLMAuthFailure, "the LLM provider rejected the API key", err)
		case remote.IsRateLimited():
			return models.NewServiceError(models.ErrCodeLLMRateLimited, "the LLM provider is rate limiting requests; retry later", err)
		}
		return models.NewServiceError(models.ErrCodeLLMFailure, remote.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewServiceError(models.ErrCodeLLMFailure, "the request timed out", err)
	}
	return models.NewServiceError(models.ErrCodeInternal, "internal error", err)
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ServiceError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType // 415
	case models.ErrCodeExtraction:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeRateLimited, models.ErrCodeLLMRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeFetchFailed, models.ErrCodeLLMFailure, models.ErrCodeLLMAuthFailure, models.ErrCodeLLMEmpty:
		return http.StatusBadGateway // 502
	case models.ErrCodeLLMNotConfigured:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// record stores a run. Failures are logged and otherwise ignored.
func record(ctx context.Context, hist history.Store, run history.Run) {
	if hist == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := hist.Record(ctx, run); err != nil {
		slog.Warn("history record failed", "kind", run.Kind, "backend", hist.Backend(), "error", err)
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](w []T) []T {
	if w == nil {
		return []T{}
	}
	return w
}
