package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/pipeline"
)

func TestToServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"service error", models.NewServiceError(models.ErrCodeFetchFailed, "x", nil), models.ErrCodeFetchFailed, http.StatusBadGateway},
		{"wrapped service error", fmt.Errorf("ingest: %w", models.NewServiceError(models.ErrCodeExtraction, "x", nil)), models.ErrCodeExtraction, http.StatusUnprocessableEntity},
		{"not configured", &llm.ConfigurationError{Message: "no key"}, models.ErrCodeLLMNotConfigured, http.StatusServiceUnavailable},
		{"auth", &llm.RemoteServiceError{StatusCode: 403, Message: "forbidden"}, models.ErrCodeLLMAuthFailure, http.StatusBadGateway},
		{"rate limited", &llm.RemoteServiceError{StatusCode: 429}, models.ErrCodeLLMRateLimited, http.StatusTooManyRequests},
		{"empty", &llm.RemoteServiceError{Err: llm.ErrEmptyCompletion}, models.ErrCodeLLMEmpty, http.StatusBadGateway},
		{"provider", &llm.RemoteServiceError{StatusCode: 500, Message: "boom"}, models.ErrCodeLLMFailure, http.StatusBadGateway},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), models.ErrCodeLLMFailure, http.StatusBadGateway},
		{"other", errors.New("disk on fire"), models.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toServiceError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, mapErrorToStatus(got))
		})
	}
}

func TestProviderMessageSurvives(t *testing.T) {
	got := toServiceError(&llm.RemoteServiceError{StatusCode: 500, Message: "model overloaded"})
	assert.Equal(t, "LLM provider error (500): model overloaded", got.Message)
}

func TestHumanizeOptions(t *testing.T) {
	opts, err := humanizeOptions(nil)
	assert.NoError(t, err)
	assert.Equal(t, llm.DefaultHumanizeOptions(), opts)

	opts, err = humanizeOptions(&llm.HumanizeOptions{Tone: "casual"})
	assert.NoError(t, err)
	assert.Equal(t, "medium", opts.Strength)
	assert.False(t, opts.RemoveEmojis)

	_, err = humanizeOptions(&llm.HumanizeOptions{Strength: "extreme"})
	var svcErr *models.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, models.ErrCodeInvalidInput, svcErr.Code)
}

func TestHumanizeLabels(t *testing.T) {
	got := humanizeLabels(llm.HumanizeOptions{Tone: "academic", Strength: "light", LimitEmDashes: true})
	assert.Equal(t, []string{"tone=academic", "strength=light", "limit_em_dashes"}, got)
}

func TestBatchJobStatus(t *testing.T) {
	tests := []struct {
		name    string
		success []bool
		want    string
	}{
		{"all ok", []bool{true, true}, models.BatchCompleted},
		{"some failed", []bool{true, false}, models.BatchPartial},
		{"all failed", []bool{false, false}, models.BatchFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &batchJob{total: len(tt.success), results: make([]*models.BatchItem, len(tt.success))}
			for i, ok := range tt.success {
				job.finishItem(&models.BatchItem{Index: i, Success: ok})
			}
			assert.Equal(t, tt.want, job.finish())
			snap := job.snapshot()
			assert.Equal(t, len(tt.success), snap.Completed)
			assert.Len(t, snap.Results, len(tt.success))
		})
	}
}

func TestBatchesExpire(t *testing.T) {
	b := NewBatches(pipeline.Default(), nil, llm.NewClient(llm.Options{}, nil, nil), nil, nil, config.BatchConfig{JobTTL: time.Hour})
	t.Cleanup(b.Close)

	now := time.Now()
	b.jobs.Store("old", &batchJob{id: "old", createdAt: now.Add(-2 * time.Hour)})
	b.jobs.Store("new", &batchJob{id: "new", createdAt: now.Add(-time.Minute)})

	b.expire(now)

	_, ok := b.jobs.Load("old")
	assert.False(t, ok)
	_, ok = b.jobs.Load("new")
	assert.True(t, ok)
}
