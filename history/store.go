// Package history records per-run metrics. Only a SHA-256 of the input is
// kept, never the text itself.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind names the operation that produced a run.
type Kind string

const (
	KindAnalyze  Kind = "analyze"
	KindRewrite  Kind = "rewrite"
	KindHumanize Kind = "humanize"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Run is one recorded operation.
type Run struct {
	ID          uuid.UUID
	Kind        Kind
	InputSHA256 string
	ScoreBefore int
	ScoreAfter  int
	Options     []string
	CreatedAt   time.Time
}

// NewRun hashes input and stamps a fresh id and time.
func NewRun(kind Kind, input string, before, after int, options []string) Run {
	sum := sha256.Sum256([]byte(input))
	return Run{
		ID:          uuid.New(),
		Kind:        kind,
		InputSHA256: hex.EncodeToString(sum[:]),
		ScoreBefore: before,
		ScoreAfter:  after,
		Options:     options,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store persists runs.
type Store interface {
	Record(ctx context.Context, run Run) error
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)
	// Backend names the storage in use ("memory", "sqlite", "postgres").
	Backend() string
	Close() error
}

// Open picks a backend from dsn:
//
//	""              in-memory ring holding the last capacity runs
//	sqlite://path   modernc.org/sqlite
//	postgres://...  pgx
//
// SQL backends are migrated before Open returns.
func Open(ctx context.Context, dsn string, capacity int) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return NewMemory(capacity), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQL(ctx, dialectSQLite, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return openSQL(ctx, dialectPostgres, dsn)
	}
	return nil, fmt.Errorf("history: unsupported DSN scheme in %q (want sqlite:// or postgres://)", redact(dsn))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 12 {
		return dsn[:12] + "..."
	}
	return dsn
}
