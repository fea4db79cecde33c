package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

type dialect struct {
	name   string // Backend()
	driver string // database/sql driver
	goose  string // goose dialect
	dir    string // embedded migrations
}

var (
	dialectSQLite   = dialect{name: "sqlite", driver: "sqlite", goose: "sqlite3", dir: "migrations/sqlite"}
	dialectPostgres = dialect{name: "postgres", driver: "pgx", goose: "postgres", dir: "migrations/postgres"}
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

const pingTimeout = 5 * time.Second

// SQL stores runs in SQLite or Postgres.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

func openSQL(ctx context.Context, d dialect, dsn string) (*SQL, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("history: empty %s DSN", d.name)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if d == dialectSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	if err := migrate(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", d.name, err)
	}
	return &SQL{db: db, dialect: d}, nil
}

func migrate(ctx context.Context, db *sql.DB, d dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(d.goose); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, d.dir)
}

const insertRun = `INSERT INTO runs (id, kind, input_sha256, score_before, score_after, options, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectRecent = `SELECT id, kind, input_sha256, score_before, score_after, options, created_at
FROM runs ORDER BY created_at DESC LIMIT ?`

func (s *SQL) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, s.rebind(insertRun),
		run.ID.String(),
		string(run.Kind),
		run.InputSHA256,
		run.ScoreBefore,
		run.ScoreAfter,
		strings.Join(run.Options, ","),
		run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQL) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(selectRecent), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			id      string
			kind    string
			options string
		)
		if err := rows.Scan(&id, &kind, &r.InputSHA256, &r.ScoreBefore, &r.ScoreAfter, &options, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan run: bad id %q: %w", id, err)
		}
		r.Kind = Kind(kind)
		r.Options = splitOptions(options)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func (s *SQL) Backend() string { return s.dialect.name }

func (s *SQL) Close() error { return s.db.Close() }

// rebind turns ? placeholders into $N for Postgres.
func (s *SQL) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func splitOptions(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
}
