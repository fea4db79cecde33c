package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 200 * time.Millisecond

func newWatchCmd(g *globalFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-score a file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.sample {
				return errors.New("--sample cannot be watched")
			}
			eng, err := g.engine()
			if err != nil {
				return err
			}
			path := args[0]
			out := cmd.OutOrStdout()
			jsonOut := g.wantJSON(out)

			name := filepath.Base(path)
			report := func(text string) error {
				result := eng.Analyze(text)
				if jsonOut {
					return writeJSON(out, newAnalyzeOutput(name, text, result))
				}
				if _, err := fmt.Fprintf(out, "── %s  %s\n", time.Now().Format("15:04:05"), inputSummary(name, text)); err != nil {
					return err
				}
				if err := writeResultTable(out, result, nil); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out)
				return err
			}

			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if err := report(string(text)); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchFile(ctx, path, debounce, report)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before re-scoring")
	return cmd
}

// watchFile calls onChange with the file contents after each burst of
// writes settles. The parent directory is watched so editors that save by
// renaming a temp file are still seen. It returns when ctx is done or
// onChange fails.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func(string) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create fsnotify: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(debounce)
				continue
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer.C:
			text, err := os.ReadFile(abs)
			if err != nil {
				// Mid-save; the next event retries.
				continue
			}
			if err := onChange(string(text)); err != nil {
				return fmt.Errorf("watch: report: %w", err)
			}
		}
	}
}
