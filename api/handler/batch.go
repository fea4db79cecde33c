package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/ingest"
	"github.com/use-agent/unslop/llm"
	"github.com/use-agent/unslop/models"
	"github.com/use-agent/unslop/pipeline"
	"github.com/use-agent/unslop/webhook"
)

// batchJob tracks one batch. All fields are guarded by mu.
type batchJob struct {
	mu        sync.Mutex
	id        string
	status    string
	total     int
	completed int
	failed    int
	results   []*models.BatchItem
	createdAt time.Time
}

func (j *batchJob) snapshot() models.BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]*models.BatchItem, len(j.results))
	copy(results, j.results)
	return models.BatchStatusResponse{
		ID:        j.id,
		Status:    j.status,
		Completed: j.completed,
		Total:     j.total,
		Results:   results,
	}
}

func (j *batchJob) finishItem(item *models.BatchItem) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results[item.Index] = item
	j.completed++
	if !item.Success {
		j.failed++
	}
}

func (j *batchJob) finish() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case j.failed == j.total:
		j.status = models.BatchFailed
	case j.failed > 0:
		j.status = models.BatchPartial
	default:
		j.status = models.BatchCompleted
	}
	return j.status
}

// Batches runs async humanize jobs and serves their status. Jobs are kept
// in memory and expire after cfg.JobTTL.
type Batches struct {
	eng       *pipeline.Engine
	ex        *ingest.Extractor
	client    *llm.Client
	hist      history.Store
	sender    *webhook.Sender
	cfg       config.BatchConfig
	jobs      sync.Map // id → *batchJob
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewBatches creates the batch runner and starts its expiry loop.
func NewBatches(eng *pipeline.Engine, ex *ingest.Extractor, client *llm.Client, hist history.Store, sender *webhook.Sender, cfg config.BatchConfig) *Batches {
	if cfg.MaxTexts <= 0 {
		cfg.MaxTexts = 50
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	if sender == nil {
		sender = webhook.NewSender(nil, nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &Batches{
		eng:    eng,
		ex:     ex,
		client: client,
		hist:   hist,
		sender: sender,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	go b.expireLoop(5 * time.Minute)
	return b
}

// Close cancels running jobs and waits for them to stop.
func (b *Batches) Close() {
	b.closeOnce.Do(func() {
		b.cancel()
		b.wg.Wait()
	})
}

// Post returns a handler for POST /api/v1/batch/humanize.
// It validates the request, creates a job and humanizes the texts in the
// background with bounded concurrency.
func (b *Batches) Post() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchHumanizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if len(req.Texts) > b.cfg.MaxTexts {
			respondError(c, models.NewServiceError(models.ErrCodeInvalidInput,
				fmt.Sprintf("maximum %d texts per batch", b.cfg.MaxTexts), nil))
			return
		}
		opts, err := humanizeOptions(req.Options)
		if err != nil {
			respondError(c, err)
			return
		}
		if !b.client.Configured() {
			respondError(c, &llm.ConfigurationError{Message: "missing UNSLOP_LLM_API_KEY (or OPENROUTER_API_KEY); set it and restart the server"})
			return
		}

		job := &batchJob{
			id:        uuid.NewString(),
			status:    models.BatchProcessing,
			total:     len(req.Texts),
			results:   make([]*models.BatchItem, len(req.Texts)),
			createdAt: time.Now(),
		}
		b.jobs.Store(job.id, job)

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.run(job, req.Texts, opts)
			if req.WebhookURL != "" {
				snap := job.snapshot()
				b.sender.DeliverAsync(req.WebhookURL, req.WebhookSecret,
					webhook.NewEvent(webhook.EventBatchCompleted, job.id, snap))
			}
		}()

		c.JSON(http.StatusAccepted, models.BatchResponse{
			ID:     job.id,
			Status: models.BatchProcessing,
			Total:  job.total,
		})
	}
}

// Get returns a handler for GET /api/v1/batch/:id.
func (b *Batches) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := b.jobs.Load(c.Param("id"))
		if !ok {
			respondError(c, models.NewServiceError(models.ErrCodeNotFound, "batch job not found", nil))
			return
		}
		c.JSON(http.StatusOK, val.(*batchJob).snapshot())
	}
}

// run humanizes every text with concurrency limited by a semaphore.
func (b *Batches) run(job *batchJob, texts []string, opts llm.HumanizeOptions) {
	sem := make(chan struct{}, b.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			job.finishItem(b.humanizeOne(i, text, opts))
		}()
	}
	wg.Wait()

	status := job.finish()
	snap := job.snapshot()
	slog.Info("batch job finished",
		"id", job.id,
		"status", status,
		"completed", snap.Completed,
		"total", snap.Total,
	)
}

func (b *Batches) humanizeOne(idx int, text string, opts llm.HumanizeOptions) *models.BatchItem {
	item := &models.BatchItem{Index: idx}

	doc, err := b.ex.Extract(b.ctx, models.Source{Format: ingest.FormatText, Text: text})
	if err != nil {
		item.Error = toServiceError(err).ToDetail()
		return item
	}

	out, err := b.client.Humanize(b.ctx, doc.Text, opts)
	if err != nil {
		item.Error = toServiceError(err).ToDetail()
		return item
	}

	report := b.eng.Compare(doc.Text, out)
	record(b.ctx, b.hist, history.NewRun(history.KindHumanize, doc.Text, report.Before.Score, report.After.Score, humanizeLabels(opts)))

	item.Success = true
	item.Output = out
	item.ScoreBefore = report.Before.Score
	item.ScoreAfter = report.After.Score
	return item
}

func (b *Batches) expireLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-b.ctx.Done():
			return
		case now := <-ticker.C:
			b.expire(now)
		}
	}
}

// expire drops jobs created more than JobTTL before now.
func (b *Batches) expire(now time.Time) {
	cutoff := now.Add(-b.cfg.JobTTL)
	b.jobs.Range(func(key, value any) bool {
		job := value.(*batchJob)
		job.mu.Lock()
		old := job.createdAt.Before(cutoff)
		job.mu.Unlock()
		if old {
			b.jobs.Delete(key)
		}
		return true
	})
}
