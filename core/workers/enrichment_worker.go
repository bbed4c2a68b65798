// ABOUTME: Enrichment worker handles background processing of metadata and markdown rendering
// ABOUTME: Provides managed worker pools for asynchronous enrichment of accepted extractions

package workers

import (
	"context"
	"sync"
	"time"

	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"
)

// EnrichmentJob represents a job for enrichment processing
type EnrichmentJob struct {
	Type     JobType
	URLs     []string
	Content  *domain.ExtractedContent
	Context  context.Context
	ResultCh chan<- interface{}
	ErrorCh  chan<- error
}

// JobType represents the type of enrichment job
type JobType int

const (
	JobTypeMetadata JobType = iota
	JobTypeMarkdown
)

// EnrichmentWorker manages background enrichment processing
type EnrichmentWorker struct {
	enrichmentService interfaces.ContentEnrichmentService
	logger            interfaces.Logger
	jobQueue          chan *EnrichmentJob
	maxWorkers        int
	queueSize         int
	workers           []*worker
	wg                sync.WaitGroup
	ctx               context.Context
	cancel            context.CancelFunc
	mu                sync.Mutex
	running           bool
}

// worker represents an individual worker goroutine
type worker struct {
	id                int
	jobQueue          <-chan *EnrichmentJob
	enrichmentService interfaces.ContentEnrichmentService
	ctx               context.Context
	wg                *sync.WaitGroup
}

// WorkerConfig holds configuration for the enrichment worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
	Logger     interfaces.Logger
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  100,
	}
}

// NewEnrichmentWorker creates a new enrichment worker
func NewEnrichmentWorker(enrichmentService interfaces.ContentEnrichmentService, config WorkerConfig) *EnrichmentWorker {
	ctx, cancel := context.WithCancel(context.Background())

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	return &EnrichmentWorker{
		enrichmentService: enrichmentService,
		logger:            config.Logger,
		jobQueue:          make(chan *EnrichmentJob, config.QueueSize),
		maxWorkers:        config.MaxWorkers,
		queueSize:         config.QueueSize,
		workers:           make([]*worker, 0, config.MaxWorkers),
		ctx:               ctx,
		cancel:            cancel,
		running:           false,
	}
}

// Start starts the worker pool
func (ew *EnrichmentWorker) Start() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if ew.running {
		return nil
	}

	for i := 0; i < ew.maxWorkers; i++ {
		w := &worker{
			id:                i,
			jobQueue:          ew.jobQueue,
			enrichmentService: ew.enrichmentService,
			ctx:               ew.ctx,
			wg:                &ew.wg,
		}
		ew.workers = append(ew.workers, w)
		ew.wg.Add(1)
		go w.run()
	}

	ew.running = true
	return nil
}

// Stop stops the worker pool gracefully. The queue is never closed: a
// concurrent SubmitJob that already passed the running check may still be
// sending, and workers exit on context cancellation anyway.
func (ew *EnrichmentWorker) Stop() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if !ew.running {
		return nil
	}

	ew.cancel()
	ew.wg.Wait()

	ew.running = false
	return nil
}

// SubmitJob submits a job to the worker pool
func (ew *EnrichmentWorker) SubmitJob(job *EnrichmentJob) error {
	ew.mu.Lock()
	if !ew.running {
		ew.mu.Unlock()
		return ErrWorkerNotRunning
	}
	ew.mu.Unlock()

	select {
	case ew.jobQueue <- job:
		return nil
	case <-time.After(5 * time.Second):
		return ErrQueueFull
	}
}

// trySubmit enqueues without blocking. Request-path callers use it so a
// saturated queue sheds enrichment work instead of stalling responses.
func (ew *EnrichmentWorker) trySubmit(job *EnrichmentJob) error {
	ew.mu.Lock()
	if !ew.running {
		ew.mu.Unlock()
		return ErrWorkerNotRunning
	}
	ew.mu.Unlock()

	select {
	case ew.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// EnrichExtraction submits markdown rendering for an accepted extraction.
// The caller's value is cloned first; the original may be serializing in a
// response at the same time. Dropped jobs are logged, never retried.
func (ew *EnrichmentWorker) EnrichExtraction(ctx context.Context, content *domain.ExtractedContent, sourceURL string) {
	if content == nil {
		return
	}
	clone := *content
	job := &EnrichmentJob{
		Type:    JobTypeMarkdown,
		Content: &clone,
		Context: ctx,
	}
	if err := ew.trySubmit(job); err != nil {
		ew.warn("Dropped markdown enrichment job", content.URL, err)
	}

	// A canonical URL that diverges from the snapshot URL is a resolved
	// permalink (LinkedIn URNs). Probe it for og metadata so the cached
	// entry carries the canonical title and image.
	if content.URL != "" && sourceURL != "" && content.URL != sourceURL {
		if err := ew.trySubmit(&EnrichmentJob{
			Type:    JobTypeMetadata,
			URLs:    []string{content.URL},
			Context: ctx,
		}); err != nil {
			ew.warn("Dropped permalink metadata job", content.URL, err)
		}
	}
}

// ExtractMetadataBatch submits a batch metadata extraction job
func (ew *EnrichmentWorker) ExtractMetadataBatch(ctx context.Context, urls []string) {
	job := &EnrichmentJob{
		Type:    JobTypeMetadata,
		URLs:    urls,
		Context: ctx,
	}
	_ = ew.SubmitJob(job)
}

func (ew *EnrichmentWorker) warn(msg, url string, err error) {
	if ew.logger == nil {
		return
	}
	ew.logger.Warn(msg, map[string]interface{}{
		"url":   url,
		"error": err.Error(),
	})
}

// run is the main loop for each worker
func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case job, ok := <-w.jobQueue:
			if !ok {
				return
			}
			w.processJob(job)
		case <-w.ctx.Done():
			return
		}
	}
}

// processJob processes a single enrichment job
func (w *worker) processJob(job *EnrichmentJob) {
	switch job.Type {
	case JobTypeMarkdown:
		markdown, err := w.enrichmentService.RenderMarkdown(job.Context, job.Content)
		if err != nil {
			if job.ErrorCh != nil {
				select {
				case job.ErrorCh <- err:
				case <-job.Context.Done():
				}
			}
			return
		}
		// Safe to write: request-path jobs carry a clone, and direct
		// submitters own the job they pass.
		if job.Content != nil {
			job.Content.Markdown = markdown
		}
		if job.ResultCh != nil {
			select {
			case job.ResultCh <- markdown:
			case <-job.Context.Done():
			}
		}

	case JobTypeMetadata:
		results := w.enrichmentService.ExtractMetadataBatch(job.Context, job.URLs)
		if job.ResultCh != nil {
			select {
			case job.ResultCh <- results:
			case <-job.Context.Done():
			}
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
