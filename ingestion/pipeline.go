package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/metrics"
	"github.com/poiesic/mangarec/storage"
)

// Pipeline cleans, validates and stores catalog items.
// Validation runs concurrently on a worker pool; writes are batched and
// retried with exponential backoff.
type Pipeline struct {
	repository       storage.ItemRepository
	pool             *ants.Pool
	batchSize        int
	minDescription   int
	maxAttempts      int
	retryBaseDelay   time.Duration
	progressWriter   io.Writer
	progressInterval int
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent validation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many items are written per store transaction.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithMinDescriptionLength drops items whose description has fewer than n
// characters. Default is 20; 0 keeps every item.
func WithMinDescriptionLength(n int) Option {
	return func(p *Pipeline) error {
		if n < 0 {
			n = 0
		}
		p.minDescription = n
		return nil
	}
}

// WithRetry sets the retry policy for store writes.
// Default is 3 attempts starting at 100ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w every interval items.
// Default is no progress output.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		p.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline writing to repository.
func NewPipeline(repository storage.ItemRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrItemRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:     repository,
		pool:           pool,
		batchSize:      100,
		minDescription: 20,
		maxAttempts:    3,
		retryBaseDelay: 100 * time.Millisecond,
		logger:         slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release releases the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Rejection records why an input item was not stored.
type Rejection struct {
	Index int
	Title string
	Err   error
}

// Report summarizes one Ingest call.
type Report struct {
	Received   int
	Stored     int
	Invalid    int
	Duplicates int
	Failed     int
	Rejected   []Rejection
	Elapsed    time.Duration
}

// Ingest normalizes, validates and stores items in input order.
// Invalid items and items with short descriptions are dropped. When a title
// repeats, the first occurrence wins. Items are normalized in place.
//
// A write failure that persists through retries stops the run; the report
// then covers everything processed up to that point and the error is returned.
func (p *Pipeline) Ingest(ctx context.Context, items []*core.Item) (*Report, error) {
	start := time.Now()
	report := &Report{Received: len(items)}

	checks, err := p.validate(ctx, items)
	if err != nil {
		return report, err
	}

	accepted := make([]*core.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if checks[i] != nil {
			report.Invalid++
			report.Rejected = append(report.Rejected, Rejection{Index: i, Title: titleOf(item), Err: checks[i]})
			continue
		}
		if _, dup := seen[item.Title]; dup {
			report.Duplicates++
			report.Rejected = append(report.Rejected, Rejection{Index: i, Title: item.Title, Err: ErrDuplicateTitle})
			continue
		}
		seen[item.Title] = struct{}{}
		accepted = append(accepted, item)
	}
	metrics.RecordIngested(metrics.ResultInvalid, report.Invalid)
	metrics.RecordIngested(metrics.ResultDuplicate, report.Duplicates)

	p.logger.Debug("validated items", "received", report.Received, "accepted", len(accepted),
		"invalid", report.Invalid, "duplicates", report.Duplicates)

	var progress *ImportProgress
	if p.progressWriter != nil {
		progress = NewImportProgress(p.progressWriter, len(accepted), report.Invalid+report.Duplicates, p.progressInterval)
		progress.Begin()
	}

	for offset := 0; offset < len(accepted); offset += p.batchSize {
		end := offset + p.batchSize
		if end > len(accepted) {
			end = len(accepted)
		}
		batch := accepted[offset:end]

		err := RetryWithBackoff(ctx, func() error {
			_, err := p.repository.AddItems(ctx, batch...)
			return err
		}, p.maxAttempts, p.retryBaseDelay)
		if err != nil {
			report.Failed = len(accepted) - offset
			report.Elapsed = time.Since(start)
			metrics.RecordIngested(metrics.ResultFailed, report.Failed)
			p.logger.Error("failed to store batch", "offset", offset, "size", len(batch), "err", err)
			if progress != nil {
				progress.Done(err)
			}
			return report, fmt.Errorf("failed to store items %d-%d: %w", offset, end-1, err)
		}

		report.Stored += len(batch)
		metrics.RecordIngested(metrics.ResultStored, len(batch))
		if progress != nil {
			progress.BatchStored(len(batch))
		}
	}
	if progress != nil {
		progress.Done(nil)
	}

	report.Elapsed = time.Since(start)
	p.logger.Info("ingestion complete", "stored", report.Stored, "invalid", report.Invalid,
		"duplicates", report.Duplicates, "elapsed", report.Elapsed)
	return report, nil
}

// validate checks every item on the worker pool. The result slice holds the
// rejection reason for each input, or nil for items that passed.
func (p *Pipeline) validate(ctx context.Context, items []*core.Item) ([]error, error) {
	checks := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			checks[i] = p.check(item)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to schedule validation: %w", submitErr)
		}
	}
	wg.Wait()

	return checks, nil
}

func (p *Pipeline) check(item *core.Item) error {
	if item == nil {
		return core.ErrInvalidItem
	}
	core.NormalizeItem(item)
	item.Description = strings.TrimSpace(item.Description)
	if err := core.ValidateItem(item); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(item.Description); n < p.minDescription {
		return fmt.Errorf("%w: %d < %d characters", ErrShortDescription, n, p.minDescription)
	}
	return nil
}

func titleOf(item *core.Item) string {
	if item == nil {
		return ""
	}
	return item.Title
}
