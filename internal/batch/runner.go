// Package batch classifies many transactions concurrently in fixed-size
// batches while preserving input order.
package batch

import (
	"context"
	"fmt"
	"time"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Classifier is satisfied by categorizer.Categorizer.
type Classifier interface {
	AutoCategorise(in models.TransactionInput, cache models.VendorCache) models.AutoCatResult
}

// ProgressFunc is called after each completed batch with the number of
// transactions classified so far.
type ProgressFunc func(done, total int)

// Options tune a Runner. Zero values select the defaults.
type Options struct {
	BatchSize int
	Workers   int
}

const (
	defaultBatchSize = 100
	defaultWorkers   = 4
)

// Run summarises one batch classification.
type Run struct {
	ID          string
	Results     []models.AutoCatResult
	Total       int
	NeedsReview int
	Matched     int
	Duration    time.Duration
}

// Runner classifies transactions in batches using a bounded worker pool.
type Runner struct {
	classifier Classifier
	opts       Options
	logger     logging.Logger
}

// NewRunner creates a runner around classifier.
func NewRunner(classifier Classifier, opts Options, logger logging.Logger) *Runner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{classifier: classifier, opts: opts, logger: logger}
}

// Classify runs every input through the classifier. Results[i] always
// belongs to inputs[i]. The cache is shared read-only across workers and
// must not be modified until Classify returns. Cancellation is checked
// between transactions.
func (r *Runner) Classify(ctx context.Context, inputs []models.TransactionInput, cache models.VendorCache, progress ProgressFunc) (*Run, error) {
	run := &Run{
		ID:      uuid.NewString(),
		Results: make([]models.AutoCatResult, len(inputs)),
		Total:   len(inputs),
	}
	logger := r.logger.WithField(logging.FieldRunID, run.ID)
	logger.WithFields(
		logging.F(logging.FieldCount, len(inputs)),
		logging.F("batch_size", r.opts.BatchSize),
		logging.F("workers", r.opts.Workers),
	).Info("Starting batch classification")

	start := time.Now()
	for lo := 0; lo < len(inputs); lo += r.opts.BatchSize {
		hi := lo + r.opts.BatchSize
		if hi > len(inputs) {
			hi = len(inputs)
		}
		if err := r.classifyBatch(ctx, inputs[lo:hi], run.Results[lo:hi], cache); err != nil {
			return nil, fmt.Errorf("batch starting at row %d: %w", lo, err)
		}
		logger.WithField(logging.FieldBatch, lo/r.opts.BatchSize+1).Debug("Batch complete")
		if progress != nil {
			progress(hi, len(inputs))
		}
	}
	run.Duration = time.Since(start)

	for _, res := range run.Results {
		if res.NeedsReview {
			run.NeedsReview++
		}
		if res.Vendor != "" {
			run.Matched++
		}
	}

	logger.WithFields(
		logging.F(logging.FieldCount, run.Total),
		logging.F("needs_review", run.NeedsReview),
		logging.F("matched", run.Matched),
		logging.F("duration", run.Duration.String()),
	).Info("Batch classification complete")
	return run, nil
}

func (r *Runner) classifyBatch(ctx context.Context, inputs []models.TransactionInput, out []models.AutoCatResult, cache models.VendorCache) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.classifier.AutoCategorise(inputs[i], cache)
			return nil
		})
	}
	return g.Wait()
}
