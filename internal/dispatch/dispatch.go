// Package dispatch runs conversion jobs against a bounded worker pool.
//
// Jobs have no dependencies on one another; only the per-job sequence
// (encode, then tag, then cover) is ordered. Failures are aggregated and
// reported per file without aborting sibling jobs, and cancellation is
// observed between jobs, so cancellation latency is at most one job's
// running time.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"flacmirror/internal/logging"
	"flacmirror/internal/metadata"
)

// readTags is swapped out by tests that dispatch fake jobs.
var readTags = metadata.Read

// Job is one source-to-destination conversion unit. The encoder
// converters satisfy it.
type Job interface {
	Source() string
	Dest() string
	Encode(ctx context.Context, force bool) (bool, error)
	Tag(ctx context.Context, tags metadata.Tags) error
	SetCover(ctx context.Context, force bool) error
}

// Result summarizes a dispatched batch.
type Result struct {
	Converted int // jobs that completed (including cover-only updates)
	Failed    int // jobs abandoned after a tool failure
	Aborted   int // jobs never started because of cancellation
}

// Dispatcher executes jobs over a fixed pool of Workers goroutines
// pulling from a shared queue. Jobs are expected to be prefiltered to
// "needs work"; skipped jobs are never submitted.
type Dispatcher struct {
	Workers int
	Force   bool
	Logger  *slog.Logger
	Out     io.Writer
}

// Run dispatches the jobs and blocks until the pool drains. The
// returned error aggregates every per-job failure; a cancelled context
// is not itself an error (the partial batch result tells the caller how
// far the run got).
func (d *Dispatcher) Run(ctx context.Context, jobs []Job) (Result, error) {
	var result Result
	if len(jobs) == 0 {
		return result, nil
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	progress := newPrinter(d.Out, len(jobs))
	queue := make(chan Job)

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	var group errgroup.Group
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for job := range queue {
				// The abort check happens before a job starts, not
				// within it; an in-flight external process is
				// terminated by the job's own context handling.
				if ctx.Err() != nil {
					mu.Lock()
					result.Aborted++
					mu.Unlock()
					continue
				}
				progress.announce(job.Source())

				err := d.convert(ctx, job)
				mu.Lock()
				switch {
				case err == nil:
					result.Converted++
				case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
					result.Aborted++
				default:
					result.Failed++
					errs = multierror.Append(errs, fmt.Errorf("%s: %w", job.Source(), err))
					d.Logger.Error("conversion failed",
						logging.String("path", job.Source()),
						logging.Error(err))
				}
				mu.Unlock()
			}
			return nil
		})
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	_ = group.Wait()

	return result, errs.ErrorOrNil()
}

// convert runs one job to completion: encode, then on an actual encode
// transfer tags and force the cover; on a no-op only refresh the cover
// if it went stale. A cover-only change deliberately does not re-run
// tagging.
func (d *Dispatcher) convert(ctx context.Context, job Job) error {
	encoded, err := job.Encode(ctx, d.Force)
	if err != nil {
		return err
	}
	if !encoded {
		return job.SetCover(ctx, false)
	}

	tags, err := readTags(job.Source())
	if err != nil {
		return err
	}
	if err := job.Tag(ctx, tags); err != nil {
		return err
	}
	return job.SetCover(ctx, true)
}
