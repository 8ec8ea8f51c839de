// Package worker renders queued frames concurrently.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/debtfx/internal/adapters/mq/queue"
	"github.com/okian/debtfx/internal/adapters/render"
	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/okian/debtfx/pkg/metrics"
)

// ErrEnqueue is returned when a frame could not be queued.
var ErrEnqueue = errors.New("frame enqueue failed")

// Renderer draws one frame.
type Renderer interface {
	Render(f frame.Frame) (*render.Rendered, error)
}

// Worker takes jobs off a queue and renders them.
type Worker struct {
	renderer Renderer
	name     string
	logger   logger.Logger
}

// NewWorker creates a worker.
func NewWorker(r Renderer, opts ...Option) *Worker {
	w := &Worker{renderer: r, name: "worker", logger: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run renders jobs into out[job.Index] until jobs closes or ctx is done.
// The first render error is returned and the worker stops.
func (w *Worker) Run(ctx context.Context, jobs <-chan queue.Job, out []*render.Rendered) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-jobs:
			if !ok {
				return nil
			}
			r, err := w.renderer.Render(j.Frame)
			if err != nil {
				metrics.RecordErrorByComponent("worker", "render_error")
				w.logger.Error(ctx, "render failed", logger.Int("year", j.Frame.Year), logger.Error(err))
				return fmt.Errorf("render %d: %w", j.Frame.Year, err)
			}
			out[j.Index] = r
			w.logger.Debug(ctx, "frame rendered", logger.Int("year", j.Frame.Year))
		}
	}
}

// Pool renders a batch of frames on several workers.
type Pool struct {
	renderer Renderer
	size     int
	logger   logger.Logger
}

// NewPool creates a pool of size workers. A size below 1 uses one worker
// per CPU.
func NewPool(size int, r Renderer, l logger.Logger) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Pool{renderer: r, size: size, logger: l}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Render draws frames and returns the images in the same order.
func (p *Pool) Render(ctx context.Context, frames []frame.Frame) ([]*render.Rendered, error) {
	if len(frames) == 0 {
		return nil, nil
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(frames)))
	for i, f := range frames {
		if !q.Enqueue(ctx, queue.Job{Index: i, Frame: f}) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %d", ErrEnqueue, f.Year)
		}
	}
	_ = q.Close()

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	size := min(p.size, len(frames))
	metrics.UpdateWorkerActiveCount(size)
	defer metrics.UpdateWorkerActiveCount(0)

	out := make([]*render.Rendered, len(frames))
	jobs := q.Dequeue(rctx)
	errs := make([]error, size)
	var wg sync.WaitGroup
	for i := range size {
		w := NewWorker(p.renderer, WithName("worker-"+strconv.Itoa(i)), WithLogger(p.logger))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Run(rctx, jobs, out); err != nil {
				errs[i] = err
				cancel()
			}
		}()
	}
	wg.Wait()

	if err := firstError(errs); err != nil {
		return nil, err
	}
	// Dequeue stops on cancellation without telling the workers why.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Debug(ctx, "pool finished", logger.Int("frames", len(out)), logger.Int("workers", size))
	return out, nil
}

// firstError prefers a render failure over the cancellations it caused.
func firstError(errs []error) error {
	var cancelled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if cancelled == nil {
				cancelled = err
			}
		default:
			return err
		}
	}
	return cancelled
}
