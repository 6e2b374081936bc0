package stabiliser

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// Q is a fixed-size worker pool that runs independent checks concurrently.
type Q struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	workers chan chan Job
	jobs    chan Job
	space   *resultSpace
	metrics *Metrics
	config  *Config
	batches uint64
	batchMu sync.Mutex
}

/*
NewQ starts workers goroutines. A non-positive count falls back to config.Workers, and
a nil config to NewConfig(). The pool stops when ctx is cancelled or Close is called.
*/
func NewQ(ctx context.Context, workers int, config *Config) *Q {
	if config == nil {
		config = NewConfig()
	}

	if workers <= 0 {
		workers = config.Workers
	}

	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Q{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, workers*10),
		workers: make(chan chan Job, workers),
		space:   newResultSpace(),
		metrics: newMetrics(),
		config:  config,
	}

	for i := 0; i < workers; i++ {
		q.startWorker()
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.manage()
	}()

	errnie.Info("NewQ - started pool with %d workers", workers)

	return q
}

func (q *Q) manage() {
	for {
		select {
		case <-q.ctx.Done():
			q.drain()
			return
		case job := <-q.jobs:
			select {
			case <-q.ctx.Done():
				q.abandon(job)
				q.drain()
				return
			case workerChan := <-q.workers:
				select {
				case workerChan <- job:
				case <-q.ctx.Done():
					q.abandon(job)
					q.drain()
					return
				}
			}
		}
	}
}

// drain fails every job still queued once the pool has stopped.
func (q *Q) drain() {
	for {
		select {
		case job := <-q.jobs:
			q.abandon(job)
		default:
			return
		}
	}
}

func (q *Q) abandon(job Job) {
	q.space.Store(job.ID, nil, errors.Wrapf(q.ctx.Err(), "job %s", job.ID))
}

/*
Schedule queues fn under id and returns a channel that receives its result. Only the
enqueue is bounded by the scheduling timeout; a queued job waits for a free worker for as
long as the pool runs.
*/
func (q *Q) Schedule(id string, fn func() (any, error)) chan Result {
	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	return q.schedule(ctx, id, fn)
}

// schedule enqueues fn, waiting for room in the queue until ctx or the pool ends.
func (q *Q) schedule(ctx context.Context, id string, fn func() (any, error)) chan Result {
	if err := q.ctx.Err(); err != nil {
		return failed(id, errors.Wrapf(err, "scheduling job %s", id))
	}

	job := Job{
		ID:        id,
		Fn:        fn,
		StartTime: time.Now(),
	}

	select {
	case q.jobs <- job:
		return q.space.Await(id)
	case <-q.ctx.Done():
		return failed(id, errors.Wrapf(q.ctx.Err(), "scheduling job %s", id))
	case <-ctx.Done():
		q.metrics.recordSchedulingFailure()

		return failed(id, errors.Wrapf(ctx.Err(), "scheduling job %s", id))
	}
}

func failed(id string, err error) chan Result {
	ch := make(chan Result, 1)
	ch <- Result{
		ID:        id,
		Error:     err,
		CreatedAt: time.Now(),
	}
	close(ch)

	return ch
}

// Metrics returns the pool's counters.
func (q *Q) Metrics() *Metrics {
	return q.metrics
}

func (q *Q) startWorker() {
	worker := &Worker{
		pool: q,
		jobs: make(chan Job),
	}

	q.metrics.mu.Lock()
	q.metrics.WorkerCount++
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.start(q.ctx)
	}()
}

func (q *Q) nextBatch() uint64 {
	q.batchMu.Lock()
	defer q.batchMu.Unlock()

	q.batches++

	return q.batches
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}

	return 5 * time.Second
}

// Close stops the workers and waits for them to exit.
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.cancel()
	q.wg.Wait()
	q.drain()

	errnie.Info("Q.Close - pool closed")
}
