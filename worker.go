package stabiliser

import (
	"context"
	"fmt"

	"github.com/theapemachine/errnie"
)

// Worker runs jobs handed to it by the pool's manager.
type Worker struct {
	pool *Q
	jobs chan Job
}

func (w *Worker) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
			select {
			case job := <-w.jobs:
				result, err := w.processJob(job)
				w.pool.space.Store(job.ID, result, err)
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) processJob(job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			errnie.Info("Worker.processJob - job %s panicked: %v", job.ID, r)
			result, err = nil, fmt.Errorf("job %s panicked: %v", job.ID, r)
		}

		w.pool.metrics.recordJobExecution(job.StartTime, err == nil)
	}()

	return job.Fn()
}
