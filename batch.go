package stabiliser

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

/*
CheckStates classifies every vector on the pool, each with its own Checker. Results come
back in input order with a StateReport as their Value; a vector whose length is not a
power of two gives a Result carrying ErrInvalidParameters, and items the pool could not run
before it was closed carry the pool's context error. The error is non-nil only when ctx
ends before every result is in.
*/
func (q *Q) CheckStates(ctx context.Context, vectors [][]complex128, opts ...CheckOption) ([]Result, error) {
	opts = append(q.config.Options(), opts...)
	batch := q.nextBatch()

	pending := make([]pendingResult, len(vectors))
	for i, v := range vectors {
		id := fmt.Sprintf("state-%d-%d", batch, i)

		ch := q.schedule(ctx, id, func() (any, error) {
			checker, err := NewChecker(opts...).LoadVector(v)
			if err != nil {
				return nil, err
			}

			report := StateReport{
				Index:  i,
				Valid:  checker.IsStabState(),
				Reason: checker.Reason(),
			}

			if report.Valid {
				if report.State, err = checker.GetStabState(); err != nil {
					return nil, err
				}
			}

			return report, nil
		})

		pending[i] = pendingResult{id: id, ch: ch}
	}

	return q.collect(ctx, pending)
}

// CheckPaulis decides IsPauli for every matrix on the pool, returning PauliReport values.
func (q *Q) CheckPaulis(ctx context.Context, matrices [][][]complex128, opts ...CheckOption) ([]Result, error) {
	opts = append(q.config.Options(), opts...)
	batch := q.nextBatch()

	pending := make([]pendingResult, len(matrices))
	for i, m := range matrices {
		id := fmt.Sprintf("pauli-%d-%d", batch, i)

		ch := q.schedule(ctx, id, func() (any, error) {
			pauli, factor, ok := PauliFromMatrix(m, opts...)

			return PauliReport{
				Index:  i,
				Valid:  ok,
				Pauli:  pauli,
				Factor: factor,
			}, nil
		})

		pending[i] = pendingResult{id: id, ch: ch}
	}

	return q.collect(ctx, pending)
}

type pendingResult struct {
	id string
	ch chan Result
}

/*
collect gathers results in order. When the pool stops first, the items still outstanding
are reported as failed results. When ctx ends first, collection stops and the remaining
results are dropped from the result space as they arrive.
*/
func (q *Q) collect(ctx context.Context, pending []pendingResult) ([]Result, error) {
	results := make([]Result, len(pending))

	for i, p := range pending {
		if err := ctx.Err(); err != nil {
			q.discard(pending[i:])
			return results[:i], errors.Wrap(err, "collecting batch results")
		}

		select {
		case <-ctx.Done():
			q.discard(pending[i:])
			return results[:i], errors.Wrap(ctx.Err(), "collecting batch results")
		case result := <-p.ch:
			results[i] = result
		case <-q.ctx.Done():
			select {
			case result := <-p.ch:
				results[i] = result
			default:
				results[i] = Result{
					ID:        p.id,
					Error:     errors.Wrapf(q.ctx.Err(), "job %s", p.id),
					CreatedAt: time.Now(),
				}
			}
		}

		q.space.Forget(p.id)
	}

	return results, nil
}

// discard forgets results that nobody will collect, including those still running.
func (q *Q) discard(pending []pendingResult) {
	for _, p := range pending {
		q.space.Forget(p.id)

		go func(p pendingResult) {
			select {
			case <-p.ch:
				q.space.Forget(p.id)
			case <-q.ctx.Done():
				q.space.Forget(p.id)
			}
		}(p)
	}
}
