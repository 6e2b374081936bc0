package stabiliser

import (
	"sync"
	"time"
)

// resultSpace holds finished job results until they are collected.
type resultSpace struct {
	mu      sync.Mutex
	values  map[string]Result
	waiting map[string][]chan Result
}

func newResultSpace() *resultSpace {
	return &resultSpace{
		values:  make(map[string]Result),
		waiting: make(map[string][]chan Result),
	}
}

// Store records the result of job id and hands it to anyone awaiting it.
func (rs *resultSpace) Store(id string, value any, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	result := Result{
		ID:        id,
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
	}
	rs.values[id] = result

	for _, ch := range rs.waiting[id] {
		ch <- result
		close(ch)
	}

	delete(rs.waiting, id)
}

// Await returns a channel that receives the result of job id once it is stored.
func (rs *resultSpace) Await(id string) chan Result {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ch := make(chan Result, 1)

	if result, ok := rs.values[id]; ok {
		ch <- result
		close(ch)

		return ch
	}

	rs.waiting[id] = append(rs.waiting[id], ch)

	return ch
}

// Forget drops a collected result.
func (rs *resultSpace) Forget(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.values, id)
}

func (rs *resultSpace) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return len(rs.values)
}
