package stabiliser

import "time"

// Job is one check scheduled on the pool.
type Job struct {
	ID        string
	Fn        func() (any, error)
	StartTime time.Time
}

// Result is what a job leaves behind in the result space.
type Result struct {
	ID        string
	Value     any
	Error     error
	CreatedAt time.Time
}

// StateReport is the outcome of checking one state vector in a batch.
type StateReport struct {
	Index  int
	Valid  bool
	State  StabiliserState
	Reason string
}

// PauliReport is the outcome of checking one matrix in a batch.
type PauliReport struct {
	Index  int
	Valid  bool
	Pauli  Pauli
	Factor complex128
}
