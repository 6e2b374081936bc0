package stabiliser

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

/*
StabiliserState stores a stabiliser state in the affine form of Dehaene and De Moor: the
support is the coset Shift + span(Basis) of GF(2)^n and, for a coefficient vector x over
the k = len(Basis) generators, the amplitude at Shift ^ Combine(Basis, x) is

	GlobalFactor / sqrt(2^k) * (-1)^{|x AND RealLinear|} * i^{|x AND Imaginary|} * (-1)^{Q(x)}

where Q is the Quadratic form. Every other amplitude is zero.
*/
type StabiliserState struct {
	Qubits       int
	Basis        []uint
	Shift        uint
	RealLinear   uint
	Imaginary    uint
	Quadratic    QuadraticForm
	GlobalFactor complex128
}

// StateOption configures NewStabiliserState.
type StateOption func(*StabiliserState)

// WithFactor sets the global factor, 1 by default.
func WithFactor(c complex128) StateOption {
	return func(s *StabiliserState) {
		s.GlobalFactor = c
	}
}

/*
NewStabiliserState validates its arguments: masks must fit in n bits, the basis must be
linearly independent, the linear parts may only use the k generator bits, quadratic terms
must be weight-2 masks over the generators and the global factor must be nonzero.
*/
func NewStabiliserState(
	n int,
	basis []uint,
	shift, realLinear, imaginary uint,
	quadratic []uint,
	opts ...StateOption,
) (StabiliserState, error) {
	if n < 0 || n > MaxQubits {
		return StabiliserState{}, errors.Wrapf(ErrInvalidParameters, "stabiliser state on %d qubits", n)
	}

	qf, err := NewQuadraticForm(len(basis), quadratic...)
	if err != nil {
		return StabiliserState{}, err
	}

	state := StabiliserState{
		Qubits:       n,
		Basis:        append(make([]uint, 0, len(basis)), basis...),
		Shift:        shift,
		RealLinear:   realLinear,
		Imaginary:    imaginary,
		Quadratic:    qf,
		GlobalFactor: 1,
	}

	for _, opt := range opts {
		opt(&state)
	}

	if err := state.Validate(); err != nil {
		return StabiliserState{}, err
	}

	return state, nil
}

/*
Validate checks a state built by hand the way NewStabiliserState checks its arguments. A
zero QuadraticForm stands for a form without terms over any number of generators.
*/
func (s StabiliserState) Validate() error {
	n := s.Qubits
	if n < 0 || n > MaxQubits {
		return errors.Wrapf(ErrInvalidParameters, "stabiliser state on %d qubits", n)
	}

	if s.Shift >= 1<<n {
		return errors.Wrapf(ErrInvalidParameters, "shift %#b on %d qubits", s.Shift, n)
	}

	for _, b := range s.Basis {
		if b >= 1<<n {
			return errors.Wrapf(ErrInvalidParameters, "basis vector %#b on %d qubits", b, n)
		}
	}

	if !Independent(s.Basis) {
		return errors.Wrapf(ErrInvalidParameters, "basis %v is linearly dependent", s.Basis)
	}

	k := s.Dimension()
	if s.RealLinear >= 1<<k || s.Imaginary >= 1<<k {
		return errors.Wrapf(
			ErrInvalidParameters, "linear parts %#b, %#b over %d generators", s.RealLinear, s.Imaginary, k,
		)
	}

	if dim := s.Quadratic.Dimension(); dim != k && (dim != 0 || s.Quadratic.count() != 0) {
		return errors.Wrapf(ErrInvalidParameters, "quadratic form over %d generators, basis of %d", dim, k)
	}

	if s.GlobalFactor == 0 {
		return errors.Wrap(ErrInvalidParameters, "zero global factor")
	}

	return nil
}

// Dimension is k, the dimension of the support's linear part.
func (s StabiliserState) Dimension() int {
	return len(s.Basis)
}

// Index maps a coefficient vector to its computational basis index.
func (s StabiliserState) Index(x uint) uint {
	return s.Shift ^ Combine(s.Basis, x)
}

// Phase is the unit phase of the amplitude at coefficient vector x.
func (s StabiliserState) Phase(x uint) Phase {
	return s.phase(x, s.Quadratic.Evaluate(x))
}

func (s StabiliserState) phase(x uint, quadratic bool) Phase {
	phase := LinearPhase(x, s.RealLinear, s.Imaginary)

	if quadratic {
		phase = phase.Mul(PhaseMinusOne)
	}

	return phase
}

// Normalisation is 1/sqrt(2^k).
func (s StabiliserState) Normalisation() float64 {
	return 1 / math.Sqrt(float64(uint(1)<<s.Dimension()))
}

func (s StabiliserState) Amplitude(x uint) complex128 {
	return s.GlobalFactor * complex(s.Normalisation(), 0) * s.Phase(x).Complex()
}

// quadraticTable is Q(x) for every x < 2^k, whatever the dimension of the stored form.
func (s StabiliserState) quadraticTable() []bool {
	if s.Quadratic.Dimension() == s.Dimension() {
		return s.Quadratic.Table()
	}

	table := make([]bool, 1<<s.Dimension())
	for x := range table {
		table[x] = s.Quadratic.Evaluate(uint(x))
	}

	return table
}

// StateVector returns the 2^n amplitudes. Masks must fit in n bits, see Validate.
func (s StabiliserState) StateVector() StateVector {
	v := make(StateVector, 1<<s.Qubits)
	scale := s.GlobalFactor * complex(s.Normalisation(), 0)
	table := s.quadraticTable()

	for x, offset := range Span(s.Basis) {
		v[s.Shift^offset] = scale * s.phase(uint(x), table[x]).Complex()
	}

	errnie.Info("StabiliserState.StateVector - %d qubits, support of size %d", s.Qubits, 1<<s.Dimension())

	return v
}

/*
Equal compares the canonical parameters exactly and the global factors within tol.
*/
func (s StabiliserState) Equal(o StabiliserState, tol float64) bool {
	if s.Qubits != o.Qubits || s.Shift != o.Shift ||
		s.RealLinear != o.RealLinear || s.Imaginary != o.Imaginary ||
		len(s.Basis) != len(o.Basis) {
		return false
	}

	for i := range s.Basis {
		if s.Basis[i] != o.Basis[i] {
			return false
		}
	}

	return s.Quadratic.Equal(o.Quadratic) && cmplx.Abs(s.GlobalFactor-o.GlobalFactor) < tol
}

func (s StabiliserState) String() string {
	return fmt.Sprintf(
		"StabiliserState{qubits: %d, basis: %v, shift: %d, real: %#b, imaginary: %#b, quadratic: %v, factor: %v}",
		s.Qubits, s.Basis, s.Shift, s.RealLinear, s.Imaginary, s.Quadratic.Terms(), s.GlobalFactor,
	)
}
