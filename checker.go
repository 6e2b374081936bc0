package stabiliser

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// CheckerState is the lifecycle of a Checker.
type CheckerState int

const (
	NotLoaded CheckerState = iota
	Loaded
)

// Classification is decided when a vector is loaded.
type Classification int

const (
	Unclassified Classification = iota
	Valid
	Invalid
)

/*
Checker decides whether a state vector is a stabiliser state and, if it is, holds its
canonical StabiliserState. A Checker owns one loaded vector at a time and must not be
shared between goroutines; use one Checker per goroutine.
*/
type Checker struct {
	state          CheckerState
	classification Classification
	defaults       []CheckOption
	vector         StateVector
	canonical      StabiliserState
	reason         string
}

// NewChecker returns a checker in the NotLoaded state. opts apply to every load.
func NewChecker(opts ...CheckOption) *Checker {
	return &Checker{
		state:    NotLoaded,
		defaults: opts,
	}
}

/*
LoadVector classifies v and moves the checker to Loaded, replacing any earlier vector.
It returns the checker for chaining. A length that is not a power of two is an
ErrInvalidParameters error and leaves the checker untouched.
*/
func (c *Checker) LoadVector(v []complex128, opts ...CheckOption) (*Checker, error) {
	n, ok := StateVector(v).Qubits()
	if !ok {
		return c, errors.Wrapf(ErrInvalidParameters, "state vector of length %d", len(v))
	}

	all := make([]CheckOption, 0, len(c.defaults)+len(opts))
	all = append(all, c.defaults...)
	all = append(all, opts...)

	c.vector = append(make(StateVector, 0, len(v)), v...)
	c.state = Loaded

	canonical, reason, ok := canonicalise(c.vector, n, newCheckOptions(all))
	if !ok {
		errnie.Info("Checker.LoadVector - rejected %d-qubit vector: %s", n, reason)

		c.classification = Invalid
		c.canonical = StabiliserState{}
		c.reason = reason

		return c, nil
	}

	c.classification = Valid
	c.canonical = canonical
	c.reason = ""

	return c, nil
}

func (c *Checker) State() CheckerState {
	return c.state
}

func (c *Checker) Classification() Classification {
	return c.classification
}

// IsStabState is false until a stabiliser state has been loaded.
func (c *Checker) IsStabState() bool {
	return c.state == Loaded && c.classification == Valid
}

// Reason explains why the loaded vector was rejected.
func (c *Checker) Reason() string {
	return c.reason
}

// GetStabState returns the canonical form of the loaded vector.
func (c *Checker) GetStabState() (StabiliserState, error) {
	switch c.state {
	case NotLoaded:
		return StabiliserState{}, ErrNotLoaded
	case Loaded:
		if c.classification != Valid {
			return StabiliserState{}, errors.Wrap(ErrInvalidState, c.reason)
		}

		out := c.canonical
		out.Basis = append(make([]uint, 0, len(out.Basis)), out.Basis...)
		out.Quadratic = out.Quadratic.Clone()

		return out, nil
	default:
		return StabiliserState{}, errors.Errorf("stabiliser: unknown checker state %d", c.state)
	}
}

// IsStabiliserState classifies v with a throwaway Checker.
func IsStabiliserState(v []complex128, opts ...CheckOption) bool {
	c, err := NewChecker(opts...).LoadVector(v)
	return err == nil && c.IsStabState()
}

// StabiliserFromVector returns the canonical form of v.
func StabiliserFromVector(v []complex128, opts ...CheckOption) (StabiliserState, error) {
	c, err := NewChecker(opts...).LoadVector(v)
	if err != nil {
		return StabiliserState{}, err
	}

	return c.GetStabState()
}

/*
canonicalise discovers the affine support, the linear and quadratic phase parts and the
global factor of v, then re-derives every amplitude of the coset from them.

The shift is the smallest support index. The offsets from it, sorted, must be exactly the
span of the generators g_j = offsets[2^j] enumerated in coefficient order: a reduced
row-echelon basis enumerates its span in increasing order, so this holds precisely when
the support is a coset.
*/
func canonicalise(v StateVector, n int, o checkOptions) (StabiliserState, string, bool) {
	support := v.Support()

	size := support.Count()
	if !IsPowerOfTwo(size) {
		return StabiliserState{}, fmt.Sprintf("support of size %d is not a power of two", size), false
	}

	k := Log2(size)
	shift, _ := support.NextSet(0)

	offsets := make([]uint, 0, size)
	for i, ok := support.NextSet(0); ok; i, ok = support.NextSet(i + 1) {
		offsets = append(offsets, i^shift)
	}

	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	basis := make([]uint, k)
	for j := range basis {
		basis[j] = offsets[1<<j]
	}

	span := Span(basis)
	for x := range span {
		if span[x] != offsets[x] {
			return StabiliserState{}, "support is not an affine subspace", false
		}
	}

	first := v[shift]
	ratio := func(x uint) complex128 {
		return v[shift^span[x]] / first
	}

	factor := first * complex(math.Sqrt(float64(size)), 0)
	if !o.allowGlobalFactor {
		if cmplx.Abs(factor-1) >= o.tolerance {
			return StabiliserState{}, fmt.Sprintf("global factor %v is not 1", factor), false
		}

		factor = 1
	}

	var realLinear, imaginary uint

	for j := 0; j < k; j++ {
		e := uint(1) << j

		phase, ok := NearestPhase(ratio(e), o.tolerance)
		if !ok {
			return StabiliserState{}, fmt.Sprintf("generator %d has a non-unit phase", j), false
		}

		switch phase {
		case PhaseMinusOne:
			realLinear |= e
		case PhaseI:
			imaginary |= e
		case PhaseMinusI:
			realLinear |= e
			imaginary |= e
		}
	}

	quadratic, err := NewQuadraticForm(k)
	if err != nil {
		return StabiliserState{}, err.Error(), false
	}

	for b := 1; b < k; b++ {
		for a := 0; a < b; a++ {
			m := uint(1)<<a | uint(1)<<b
			linear := LinearPhase(m, realLinear, imaginary).Complex()

			switch phase, ok := NearestPhase(ratio(m)/linear, o.tolerance); {
			case ok && phase == PhaseMinusOne:
				if err := quadratic.Set(m); err != nil {
					return StabiliserState{}, err.Error(), false
				}
			case !ok || phase != PhaseOne:
				return StabiliserState{}, fmt.Sprintf("generators %d and %d have an invalid joint phase", a, b), false
			}
		}
	}

	canonical := StabiliserState{
		Qubits:       n,
		Basis:        basis,
		Shift:        shift,
		RealLinear:   realLinear,
		Imaginary:    imaginary,
		Quadratic:    quadratic,
		GlobalFactor: factor,
	}

	table := quadratic.Table()
	for x := range span {
		expected := canonical.phase(uint(x), table[x]).Complex()
		if cmplx.Abs(ratio(uint(x))-expected) >= o.tolerance {
			return StabiliserState{}, fmt.Sprintf("amplitude at index %d is inconsistent", shift^span[x]), false
		}
	}

	return canonical, "", true
}
