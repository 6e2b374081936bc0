package stabiliser

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

/*
CheckMatrix returns n commuting Hermitian Paulis that generate the stabiliser group of s,
each with s as a +1 eigenstate. The first k carry the X part of one basis vector each, in
basis order. The remaining n - k are Z-only and fix the parity constraints of the support.
The global factor plays no part.
*/
func (s StabiliserState) CheckMatrix() ([]Pauli, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.Qubits
	dual := dualBasis(s.Basis)
	generators := make([]Pauli, 0, n)

	for j, g := range s.Basis {
		// flipping coefficient j multiplies the amplitude by c (-1)^{<w, x>}
		c := LinearPhase(1<<j, s.RealLinear, s.Imaginary)

		w := s.Quadratic.Row(j)
		if s.Imaginary&(1<<j) != 0 {
			w ^= 1 << j
		}

		z := Combine(dual, w)
		phase := c.Mul(LinearPhase(s.Shift, z, 0).Conj()).Mul(LinearPhase(g, 0, z).Conj())

		generators = append(generators, Pauli{qubits: n, x: g, z: z, sign: phase.SignBit(), imag: phase.ImagBit()})
	}

	for _, c := range complement(s.Basis, n) {
		generators = append(generators, Pauli{qubits: n, z: c, sign: Dot(c, s.Shift)})
	}

	return generators, nil
}

/*
StateFromCheckMatrix returns the canonical state, with a global factor of 1, stabilised by
the group the generators span. It needs exactly n independent, pairwise commuting Hermitian
Paulis on n qubits, and the group must not contain -I.
*/
func StateFromCheckMatrix(generators []Pauli) (StabiliserState, error) {
	if len(generators) == 0 {
		return StabiliserState{}, errors.Wrap(ErrInvalidParameters, "empty check matrix")
	}

	n := generators[0].Qubits()
	if len(generators) != n {
		return StabiliserState{}, errors.Wrapf(ErrInvalidParameters, "%d generators on %d qubits", len(generators), n)
	}

	for i, p := range generators {
		if p.Qubits() != n {
			return StabiliserState{}, errors.Wrapf(ErrInvalidParameters, "generator %s on %d qubits, want %d", p, p.Qubits(), n)
		}

		if !p.IsHermitian() {
			return StabiliserState{}, errors.Wrapf(ErrInvalidParameters, "generator %s is not hermitian", p)
		}

		for _, o := range generators[:i] {
			if !p.CommutesWith(o) {
				return StabiliserState{}, errors.Wrapf(ErrInvalidParameters, "generators %s and %s anticommute", o, p)
			}
		}
	}

	xRows, zOnly := eliminate(generators, Pauli.X)

	zRows, rest := eliminate(zOnly, Pauli.Z)
	for _, r := range rest {
		if r.SignBit() {
			return StabiliserState{}, errors.Wrap(ErrInvalidParameters, "generators are contradictory, -I is in the group")
		}
	}

	if len(rest) > 0 {
		return StabiliserState{}, errors.Wrap(ErrInvalidParameters, "generators are dependent")
	}

	sort.Slice(xRows, func(i, j int) bool { return xRows[i].X() < xRows[j].X() })

	basis := make([]uint, len(xRows))
	for j, r := range xRows {
		basis[j] = r.X()
	}

	// each reduced Z row fixes the parity of its own pivot
	var shift uint
	for _, r := range zRows {
		if r.SignBit() {
			shift |= leadingBit(r.Z())
		}
	}

	for _, g := range basis {
		if shift&leadingBit(g) != 0 {
			shift ^= g
		}
	}

	var realLinear, imaginary uint
	rows := make([]uint, len(xRows))

	for j, r := range xRows {
		c := r.GlobalPhase().Mul(LinearPhase(shift, r.Z(), 0)).Mul(LinearPhase(r.X(), 0, r.Z()))

		for m, g := range basis {
			if Dot(r.Z(), g) {
				rows[j] |= 1 << m
			}
		}

		if c.SignBit() {
			realLinear |= 1 << j
		}

		if c.ImagBit() {
			imaginary |= 1 << j
			rows[j] ^= 1 << j
		}
	}

	quadratic := []uint{}
	for b := 1; b < len(rows); b++ {
		for a := 0; a < b; a++ {
			if rows[a]&(1<<b) != 0 {
				quadratic = append(quadratic, 1<<a|1<<b)
			}
		}
	}

	errnie.Info("StateFromCheckMatrix - %d qubits, %d X generators", n, len(xRows))

	return NewStabiliserState(n, basis, shift, realLinear, imaginary, quadratic)
}

/*
eliminate runs Gauss-Jordan over the part of each Pauli picked by key, multiplying whole
operators. It returns the reduced rows and the products whose part vanished.
*/
func eliminate(paulis []Pauli, key func(Pauli) uint) (rows, vanished []Pauli) {
	for _, p := range paulis {
		for _, r := range rows {
			if key(p)&leadingBit(key(r)) != 0 {
				p = p.times(r)
			}
		}

		if key(p) == 0 {
			vanished = append(vanished, p)
			continue
		}

		lead := leadingBit(key(p))
		for i, r := range rows {
			if key(r)&lead != 0 {
				rows[i] = r.times(p)
			}
		}

		rows = append(rows, p)
	}

	return rows, vanished
}
