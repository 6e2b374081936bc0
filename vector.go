package stabiliser

import (
	"math"
	"math/cmplx"

	"github.com/bits-and-blooms/bitset"
)

// StateVector holds the amplitudes of an n-qubit state, indexed by computational basis state.
type StateVector []complex128

// Qubits returns n when the length is 2^n.
func (v StateVector) Qubits() (int, bool) {
	size := uint(len(v))
	if !IsPowerOfTwo(size) || Log2(size) > MaxQubits {
		return 0, false
	}

	return Log2(size), true
}

// Support marks the indices with a nonzero amplitude.
func (v StateVector) Support() *bitset.BitSet {
	support := bitset.New(uint(len(v)))

	for i, amp := range v {
		if amp != 0 {
			support.Set(uint(i))
		}
	}

	return support
}

func (v StateVector) Norm() float64 {
	var total float64

	for _, amp := range v {
		abs := cmplx.Abs(amp)
		total += abs * abs
	}

	return math.Sqrt(total)
}

// Scale returns a copy of v multiplied by c.
func (v StateVector) Scale(c complex128) StateVector {
	out := make(StateVector, len(v))

	for i, amp := range v {
		out[i] = c * amp
	}

	return out
}

// BasisState is the computational basis state |index> on n qubits.
func BasisState(n int, index uint) StateVector {
	v := make(StateVector, 1<<n)
	v[index] = 1

	return v
}
