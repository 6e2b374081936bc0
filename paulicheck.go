package stabiliser

import (
	"math/cmplx"

	"github.com/theapemachine/errnie"
)

/*
IsPauli reports whether matrix (indexed [row][col]) equals a Pauli matrix, or, with
WithGlobalFactor, a Pauli matrix times some nonzero scalar.
*/
func IsPauli(matrix [][]complex128, opts ...CheckOption) bool {
	_, _, ok := PauliFromMatrix(matrix, opts...)
	return ok
}

/*
PauliFromMatrix recovers the Pauli operator P and the global factor g with matrix == g * P.
Column 0 fixes p, the columns 2^b fix the bits of q, and the value of column 0 then fixes
g * (-1)^s * i^t. Without WithGlobalFactor that value has to be a unit phase, which gives
s and t with g = 1; with it, g absorbs the whole value and s = t = 0. Every column is then
checked against the prediction, including that all other entries are exactly zero.
*/
func PauliFromMatrix(matrix [][]complex128, opts ...CheckOption) (Pauli, complex128, bool) {
	o := newCheckOptions(opts)

	n, ok := squareQubits(matrix)
	if !ok {
		return Pauli{}, 0, false
	}

	p, first, ok := columnEntry(matrix, 0)
	if !ok {
		return Pauli{}, 0, false
	}

	var q uint

	for b := 0; b < n; b++ {
		col := uint(1) << b

		row, value, ok := columnEntry(matrix, col)
		if !ok || row != col^p {
			return Pauli{}, 0, false
		}

		switch phase, ok := NearestPhase(value/first, o.tolerance); {
		case !ok:
			return Pauli{}, 0, false
		case phase == PhaseMinusOne:
			q |= col
		case phase != PhaseOne:
			return Pauli{}, 0, false
		}
	}

	base := first * LinearPhase(p, 0, q).Conj().Complex()

	pauli := Pauli{qubits: n, x: p, z: q}
	factor := complex(1, 0)

	if o.allowGlobalFactor {
		factor = base
	} else {
		phase, ok := NearestPhase(base, o.tolerance)
		if !ok {
			return Pauli{}, 0, false
		}

		pauli.sign, pauli.imag = phase.SignBit(), phase.ImagBit()
	}

	for col := uint(0); col < pauli.Dimension(); col++ {
		row, value, ok := columnEntry(matrix, col)
		if !ok || row != col^p {
			return Pauli{}, 0, false
		}

		if cmplx.Abs(value/factor-pauli.Phase(col).Complex()) >= o.tolerance {
			return Pauli{}, 0, false
		}
	}

	errnie.Info("PauliFromMatrix - recovered %v with global factor %v", pauli, factor)

	return pauli, factor, true
}

// squareQubits returns n when matrix is 2^n x 2^n.
func squareQubits(matrix [][]complex128) (int, bool) {
	dim := uint(len(matrix))
	if !IsPowerOfTwo(dim) || Log2(dim) > MaxQubits {
		return 0, false
	}

	for _, row := range matrix {
		if uint(len(row)) != dim {
			return 0, false
		}
	}

	return Log2(dim), true
}

// columnEntry finds the only nonzero entry of column col. It fails on an empty column or a second nonzero.
func columnEntry(matrix [][]complex128, col uint) (uint, complex128, bool) {
	var (
		found bool
		row   uint
		value complex128
	)

	for r := range matrix {
		if matrix[r][col] == 0 {
			continue
		}

		if found {
			return 0, 0, false
		}

		found, row, value = true, uint(r), matrix[r][col]
	}

	return row, value, found
}
