package stabiliser

import (
	"math/bits"
	"sort"
)

/*
Bit-vectors over GF(2) are stored in a uint: bit i is the i-th coordinate, addition is XOR
and the inner product of x and y is the parity of x AND y.
*/

// MaxQubits bounds the qubit count so that indices, masks and 2^n fit comfortably in a uint.
const MaxQubits = 30

// Weight is the Hamming weight of x.
func Weight(x uint) int {
	return bits.OnesCount(x)
}

// Parity reports whether x has an odd number of set bits.
func Parity(x uint) bool {
	return bits.OnesCount(x)&1 == 1
}

// Dot is the GF(2) inner product of x and y.
func Dot(x, y uint) bool {
	return Parity(x & y)
}

// IsPowerOfTwo reports whether n is 2^k for some k >= 0.
func IsPowerOfTwo(n uint) bool {
	return n != 0 && n&(n-1) == 0
}

// Log2 returns floor(log2(n)). It returns -1 for n == 0.
func Log2(n uint) int {
	return bits.Len(n) - 1
}

/*
Combine returns the XOR of the generators selected by the bits of x, that is the element
of span(basis) whose coefficient vector with respect to basis is x.
*/
func Combine(basis []uint, x uint) uint {
	var out uint

	for x != 0 {
		j := bits.TrailingZeros(x)
		out ^= basis[j]
		x &= x - 1
	}

	return out
}

/*
Span enumerates span(basis) in coefficient order, so Span(basis)[x] == Combine(basis, x).
Consecutive elements are built from each other by a single XOR.
*/
func Span(basis []uint) []uint {
	out := make([]uint, 1<<len(basis))

	for j, b := range basis {
		half := 1 << j
		for x := 0; x < half; x++ {
			out[half+x] = out[x] ^ b
		}
	}

	return out
}

/*
RowReduce runs Gauss-Jordan elimination over GF(2) and returns the reduced row-echelon
basis of span(vectors), sorted ascending. Every pivot (leading bit) appears in exactly one
returned vector, so the map x -> Combine(result, x) is strictly increasing.
*/
func RowReduce(vectors []uint) []uint {
	reduced, _ := reduceTracked(vectors)

	sort.Slice(reduced, func(i, j int) bool { return reduced[i] < reduced[j] })

	return reduced
}

/*
reduceTracked is the elimination behind RowReduce, unsorted. combos[i] marks the input
vectors that sum to rows[i]; it is only meaningful for fewer than 64 inputs.
*/
func reduceTracked(vectors []uint) (rows, combos []uint) {
	rows = make([]uint, 0, len(vectors))
	combos = make([]uint, 0, len(vectors))

	for i, v := range vectors {
		combo := uint(1) << i

		for j, r := range rows {
			if v&leadingBit(r) != 0 {
				v ^= r
				combo ^= combos[j]
			}
		}

		if v == 0 {
			continue
		}

		lead := leadingBit(v)
		for j, r := range rows {
			if r&lead != 0 {
				rows[j] = r ^ v
				combos[j] ^= combo
			}
		}

		rows = append(rows, v)
		combos = append(combos, combo)
	}

	return rows, combos
}

// dualBasis returns d with Dot(d[m], basis[l]) set exactly when m == l. basis must be independent.
func dualBasis(basis []uint) []uint {
	rows, combos := reduceTracked(basis)
	dual := make([]uint, len(basis))

	for i, r := range rows {
		lead := leadingBit(r)
		for rest := combos[i]; rest != 0; rest &= rest - 1 {
			dual[bits.TrailingZeros(rest)] ^= lead
		}
	}

	return dual
}

/*
complement returns a basis of the vectors in GF(2)^n orthogonal to span(basis), one per
non-pivot bit f, each the sum of e_f and the pivots of the reduced rows containing f.
*/
func complement(basis []uint, n int) []uint {
	rows := RowReduce(basis)

	var pivots uint
	for _, r := range rows {
		pivots |= leadingBit(r)
	}

	out := make([]uint, 0, n)

	for f := 0; f < n; f++ {
		e := uint(1) << f
		if pivots&e != 0 {
			continue
		}

		c := e
		for _, r := range rows {
			if r&e != 0 {
				c ^= leadingBit(r)
			}
		}

		out = append(out, c)
	}

	return out
}

// Rank is the dimension of span(vectors).
func Rank(vectors []uint) int {
	return len(RowReduce(vectors))
}

// Independent reports whether vectors are linearly independent over GF(2).
func Independent(vectors []uint) bool {
	return Rank(vectors) == len(vectors)
}

func leadingBit(x uint) uint {
	if x == 0 {
		return 0
	}

	return 1 << (bits.Len(x) - 1)
}
