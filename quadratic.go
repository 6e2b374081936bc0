package stabiliser

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

/*
QuadraticForm is a quadratic form over GF(2)^k without diagonal terms,

	Q(x) = sum over {a, b} with q_ab = 1 and x_a = x_b = 1,

where a term {a, b} is addressed by the subset mask 1<<a | 1<<b over the k generators.
The coefficients live in a fixed k*k bit table, pair {a < b} at position a*k + b.
*/
type QuadraticForm struct {
	dim   int
	table *bitset.BitSet
}

// NewQuadraticForm builds the form over dim generators with the given weight-2 terms.
func NewQuadraticForm(dim int, terms ...uint) (QuadraticForm, error) {
	if dim < 0 || dim > MaxQubits {
		return QuadraticForm{}, errors.Wrapf(ErrInvalidParameters, "quadratic form dimension %d", dim)
	}

	qf := QuadraticForm{
		dim:   dim,
		table: bitset.New(uint(dim * dim)),
	}

	for _, term := range terms {
		if err := qf.Set(term); err != nil {
			return QuadraticForm{}, err
		}
	}

	return qf, nil
}

func (qf QuadraticForm) Dimension() int {
	return qf.dim
}

// Set switches on the term addressed by mask. The receiver shares its table with copies.
func (qf QuadraticForm) Set(mask uint) error {
	a, b, err := qf.pair(mask)
	if err != nil {
		return err
	}

	qf.table.Set(uint(a*qf.dim + b))

	return nil
}

// Has reports whether the term addressed by mask is present.
func (qf QuadraticForm) Has(mask uint) bool {
	a, b, err := qf.pair(mask)
	if err != nil {
		return false
	}

	return qf.table.Test(uint(a*qf.dim + b))
}

// Terms lists the present terms as subset masks, ascending.
func (qf QuadraticForm) Terms() []uint {
	terms := []uint{}

	for b := 1; b < qf.dim; b++ {
		for a := 0; a < b; a++ {
			if qf.table.Test(uint(a*qf.dim + b)) {
				terms = append(terms, 1<<a|1<<b)
			}
		}
	}

	return terms
}

/*
Row returns the symmetric neighbourhood of generator a: bit b is set iff the term {a, b}
is present. Flipping coordinate a of x changes Q(x) by the parity of Row(a) AND x.
*/
func (qf QuadraticForm) Row(a int) uint {
	var row uint

	if a < 0 || a >= qf.dim {
		return 0
	}

	for b := 0; b < qf.dim; b++ {
		lo, hi := min(a, b), max(a, b)
		if lo != hi && qf.table.Test(uint(lo*qf.dim+hi)) {
			row |= 1 << b
		}
	}

	return row
}

// Evaluate returns Q(x) for a coefficient vector x.
func (qf QuadraticForm) Evaluate(x uint) bool {
	var odd bool

	for rest := x; rest != 0; rest &= rest - 1 {
		a := bits.TrailingZeros(rest)
		// count each pair once, from its lower generator
		if Parity(qf.Row(a) & x &^ (1<<(a+1) - 1)) {
			odd = !odd
		}
	}

	return odd
}

func (qf QuadraticForm) Equal(o QuadraticForm) bool {
	if qf.dim != o.dim {
		return false
	}

	if qf.table == nil || o.table == nil {
		return qf.count() == o.count()
	}

	return qf.table.Equal(o.table)
}

func (qf QuadraticForm) count() uint {
	if qf.table == nil {
		return 0
	}

	return qf.table.Count()
}

func (qf QuadraticForm) pair(mask uint) (int, int, error) {
	if Weight(mask) != 2 || mask >= 1<<qf.dim {
		return 0, 0, errors.Wrapf(ErrInvalidParameters, "quadratic term %#b over %d generators", mask, qf.dim)
	}

	a := bits.TrailingZeros(mask)
	b := bits.Len(mask) - 1

	return a, b, nil
}

// Clone returns a form with its own table.
func (qf QuadraticForm) Clone() QuadraticForm {
	if qf.table == nil {
		return QuadraticForm{dim: qf.dim, table: bitset.New(uint(qf.dim * qf.dim))}
	}

	return QuadraticForm{dim: qf.dim, table: qf.table.Clone()}
}

// Table returns Q(x) for every coefficient vector x < 2^k, in order.
func (qf QuadraticForm) Table() []bool {
	rows := make([]uint, qf.dim)
	for a := range rows {
		rows[a] = qf.Row(a)
	}

	table := make([]bool, 1<<qf.dim)

	for x := 1; x < len(table); x++ {
		// Q(x) = Q(rest) + <row of the lowest generator, rest>
		a := bits.TrailingZeros(uint(x))
		rest := uint(x) & (uint(x) - 1)
		table[x] = table[rest] != Parity(rows[a]&rest)
	}

	return table
}
