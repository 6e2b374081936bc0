package stabiliser

import (
	"math/cmplx"
	"strings"

	"github.com/pkg/errors"
)

/*
Pauli is an n-qubit Pauli operator

	(-1)^s * i^t * i^{|p AND q|} * X^p * Z^q

so that, with Y = iXZ, the operator is (-1)^s * i^t times the tensor product of I, X, Y, Z
chosen per qubit by the bits of p (the X pattern) and q (the Z pattern). Qubit b acts on
bit b of the computational basis index.
*/
type Pauli struct {
	qubits int
	x      uint
	z      uint
	sign   bool
	imag   bool
}

// NewPauli validates 0 <= p, q < 2^n.
func NewPauli(n int, p, q uint, s, t bool) (Pauli, error) {
	if n < 0 || n > MaxQubits {
		return Pauli{}, errors.Wrapf(ErrInvalidParameters, "pauli on %d qubits", n)
	}

	if p >= 1<<n || q >= 1<<n {
		return Pauli{}, errors.Wrapf(ErrInvalidParameters, "pauli masks p=%#b q=%#b on %d qubits", p, q, n)
	}

	return Pauli{qubits: n, x: p, z: q, sign: s, imag: t}, nil
}

func (p Pauli) Qubits() int   { return p.qubits }
func (p Pauli) X() uint       { return p.x }
func (p Pauli) Z() uint       { return p.z }
func (p Pauli) SignBit() bool { return p.sign }
func (p Pauli) ImagBit() bool { return p.imag }

// Dimension is 2^n, the side of the matrix.
func (p Pauli) Dimension() uint {
	return 1 << p.qubits
}

// GlobalPhase is (-1)^s * i^t.
func (p Pauli) GlobalPhase() Phase {
	return NewPhase(p.sign, p.imag)
}

// Phase is the value of the single nonzero entry of column col.
func (p Pauli) Phase(col uint) Phase {
	return p.GlobalPhase().
		Mul(LinearPhase(col, p.z, 0)).
		Mul(LinearPhase(p.x, 0, p.z))
}

// Entry returns the row and value of the nonzero entry of column col.
func (p Pauli) Entry(col uint) (uint, complex128) {
	return col ^ p.x, p.Phase(col).Complex()
}

// Matrix returns the 2^n x 2^n matrix, indexed [row][col].
func (p Pauli) Matrix() [][]complex128 {
	dim := p.Dimension()
	matrix := make([][]complex128, dim)

	for row := range matrix {
		matrix[row] = make([]complex128, dim)
	}

	for col := uint(0); col < dim; col++ {
		row, value := p.Entry(col)
		matrix[row][col] = value
	}

	return matrix
}

// MultiplyVector returns P v.
func (p Pauli) MultiplyVector(v []complex128) ([]complex128, error) {
	if uint(len(v)) != p.Dimension() {
		return nil, errors.Wrapf(ErrInvalidParameters, "vector of length %d for %d-qubit pauli", len(v), p.qubits)
	}

	out := make([]complex128, len(v))
	for col, amp := range v {
		row, value := p.Entry(uint(col))
		out[row] = value * amp
	}

	return out, nil
}

/*
HasEigenstate reports whether P v = (-1)^eigenSign v, comparing entries within tol.
*/
func (p Pauli) HasEigenstate(v []complex128, eigenSign bool, tol float64) (bool, error) {
	pv, err := p.MultiplyVector(v)
	if err != nil {
		return false, err
	}

	eigenvalue := complex(1, 0)
	if eigenSign {
		eigenvalue = -1
	}

	for i := range v {
		if cmplx.Abs(pv[i]-eigenvalue*v[i]) > tol {
			return false, nil
		}
	}

	return true, nil
}

// IsHermitian holds exactly when the i^t factor is absent.
func (p Pauli) IsHermitian() bool {
	return !p.imag
}

// CommutesWith is false for operators on a different number of qubits.
func (p Pauli) CommutesWith(o Pauli) bool {
	return p.qubits == o.qubits && Dot(p.x, o.z) == Dot(p.z, o.x)
}

func (p Pauli) AnticommutesWith(o Pauli) bool {
	return p.qubits == o.qubits && Dot(p.x, o.z) != Dot(p.z, o.x)
}

/*
Multiply returns P O. Moving Z^{q1} past X^{p2} costs (-1)^{|q1 AND p2|}, and the
i^{|p AND q|} normalisation of both factors and of the product is folded into s and t.
*/
func (p Pauli) Multiply(o Pauli) (Pauli, error) {
	if p.qubits != o.qubits {
		return Pauli{}, errors.Wrapf(ErrInvalidParameters, "multiplying %d-qubit and %d-qubit paulis", p.qubits, o.qubits)
	}

	return p.times(o), nil
}

func (p Pauli) times(o Pauli) Pauli {
	x, z := p.x^o.x, p.z^o.z

	phase := p.GlobalPhase().
		Mul(o.GlobalPhase()).
		Mul(LinearPhase(p.x, 0, p.z)).
		Mul(LinearPhase(o.x, 0, o.z)).
		Mul(LinearPhase(x, 0, z).Conj()).
		Mul(LinearPhase(p.z, o.x, 0))

	return Pauli{qubits: p.qubits, x: x, z: z, sign: phase.SignBit(), imag: phase.ImagBit()}
}

// String renders the operator as a phase followed by one letter per qubit, highest qubit first.
func (p Pauli) String() string {
	var sb strings.Builder

	sb.WriteString(p.GlobalPhase().String())

	for b := p.qubits - 1; b >= 0; b-- {
		switch x, z := p.x>>b&1, p.z>>b&1; {
		case x == 1 && z == 1:
			sb.WriteByte('Y')
		case x == 1:
			sb.WriteByte('X')
		case z == 1:
			sb.WriteByte('Z')
		default:
			sb.WriteByte('I')
		}
	}

	return sb.String()
}
