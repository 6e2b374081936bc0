package stabiliser

import "math/cmplx"

// Phase is a unit phase i^p, stored as p in Z4.
type Phase uint8

const (
	PhaseOne Phase = iota
	PhaseI
	PhaseMinusOne
	PhaseMinusI
)

var phaseValues = [4]complex128{1, 1i, -1, -1i}

// NewPhase builds (-1)^sign * i^imag.
func NewPhase(sign, imag bool) Phase {
	var p Phase

	if sign {
		p += PhaseMinusOne
	}

	if imag {
		p += PhaseI
	}

	return p
}

func (p Phase) Complex() complex128 {
	return phaseValues[p&3]
}

func (p Phase) Mul(o Phase) Phase {
	return (p + o) & 3
}

func (p Phase) Conj() Phase {
	return (4 - p) & 3
}

// SignBit and ImagBit invert NewPhase.
func (p Phase) SignBit() bool {
	return p&2 != 0
}

func (p Phase) ImagBit() bool {
	return p&1 != 0
}

func (p Phase) String() string {
	return [4]string{"+1", "+i", "-1", "-i"}[p&3]
}

/*
NearestPhase classifies c as one of {1, i, -1, -i}. It fails when c is further than tol
from every unit phase.
*/
func NearestPhase(c complex128, tol float64) (Phase, bool) {
	for p, v := range phaseValues {
		if cmplx.Abs(c-v) < tol {
			return Phase(p), true
		}
	}

	return PhaseOne, false
}

/*
LinearPhase is the phase shared by Pauli columns and stabiliser amplitudes:

	(-1)^{|x AND signMask|} * i^{|x AND imagMask|}

The sign term only depends on the parity, the imaginary term on the full weight.
*/
func LinearPhase(x, signMask, imagMask uint) Phase {
	var p Phase

	if Dot(x, signMask) {
		p = PhaseMinusOne
	}

	return p.Mul(Phase(Weight(x&imagMask) & 3))
}
