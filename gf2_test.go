package stabiliser

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGF2(t *testing.T) {
	Convey("Given bit-vectors over GF(2)", t, func() {
		Convey("Weight, parity and dot products count set bits", func() {
			So(Weight(0b10110), ShouldEqual, 3)
			So(Parity(0b10110), ShouldBeTrue)
			So(Parity(0b110), ShouldBeFalse)
			So(Dot(0b101, 0b111), ShouldBeFalse)
			So(Dot(0b101, 0b100), ShouldBeTrue)
		})

		Convey("Powers of two are recognised", func() {
			So(IsPowerOfTwo(0), ShouldBeFalse)
			So(IsPowerOfTwo(1), ShouldBeTrue)
			So(IsPowerOfTwo(64), ShouldBeTrue)
			So(IsPowerOfTwo(96), ShouldBeFalse)
			So(Log2(1), ShouldEqual, 0)
			So(Log2(32), ShouldEqual, 5)
			So(Log2(0), ShouldEqual, -1)
		})

		Convey("Combine and Span agree in coefficient order", func() {
			basis := []uint{6, 9, 16}
			span := Span(basis)

			So(span, ShouldHaveLength, 8)
			So(span, ShouldResemble, []uint{0, 6, 9, 15, 16, 22, 25, 31})

			for x := range span {
				So(Combine(basis, uint(x)), ShouldEqual, span[x])
			}

			So(Span(nil), ShouldResemble, []uint{0})
		})

		Convey("RowReduce returns the ascending reduced echelon basis", func() {
			So(RowReduce([]uint{15, 9, 31}), ShouldResemble, []uint{6, 9, 16})
			So(RowReduce([]uint{3, 5, 6}), ShouldResemble, []uint{3, 5})
			So(RowReduce([]uint{0, 0}), ShouldBeEmpty)

			Convey("and its span is enumerated in increasing order", func() {
				span := Span(RowReduce([]uint{0b1101, 0b0111, 0b1000}))

				for x := 1; x < len(span); x++ {
					So(span[x], ShouldBeGreaterThan, span[x-1])
				}
			})
		})

		Convey("The dual basis pairs with each generator alone", func() {
			basis := []uint{0b1011, 0b0110, 0b1100}
			dual := dualBasis(basis)

			for m := range dual {
				for l := range basis {
					So(Dot(dual[m], basis[l]), ShouldEqual, m == l)
				}
			}
		})

		Convey("The complement is orthogonal to the span and fills the remaining rank", func() {
			basis := []uint{0b0110, 0b1001}
			comp := complement(basis, 5)

			So(comp, ShouldHaveLength, 3)
			So(Independent(comp), ShouldBeTrue)

			for _, c := range comp {
				for _, b := range basis {
					So(Dot(c, b), ShouldBeFalse)
				}
			}
		})

		Convey("Independence is decided by rank", func() {
			So(Rank([]uint{3, 5, 6}), ShouldEqual, 2)
			So(Independent([]uint{3, 5, 6}), ShouldBeFalse)
			So(Independent([]uint{1, 2, 4}), ShouldBeTrue)
			So(Independent(nil), ShouldBeTrue)
		})
	})
}

func TestPhase(t *testing.T) {
	Convey("Given unit phases", t, func() {
		Convey("They multiply in Z4", func() {
			So(PhaseI.Mul(PhaseI), ShouldEqual, PhaseMinusOne)
			So(PhaseMinusI.Mul(PhaseI), ShouldEqual, PhaseOne)
			So(PhaseI.Conj(), ShouldEqual, PhaseMinusI)
			So(NewPhase(true, true).Complex(), ShouldEqual, complex(0, -1))
		})

		Convey("NearestPhase only accepts values close to a unit phase", func() {
			p, ok := NearestPhase(complex(0, 1+1e-9), DefaultTolerance)
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, PhaseI)

			_, ok = NearestPhase(complex(1, 1), DefaultTolerance)
			So(ok, ShouldBeFalse)

			_, ok = NearestPhase(2, DefaultTolerance)
			So(ok, ShouldBeFalse)
		})

		Convey("LinearPhase takes the sign from parity and i from weight", func() {
			So(LinearPhase(0b11, 0b11, 0), ShouldEqual, PhaseOne)
			So(LinearPhase(0b11, 0b01, 0), ShouldEqual, PhaseMinusOne)
			So(LinearPhase(0b11, 0, 0b11), ShouldEqual, PhaseMinusOne)
			So(LinearPhase(0b111, 0, 0b111), ShouldEqual, PhaseMinusI)
			So(LinearPhase(0b11, 0b01, 0b01), ShouldEqual, PhaseMinusI)
		})
	})
}
