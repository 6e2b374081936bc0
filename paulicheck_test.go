package stabiliser

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func scaled(matrix [][]complex128, c complex128) [][]complex128 {
	out := make([][]complex128, len(matrix))

	for i, row := range matrix {
		out[i] = make([]complex128, len(row))
		for j, v := range row {
			out[i][j] = c * v
		}
	}

	return out
}

func cloneMatrix(matrix [][]complex128) [][]complex128 {
	return scaled(matrix, 1)
}

func TestIsPauli(t *testing.T) {
	Convey("Given generated Pauli matrices", t, func() {
		Convey("Every Pauli on up to three qubits is accepted", func() {
			for n := 0; n <= 3; n++ {
				for _, pauli := range allPaulis(n) {
					So(IsPauli(pauli.Matrix()), ShouldBeTrue)
				}
			}
		})

		Convey("The parameters are recovered", func() {
			for _, pauli := range allPaulis(2) {
				recovered, factor, ok := PauliFromMatrix(pauli.Matrix())

				So(ok, ShouldBeTrue)
				So(recovered, ShouldResemble, pauli)
				So(factor, ShouldEqual, complex(1, 0))
			}
		})

		Convey("Five qubit operators are accepted", func() {
			So(IsPauli(mustPauli(5, 28, 3, false, true).Matrix()), ShouldBeTrue)
		})
	})

	Convey("Given a global factor", t, func() {
		pauli := mustPauli(5, 28, 3, false, true)

		Convey("It is rejected by default", func() {
			So(IsPauli(scaled(pauli.Matrix(), 2)), ShouldBeFalse)
			So(IsPauli(scaled(pauli.Matrix(), complex(3, -2))), ShouldBeFalse)
		})

		Convey("It is accepted when allowed, and reconstructs the matrix", func() {
			matrix := scaled(pauli.Matrix(), complex(3, -2))

			recovered, factor, ok := PauliFromMatrix(matrix, WithGlobalFactor())
			So(ok, ShouldBeTrue)
			So(recovered.X(), ShouldEqual, pauli.X())
			So(recovered.Z(), ShouldEqual, pauli.Z())
			So(matClose(scaled(recovered.Matrix(), factor), matrix), ShouldBeTrue)
		})

		Convey("Scaling by a unit phase gives another Pauli", func() {
			for _, c := range []complex128{-1, 1i, -1i} {
				So(IsPauli(scaled(mustPauli(2, 1, 2, false, false).Matrix(), c)), ShouldBeTrue)
			}
		})
	})

	Convey("Given corrupted matrices", t, func() {
		pauli := mustPauli(3, 4, 1, false, false)

		Convey("An extra entry is rejected", func() {
			matrix := pauli.Matrix()
			matrix[1][1] = 1

			So(IsPauli(matrix), ShouldBeFalse)
		})

		Convey("An empty first column is rejected", func() {
			matrix := pauli.Matrix()
			matrix[1][1] = 1
			matrix[4][0] = 0

			So(IsPauli(matrix), ShouldBeFalse)
		})

		Convey("A non-phase entry in the first column is rejected", func() {
			matrix := pauli.Matrix()
			matrix[4][0] = complex(1, 1)

			So(IsPauli(matrix), ShouldBeFalse)
		})

		Convey("A non-phase entry in a weight one column is rejected", func() {
			matrix := pauli.Matrix()
			matrix[5][1] = complex(1, 1)

			So(IsPauli(matrix), ShouldBeFalse)
		})

		Convey("A wrong sign in a later column is rejected", func() {
			matrix := mustPauli(3, 4, 1, true, false).Matrix()
			So(matrix[1][5], ShouldEqual, complex(1, 0))

			matrix[1][5] = -1
			So(IsPauli(matrix), ShouldBeFalse)
		})

		Convey("Any single entry change is rejected, with or without a global factor", func() {
			base := mustPauli(2, 0b01, 0b11, true, false).Matrix()

			for row := range base {
				for col := range base[row] {
					variants := []complex128{1}
					if base[row][col] != 0 {
						variants = []complex128{0, 1i * base[row][col], 2 * base[row][col]}
					}

					for _, v := range variants {
						matrix := cloneMatrix(base)
						matrix[row][col] = v

						So(IsPauli(matrix), ShouldBeFalse)
						So(IsPauli(matrix, WithGlobalFactor()), ShouldBeFalse)
					}
				}
			}
		})

		Convey("Matrices of the wrong shape are rejected", func() {
			So(IsPauli(nil), ShouldBeFalse)
			So(IsPauli([][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), ShouldBeFalse)
			So(IsPauli([][]complex128{{1, 0}, {0}}), ShouldBeFalse)
		})
	})
}
