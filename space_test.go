package stabiliser

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResultSpace(t *testing.T) {
	Convey("Given a result space", t, func() {
		rs := newResultSpace()

		Convey("A stored value can be awaited afterwards", func() {
			rs.Store("stored", "value", nil)

			result := <-rs.Await("stored")
			So(result.Value, ShouldEqual, "value")
			So(result.Error, ShouldBeNil)
		})

		Convey("Every waiter receives a value stored later", func() {
			first := rs.Await("later")
			second := rs.Await("later")

			rs.Store("later", 42, nil)

			So((<-first).Value, ShouldEqual, 42)
			So((<-second).Value, ShouldEqual, 42)
		})

		Convey("Forget drops a value", func() {
			rs.Store("gone", 1, nil)
			rs.Forget("gone")

			So(rs.Len(), ShouldEqual, 0)
		})
	})
}
