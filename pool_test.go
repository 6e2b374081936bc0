package stabiliser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const testTimeout = 5 * time.Second

func TestPool(t *testing.T) {
	Convey("Given a new pool", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		q := NewQ(ctx, 3, nil)

		Reset(func() {
			q.Close()
			cancel()
		})

		Convey("When scheduling a simple job", func() {
			select {
			case <-ctx.Done():
				t.Fatal("timed out waiting for the job")
			case value := <-q.Schedule("simple", func() (any, error) { return "done", nil }):
				So(value.Error, ShouldBeNil)
				So(value.Value, ShouldEqual, "done")
				So(value.ID, ShouldEqual, "simple")
			}
		})

		Convey("When a job panics", func() {
			value := <-q.Schedule("panics", func() (any, error) { panic("boom") })

			So(value.Error, ShouldNotBeNil)
			So(value.Error.Error(), ShouldContainSubstring, "boom")
		})

		Convey("When checking a batch of state vectors", func() {
			vectors := [][]complex128{
				fiveQubitVector(),
				{1, 1},
				{1, 0, 0},
				{0, 1},
			}

			results, err := q.CheckStates(ctx, vectors)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 4)

			first := results[0].Value.(StateReport)
			So(first.Index, ShouldEqual, 0)
			So(first.Valid, ShouldBeTrue)
			So(first.State.Equal(fiveQubitState(), testTolerance), ShouldBeTrue)

			second := results[1].Value.(StateReport)
			So(second.Valid, ShouldBeFalse)
			So(second.Reason, ShouldNotBeEmpty)

			So(errors.Is(results[2].Error, ErrInvalidParameters), ShouldBeTrue)
			So(results[3].Value.(StateReport).State.Shift, ShouldEqual, uint(1))

			Convey("Options apply to every vector", func() {
				results, err := q.CheckStates(ctx, vectors[1:2], WithGlobalFactor())
				So(err, ShouldBeNil)
				So(results[0].Value.(StateReport).Valid, ShouldBeTrue)
			})

			Convey("Collected results are not retained", func() {
				So(q.space.Len(), ShouldEqual, 0)
			})
		})

		Convey("When checking a batch of matrices", func() {
			pauli := mustPauli(2, 1, 3, true, false)
			matrices := [][][]complex128{
				pauli.Matrix(),
				scaled(pauli.Matrix(), 2),
			}

			results, err := q.CheckPaulis(ctx, matrices)
			So(err, ShouldBeNil)

			report := results[0].Value.(PauliReport)
			So(report.Valid, ShouldBeTrue)
			So(report.Pauli, ShouldResemble, pauli)
			So(results[1].Value.(PauliReport).Valid, ShouldBeFalse)
		})

		Convey("When the batch context is already cancelled", func() {
			done, stop := context.WithCancel(ctx)
			stop()

			results, err := q.CheckStates(done, [][]complex128{{1}})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(results, ShouldBeEmpty)
		})

		Convey("Metrics count every executed job", func() {
			_, err := q.CheckStates(ctx, [][]complex128{{1}, {0, 1}})
			So(err, ShouldBeNil)

			metrics := q.Metrics().ExportMetrics()
			So(metrics["worker_count"], ShouldEqual, 3)
			So(metrics["job_count"], ShouldEqual, int64(2))
		})
	})

	Convey("Given a busy pool with a short scheduling timeout", t, func() {
		config := NewConfig()
		config.SchedulingTimeout = 50 * time.Millisecond

		q := NewQ(context.Background(), 1, config)
		Reset(q.Close)

		Convey("Queued jobs wait for the worker instead of failing", func() {
			slow := func() (any, error) {
				time.Sleep(120 * time.Millisecond)
				return "slow", nil
			}

			channels := []chan Result{
				q.Schedule("slow-0", slow),
				q.Schedule("slow-1", slow),
				q.Schedule("slow-2", slow),
			}

			for _, ch := range channels {
				result := <-ch
				So(result.Error, ShouldBeNil)
				So(result.Value, ShouldEqual, "slow")
			}

			So(q.Metrics().ExportMetrics()["failed_jobs"], ShouldEqual, int64(0))
		})
	})

	Convey("Given a pool closed while a batch is queued", t, func() {
		q := NewQ(context.Background(), 1, nil)

		vectors := make([][]complex128, 30)
		for i := range vectors {
			vectors[i] = make([]complex128, 1<<16)
			for j := range vectors[i] {
				vectors[i][j] = 1.0 / 256
			}
		}

		go func() {
			time.Sleep(5 * time.Millisecond)
			q.Close()
		}()

		done := make(chan []Result, 1)
		go func() {
			results, _ := q.CheckStates(context.Background(), vectors)
			done <- results
		}()

		select {
		case <-time.After(testTimeout):
			t.Fatal("batch never completed after the pool closed")
		case results := <-done:
			So(results, ShouldHaveLength, len(vectors))

			for _, result := range results {
				if result.Error != nil {
					So(errors.Is(result.Error, context.Canceled), ShouldBeTrue)
					continue
				}

				So(result.Value.(StateReport).Valid, ShouldBeTrue)
			}
		}
	})

	Convey("Given a batch abandoned by its caller", t, func() {
		q := NewQ(context.Background(), 3, nil)
		Reset(q.Close)

		release := make(chan struct{})
		pending := make([]pendingResult, 3)

		for i := range pending {
			id := fmt.Sprintf("blocked-%d", i)
			pending[i] = pendingResult{
				id: id,
				ch: q.Schedule(id, func() (any, error) {
					<-release
					return id, nil
				}),
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := q.collect(ctx, pending)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)

		close(release)

		deadline := time.Now().Add(testTimeout)
		for q.Metrics().ExportMetrics()["job_count"] != int64(3) && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}

		time.Sleep(100 * time.Millisecond)

		So(q.Metrics().ExportMetrics()["job_count"], ShouldEqual, int64(3))
		So(q.space.Len(), ShouldEqual, 0)
	})

	Convey("Given a closed pool", t, func() {
		q := NewQ(context.Background(), 1, nil)
		q.Close()

		value := <-q.Schedule("late", func() (any, error) { return nil, nil })
		So(errors.Is(value.Error, context.Canceled), ShouldBeTrue)
	})
}
