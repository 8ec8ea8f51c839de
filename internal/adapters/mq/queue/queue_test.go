package queue

import (
	"context"
	"testing"

	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	convey.Convey("Given a queue with capacity 2", t, func() {
		ctx := context.Background()
		q := NewInMemoryQueue(WithCapacity(2))

		convey.Convey("When enqueuing past capacity", func() {
			convey.So(q.Enqueue(ctx, Job{Index: 0, Frame: frame.Frame{Year: 1994}}), convey.ShouldBeTrue)
			convey.So(q.Enqueue(ctx, Job{Index: 1, Frame: frame.Frame{Year: 1995}}), convey.ShouldBeTrue)

			convey.Convey("Then the third job is rejected", func() {
				convey.So(q.Enqueue(ctx, Job{Index: 2}), convey.ShouldBeFalse)
				convey.So(q.Len(ctx), convey.ShouldEqual, 2)
			})

			convey.Convey("Then closing still delivers queued jobs in order", func() {
				convey.So(q.Close(), convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
				var years []int
				for j := range q.Dequeue(ctx) {
					years = append(years, j.Frame.Year)
				}
				convey.So(years, convey.ShouldResemble, []int{1994, 1995})
			})
		})

		convey.Convey("When the queue is closed", func() {
			convey.So(q.Close(), convey.ShouldBeNil)
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then enqueue fails", func() {
				convey.So(q.Enqueue(ctx, Job{}), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			convey.Convey("Then enqueue fails and dequeue closes", func() {
				convey.So(q.Enqueue(cctx, Job{}), convey.ShouldBeFalse)
				_, ok := <-q.Dequeue(cctx)
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
