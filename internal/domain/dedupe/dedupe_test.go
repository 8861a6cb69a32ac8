package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kestrelrobotics/matchbook/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When recording a new submission id", func() {
			seen := d.SeenAndRecord(ctx, "sub-1")

			Convey("Then it is not seen and gets recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording the same id twice", func() {
			d.SeenAndRecord(ctx, "sub-1")
			seen := d.SeenAndRecord(ctx, "sub-1")

			Convey("Then the second call reports it as seen", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id after a failed enqueue", func() {
			d.SeenAndRecord(ctx, "sub-1")
			d.Unrecord(ctx, "sub-1")

			Convey("Then the id can be retried", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown id", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a deduper bounded at three entries", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		d.SeenAndRecord(ctx, "sub-1")
		d.SeenAndRecord(ctx, "sub-2")
		d.SeenAndRecord(ctx, "sub-3")

		Convey("When a fourth id arrives", func() {
			So(d.SeenAndRecord(ctx, "sub-4"), ShouldBeFalse)

			Convey("Then the size stays bounded", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("And the oldest ids survive eviction", func() {
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "sub-2"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent recorders", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When many goroutines record overlapping ids", func() {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", i))
					}
				}()
			}
			wg.Wait()

			Convey("Then each id is recorded exactly once", func() {
				So(d.Size(), ShouldEqual, 100)
			})
		})
	})
}
