package service

import (
	"math"
	"testing"

	"onboarding_backend/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func progressRows(completed ...int) []model.OnboardingVideoProgress {
	rows := make([]model.OnboardingVideoProgress, 0, len(completed))
	for _, n := range completed {
		rows = append(rows, model.OnboardingVideoProgress{VideoNumber: n, Completed: true})
	}
	return rows
}

func TestBuildProgressView(t *testing.T) {
	Convey("Given persisted progress rows", t, func() {
		Convey("no rows starts at video 1", func() {
			view := BuildProgressView(nil)
			So(view.CurrentVideo, ShouldEqual, 1)
			So(view.Completed, ShouldResemble, [VideoCount]bool{})
		})

		Convey("current video is the first incomplete one", func() {
			view := BuildProgressView(progressRows(1, 2))
			So(view.CurrentVideo, ShouldEqual, 3)
		})

		Convey("a gap wins over later completions", func() {
			view := BuildProgressView(progressRows(1, 3))
			So(view.CurrentVideo, ShouldEqual, 2)
		})

		Convey("all complete caps at 4", func() {
			view := BuildProgressView(progressRows(1, 2, 3, 4))
			So(view.CurrentVideo, ShouldEqual, 4)
			So(view.AllCompleted(), ShouldBeTrue)
		})

		Convey("incomplete rows and out-of-range numbers are ignored", func() {
			rows := append(progressRows(9), model.OnboardingVideoProgress{VideoNumber: 1, WatchedDuration: 50})
			view := BuildProgressView(rows)
			So(view.CurrentVideo, ShouldEqual, 1)
			So(view.IsCompleted(1), ShouldBeFalse)
		})
	})
}

func TestIsUnlocked(t *testing.T) {
	Convey("Video unlock rules", t, func() {
		Convey("video 1 is always unlocked", func() {
			So(BuildProgressView(nil).IsUnlocked(1), ShouldBeTrue)
		})

		Convey("video N needs N-1 completed", func() {
			view := BuildProgressView(progressRows(1))
			So(view.IsUnlocked(2), ShouldBeTrue)
			So(view.IsUnlocked(3), ShouldBeFalse)
		})

		Convey("a completed video stays unlocked for rewatching", func() {
			view := BuildProgressView(progressRows(3))
			So(view.IsUnlocked(3), ShouldBeTrue)
			So(view.IsUnlocked(4), ShouldBeTrue)
			So(view.IsUnlocked(2), ShouldBeFalse)
		})

		Convey("out of range numbers are locked", func() {
			view := BuildProgressView(progressRows(1, 2, 3, 4))
			So(view.IsUnlocked(0), ShouldBeFalse)
			So(view.IsUnlocked(5), ShouldBeFalse)
		})
	})
}

func TestReachedThreshold(t *testing.T) {
	Convey("Completion threshold is 98%", t, func() {
		So(ReachedThreshold(98, 100), ShouldBeTrue)
		So(ReachedThreshold(97.9, 100), ShouldBeFalse)
		So(ReachedThreshold(100, 100), ShouldBeTrue)
		So(ReachedThreshold(10, 0), ShouldBeFalse)
		So(ReachedThreshold(math.NaN(), 100), ShouldBeFalse)
	})
}
