package export

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"stripboard/internal/model/schedule"
	scheduleService "stripboard/internal/service/schedule"
)

func TestMasterUnit(t *testing.T) {
	Convey("MasterUnit lays out one row per scene across all locations", t, func() {
		scenes := []schedule.Scene{
			{SceneNo: 1, Location: "Studio A", DayNight: "Day", Cast: []string{"Alice", "Bob"}, Description: "Opening", Vehicles: "Car", PageCount: 2.5},
			{SceneNo: 2, Location: "Studio B"},
		}

		unit := MasterUnit(scenes)
		So(unit.Title, ShouldEqual, "Master Schedule")
		So(unit.Headers, ShouldContain, "Location")
		So(len(unit.Rows), ShouldEqual, 2)
		So(unit.Rows[0], ShouldResemble, []string{"1", "Studio A", "Day", "Alice, Bob", "Opening", "Car", "2.5"})

		Convey("empty fields render as dashes", func() {
			So(unit.Rows[1], ShouldResemble, []string{"2", "Studio B", "-", "-", "-", "-", "-"})
		})
	})
}

func TestBreakdownUnit(t *testing.T) {
	Convey("BreakdownUnit titles the page with the location and drops the column", t, func() {
		unit := BreakdownUnit(scheduleService.Breakdown{
			Location: "Studio A",
			Scenes: []schedule.Scene{
				{SceneNo: 7, Location: "Studio A", DayNight: "Night", PageCount: 0.125},
			},
		})

		So(unit.Title, ShouldEqual, "Studio A")
		So(unit.Headers, ShouldNotContain, "Location")
		So(unit.Rows[0], ShouldResemble, []string{"7", "Night", "-", "-", "-", "0.125"})
	})
}

func TestRenderUnit(t *testing.T) {
	Convey("RenderUnit produces a titled text table", t, func() {
		out := RenderUnit(Unit{
			Title:   "Studio A",
			Headers: []string{"Scene #", "Pages"},
			Rows:    [][]string{{"1", "2.5"}},
		})

		So(strings.HasPrefix(out, "Studio A\n\n"), ShouldBeTrue)
		So(out, ShouldContainSubstring, "Scene #")
		So(out, ShouldContainSubstring, "2.5")
		So(strings.HasSuffix(out, "\n"), ShouldBeTrue)
	})
}

func TestFilenames(t *testing.T) {
	Convey("Filename names documents by kind and creation date", t, func() {
		// fixed date via a zero-value-free job
		job := newTestJob("master", "")
		So(Filename(job), ShouldEqual, "Master_Schedule_2026-03-14.txt")

		job = newTestJob("breakdown", "Studio A")
		So(Filename(job), ShouldEqual, "Breakdown_Studio_A_2026-03-14.txt")

		job = newTestJob("all_breakdowns", "")
		So(Filename(job), ShouldEqual, "All_Breakdowns_2026-03-14.txt")

		Convey("path-hostile location characters are replaced", func() {
			job = newTestJob("breakdown", `Dock 4: "North/South"`)
			So(Filename(job), ShouldNotContainSubstring, "/")
			So(Filename(job), ShouldNotContainSubstring, `"`)
			So(Filename(job), ShouldNotContainSubstring, ":")
		})
	})
}
