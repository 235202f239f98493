package schedule

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSceneDraft_Validate(t *testing.T) {
	Convey("SceneDraft.Validate enforces the scene invariants", t, func() {
		Convey("a location is required", func() {
			draft := SceneDraft{SceneNo: 1}
			So(draft.Validate(), ShouldEqual, ErrLocationRequired)

			draft.Location = "   "
			So(draft.Validate(), ShouldEqual, ErrLocationRequired)

			draft.Location = "Studio A"
			So(draft.Validate(), ShouldBeNil)
		})

		Convey("duplicate cast names are rejected", func() {
			draft := SceneDraft{
				Location: "Studio A",
				Cast:     []string{"Alice", "Bob", "Alice"},
			}
			So(draft.Validate(), ShouldEqual, ErrDuplicateCastMember)
		})

		Convey("the cast cap is enforced", func() {
			draft := SceneDraft{Location: "Studio A"}
			for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"} {
				draft.Cast = append(draft.Cast, name)
			}
			So(draft.Validate(), ShouldEqual, ErrCastLimitExceeded)

			draft.Cast = draft.Cast[:MaxCastMembers]
			So(draft.Validate(), ShouldBeNil)
		})
	})
}

func TestSceneDraft_AddCast(t *testing.T) {
	Convey("SceneDraft.AddCast builds a distinct, capped cast list", t, func() {
		draft := SceneDraft{Location: "Studio A"}

		Convey("blank names are silently skipped", func() {
			So(draft.AddCast("   "), ShouldBeNil)
			So(draft.AddCast(""), ShouldBeNil)
			So(draft.Cast, ShouldBeEmpty)
		})

		Convey("duplicates are a no-op, not an error", func() {
			So(draft.AddCast("Alice"), ShouldBeNil)
			So(draft.AddCast("Alice"), ShouldBeNil)
			So(draft.AddCast("  Alice  "), ShouldBeNil)
			So(draft.Cast, ShouldResemble, []string{"Alice"})
		})

		Convey("the eleventh distinct name is rejected and the list unchanged", func() {
			for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
				So(draft.AddCast(name), ShouldBeNil)
			}
			So(len(draft.Cast), ShouldEqual, MaxCastMembers)

			So(draft.AddCast("K"), ShouldEqual, ErrCastLimitExceeded)
			So(len(draft.Cast), ShouldEqual, MaxCastMembers)

			Convey("but re-adding an existing name still succeeds", func() {
				So(draft.AddCast("A"), ShouldBeNil)
				So(len(draft.Cast), ShouldEqual, MaxCastMembers)
			})
		})
	})
}

func TestSceneDraft_NormalizedPageCount(t *testing.T) {
	Convey("NormalizedPageCount collapses invalid values to zero", t, func() {
		So((&SceneDraft{PageCount: 2.5}).NormalizedPageCount(), ShouldEqual, 2.5)
		So((&SceneDraft{PageCount: 0}).NormalizedPageCount(), ShouldEqual, 0)
		So((&SceneDraft{PageCount: -1.5}).NormalizedPageCount(), ShouldEqual, 0)
	})
}

func TestSortScenes(t *testing.T) {
	Convey("SortScenes orders by scene number and keeps insertion order for ties", t, func() {
		scenes := []Scene{
			{ID: "c", SceneNo: 5},
			{ID: "a", SceneNo: 2},
			{ID: "b", SceneNo: 5},
			{ID: "d", SceneNo: 1},
		}

		SortScenes(scenes)

		ids := make([]string, 0, len(scenes))
		for _, s := range scenes {
			ids = append(ids, s.ID)
		}
		So(ids, ShouldResemble, []string{"d", "a", "c", "b"})
	})
}

func TestScene_JSONRoundTrip(t *testing.T) {
	Convey("a fully populated scene survives a JSON round trip", t, func() {
		scene := Scene{
			ID:          "scene-1",
			SceneNo:     42,
			Location:    "Café Müller",
			DayNight:    "Night (interior)",
			PageCount:   1.625,
			Description: "Rain hammers the windows; 雨のシーン",
			Vehicles:    "Taxi, Vintage Bus",
			Cast:        []string{"Ana", "Béla", "Chloë", "Dmitri", "Eve", "Fynn", "Gül", "Hana", "Igor", "Jo"},
			CreatedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		}

		data, err := json.Marshal(scene)
		So(err, ShouldBeNil)

		var decoded Scene
		So(json.Unmarshal(data, &decoded), ShouldBeNil)
		So(decoded, ShouldResemble, scene)
	})
}
