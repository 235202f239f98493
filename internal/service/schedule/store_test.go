package schedule

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"stripboard/internal/model/schedule"
)

// fakeRepo keeps schedules in memory and counts writes, so tests can
// assert that no-op mutations are not persisted.
type fakeRepo struct {
	schedules map[string][]schedule.Scene
	replaces  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{schedules: make(map[string][]schedule.Scene)}
}

func (r *fakeRepo) Load(_ context.Context, userID string) ([]schedule.Scene, error) {
	scenes, ok := r.schedules[userID]
	if !ok {
		return []schedule.Scene{}, nil
	}
	out := make([]schedule.Scene, len(scenes))
	copy(out, scenes)
	return out, nil
}

func (r *fakeRepo) Replace(_ context.Context, userID string, scenes []schedule.Scene) error {
	r.replaces++
	stored := make([]schedule.Scene, len(scenes))
	copy(stored, scenes)
	r.schedules[userID] = stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, userID string) error {
	delete(r.schedules, userID)
	return nil
}

func TestService_Add(t *testing.T) {
	Convey("Service.Add validates, assigns ids, and keeps the collection sorted", t, func() {
		ctx := context.Background()
		repo := newFakeRepo()
		svc := NewService(repo, nil)
		userID := "user-1"

		Convey("a valid scene grows the collection by one", func() {
			scenes, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 3, Location: "Studio A"})
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
			So(scenes[0].ID, ShouldNotBeEmpty)
			So(scenes[0].CreatedAt.IsZero(), ShouldBeFalse)

			Convey("and the collection stays sorted by scene number", func() {
				scenes, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 1, Location: "Studio B"})
				So(err, ShouldBeNil)
				So(len(scenes), ShouldEqual, 2)
				So(scenes[0].SceneNo, ShouldEqual, 1)
				So(scenes[1].SceneNo, ShouldEqual, 3)
			})
		})

		Convey("input fields are trimmed before validation", func() {
			scenes, err := svc.Add(ctx, userID, schedule.SceneDraft{
				SceneNo:  1,
				Location: "  Studio A  ",
				Vehicles: "  Car, Van  ",
				Cast:     []string{" Alice ", ""},
			})
			So(err, ShouldBeNil)
			So(scenes[0].Location, ShouldEqual, "Studio A")
			So(scenes[0].Vehicles, ShouldEqual, "Car, Van")
			So(scenes[0].Cast, ShouldResemble, []string{"Alice"})
		})

		Convey("an invalid draft leaves the stored collection untouched", func() {
			_, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 1})
			So(err, ShouldEqual, schedule.ErrLocationRequired)
			So(repo.replaces, ShouldEqual, 0)

			stored, _ := svc.Load(ctx, userID)
			So(stored, ShouldBeEmpty)
		})

		Convey("a negative page count is stored as zero", func() {
			scenes, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 1, Location: "Studio A", PageCount: -2})
			So(err, ShouldBeNil)
			So(scenes[0].PageCount, ShouldEqual, 0)
		})
	})
}

func TestService_Delete(t *testing.T) {
	Convey("Service.Delete removes by id and treats unknown ids as no-ops", t, func() {
		ctx := context.Background()
		repo := newFakeRepo()
		svc := NewService(repo, nil)
		userID := "user-1"

		scenes, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 1, Location: "Studio A"})
		So(err, ShouldBeNil)
		_, err = svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 2, Location: "Studio B"})
		So(err, ShouldBeNil)
		target := scenes[0].ID
		writesBefore := repo.replaces

		Convey("deleting an existing scene shrinks the collection", func() {
			remaining, err := svc.Delete(ctx, userID, target)
			So(err, ShouldBeNil)
			So(len(remaining), ShouldEqual, 1)
			So(remaining[0].Location, ShouldEqual, "Studio B")
		})

		Convey("an unknown id changes nothing and persists nothing", func() {
			remaining, err := svc.Delete(ctx, userID, "no-such-scene")
			So(err, ShouldBeNil)
			So(len(remaining), ShouldEqual, 2)
			So(repo.replaces, ShouldEqual, writesBefore)
		})
	})
}

func TestService_Load(t *testing.T) {
	Convey("Service.Load returns an empty collection for a new user", t, func() {
		svc := NewService(newFakeRepo(), nil)

		scenes, err := svc.Load(context.Background(), "never-seen")
		So(err, ShouldBeNil)
		So(scenes, ShouldNotBeNil)
		So(scenes, ShouldBeEmpty)
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Service.Stats counts scenes and distinct locations", t, func() {
		ctx := context.Background()
		svc := NewService(newFakeRepo(), nil)
		userID := "user-1"

		for _, loc := range []string{"Studio A", "Studio B", "Studio A"} {
			_, err := svc.Add(ctx, userID, schedule.SceneDraft{SceneNo: 1, Location: loc})
			So(err, ShouldBeNil)
		}

		stats, err := svc.Stats(ctx, userID)
		So(err, ShouldBeNil)
		So(stats.TotalScenes, ShouldEqual, 3)
		So(stats.TotalLocations, ShouldEqual, 2)
	})
}
