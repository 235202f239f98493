package schedule

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// MaxCastMembers caps the cast list of a single scene.
const MaxCastMembers = 10

var (
	ErrLocationRequired    = errors.New("location is required")
	ErrCastLimitExceeded   = errors.New("maximum 10 cast members allowed per scene")
	ErrDuplicateCastMember = errors.New("duplicate cast member")
)

// Scene is one shooting unit record. ID is assigned at creation and
// immutable afterwards; SceneNo is the user-supplied sort key and is not
// required to be unique.
type Scene struct {
	ID          string    `bson:"id" json:"id"`
	SceneNo     int       `bson:"scene_no" json:"scene_no"`
	Location    string    `bson:"location" json:"location"`
	DayNight    string    `bson:"day_night,omitempty" json:"day_night,omitempty"`
	PageCount   float64   `bson:"page_count" json:"page_count"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Vehicles    string    `bson:"vehicles,omitempty" json:"vehicles,omitempty"` // comma-separated names
	Cast        []string  `bson:"cast,omitempty" json:"cast,omitempty"`         // ordered, distinct
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// SceneDraft is user input for a new scene, before an id and creation
// timestamp are assigned.
type SceneDraft struct {
	SceneNo     int      `json:"scene_no"`
	Location    string   `json:"location"`
	DayNight    string   `json:"day_night,omitempty"`
	PageCount   float64  `json:"page_count,omitempty"`
	Description string   `json:"description,omitempty"`
	Vehicles    string   `json:"vehicles,omitempty"`
	Cast        []string `json:"cast,omitempty"`
}

// AddCast appends a cast name to the draft. Blank names and duplicates
// are no-ops; a full cast list is an error and leaves the draft
// unchanged.
func (d *SceneDraft) AddCast(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, existing := range d.Cast {
		if existing == name {
			return nil
		}
	}
	if len(d.Cast) >= MaxCastMembers {
		return ErrCastLimitExceeded
	}
	d.Cast = append(d.Cast, name)
	return nil
}

// Validate checks the draft invariants: non-empty location, distinct
// cast names, cast size within the cap.
func (d *SceneDraft) Validate() error {
	if strings.TrimSpace(d.Location) == "" {
		return ErrLocationRequired
	}
	if len(d.Cast) > MaxCastMembers {
		return ErrCastLimitExceeded
	}
	seen := make(map[string]struct{}, len(d.Cast))
	for _, name := range d.Cast {
		if _, dup := seen[name]; dup {
			return ErrDuplicateCastMember
		}
		seen[name] = struct{}{}
	}
	return nil
}

// NormalizedPageCount returns the draft page count with invalid values
// collapsed to 0 rather than rejected.
func (d *SceneDraft) NormalizedPageCount() float64 {
	if d.PageCount < 0 {
		return 0
	}
	return d.PageCount
}

// SortScenes orders scenes ascending by scene number. The sort is stable:
// scenes with equal numbers keep their relative insertion order.
func SortScenes(scenes []Scene) {
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].SceneNo < scenes[j].SceneNo
	})
}
