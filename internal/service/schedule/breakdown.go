package schedule

import (
	"sort"

	"stripboard/internal/model/schedule"
)

// Breakdown is the subsequence of scenes shot at one location, in
// scene-number order. It backs location-specific call sheets.
type Breakdown struct {
	Location string           `json:"location"`
	Scenes   []schedule.Scene `json:"scenes"`
}

// LocationsSorted returns the index's locations in lexicographic
// ascending order.
func LocationsSorted(idx Index) []string {
	locations := make([]string, len(idx.Locations))
	copy(locations, idx.Locations)
	sort.Strings(locations)
	return locations
}

// BreakdownFor returns the scenes shot at the given location, sorted
// ascending by scene number (stable). An unknown location yields an
// empty slice, not an error.
func BreakdownFor(scenes []schedule.Scene, location string) []schedule.Scene {
	matched := []schedule.Scene{}
	for _, scene := range scenes {
		if scene.Location == location {
			matched = append(matched, scene)
		}
	}
	schedule.SortScenes(matched)
	return matched
}

// AllBreakdowns returns one breakdown per location in lexicographic
// location order, regardless of the order locations were given in.
// Used for batch export: one page per location.
func AllBreakdowns(scenes []schedule.Scene, locations []string) []Breakdown {
	sorted := make([]string, len(locations))
	copy(sorted, locations)
	sort.Strings(sorted)

	breakdowns := make([]Breakdown, 0, len(sorted))
	for _, location := range sorted {
		breakdowns = append(breakdowns, Breakdown{
			Location: location,
			Scenes:   BreakdownFor(scenes, location),
		})
	}
	return breakdowns
}
