package schedule

import (
	"strings"

	"stripboard/internal/model/schedule"
)

// Index is the derived index of a scene collection: the distinct
// locations, cast names, and vehicle names referenced across all
// scenes. It is transient, rebuilt from the collection, and never
// persisted; slices keep first-seen order.
type Index struct {
	Locations []string `json:"locations"`
	Cast      []string `json:"cast"`
	Vehicles  []string `json:"vehicles"`
}

// BuildIndex derives the index from the collection. It is a pure
// function of the scenes: rebuilding on an unchanged collection yields
// an identical index. Blank locations and vehicle tokens are excluded;
// cast names are taken verbatim.
func BuildIndex(scenes []schedule.Scene) Index {
	idx := Index{
		Locations: []string{},
		Cast:      []string{},
		Vehicles:  []string{},
	}
	seenLoc := make(map[string]struct{})
	seenCast := make(map[string]struct{})
	seenVehicle := make(map[string]struct{})

	for _, scene := range scenes {
		if scene.Location != "" {
			if _, ok := seenLoc[scene.Location]; !ok {
				seenLoc[scene.Location] = struct{}{}
				idx.Locations = append(idx.Locations, scene.Location)
			}
		}
		for _, name := range scene.Cast {
			if _, ok := seenCast[name]; !ok {
				seenCast[name] = struct{}{}
				idx.Cast = append(idx.Cast, name)
			}
		}
		for _, vehicle := range SplitVehicles(scene.Vehicles) {
			if _, ok := seenVehicle[vehicle]; !ok {
				seenVehicle[vehicle] = struct{}{}
				idx.Vehicles = append(idx.Vehicles, vehicle)
			}
		}
	}

	return idx
}

// SplitVehicles tokenizes a scene's comma-separated vehicles field:
// split on commas, trim whitespace, drop empty tokens.
func SplitVehicles(vehicles string) []string {
	if vehicles == "" {
		return nil
	}
	var names []string
	for _, token := range strings.Split(vehicles, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			names = append(names, token)
		}
	}
	return names
}
