package ui

import (
	"sort"
	"strconv"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

// sortLocations orders locations for display: the main stream first, then
// numeric topic ids ascending, then anything else lexicographically.
func sortLocations(byLocation map[string][]string) []string {
	locations := make([]string, 0, len(byLocation))
	for location := range byLocation {
		locations = append(locations, location)
	}
	sort.Slice(locations, func(i, j int) bool {
		return locationRank(locations[i]).less(locationRank(locations[j]))
	})
	return locations
}

type locationOrder struct {
	class int
	id    int
	raw   string
}

func locationRank(location string) locationOrder {
	if location == model.DefaultLocation {
		return locationOrder{class: 0}
	}
	if id, err := strconv.Atoi(location); err == nil {
		return locationOrder{class: 1, id: id, raw: location}
	}
	return locationOrder{class: 2, raw: location}
}

func (o locationOrder) less(other locationOrder) bool {
	if o.class != other.class {
		return o.class < other.class
	}
	if o.class == 1 && o.id != other.id {
		return o.id < other.id
	}
	return o.raw < other.raw
}
