package domain

import (
	"sort"
	"strings"
)

// Index is the root aggregate built once per loaded model and held for
// the session. It is rebuilt wholesale when a new model is loaded,
// never mutated incrementally.
type Index struct {
	// Zones maps zone identifier to zone. Every key is non-empty.
	Zones map[string]*Zone

	// ZoneOrder holds zone identifiers in the order their backing
	// elements were enumerated. Zone ordering is not contractually
	// sorted; callers needing a sorted view sort by display name.
	ZoneOrder []string

	// Lookup maps element identifier to its summary for every element
	// encountered during the containment/reference walk, classified or
	// not. First occurrence wins on duplicate identifiers.
	Lookup map[string]Element

	// Stats summarises the build.
	Stats BuildStats
}

// BuildStats counts what the index build processed.
type BuildStats struct {
	// Zones is the number of indexed zones.
	Zones int

	// Items is the number of classified items across all zones.
	Items int

	// Skipped counts units (relations, elements, property groups) that
	// were dropped because resolving them failed.
	Skipped int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Zones:  make(map[string]*Zone),
		Lookup: make(map[string]Element),
	}
}

// ZonesInOrder returns the zones in enumeration order.
func (idx *Index) ZonesInOrder() []*Zone {
	zones := make([]*Zone, 0, len(idx.ZoneOrder))
	for _, id := range idx.ZoneOrder {
		if z, ok := idx.Zones[id]; ok {
			zones = append(zones, z)
		}
	}
	return zones
}

// ZonesByName returns the zones sorted by case-folded display name.
func (idx *Index) ZonesByName() []*Zone {
	zones := idx.ZonesInOrder()
	sort.SliceStable(zones, func(i, j int) bool {
		return strings.ToLower(zones[i].Name) < strings.ToLower(zones[j].Name)
	})
	return zones
}

// FindItem scans every zone's classified items for the given
// identifier. Returns the owning zone and the item.
func (idx *Index) FindItem(id string) (*Zone, *ClassifiedItem, bool) {
	for _, zone := range idx.ZonesInOrder() {
		for i := range zone.Items {
			if zone.Items[i].ID == id {
				return zone, &zone.Items[i], true
			}
		}
	}
	return nil, nil, false
}
