package domain

// Zone is a spatial container (a room). Zones are the unit queries are
// organised around.
type Zone struct {
	// ID is the zone element's identifier. Always non-empty for an
	// indexed zone.
	ID string

	// Name is the display name, synthesised as "Space_<id>" when the
	// backing element has none.
	Name string

	// LongName is the optional secondary name (IfcSpace LongName).
	LongName string

	// Items are the classified elements belonging to this zone, in
	// merge order: containment members first, then reference-only
	// members, deduplicated by identifier.
	Items []ClassifiedItem
}

// ClassifiedItem is one element that matched a category, recorded under
// exactly one zone. Property groups are cached here because they are
// the only data not re-derivable from the global lookup.
type ClassifiedItem struct {
	Element
	Category       Category
	PropertyGroups []PropertyGroup
}

// CategoryCounts tallies the zone's items per category.
func (z *Zone) CategoryCounts() map[Category]int {
	counts := make(map[Category]int)
	for _, item := range z.Items {
		counts[item.Category]++
	}
	return counts
}
