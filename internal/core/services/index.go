package services

import (
	"fmt"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// Ensure IndexBuilder implements the interface.
var _ driving.IndexService = (*IndexBuilder)(nil)

// zoneTypeName is the element kind that acts as a spatial container.
const zoneTypeName = "IfcSpace"

// unitResult is the outcome of processing one unit (a relation record,
// an element, a property set). A failed unit is skipped and counted,
// never escalated to a build failure.
type unitResult struct {
	skipped bool
}

// IndexBuilder builds the room-keyed spatial/classification index.
type IndexBuilder struct{}

// NewIndexBuilder creates a new index builder.
func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

// Build walks the model's containment and reference relationships and
// produces the index. The walk is tolerant: any error while resolving
// a single relation record, element or property set skips that unit.
func (b *IndexBuilder) Build(src driven.ModelSource) (*domain.Index, error) {
	logger.Section("Index Build")

	idx := domain.NewIndex()
	skipped := 0

	// Zone candidates: elements of the space kind with a non-empty
	// identifier. On duplicate identifiers the last-seen element wins
	// (map semantics); the zone keeps its first enumeration position.
	spaces, err := src.ElementsOfType(zoneTypeName)
	if err != nil {
		return nil, fmt.Errorf("enumerate spaces: %w", err)
	}
	for _, sp := range spaces {
		if sp.ID == "" {
			logger.Debug("Skipping space without identifier (%q)", sp.Name)
			skipped++
			continue
		}
		name := sp.Name
		if name == "" {
			name = "Space_" + sp.ID
		}
		if _, exists := idx.Zones[sp.ID]; !exists {
			idx.ZoneOrder = append(idx.ZoneOrder, sp.ID)
		}
		idx.Zones[sp.ID] = &domain.Zone{
			ID:       sp.ID,
			Name:     name,
			LongName: sp.LongName,
		}
	}
	logger.Debug("Zones: %d", len(idx.Zones))

	// Membership candidates per zone: containment members first, then
	// reference members as a weaker fallback, merged in that order.
	members := make(map[string][]domain.Element)

	contained, res := b.collectRelations(src.Containments, "containment")
	if res.skipped {
		skipped++
	}
	for _, rel := range contained {
		if _, ok := idx.Zones[rel.ZoneID]; !ok {
			continue
		}
		members[rel.ZoneID] = append(members[rel.ZoneID], rel.Elements...)
	}

	referenced, res := b.collectRelations(src.References, "reference")
	if res.skipped {
		skipped++
	}
	for _, rel := range referenced {
		if _, ok := idx.Zones[rel.ZoneID]; !ok {
			continue
		}
		members[rel.ZoneID] = append(members[rel.ZoneID], rel.Elements...)
	}

	items := 0
	for _, zoneID := range idx.ZoneOrder {
		zone := idx.Zones[zoneID]
		for _, elem := range dedupeByID(members[zoneID]) {
			// Every walked element lands in the global lookup,
			// classified or not. First write wins when the same
			// identifier shows up under a second zone: this is the
			// defined policy, not an accident.
			if elem.ID != "" {
				if _, seen := idx.Lookup[elem.ID]; !seen {
					idx.Lookup[elem.ID] = elem
				}
			}

			category, ok := domain.Classify(elem.TypeName)
			if !ok {
				continue
			}

			// Property groups are attached lazily, only for items that
			// matched a category.
			groups := b.readProperties(src, elem.ID)
			zone.Items = append(zone.Items, domain.ClassifiedItem{
				Element:        elem,
				Category:       category,
				PropertyGroups: groups,
			})
			items++
		}
	}

	idx.Stats = domain.BuildStats{
		Zones:   len(idx.Zones),
		Items:   items,
		Skipped: skipped,
	}
	logger.Info("Index built: %d zones, %d classified items, %d skipped units",
		idx.Stats.Zones, idx.Stats.Items, idx.Stats.Skipped)

	return idx, nil
}

// collectRelations fetches one relation kind, mapping a failed fetch to
// a skipped unit and an empty record set.
func (b *IndexBuilder) collectRelations(
	fetch func() ([]driven.SpatialRelation, error), kind string,
) ([]driven.SpatialRelation, unitResult) {
	rels, err := fetch()
	if err != nil {
		logger.Warn("Skipping %s relations: %v", kind, err)
		return nil, unitResult{skipped: true}
	}
	logger.Debug("%s relations: %d", kind, len(rels))
	return rels, unitResult{}
}

// readProperties reads the simple single-value property groups attached
// to an element. Failures are local: a failed fetch yields no groups,
// and complex properties within a set are skipped rather than erroring.
func (b *IndexBuilder) readProperties(src driven.ModelSource, elementID string) []domain.PropertyGroup {
	if elementID == "" {
		return nil
	}

	sets, err := src.PropertySets(elementID)
	if err != nil {
		logger.Debug("Skipping property sets for %s: %v", elementID, err)
		return nil
	}

	groups := make([]domain.PropertyGroup, 0, len(sets))
	for _, set := range sets {
		group := domain.PropertyGroup{Name: set.Name}
		for _, prop := range set.Props {
			if !prop.Single {
				continue
			}
			group.Properties = append(group.Properties, domain.Property{
				Name:  prop.Name,
				Value: prop.Value,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// dedupeByID drops repeat occurrences of the same non-empty identifier,
// keeping the first. Elements without an identifier are kept but never
// deduplicated against each other.
func dedupeByID(elems []domain.Element) []domain.Element {
	seen := make(map[string]bool, len(elems))
	out := make([]domain.Element, 0, len(elems))
	for _, elem := range elems {
		if elem.ID != "" {
			if seen[elem.ID] {
				continue
			}
			seen[elem.ID] = true
		}
		out = append(out, elem)
	}
	return out
}
