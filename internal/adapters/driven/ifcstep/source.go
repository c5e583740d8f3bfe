package ifcstep

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// Ensure the adapter satisfies its ports.
var (
	_ driven.ModelSource  = (*Source)(nil)
	_ driven.SourceOpener = (*Opener)(nil)
)

// Well-known attribute positions shared by IfcRoot descendants.
const (
	attrGlobalID       = 0
	attrName           = 2
	attrObjectType     = 4
	attrRepresentation = 6
	attrSpaceLongName  = 7
	attrPlacement      = 5
)

// Relationship entity types consumed by the index build.
const (
	typeSpace          = "IFCSPACE"
	typeRelContained   = "IFCRELCONTAINEDINSPATIALSTRUCTURE"
	typeRelReferenced  = "IFCRELREFERENCEDINSPATIALSTRUCTURE"
	typeRelDefines     = "IFCRELDEFINESBYPROPERTIES"
	typePropertySet    = "IFCPROPERTYSET"
	typePropertySingle = "IFCPROPERTYSINGLEVALUE"
	typeLocalPlacement = "IFCLOCALPLACEMENT"
	typeAxisPlacement  = "IFCAXIS2PLACEMENT3D"
	typeCartesianPoint = "IFCCARTESIANPOINT"
)

// canonicalNames maps upper-cased type names back to their schema
// casing for display. Unknown types keep the file's casing.
var canonicalNames = buildCanonicalNames()

func buildCanonicalNames() map[string]string {
	names := map[string]string{typeSpace: "IfcSpace"}
	for _, name := range domain.ClassifiedTypeNames() {
		names[strings.ToUpper(name)] = name
	}
	return names
}

// Opener parses STEP physical files into model sources.
type Opener struct{}

// NewOpener creates a STEP file opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open reads and parses the file. Malformed rows are skipped; only a
// file without a single parseable entity is an error.
func (o *Opener) Open(path string) (driven.ModelSource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(content))
}

// Parse builds a model source from STEP file content.
func Parse(content string) (*Source, error) {
	entities, order, skipped := parseStatements(content)
	if len(entities) == 0 {
		return nil, domain.ErrEmptyModel
	}
	if skipped > 0 {
		logger.Warn("Parser skipped %d malformed rows", skipped)
	}

	s := &Source{
		entities: entities,
		order:    order,
		byType:   make(map[string][]int),
		byGUID:   make(map[string]int),
		psets:    make(map[int][]int),
		skipped:  skipped,
	}

	for _, id := range order {
		ent := entities[id]
		s.byType[ent.typeName] = append(s.byType[ent.typeName], id)

		// First occurrence wins on duplicate global ids.
		if guid := ent.attr(attrGlobalID).asString(); guid != "" {
			if _, seen := s.byGUID[guid]; !seen {
				s.byGUID[guid] = id
			}
		}
	}

	// Property set attachment: RelatedObjects(4) <- RelatingPropertyDefinition(5).
	for _, relID := range s.byType[typeRelDefines] {
		rel := entities[relID]
		setRef, ok := rel.attr(5).asRef()
		if !ok {
			continue
		}
		related := rel.attr(4)
		if related.kind != kindList {
			continue
		}
		for _, v := range related.list {
			if objRef, ok := v.asRef(); ok {
				s.psets[objRef] = append(s.psets[objRef], setRef)
			}
		}
	}

	logger.Debug("Parsed %d entities (%d types)", len(entities), len(s.byType))
	return s, nil
}

// Source is a parsed STEP model implementing the element source
// contract. It is read-only after Parse.
type Source struct {
	entities map[int]*entity
	order    []int
	byType   map[string][]int
	byGUID   map[string]int
	psets    map[int][]int // entity id -> property set entity ids
	skipped  int
}

// SkippedRows reports how many malformed instance rows the parser dropped.
func (s *Source) SkippedRows() int {
	return s.skipped
}

// ElementsOfType returns all elements of the type, case-insensitively,
// in file order.
func (s *Source) ElementsOfType(typeName string) ([]domain.Element, error) {
	ids := s.byType[strings.ToUpper(typeName)]
	elems := make([]domain.Element, 0, len(ids))
	for _, id := range ids {
		elems = append(elems, s.materialize(s.entities[id]))
	}
	return elems, nil
}

// ElementByID returns the element with the given global identifier.
func (s *Source) ElementByID(id string) (domain.Element, error) {
	entID, ok := s.byGUID[id]
	if !ok {
		return domain.Element{}, fmt.Errorf("element %s: %w", id, domain.ErrNotFound)
	}
	return s.materialize(s.entities[entID]), nil
}

// Containments returns the "physically located in" relationship
// records whose relating structure is a space.
func (s *Source) Containments() ([]driven.SpatialRelation, error) {
	return s.spatialRelations(typeRelContained), nil
}

// References returns the weaker "associated with" relationship records.
func (s *Source) References() ([]driven.SpatialRelation, error) {
	return s.spatialRelations(typeRelReferenced), nil
}

// spatialRelations reads one relationship entity type. Both kinds share
// the same layout: RelatedElements(4), RelatingStructure(5). Records
// with an unresolvable structure are skipped as units.
func (s *Source) spatialRelations(relType string) []driven.SpatialRelation {
	var rels []driven.SpatialRelation
	for _, relID := range s.byType[relType] {
		rel := s.entities[relID]

		structRef, ok := rel.attr(5).asRef()
		if !ok {
			logger.Debug("Relation #%d: no relating structure, skipped", relID)
			continue
		}
		structure, ok := s.entities[structRef]
		if !ok {
			logger.Debug("Relation #%d: dangling structure #%d, skipped", relID, structRef)
			continue
		}
		zoneID := structure.attr(attrGlobalID).asString()

		related := rel.attr(4)
		if related.kind != kindList {
			continue
		}
		elems := make([]domain.Element, 0, len(related.list))
		for _, v := range related.list {
			ref, ok := v.asRef()
			if !ok {
				continue
			}
			ent, ok := s.entities[ref]
			if !ok {
				// A dangling member reference skips that member only.
				logger.Debug("Relation #%d: dangling element #%d, skipped", relID, ref)
				continue
			}
			elems = append(elems, s.materialize(ent))
		}
		rels = append(rels, driven.SpatialRelation{ZoneID: zoneID, Elements: elems})
	}
	return rels
}

// PropertySets returns the property sets reached through the element's
// "defines" relationships. Only simple single-value properties carry
// Single=true; every other property type (complex, enumerated, lists)
// is reported with Single=false for the core to skip.
func (s *Source) PropertySets(elementID string) ([]driven.PropertySetRecord, error) {
	entID, ok := s.byGUID[elementID]
	if !ok {
		return nil, fmt.Errorf("element %s: %w", elementID, domain.ErrNotFound)
	}

	var records []driven.PropertySetRecord
	for _, setRef := range s.psets[entID] {
		set, ok := s.entities[setRef]
		if !ok || set.typeName != typePropertySet {
			continue
		}
		rec := driven.PropertySetRecord{Name: set.attr(attrName).asString()}

		props := set.attr(4)
		if props.kind == kindList {
			for _, v := range props.list {
				ref, ok := v.asRef()
				if !ok {
					continue
				}
				prop, ok := s.entities[ref]
				if !ok {
					continue
				}
				if prop.typeName != typePropertySingle {
					rec.Props = append(rec.Props, driven.PropertyRecord{
						Name:   prop.attr(0).asString(),
						Single: false,
					})
					continue
				}
				rec.Props = append(rec.Props, driven.PropertyRecord{
					Name:   prop.attr(0).asString(),
					Value:  prop.attr(2).asString(),
					Single: true,
				})
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Placement resolves the element's world position by accumulating its
// local placement chain. Used by the mesh extractor to position proxy
// geometry.
func (s *Source) Placement(elementID string) ([3]float64, error) {
	entID, ok := s.byGUID[elementID]
	if !ok {
		return [3]float64{}, fmt.Errorf("element %s: %w", elementID, domain.ErrNotFound)
	}

	var pos [3]float64
	ref, ok := s.entities[entID].attr(attrPlacement).asRef()
	if !ok {
		return pos, fmt.Errorf("element %s: %w", elementID, domain.ErrNoGeometry)
	}

	// Walk the PlacementRelTo chain with a depth guard against cycles.
	for depth := 0; depth < 64; depth++ {
		placement, ok := s.entities[ref]
		if !ok || placement.typeName != typeLocalPlacement {
			break
		}
		if axisRef, ok := placement.attr(1).asRef(); ok {
			x, y, z := s.axisLocation(axisRef)
			pos[0] += x
			pos[1] += y
			pos[2] += z
		}
		parent, ok := placement.attr(0).asRef()
		if !ok {
			break
		}
		ref = parent
	}
	return pos, nil
}

// axisLocation reads the cartesian location of an axis placement.
func (s *Source) axisLocation(ref int) (x, y, z float64) {
	axis, ok := s.entities[ref]
	if !ok || axis.typeName != typeAxisPlacement {
		return 0, 0, 0
	}
	pointRef, ok := axis.attr(0).asRef()
	if !ok {
		return 0, 0, 0
	}
	point, ok := s.entities[pointRef]
	if !ok || point.typeName != typeCartesianPoint {
		return 0, 0, 0
	}
	coords := point.attr(0)
	if coords.kind != kindList {
		return 0, 0, 0
	}
	read := func(i int) float64 {
		if i >= len(coords.list) {
			return 0
		}
		f, _ := parseFloat(coords.list[i])
		return f
	}
	return read(0), read(1), read(2)
}

// materialize resolves an entity's optional attributes into a typed
// element summary, exactly once.
func (s *Source) materialize(ent *entity) domain.Element {
	typeName := ent.typeName
	if canonical, ok := canonicalNames[typeName]; ok {
		typeName = canonical
	}

	elem := domain.Element{
		ID:         ent.attr(attrGlobalID).asString(),
		TypeName:   typeName,
		Name:       ent.attr(attrName).asString(),
		ObjectType: ent.attr(attrObjectType).asString(),
	}

	if _, ok := ent.attr(attrRepresentation).asRef(); ok {
		elem.HasGeometry = true
	}

	if ent.typeName == typeSpace {
		elem.LongName = ent.attr(attrSpaceLongName).asString()
	}

	// Distribution elements carry their predefined type as the trailing
	// enum attribute; spaces use position 9 in the IFC4 layout.
	for i := len(ent.attrs) - 1; i >= attrSpaceLongName; i-- {
		if ent.attrs[i].kind == kindEnum {
			elem.PredefinedType = ent.attrs[i].str
			break
		}
	}

	return elem
}

func parseFloat(v value) (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
