package driven

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

// SpatialRelation is one containment or reference relationship record:
// a zone element plus summaries of the elements it relates. Related
// elements are materialised by the source, so an element lacking a
// global identifier is still carried (with an empty ID) rather than
// silently dropped.
type SpatialRelation struct {
	// ZoneID is the identifier of the relating spatial structure.
	ZoneID string

	// Elements are the related element summaries, in record order.
	Elements []domain.Element
}

// PropertyRecord is one property attached through a property set.
// Single reports whether this is a simple single-value property;
// complex/composite properties carry Single=false and are skipped by
// the property reader rather than erroring.
type PropertyRecord struct {
	Name   string
	Value  string
	Single bool
}

// PropertySetRecord is one named property set reached through an
// element's "defines" relationship.
type PropertySetRecord struct {
	Name  string
	Props []PropertyRecord
}

// ModelSource is the opaque store of typed building elements. The file
// format parser behind it is an external collaborator: the core only
// relies on this contract. Every call may fail on malformed source
// data, and every call site must tolerate the failure and skip the
// offending unit rather than aborting a batch.
type ModelSource interface {
	// ElementsOfType returns all elements whose type name matches,
	// case-insensitively, in file order.
	ElementsOfType(typeName string) ([]domain.Element, error)

	// ElementByID returns the element with the given identifier.
	// Returns domain.ErrNotFound if absent.
	ElementByID(id string) (domain.Element, error)

	// Containments returns all "physically located in" relationship
	// records whose target container is a zone.
	Containments() ([]SpatialRelation, error)

	// References returns the weaker "associated with" relationship
	// records, used as a fallback source of zone membership.
	References() ([]SpatialRelation, error)

	// PropertySets returns the property sets attached to an element
	// via its "defines" relationships.
	PropertySets(elementID string) ([]PropertySetRecord, error)
}
