package domain

// Element is the minimal summary of one model element.
// Optional source attributes are resolved to typed fields exactly once,
// when the model source materialises the element; absent attributes
// become empty strings rather than being re-probed at each read site.
type Element struct {
	// ID is the globally unique identifier within a model (IFC GlobalId).
	ID string

	// TypeName is the schema type, e.g. "IfcDuctSegment".
	TypeName string

	// Name is the display name. May be empty.
	Name string

	// ObjectType is the optional object-type tag.
	ObjectType string

	// PredefinedType is the optional predefined-type tag.
	PredefinedType string

	// LongName is the optional long name. Only spatial elements
	// (IfcSpace) carry one.
	LongName string

	// HasGeometry reports whether the element carries a geometric
	// representation handle. Elements without one are excluded from
	// render sampling before extraction is attempted.
	HasGeometry bool
}

// DisplayName returns the element name, falling back to the identifier
// when no name is set.
func (e Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Property is one simple name/value pair.
type Property struct {
	Name  string
	Value string
}

// PropertyGroup is a named bundle of simple name/value attributes
// attached to an element. Group names are not guaranteed unique
// across elements.
type PropertyGroup struct {
	Name       string
	Properties []Property
}
