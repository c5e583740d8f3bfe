package domain

import "strings"

// Category is a coarse building-services grouping derived from an
// element's type name. It is never stored on the element itself and is
// always recomputable from the type name alone.
type Category string

// Known categories.
const (
	CategoryVentilation Category = "ventilation"
	CategoryHeating     Category = "heating"
	CategoryCooling     Category = "cooling"
	CategoryLighting    Category = "lighting"
	CategoryControls    Category = "controls"
	CategorySanitary    Category = "sanitary"
)

// Label returns the German display label used in answer texts.
func (c Category) Label() string {
	switch c {
	case CategoryVentilation:
		return "Lüftung"
	case CategoryHeating:
		return "Heizung"
	case CategoryCooling:
		return "Kühlung"
	case CategoryLighting:
		return "Beleuchtung"
	case CategoryControls:
		return "Gebäudeautomation"
	case CategorySanitary:
		return "Sanitär"
	default:
		return string(c)
	}
}

// Categories lists all known categories in table order.
func Categories() []Category {
	return []Category{
		CategoryVentilation,
		CategoryHeating,
		CategoryCooling,
		CategoryLighting,
		CategoryControls,
		CategorySanitary,
	}
}

// categoryEntry is one row of the classification table.
type categoryEntry struct {
	typeName string
	category Category
}

// categoryTable maps IFC type names to categories. The table is ordered
// and the first matching entry wins, so an accidental overlap resolves
// deterministically. Static process-wide configuration; never mutated
// after init.
var categoryTable = []categoryEntry{
	// Ventilation
	{"IfcDuctSegment", CategoryVentilation},
	{"IfcDuctFitting", CategoryVentilation},
	{"IfcDuctSilencer", CategoryVentilation},
	{"IfcAirTerminal", CategoryVentilation},
	{"IfcAirTerminalBox", CategoryVentilation},
	{"IfcAirToAirHeatRecovery", CategoryVentilation},
	{"IfcFan", CategoryVentilation},
	{"IfcFilter", CategoryVentilation},
	{"IfcDamper", CategoryVentilation},

	// Heating
	{"IfcBoiler", CategoryHeating},
	{"IfcSpaceHeater", CategoryHeating},
	{"IfcHeatExchanger", CategoryHeating},
	{"IfcBurner", CategoryHeating},

	// Cooling
	{"IfcChiller", CategoryCooling},
	{"IfcCoolingTower", CategoryCooling},
	{"IfcCooledBeam", CategoryCooling},
	{"IfcEvaporativeCooler", CategoryCooling},
	{"IfcEvaporator", CategoryCooling},
	{"IfcCondenser", CategoryCooling},

	// Lighting
	{"IfcLightFixture", CategoryLighting},
	{"IfcLamp", CategoryLighting},

	// Controls / building automation
	{"IfcController", CategoryControls},
	{"IfcSensor", CategoryControls},
	{"IfcActuator", CategoryControls},
	{"IfcAlarm", CategoryControls},
	{"IfcFlowInstrument", CategoryControls},
	{"IfcUnitaryControlElement", CategoryControls},

	// Sanitary
	{"IfcSanitaryTerminal", CategorySanitary},
	{"IfcWasteTerminal", CategorySanitary},
}

// Classify maps a type name to its category. Pure and total: unknown
// type names report ok=false. Matching is case-insensitive because
// STEP files are not consistent about casing.
func Classify(typeName string) (Category, bool) {
	for _, entry := range categoryTable {
		if strings.EqualFold(entry.typeName, typeName) {
			return entry.category, true
		}
	}
	return "", false
}

// ClassifiedTypeNames returns the type names of the classification
// table, in table order. Used as the default candidate set for render
// sampling.
func ClassifiedTypeNames() []string {
	names := make([]string, 0, len(categoryTable))
	for _, entry := range categoryTable {
		names = append(names, entry.typeName)
	}
	return names
}
