package ifcstep

import (
	"fmt"
	"strconv"
	"strings"
)

// valueKind discriminates parsed STEP attribute values.
type valueKind int

const (
	kindNull valueKind = iota // $ or *
	kindString
	kindRef
	kindEnum
	kindNumber
	kindList
)

// value is one parsed STEP attribute. Typed values like
// IFCLABEL('Foo') are unwrapped to their inner value during parsing.
type value struct {
	kind valueKind
	str  string  // kindString, kindEnum, kindNumber
	ref  int     // kindRef
	list []value // kindList
}

// entity is one instanced row of the DATA section.
type entity struct {
	id       int
	typeName string // upper-cased as written in the file
	attrs    []value
}

// attr returns the attribute at position i, or a null value when the
// row is shorter than the schema expects. Attribute access never
// panics on malformed rows.
func (e *entity) attr(i int) value {
	if i < 0 || i >= len(e.attrs) {
		return value{kind: kindNull}
	}
	return e.attrs[i]
}

func (v value) asString() string {
	switch v.kind {
	case kindString, kindEnum, kindNumber:
		return v.str
	default:
		return ""
	}
}

func (v value) asRef() (int, bool) {
	if v.kind == kindRef {
		return v.ref, true
	}
	return 0, false
}

// parseStatements splits the DATA section into entity rows. Statements
// that do not parse are skipped and counted; a malformed row never
// fails the file.
func parseStatements(content string) (map[int]*entity, []int, int) {
	entities := make(map[int]*entity)
	var order []int
	skipped := 0

	for _, stmt := range splitStatements(content) {
		// Header and section rows carry no instance id; only actual
		// instance rows count as skipped when malformed.
		if !strings.HasPrefix(strings.TrimSpace(stmt), "#") {
			continue
		}
		ent, err := parseEntity(stmt)
		if err != nil {
			skipped++
			continue
		}
		if _, dup := entities[ent.id]; !dup {
			order = append(order, ent.id)
		}
		entities[ent.id] = ent
	}
	return entities, order, skipped
}

// splitStatements cuts the file at top-level semicolons, honouring
// quoted strings (with '' escapes) so an embedded ';' does not split a
// statement.
func splitStatements(content string) []string {
	var stmts []string
	var b strings.Builder
	inString := false

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == ';' && !inString:
			stmts = append(stmts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

// parseEntity parses one "#12=IFCSPACE(...)" statement.
func parseEntity(stmt string) (*entity, error) {
	s := strings.TrimSpace(stmt)
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("not an instance row")
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return nil, fmt.Errorf("missing '='")
	}
	id, err := strconv.Atoi(strings.TrimSpace(s[1:eq]))
	if err != nil {
		return nil, fmt.Errorf("bad instance id: %w", err)
	}

	rest := strings.TrimSpace(s[eq+1:])
	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("missing argument list")
	}
	typeName := strings.ToUpper(strings.TrimSpace(rest[:open]))
	if typeName == "" {
		return nil, fmt.Errorf("missing type name")
	}

	attrs, err := parseValueList(rest[open+1 : len(rest)-1])
	if err != nil {
		return nil, err
	}
	return &entity{id: id, typeName: typeName, attrs: attrs}, nil
}

// parseValueList parses a comma-separated attribute list, respecting
// nested parentheses and quoted strings.
func parseValueList(s string) ([]value, error) {
	var values []value
	for _, part := range splitTopLevel(s) {
		v, err := parseValue(part)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// splitTopLevel splits on commas outside parentheses and strings.
func splitTopLevel(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	var b strings.Builder
	depth := 0
	inString := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case inString:
			b.WriteByte(c)
		case c == '(':
			depth++
			b.WriteByte(c)
		case c == ')':
			depth--
			b.WriteByte(c)
		case c == ',' && depth == 0:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	parts = append(parts, b.String())
	return parts
}

// parseValue parses one attribute value.
func parseValue(s string) (value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "$" || s == "*":
		return value{kind: kindNull}, nil

	case s[0] == '\'':
		if len(s) < 2 || s[len(s)-1] != '\'' {
			return value{}, fmt.Errorf("unterminated string")
		}
		return value{kind: kindString, str: decodeString(s[1 : len(s)-1])}, nil

	case s[0] == '#':
		ref, err := strconv.Atoi(s[1:])
		if err != nil {
			return value{}, fmt.Errorf("bad reference %q", s)
		}
		return value{kind: kindRef, ref: ref}, nil

	case s[0] == '.':
		if len(s) < 2 || s[len(s)-1] != '.' {
			return value{}, fmt.Errorf("unterminated enum %q", s)
		}
		return value{kind: kindEnum, str: s[1 : len(s)-1]}, nil

	case s[0] == '(':
		if s[len(s)-1] != ')' {
			return value{}, fmt.Errorf("unterminated list")
		}
		list, err := parseValueList(s[1 : len(s)-1])
		if err != nil {
			return value{}, err
		}
		return value{kind: kindList, list: list}, nil

	case s[0] >= '0' && s[0] <= '9' || s[0] == '-' || s[0] == '+':
		return value{kind: kindNumber, str: s}, nil

	default:
		// Typed value, e.g. IFCLABEL('Foo') or IFCBOOLEAN(.T.):
		// unwrap to the inner value.
		open := strings.IndexByte(s, '(')
		if open > 0 && strings.HasSuffix(s, ")") {
			return parseValue(s[open+1 : len(s)-1])
		}
		return value{}, fmt.Errorf("unrecognised value %q", s)
	}
}

// decodeString undoes the STEP '' quote escape.
func decodeString(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}
