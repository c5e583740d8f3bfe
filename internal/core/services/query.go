package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

// Default answer caps. Tunable through the config store.
const (
	defaultSearchCap   = 60
	defaultPropertyCap = 30
)

// identifier tokens are 6+ characters of the IFC GlobalId alphabet.
var (
	reIDLookup = regexp.MustCompile(`\bid\s+([0-9A-Za-z_$]{6,})`)
	reDetails  = regexp.MustCompile(`\bdetails?\s+id\s+([0-9A-Za-z_$]{6,})`)
	rePsets    = regexp.MustCompile(`\b(?:psets?|property-?sets?|eigenschaften)\s+id\s+([0-9A-Za-z_$]{6,})`)
	reSearch   = regexp.MustCompile(`(?i)\b(?:search|suche)\s+"([^"]+)"`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// categoryTokens are the question words that select a category.
// Matched as whole words against the normalised question.
var categoryTokens = map[domain.Category][]string{
	domain.CategoryVentilation: {"lüftung", "luftung", "rlt", "ventilation"},
	domain.CategoryHeating:     {"heizung", "heating"},
	domain.CategoryCooling:     {"kühlung", "kuhlung", "kälte", "cooling"},
	domain.CategoryLighting:    {"beleuchtung", "licht", "lighting"},
	domain.CategoryControls:    {"gebäudeautomation", "ga", "msr", "regelung", "controls"},
	domain.CategorySanitary:    {"sanitär", "sanitar", "sanitary"},
}

// zoneWords mark that the question talks about a room.
var zoneWords = []string{"raum", "räume", "raeume", "zone", "zonen", "room", "rooms"}

// itemWords trigger the uncategorised per-zone item listing.
var itemWords = []string{"objekte", "elemente", "anlagen", "komponenten", "items"}

// helpWords answer with the usage text. Matched exactly.
var helpWords = []string{"help", "hilfe", "?", "befehle", "commands"}

// rule is one (predicate, handler) pair of the ordered rule list.
// The first rule whose try returns ok wins.
type rule struct {
	name string
	try  func(q question, idx *domain.Index) (string, bool)
}

// question carries the raw and the normalised form of one input line.
// Normalisation folds case and collapses whitespace runs; the raw form
// is kept for echoing user text back unchanged.
type question struct {
	raw  string
	norm string
}

// QueryEngine answers free-text questions against a built index.
// It is stateless: answers depend only on the question and the index.
type QueryEngine struct {
	searchCap   int
	propertyCap int
	rules       []rule
}

// NewQueryEngine creates a query engine. cfg may be nil, in which case
// the default caps apply.
func NewQueryEngine(cfg driven.ConfigStore) *QueryEngine {
	e := &QueryEngine{
		searchCap:   defaultSearchCap,
		propertyCap: defaultPropertyCap,
	}
	if cfg != nil {
		if v := cfg.GetInt(driven.ConfigKeyQuerySearchCap); v > 0 {
			e.searchCap = v
		}
		if v := cfg.GetInt(driven.ConfigKeyQueryPropertyCap); v > 0 {
			e.propertyCap = v
		}
	}

	// Rule order is a deliberate priority policy: specific lookups
	// before category listings, guidance fallback last.
	e.rules = []rule{
		{"help", e.tryHelp},
		{"list-zones", e.tryListZones},
		{"overview", e.tryOverview},
		{"id-lookup", e.tryIDLookup},
		{"details", e.tryDetails},
		{"psets", e.tryPsets},
		{"search", e.trySearch},
		{"category-in-zone", e.tryCategoryInZone},
		{"items-in-zone", e.tryItemsInZone},
	}
	return e
}

// Answer maps a question to a formatted text block. Every branch,
// including every failure branch, produces user-facing text; the
// engine never fails.
func (e *QueryEngine) Answer(q string, idx *domain.Index) string {
	if idx == nil {
		idx = domain.NewIndex()
	}
	qu := question{raw: strings.TrimSpace(q), norm: normalize(q)}

	for _, r := range e.rules {
		if answer, ok := r.try(qu, idx); ok {
			logger.Debug("Query matched rule %q", r.name)
			return answer
		}
	}

	logger.Debug("Query matched no rule")
	return "Das habe ich nicht verstanden. Mit `hilfe` zeige ich alle unterstützten Fragen."
}

// normalize case-folds and collapses whitespace runs to single spaces.
func normalize(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(strings.ToLower(s), " "))
}

// containsWord reports whether the normalised question contains the
// token as a whole word.
func containsWord(norm, token string) bool {
	idx := 0
	for {
		i := strings.Index(norm[idx:], token)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(token)
		if (start == 0 || isWordBreak(norm[start-1])) &&
			(end == len(norm) || isWordBreak(norm[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordBreak(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '_':
		return false
	}
	// Multi-byte runes (umlauts) sit inside words.
	return b < 0x80
}

func containsAnyWord(norm string, tokens []string) bool {
	for _, t := range tokens {
		if containsWord(norm, t) {
			return true
		}
	}
	return false
}

// --- Rule 1: help ---

func (e *QueryEngine) tryHelp(q question, _ *domain.Index) (string, bool) {
	for _, w := range helpWords {
		if q.norm == w {
			return e.usageText(), true
		}
	}
	return "", false
}

func (e *QueryEngine) usageText() string {
	var b strings.Builder
	b.WriteString("**Unterstützte Fragen**\n")
	b.WriteString("- `liste räume` / `list zones` – alle Räume mit id\n")
	b.WriteString("- `übersicht` / `overview` – Anlagen je Raum und Kategorie\n")
	b.WriteString("- `id <id>` – Kurzinfo zu einem Objekt\n")
	b.WriteString("- `details id <id>` – Raum, Kategorie und Details eines GA-Objekts\n")
	b.WriteString("- `psets id <id>` – Eigenschaften (Property-Sets) eines GA-Objekts\n")
	b.WriteString("- `suche \"<text>\"` – Volltextsuche über alle klassifizierten Objekte\n")
	b.WriteString("- `lüftung in raum <name>` – Objekte einer Kategorie in einem Raum\n")
	b.WriteString("  (ebenso: heizung, kühlung, beleuchtung, ga, sanitär)\n")
	b.WriteString("- `objekte in raum <name>` – alle klassifizierten Objekte eines Raums")
	return b.String()
}

// --- Rule 2: list zones ---

var listZonePhrases = []string{
	"liste räume", "liste raeume", "zeige räume", "zeige raeume",
	"list zones", "list rooms", "liste zonen",
}

func (e *QueryEngine) tryListZones(q question, idx *domain.Index) (string, bool) {
	matched := false
	for _, p := range listZonePhrases {
		if strings.Contains(q.norm, p) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}

	zones := idx.ZonesByName()
	if len(zones) == 0 {
		return "Es wurden keine Räume im Modell erkannt.", true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Räume im Modell (%d)**\n", len(zones))
	for _, z := range zones {
		fmt.Fprintf(&b, "- %s (id %s)\n", z.Name, z.ID)
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// --- Rule 3: overview ---

var overviewPhrases = []string{
	"übersicht", "uebersicht", "overview", "alle räume", "alle raeume",
	"every zone", "all zones",
}

func (e *QueryEngine) tryOverview(q question, idx *domain.Index) (string, bool) {
	matched := false
	for _, p := range overviewPhrases {
		if strings.Contains(q.norm, p) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}

	zones := idx.ZonesByName()
	if len(zones) == 0 {
		return "Es wurden keine Räume im Modell erkannt.", true
	}

	var b strings.Builder
	b.WriteString("**Übersicht aller Räume**\n")
	for _, z := range zones {
		counts := z.CategoryCounts()
		if len(counts) == 0 {
			// Zones without classified items report explicitly rather
			// than being omitted.
			fmt.Fprintf(&b, "- %s: keine klassifizierten Objekte\n", z.Name)
			continue
		}
		parts := make([]string, 0, len(counts))
		for _, c := range domain.Categories() {
			if n := counts[c]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", c.Label(), n))
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", z.Name, strings.Join(parts, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// --- Rule 4: plain id lookup ---

// detailWords suppress the plain id lookup so the later, more specific
// rules get their turn.
var detailWords = []string{"detail", "details", "pset", "psets", "property-set", "property-sets", "eigenschaften"}

func (e *QueryEngine) tryIDLookup(q question, idx *domain.Index) (string, bool) {
	m := reIDLookup.FindStringSubmatch(q.norm)
	if m == nil || containsAnyWord(q.norm, detailWords) {
		return "", false
	}
	id, elem, ok := e.lookupID(m[1], idx)
	if !ok {
		return fmt.Sprintf("Kein Objekt mit id `%s` im Index gefunden.", id), true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Objekt %s**\n", elem.ID)
	b.WriteString(summaryLines(elem))
	return strings.TrimRight(b.String(), "\n"), true
}

// lookupID resolves an identifier against the global lookup. The
// normalised question lower-cases identifiers, so a direct hit is tried
// first and a case-insensitive scan second.
func (e *QueryEngine) lookupID(token string, idx *domain.Index) (string, domain.Element, bool) {
	if elem, ok := idx.Lookup[token]; ok {
		return token, elem, true
	}
	for id, elem := range idx.Lookup {
		if strings.EqualFold(id, token) {
			return id, elem, true
		}
	}
	return token, domain.Element{}, false
}

func summaryLines(elem domain.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Name: %s\n", orDash(elem.Name))
	fmt.Fprintf(&b, "- Typ: %s\n", orDash(elem.TypeName))
	fmt.Fprintf(&b, "- ObjectType: %s\n", orDash(elem.ObjectType))
	fmt.Fprintf(&b, "- PredefinedType: %s\n", orDash(elem.PredefinedType))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}

// --- Rule 5: details ---

func (e *QueryEngine) tryDetails(q question, idx *domain.Index) (string, bool) {
	m := reDetails.FindStringSubmatch(q.norm)
	if m == nil {
		return "", false
	}
	zone, item, ok := e.findItem(m[1], idx)
	if !ok {
		return fmt.Sprintf("Zu id `%s` sind keine GA-Details vorhanden (Objekt ist keiner Kategorie zugeordnet).", m[1]), true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Details zu %s**\n", item.ID)
	fmt.Fprintf(&b, "- Raum: %s\n", zone.Name)
	fmt.Fprintf(&b, "- Kategorie: %s\n", item.Category.Label())
	b.WriteString(summaryLines(item.Element))
	return strings.TrimRight(b.String(), "\n"), true
}

// findItem scans every zone's classified items, case-insensitively on
// the identifier.
func (e *QueryEngine) findItem(token string, idx *domain.Index) (*domain.Zone, *domain.ClassifiedItem, bool) {
	if zone, item, ok := idx.FindItem(token); ok {
		return zone, item, true
	}
	for _, zone := range idx.ZonesInOrder() {
		for i := range zone.Items {
			if strings.EqualFold(zone.Items[i].ID, token) {
				return zone, &zone.Items[i], true
			}
		}
	}
	return nil, nil, false
}

// --- Rule 6: property sets ---

func (e *QueryEngine) tryPsets(q question, idx *domain.Index) (string, bool) {
	m := rePsets.FindStringSubmatch(q.norm)
	if m == nil {
		return "", false
	}
	_, item, ok := e.findItem(m[1], idx)
	if !ok {
		return fmt.Sprintf("Zu id `%s` sind keine Property-Sets vorhanden (Objekt ist keiner Kategorie zugeordnet).", m[1]), true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Property-Sets zu %s**\n", item.ID)
	if len(item.PropertyGroups) == 0 {
		b.WriteString("- (keine Property-Sets am Objekt)")
		return b.String(), true
	}
	for _, group := range item.PropertyGroups {
		if len(group.Properties) == 0 {
			fmt.Fprintf(&b, "- %s: (leer)\n", group.Name)
			continue
		}
		fmt.Fprintf(&b, "- **%s**\n", group.Name)
		for i, prop := range group.Properties {
			if i >= e.propertyCap {
				fmt.Fprintf(&b, "  - … (%d weitere)\n", len(group.Properties)-e.propertyCap)
				break
			}
			fmt.Fprintf(&b, "  - %s: %s\n", prop.Name, prop.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// --- Rule 7: quoted search ---

func (e *QueryEngine) trySearch(q question, idx *domain.Index) (string, bool) {
	// Run against the raw question so the echoed needle keeps its
	// original casing.
	m := reSearch.FindStringSubmatch(q.raw)
	if m == nil {
		return "", false
	}
	rawNeedle := m[1]
	needle := normalize(rawNeedle)

	type hit struct {
		zone string
		item domain.ClassifiedItem
	}
	var hits []hit
	truncated := false

	for _, zone := range idx.ZonesInOrder() {
		for _, item := range zone.Items {
			haystack := normalize(strings.Join([]string{
				item.Name, item.ObjectType, item.PredefinedType, item.TypeName,
			}, " "))
			if !strings.Contains(haystack, needle) {
				continue
			}
			if len(hits) >= e.searchCap {
				truncated = true
				break
			}
			hits = append(hits, hit{zone: zone.Name, item: item})
		}
		if truncated {
			break
		}
	}

	if len(hits) == 0 {
		return fmt.Sprintf("Keine Treffer für \"%s\".", rawNeedle), true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Treffer für \"%s\" (%d)**\n", rawNeedle, len(hits))
	for _, h := range hits {
		fmt.Fprintf(&b, "- %s (%s, %s) – Raum %s\n",
			h.item.DisplayName(), h.item.TypeName, h.item.Category.Label(), h.zone)
	}
	if truncated {
		fmt.Fprintf(&b, "- … weitere Treffer abgeschnitten (max. %d)\n", e.searchCap)
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// --- Rule 8: category in zone ---

func (e *QueryEngine) tryCategoryInZone(q question, idx *domain.Index) (string, bool) {
	if !containsAnyWord(q.norm, zoneWords) {
		return "", false
	}
	for _, category := range domain.Categories() {
		if !containsAnyWord(q.norm, categoryTokens[category]) {
			continue
		}
		zone, ok := bestZoneMatch(q.norm, idx)
		if !ok {
			return e.zoneGuidance(idx), true
		}

		var items []domain.ClassifiedItem
		for _, item := range zone.Items {
			if item.Category == category {
				items = append(items, item)
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "**%s in %s**\n", category.Label(), zone.Name)
		if len(items) == 0 {
			fmt.Fprintf(&b, "- keine %s-Objekte in diesem Raum", category.Label())
			return b.String(), true
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- %s (%s, id %s)\n", item.DisplayName(), item.TypeName, item.ID)
		}
		return strings.TrimRight(b.String(), "\n"), true
	}
	return "", false
}

// --- Rule 9: all items in zone ---

func (e *QueryEngine) tryItemsInZone(q question, idx *domain.Index) (string, bool) {
	if !containsAnyWord(q.norm, zoneWords) || !containsAnyWord(q.norm, itemWords) {
		return "", false
	}
	zone, ok := bestZoneMatch(q.norm, idx)
	if !ok {
		return e.zoneGuidance(idx), true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Objekte in %s**\n", zone.Name)
	if len(zone.Items) == 0 {
		b.WriteString("- keine klassifizierten Objekte in diesem Raum")
		return b.String(), true
	}
	for _, item := range zone.Items {
		fmt.Fprintf(&b, "- %s (%s, %s, id %s)\n",
			item.DisplayName(), item.TypeName, item.Category.Label(), item.ID)
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// zoneGuidance tells the user the zone could not be resolved and what
// zones exist. Ambiguity is data, never an error.
func (e *QueryEngine) zoneGuidance(idx *domain.Index) string {
	zones := idx.ZonesByName()
	if len(zones) == 0 {
		return "Es wurden keine Räume im Modell erkannt."
	}
	var b strings.Builder
	b.WriteString("Ich konnte den Raum nicht eindeutig zuordnen. Bitte den Raumnamen wie im Modell angeben:\n")
	for _, z := range zones {
		fmt.Fprintf(&b, "- %s\n", z.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// bestZoneMatch resolves the zone whose normalised display name or long
// name occurs as a substring of the normalised question. Among all
// matches the longest matching substring wins; ties keep the zone
// encountered first in enumeration order. This is a deliberate greedy
// heuristic, not a fuzzy matcher.
func bestZoneMatch(norm string, idx *domain.Index) (*domain.Zone, bool) {
	var best *domain.Zone
	bestLen := 0
	for _, zone := range idx.ZonesInOrder() {
		for _, cand := range []string{normalize(zone.Name), normalize(zone.LongName)} {
			if cand == "" || !strings.Contains(norm, cand) {
				continue
			}
			if len(cand) > bestLen {
				best = zone
				bestLen = len(cand)
			}
		}
	}
	return best, best != nil
}
