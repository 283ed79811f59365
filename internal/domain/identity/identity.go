// Package identity derives canonical team identities and display branding
// from inconsistently keyed team, brand-override, and engine records.
//
// Teams arrive keyed by any of team_id, id, name, team_name, or short_name
// depending on the export vintage; brand overrides may reference a team by
// id or by a spelling variant of its name. Matching therefore happens on a
// canonical id first and on a normalized name second. Normalization folds
// case, strips diacritics, and drops every non-alphanumeric rune, so
// "Équipe Ligier" and "equipe-ligier" name the same team.
package identity

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/parcferme/gridbook/internal/domain/record"
	"golang.org/x/text/unicode/norm"
)

// Synonym lists for team identity and naming, in preference order.
var (
	IDKeys   = []string{"team_id", "id", "name", "team_name", "short_name"}
	NameKeys = []string{"official_name", "team_name", "name", "short_name"}

	// refKeys are the id fields a fact or override record may use to
	// reference a team. Deliberately without official_name: that field
	// carries the replacement display name, not the reference.
	refKeys     = []string{"team_id", "team", "constructor_id", "constructor", "name", "team_name", "short_name"}
	refNameKeys = []string{"team_name", "constructor", "name", "team", "short_name"}
)

// Default livery colors, used when neither override nor team carries any.
const (
	DefaultPrimaryColor   = "#c81e1e"
	DefaultSecondaryColor = "#111827"
)

// CanonicalID returns a stable identifier for a team record. When none of
// the id synonyms resolve, the record's own sorted-key JSON serialization
// is used so that every team still gets a deterministic identity.
func CanonicalID(team record.Record) string {
	if id := team.String("", IDKeys...); id != "" {
		return id
	}
	b, err := json.Marshal(team)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(team))
	}
	return string(b)
}

// Normalize folds a name for matching: lowercase, Unicode-decompose,
// strip combining marks, drop non-alphanumerics. Idempotent.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameTeam reports whether a fact record (contract, engine, rating row)
// references the given team, by id first and normalized name second.
func SameTeam(rec, team record.Record) bool {
	if refID := rec.String("", refKeys...); refID != "" && refID == CanonicalID(team) {
		return true
	}
	rn := rec.String("", refNameKeys...)
	tn := team.String("", "name", "team_name", "short_name")
	return rn != "" && tn != "" && Normalize(rn) == Normalize(tn)
}

// FindOverride locates the brand override for a team: an override whose
// reference id equals the team's canonical id, or whose reference name
// normalizes to the team's normalized name. Overrides are matched on
// reference keys only, so an override renaming the team via official_name
// still finds it through team_name. Ties resolve to the first match in
// slice order.
func FindOverride(team record.Record, overrides []record.Record) (record.Record, bool) {
	id := CanonicalID(team)
	name := Normalize(team.String("", NameKeys...))
	for _, o := range overrides {
		if ref := o.String("", refKeys...); ref != "" && ref == id {
			return o, true
		}
		if name != "" && Normalize(o.String("", refNameKeys...)) == name {
			return o, true
		}
	}
	return nil, false
}

// DisplayName resolves a team's display name: brand override first, the
// team's own fields second, canonical id last.
func DisplayName(team record.Record, overrides []record.Record) string {
	if o, ok := FindOverride(team, overrides); ok {
		if name := o.String("", NameKeys...); name != "" {
			return name
		}
	}
	if name := team.String("", NameKeys...); name != "" {
		return name
	}
	return CanonicalID(team)
}

// ValueForYear resolves a possibly year-keyed branding value. Three shapes
// are tried in order: a flat scalar, a {by_year: {year: value}} map, and
// an array of {year, ...} tuples. When no entry matches the requested year
// the first available value is returned instead, so a team with any data
// at all never comes back empty.
func ValueForYear(v any, year int) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, false
		}
		return t, true
	case float64, int, bool:
		return t, true
	case map[string]any:
		return mapForYear(record.Record(t), year)
	case record.Record:
		return mapForYear(t, year)
	case []any:
		return tupleForYear(t, year)
	}
	return nil, false
}

func mapForYear(m record.Record, year int) (any, bool) {
	byYear, ok := m.Map("by_year")
	if !ok {
		// A plain object is itself the value.
		return m, true
	}
	key := fmt.Sprintf("%d", year)
	if v, present := byYear[key]; present && v != nil {
		return v, true
	}
	// Fall back to any year rather than returning nothing.
	for _, v := range byYear {
		if v != nil {
			return v, true
		}
	}
	return nil, false
}

func tupleForYear(entries []any, year int) (any, bool) {
	var first any
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		r := record.Record(m)
		if first == nil {
			first = r
		}
		if y, ok := r.Year("year", "season"); ok && y == year {
			return r, true
		}
	}
	if first != nil {
		return first, true
	}
	return nil, false
}

// resolveScoped applies override-then-self resolution for one branding
// attribute, with ValueForYear unwrapping year-keyed shapes, then
// field-resolves the resulting value over keys when it is an object.
func resolveScoped(team record.Record, overrides []record.Record, year int, keys ...string) string {
	sources := []record.Record{}
	if o, ok := FindOverride(team, overrides); ok {
		sources = append(sources, o)
	}
	sources = append(sources, team)

	for _, src := range sources {
		raw, ok := src.Resolve(keys...)
		if !ok {
			continue
		}
		v, ok := ValueForYear(raw, year)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case map[string]any:
			if s := record.Record(t).String("", keys...); s != "" {
				return s
			}
		case record.Record:
			if s := t.String("", keys...); s != "" {
				return s
			}
		}
	}
	return ""
}

// Colors resolves a team's livery colors: override, then the team itself,
// then the package defaults. Either source may nest the values under a
// "colors" object or carry them year-keyed.
func Colors(team record.Record, overrides []record.Record, year int) (primary, secondary string) {
	primary = colorValue(team, overrides, year, "primary", "primary_color", "color_primary")
	secondary = colorValue(team, overrides, year, "secondary", "secondary_color", "color_secondary")
	if primary == "" {
		primary = DefaultPrimaryColor
	}
	if secondary == "" {
		secondary = DefaultSecondaryColor
	}
	return primary, secondary
}

func colorValue(team record.Record, overrides []record.Record, year int, keys ...string) string {
	sources := []record.Record{}
	if o, ok := FindOverride(team, overrides); ok {
		sources = append(sources, o)
	}
	sources = append(sources, team)

	for _, src := range sources {
		if nested, ok := src.Map("colors"); ok {
			if v, ok := ValueForYear(map[string]any(nested), year); ok {
				switch m := v.(type) {
				case record.Record:
					if s := m.String("", keys...); s != "" {
						return s
					}
				case map[string]any:
					if s := record.Record(m).String("", keys...); s != "" {
						return s
					}
				}
			}
		}
		if s := resolveScoped(src, nil, year, keys...); s != "" {
			return s
		}
	}
	return ""
}

// Engine resolves the engine name a team runs in a season from the
// team_engines dataset. Records referencing the team are collected, an
// exact-year record is preferred, and the first available record serves as
// the fallback. Within a record the name may be flat or year-keyed.
func Engine(team record.Record, engines []record.Record, year int) string {
	nameKeys := []string{"engine_name", "engine", "name", "supplier"}

	var fallback record.Record
	for _, e := range engines {
		if !SameTeam(e, team) {
			continue
		}
		if fallback == nil {
			fallback = e
		}
		if y, ok := e.Year("year", "season"); ok && y == year {
			if s := engineName(e, year, nameKeys); s != "" {
				return s
			}
		}
	}
	if fallback != nil {
		return engineName(fallback, year, nameKeys)
	}
	return ""
}

func engineName(e record.Record, year int, nameKeys []string) string {
	if byYear, ok := e.Map("by_year"); ok {
		if v, found := mapForYear(record.Record{"by_year": map[string]any(byYear)}, year); found {
			switch t := v.(type) {
			case string:
				return t
			case map[string]any:
				if s := record.Record(t).String("", nameKeys...); s != "" {
					return s
				}
			}
		}
	}
	return e.String("", nameKeys...)
}
