// Package scope filters raw dataset collections down to the records that
// apply to one season year.
//
// Source sheets are inconsistently populated: some carry a per-row year,
// others carry a validity range, a few carry only a date. ToYear therefore
// runs two passes — an exact-year pass, then a range fallback used only
// when the exact pass finds nothing — so a season never comes back empty
// merely because a table happens to use ranges instead of per-row years.
package scope

import "github.com/parcferme/gridbook/internal/domain/record"

// Synonym lists for year-bearing fields, in preference order. Kept as data
// so new export vintages only need a new entry here.
var (
	YearKeys  = []string{"year", "season_year", "season"}
	DateKeys  = []string{"date", "race_date", "start_date", "valid_from"}
	StartKeys = []string{"start_year", "from_year", "first_year", "since"}
	EndKeys   = []string{"end_year", "to_year", "last_year", "until"}
)

// DeclaredYear computes a record's single declared year: an explicit
// year-like field first, else the year prefix of a date-like field.
// ok is false when the record declares no usable year.
func DeclaredYear(r record.Record) (int, bool) {
	if y, ok := r.Year(YearKeys...); ok {
		return y, true
	}
	return r.Year(DateKeys...)
}

// ToYear returns the records applicable to year. The exact pass wins
// outright when non-empty; the range fallback is never unioned in.
func ToYear(records []record.Record, year int) []record.Record {
	if exact := Exact(records, year); len(exact) > 0 {
		return exact
	}
	out := []record.Record{}
	for _, r := range records {
		if rangeContains(r, year) {
			out = append(out, r)
		}
	}
	return out
}

// Exact returns the records whose declared year equals year.
func Exact(records []record.Record, year int) []record.Record {
	out := []record.Record{}
	for _, r := range records {
		if y, ok := DeclaredYear(r); ok && y == year {
			out = append(out, r)
		}
	}
	return out
}

// rangeContains reports whether year falls within the record's
// [start, end] validity range, inclusive. A missing start is open towards
// the past, a missing end towards the future. A record with neither bound
// falls back to exact-year equality, which also excludes records with no
// resolvable year at all.
func rangeContains(r record.Record, year int) bool {
	start, hasStart := r.Year(StartKeys...)
	end, hasEnd := r.Year(EndKeys...)

	if !hasStart && !hasEnd {
		y, ok := DeclaredYear(r)
		return ok && y == year
	}
	if hasStart && year < start {
		return false
	}
	if hasEnd && year > end {
		return false
	}
	return true
}
