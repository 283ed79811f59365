// Package almanac provides the calendar arithmetic the game clock runs on:
// UTC-safe ISO date handling, era parsing for the new-game flow, and
// enumeration of the season years a calendar dataset covers.
package almanac

import (
	"regexp"
	"sort"
	"time"

	"github.com/parcferme/gridbook/internal/domain/record"
	"github.com/parcferme/gridbook/internal/domain/scope"
)

const isoDate = "2006-01-02"

// ParseISO parses a YYYY-MM-DD date at UTC midnight.
func ParseISO(s string) (time.Time, bool) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISO renders a time as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoDate)
}

// NextDay advances an ISO date by one day. Invalid input is returned
// unchanged so a corrupt save never wedges the clock entirely.
func NextDay(iso string) string {
	t, ok := ParseISO(iso)
	if !ok {
		return iso
	}
	return FormatISO(t.AddDate(0, 0, 1))
}

// DaysBetween returns the day count from one ISO date to another, clamped
// at zero. Either date failing to parse yields zero.
func DaysBetween(from, to string) int {
	f, okF := ParseISO(from)
	t, okT := ParseISO(to)
	if !okF || !okT {
		return 0
	}
	d := int(t.Sub(f).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// AgeOn computes an exact age on a date, accounting for whether the
// birthday has passed. ok is false when either date fails to parse.
func AgeOn(onISO, birthISO string) (int, bool) {
	on, okOn := ParseISO(onISO)
	birth, okBirth := ParseISO(birthISO)
	if !okOn || !okBirth {
		return 0, false
	}
	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age, true
}

var (
	decadeFull  = regexp.MustCompile(`^(\d{4})s$`)
	decadeShort = regexp.MustCompile(`^(\d{2})s$`)
	yearSpan    = regexp.MustCompile(`^(\d{4})\s*-\s*(\d{4})$`)
)

// EraRange parses an era label into an inclusive year range. Accepted
// forms: "1980s", "80s" (two-digit decades at or below 30 read as 2000s),
// and "1978-1984". Anything else gets the wide-open default range.
func EraRange(era string) (start, end int) {
	if m := decadeFull.FindStringSubmatch(era); m != nil {
		s := atoi(m[1])
		return s, s + 9
	}
	if m := decadeShort.FindStringSubmatch(era); m != nil {
		d := atoi(m[1])
		if d <= 30 {
			d += 2000
		} else {
			d += 1900
		}
		return d, d + 9
	}
	if m := yearSpan.FindStringSubmatch(era); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		if a > b {
			a, b = b, a
		}
		return a, b
	}
	return 1900, 2100
}

// SeasonYears enumerates the distinct season years present in a calendar
// collection, ascending. Rounds with no resolvable year are skipped.
func SeasonYears(calendar []record.Record) []int {
	seen := map[int]struct{}{}
	for _, r := range calendar {
		if y, ok := scope.DeclaredYear(r); ok {
			seen[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// YearsInEra filters years down to an era label's range, keeping the full
// list when the era excludes everything rather than offering an empty
// picker.
func YearsInEra(years []int, era string) []int {
	start, end := EraRange(era)
	out := []int{}
	for _, y := range years {
		if y >= start && y <= end {
			out = append(out, y)
		}
	}
	if len(out) == 0 {
		return years
	}
	return out
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
