// Package snapshot assembles the season snapshot: the complete, internally
// consistent set of records applicable to one season year.
//
// Build is a pure function of its inputs. A snapshot is replaced wholesale
// when the active year changes; cross-collection consistency is only
// guaranteed at construction time, so callers must never patch one
// incrementally.
package snapshot

import (
	"github.com/parcferme/gridbook/internal/domain/identity"
	"github.com/parcferme/gridbook/internal/domain/lifecycle"
	"github.com/parcferme/gridbook/internal/domain/record"
	"github.com/parcferme/gridbook/internal/domain/scope"
)

// Collection names consumed from the raw store. Core collections are
// mandatory for a minimally useful snapshot; fact collections are optional
// extras that degrade to empty.
const (
	ColDrivers          = "drivers"
	ColTeams            = "teams"
	ColCalendar         = "calendar"
	ColTeamBrands       = "team_brands"
	ColTeamEngines      = "team_engines"
	ColDriverRatings    = "driver_ratings"
	ColStaffRatings     = "staff_ratings"
	ColContracts        = "contracts"
	ColSponsorContracts = "sponsors_contracts"
	ColRules            = "rules"
	ColEraSafety        = "era_safety"
	ColAccidentModel    = "accident_model"
)

// FactCollections are the year-scoped fact tables carried on a snapshot.
var FactCollections = []string{
	ColDriverRatings,
	ColStaffRatings,
	ColContracts,
	ColSponsorContracts,
	ColRules,
	ColEraSafety,
	ColAccidentModel,
}

// Source supplies raw dataset collections. A missing collection must be
// returned as nil or empty, never as an error.
type Source interface {
	Collection(name string) []record.Record
}

// Driver is a roster entry derived from a raw driver record.
type Driver struct {
	ID          string           `json:"driver_id"`
	Name        string           `json:"name"`
	Nationality string           `json:"nationality,omitempty"`
	Status      lifecycle.Status `json:"status"`
	Age         int              `json:"age,omitempty"`
	AgeKnown    bool             `json:"age_known"`
	Raw         record.Record    `json:"raw,omitempty"`
}

// Team is a season entrant with resolved branding.
type Team struct {
	ID             string        `json:"team_id"`
	Name           string        `json:"name"`
	ShortName      string        `json:"short_name,omitempty"`
	Base           string        `json:"base,omitempty"`
	PrimaryColor   string        `json:"primary_color"`
	SecondaryColor string        `json:"secondary_color"`
	Engine         string        `json:"engine,omitempty"`
	Raw            record.Record `json:"raw,omitempty"`
}

// Snapshot is the aggregate handed to external consumers.
type Snapshot struct {
	Year     int                        `json:"year"`
	Drivers  []Driver                   `json:"drivers"`
	Teams    []Team                     `json:"teams"`
	Calendar []record.Record            `json:"calendar"`
	Facts    map[string][]record.Record `json:"facts"`
}

// Complete reports whether the core collections all resolved non-empty.
// An incomplete snapshot is not an error; it is a condition the UI shell
// surfaces to the user.
func (s *Snapshot) Complete() bool {
	return len(s.Drivers) > 0 && len(s.Teams) > 0 && len(s.Calendar) > 0
}

// Field synonyms for driver identity and labelling.
var (
	driverIDKeys   = []string{"driver_id", "id", "code", "driver_name", "name"}
	driverNameKeys = []string{"driver_name", "name", "display_name", "full_name", "fullname"}
	firstNameKeys  = []string{"first_name", "firstname", "given_name", "forename", "first"}
	lastNameKeys   = []string{"last_name", "lastname", "family_name", "surname", "last"}
	nationalityKeys = []string{"nationality", "country", "nat"}
	shortNameKeys   = []string{"short_name", "shortname", "tag"}
	baseKeys        = []string{"base", "base_location", "hq", "location"}
)

// Build assembles the snapshot for year from src. Missing or empty source
// collections degrade to empty output collections; Build never fails.
//
// Drivers classified hidden never enter the roster, and neither do drivers
// deceased in or before the year; retired and junior-only drivers stay,
// since scouting and academy views still list them.
func Build(src Source, year int) *Snapshot {
	snap := &Snapshot{
		Year:     year,
		Drivers:  []Driver{},
		Teams:    []Team{},
		Calendar: []record.Record{},
		Facts:    map[string][]record.Record{},
	}
	if src == nil {
		for _, name := range FactCollections {
			snap.Facts[name] = []record.Record{}
		}
		return snap
	}

	// Calendars are always per-year; ranges make no sense for race dates.
	snap.Calendar = scope.Exact(src.Collection(ColCalendar), year)

	for _, raw := range src.Collection(ColDrivers) {
		status := lifecycle.Classify(raw, year)
		if status == lifecycle.StatusHidden || status == lifecycle.StatusDeceased {
			continue
		}
		snap.Drivers = append(snap.Drivers, buildDriver(raw, status, year))
	}

	brands := src.Collection(ColTeamBrands)
	engines := src.Collection(ColTeamEngines)
	for _, raw := range src.Collection(ColTeams) {
		if !lifecycle.Active(raw, year) {
			continue
		}
		snap.Teams = append(snap.Teams, buildTeam(raw, brands, engines, year))
	}

	for _, name := range FactCollections {
		snap.Facts[name] = scope.ToYear(src.Collection(name), year)
	}
	return snap
}

func buildDriver(raw record.Record, status lifecycle.Status, year int) Driver {
	d := Driver{
		ID:          raw.String("", driverIDKeys...),
		Name:        driverLabel(raw),
		Nationality: raw.String("", nationalityKeys...),
		Status:      status,
		Raw:         raw,
	}
	if age, ok := lifecycle.Age(raw, year); ok {
		d.Age = age
		d.AgeKnown = true
	}
	return d
}

func buildTeam(raw record.Record, brands, engines []record.Record, year int) Team {
	primary, secondary := identity.Colors(raw, brands, year)
	return Team{
		ID:             identity.CanonicalID(raw),
		Name:           identity.DisplayName(raw, brands),
		ShortName:      raw.String("", shortNameKeys...),
		Base:           raw.String("", baseKeys...),
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		Engine:         identity.Engine(raw, engines, year),
		Raw:            raw,
	}
}

// driverLabel builds a display name robust to every schema vintage,
// including split first/last columns and code-only junior rows.
func driverLabel(d record.Record) string {
	if name := d.String("", driverNameKeys...); name != "" {
		return name
	}
	first := d.String("", firstNameKeys...)
	last := d.String("", lastNameKeys...)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case last != "":
		return last
	case first != "":
		return first
	}
	if code := d.String("", "code"); code != "" {
		return code
	}
	return "Unknown"
}
