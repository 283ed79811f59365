// Package lifecycle derives a driver's roster status for a season year and
// decides whether teams and other dated entities are active in it.
//
// The datasets describe careers with four optional markers: career start
// (when the driver enters the data set), F1 debut, career end, and death.
// Status evaluation is a fixed-priority cascade so that a driver can never
// simultaneously be, say, retired and eligible.
package lifecycle

import "github.com/parcferme/gridbook/internal/domain/record"

// Status is a driver's relationship to one season year.
type Status string

const (
	// StatusHidden marks drivers not yet introduced into the data set.
	StatusHidden Status = "hidden"
	// StatusJuniorOnly marks drivers visible to academy consumers but not
	// yet F1-eligible.
	StatusJuniorOnly Status = "junior_only"
	// StatusEligible marks drivers available for an F1 seat.
	StatusEligible Status = "eligible"
	// StatusRetired marks drivers past their career end year.
	StatusRetired Status = "retired"
	// StatusDeceased marks drivers dead in or before the season year.
	StatusDeceased Status = "deceased"
)

// Field synonyms across dataset vintages.
var (
	DeathKeys = []string{"death_year", "death_date", "date_of_death", "died"}
	StartKeys = []string{"career_start_year", "career_start", "first_season", "data_start_year"}
	EndKeys   = []string{"career_end_year", "career_end", "last_season", "final_season"}
	DebutKeys = []string{"f1_rookie_season", "rookie_season", "f1_debut_year", "debut_year", "debut"}
	BirthKeys = []string{"birth_date", "date_of_birth", "birthdate", "dob", "born", "birth_year"}

	// Active-window synonyms for teams and similar entities.
	FirstYearKeys = []string{"first_year", "founded", "start_year", "from_year"}
	LastYearKeys  = []string{"last_year", "folded", "end_year", "to_year"}
)

// Classify evaluates the status cascade for a driver at year.
// First match wins:
//  1. dead in or before year
//  2. not yet introduced (year before career start)
//  3. past career end
//  4. eligible from debut year onwards, junior before it
//  5. no debut on record: junior only
func Classify(driver record.Record, year int) Status {
	if death, ok := driver.Year(DeathKeys...); ok && death <= year {
		return StatusDeceased
	}
	if start, ok := driver.Year(StartKeys...); ok && year < start {
		return StatusHidden
	}
	if end, ok := driver.Year(EndKeys...); ok && year > end {
		return StatusRetired
	}
	if debut, ok := driver.Year(DebutKeys...); ok {
		if year >= debut {
			return StatusEligible
		}
		return StatusJuniorOnly
	}
	return StatusJuniorOnly
}

// Age returns year minus the driver's birth year. ok is false when no
// birth field parses.
func Age(driver record.Record, year int) (int, bool) {
	birth, ok := driver.Year(BirthKeys...)
	if !ok {
		return 0, false
	}
	return year - birth, true
}

// Active reports whether an entity's first/last-year window contains year.
// Missing bounds leave the window open on that side, so an undated entity
// is active in every season.
func Active(entity record.Record, year int) bool {
	if first, ok := entity.Year(FirstYearKeys...); ok && year < first {
		return false
	}
	if last, ok := entity.Year(LastYearKeys...); ok && year > last {
		return false
	}
	return true
}
