// Package weather resolves a race weekend's initial weather from the
// weather-profile dataset.
//
// A profile dataset carries four tables: per-track monthly overrides,
// per-country monthly weights, a track-to-climate-zone mapping, and
// per-zone monthly defaults. Resolution walks them in that order and stops
// at the first table that yields a weight set; the pick itself is a
// weighted random draw over the resulting weights.
package weather

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/parcferme/gridbook/internal/domain/record"
)

// DefaultState is used when no profile resolves for a round.
const DefaultState = "SUNNY"

// Profiles holds the four lookup tables of the weather dataset.
type Profiles struct {
	TrackOverrides      []record.Record
	CountryMonth        []record.Record
	TrackToZone         []record.Record
	ClimateZoneDefaults []record.Record
}

// Context identifies the round being resolved.
type Context struct {
	TrackID string
	Country string
	Month   int
}

// RiskModifiers are the per-state race-risk adjustments.
type RiskModifiers struct {
	CrashRiskPPM       float64 `json:"crash_risk_ppm"`
	DNFRiskPPM         float64 `json:"dnf_risk_ppm"`
	SafetyCarChancePct float64 `json:"safety_car_chance_pct"`
	RedFlagChancePct   float64 `json:"red_flag_chance_pct"`
}

// Report pairs a drawn weather state with its risk modifiers.
type Report struct {
	State     string        `json:"state"`
	Modifiers RiskModifiers `json:"modifiers"`
}

// Resolve returns the weather-state weight table for ctx, or nil when no
// table applies. Track override beats country, country beats zone default.
func Resolve(ctx Context, p *Profiles) map[string]float64 {
	if p == nil {
		return nil
	}

	for _, o := range p.TrackOverrides {
		if o.String("", "track_id") == ctx.TrackID && monthOf(o) == ctx.Month {
			if w := weightsOf(o); w != nil {
				return w
			}
		}
	}

	for _, c := range p.CountryMonth {
		if c.String("", "country") == ctx.Country && monthOf(c) == ctx.Month {
			if w := weightsOf(c); w != nil {
				return w
			}
		}
	}

	zone := ""
	for _, z := range p.TrackToZone {
		if z.String("", "track_id") == ctx.TrackID {
			zone = z.String("", "zone")
			break
		}
	}
	if zone == "" {
		return nil
	}
	for _, z := range p.ClimateZoneDefaults {
		if z.String("", "zone") != zone {
			continue
		}
		byMonth, ok := z.Map("weights_by_month")
		if !ok {
			continue
		}
		if m, ok := byMonth.Map(monthKey(ctx.Month)); ok {
			return toWeights(m)
		}
	}
	return nil
}

// Pick draws a weather state from weights using rng. An empty weight set
// yields "". A nil rng falls back to the shared global source.
func Pick(weights map[string]float64, rng *rand.Rand) string {
	if len(weights) == 0 {
		return ""
	}
	// Deterministic iteration so equal draws reproduce across runs.
	keys := sortedKeys(weights)
	var sum float64
	for _, k := range keys {
		sum += weights[k]
	}
	if sum <= 0 {
		return keys[len(keys)-1]
	}
	var r float64
	if rng != nil {
		r = rng.Float64() * sum
	} else {
		r = rand.Float64() * sum
	}
	last := ""
	for _, k := range keys {
		w := weights[k]
		if w <= 0 {
			continue
		}
		if r < w {
			return k
		}
		r -= w
		last = k
	}
	return last
}

// PickInitial resolves and draws in one step, defaulting to DefaultState
// when nothing resolves.
func PickInitial(ctx Context, p *Profiles, rng *rand.Rand) string {
	if state := Pick(Resolve(ctx, p), rng); state != "" {
		return state
	}
	return DefaultState
}

// Modifiers returns the risk modifiers for a weather state from the
// accident-model states table, with neutral defaults for unknown states.
func Modifiers(stateID string, states []record.Record) RiskModifiers {
	m := RiskModifiers{CrashRiskPPM: 1.0, DNFRiskPPM: 1.0}
	for _, s := range states {
		if s.String("", "id", "state", "state_id") != stateID {
			continue
		}
		if v, ok := s.Float("crash_risk_ppm"); ok {
			m.CrashRiskPPM = v
		}
		if v, ok := s.Float("dnf_risk_ppm"); ok {
			m.DNFRiskPPM = v
		}
		if v, ok := s.Float("safety_car_chance_pct"); ok {
			m.SafetyCarChancePct = v
		}
		if v, ok := s.Float("red_flag_chance_pct"); ok {
			m.RedFlagChancePct = v
		}
		break
	}
	return m
}

// ProfilesFrom extracts the four lookup tables from accident-model
// dataset records. Each record contributes whichever tables it carries,
// so a dataset split across several objects still resolves.
func ProfilesFrom(records []record.Record) *Profiles {
	p := &Profiles{}
	for _, r := range records {
		p.TrackOverrides = append(p.TrackOverrides, tableOf(r, "weather_track_overrides", "track_overrides")...)
		p.CountryMonth = append(p.CountryMonth, tableOf(r, "weather_country_month", "country_month")...)
		p.TrackToZone = append(p.TrackToZone, tableOf(r, "track_to_zone", "track_climate_zones")...)
		p.ClimateZoneDefaults = append(p.ClimateZoneDefaults, tableOf(r, "climate_zone_defaults", "zone_defaults")...)
	}
	return p
}

// StatesFrom extracts the weather-state modifier table from
// accident-model dataset records.
func StatesFrom(records []record.Record) []record.Record {
	out := []record.Record{}
	for _, r := range records {
		out = append(out, tableOf(r, "weather_states", "states")...)
	}
	return out
}

func tableOf(r record.Record, keys ...string) []record.Record {
	raw, ok := r.Slice(keys...)
	if !ok {
		return nil
	}
	rows := make([]record.Record, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			rows = append(rows, record.Record(m))
		}
	}
	return rows
}

func monthOf(r record.Record) int {
	m, ok := r.Int("month")
	if !ok {
		return 0
	}
	return m
}

func monthKey(m int) string {
	return strconv.Itoa(m)
}

func weightsOf(r record.Record) map[string]float64 {
	m, ok := r.Map("weights")
	if !ok {
		return nil
	}
	return toWeights(m)
}

func toWeights(m record.Record) map[string]float64 {
	out := map[string]float64{}
	for k := range m {
		if v, ok := m.Float(k); ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
