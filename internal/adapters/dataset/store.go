// Package dataset loads the spreadsheet-derived JSON datasets and serves
// them as raw record collections.
//
// One file per dataset, named <dataset>.json, each holding an array of
// objects. No schema is assumed beyond that; field normalization is the
// domain layer's job. Core datasets (drivers, teams, calendar) must be
// present; everything else is an optional extra that degrades to an empty
// collection, supporting progressive data drops from the conversion
// pipeline.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parcferme/gridbook/internal/domain/record"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	"github.com/parcferme/gridbook/pkg/metrics"
)

// Store holds the raw, unmodified record collections keyed by dataset
// name. Collections are loaded once and read-only afterwards, so reads
// need no locking beyond the loaded check.
type Store struct {
	mu          sync.RWMutex
	dir         string
	datasets    []string
	required    map[string]bool
	collections map[string][]record.Record
}

// DefaultDatasets is the full set of dataset files the converter emits.
var DefaultDatasets = []string{
	snapshot.ColDrivers,
	snapshot.ColTeams,
	snapshot.ColCalendar,
	snapshot.ColTeamBrands,
	snapshot.ColTeamEngines,
	snapshot.ColDriverRatings,
	snapshot.ColStaffRatings,
	snapshot.ColContracts,
	snapshot.ColSponsorContracts,
	snapshot.ColRules,
	snapshot.ColEraSafety,
	snapshot.ColAccidentModel,
}

// New constructs a Store with default configuration.
func New(opts ...Option) *Store {
	s := &Store{
		dir:      "data",
		datasets: DefaultDatasets,
		required: map[string]bool{
			snapshot.ColDrivers:  true,
			snapshot.ColTeams:    true,
			snapshot.ColCalendar: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every configured dataset file from the directory. A missing
// required dataset fails the load; a missing optional one loads as an
// empty collection. A file that exists but fails to parse always fails
// the load, required or not, since silent data loss is worse than a
// missing extra.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collections := make(map[string][]record.Record, len(s.datasets))
	for _, name := range s.datasets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		records, err := s.loadFile(name)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if s.required[name] {
				return fmt.Errorf("%w: %s", ErrMissingDataset, name)
			}
			records = []record.Record{}
		case err != nil:
			return fmt.Errorf("load dataset %s: %w", name, err)
		}
		collections[name] = records
		metrics.SetDatasetRecords(name, len(records))
	}
	s.collections = collections
	return nil
}

// Collection returns the raw records of one dataset. Unknown or unloaded
// names return nil, which downstream treats as an empty collection.
func (s *Store) Collection(name string) []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections[name]
}

// Counts reports the record count per loaded dataset.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.collections))
	for name, records := range s.collections {
		out[name] = len(records)
	}
	return out
}

// Loaded reports whether Load has completed successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections != nil
}

// loadFile decodes one dataset file. Arrays decode as record lists; a
// top-level object (the weather-profile and accident-model files use this
// shape) wraps into a single-record collection.
func (s *Store) loadFile(name string) ([]record.Record, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err == nil {
		records := make([]record.Record, 0, len(rows))
		for _, row := range rows {
			if row != nil {
				records = append(records, record.Record(row))
			}
		}
		return records, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%s is neither an object array nor an object: %w", path, err)
	}
	return []record.Record{record.Record(obj)}, nil
}
