// Package dataset loads the spreadsheet-derived JSON datasets and serves
// them as raw record collections.
package dataset

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithDir sets the directory the dataset JSON files are read from.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithDatasets replaces the set of dataset names the store loads.
func WithDatasets(names ...string) Option {
	return func(s *Store) {
		if len(names) > 0 {
			s.datasets = names
		}
	}
}

// WithRequired replaces the set of dataset names that must be present.
func WithRequired(names ...string) Option {
	return func(s *Store) {
		s.required = map[string]bool{}
		for _, n := range names {
			s.required[n] = true
		}
	}
}
