// Package savegame persists game saves as versioned JSON slot files.
package savegame

import "os"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithDir sets the directory save files are written to.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithPermissions sets file and directory permissions for saves.
func WithPermissions(file, dir os.FileMode) Option {
	return func(s *Store) {
		s.filePerm = file
		s.dirPerm = dir
	}
}
