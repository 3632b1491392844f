// Shelf Core
// Copyright (c) 2026 The Shelf Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Shelf Core.
//
// Shelf Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Shelf Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Shelf Core.  If not, see <http://www.gnu.org/licenses/>.

// Package cachestore persists the last known catalog as a single JSON
// snapshot. It holds no resolution logic: load and save only.
package cachestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/OpenShelfProject/shelf-core/pkg/config"
	"github.com/OpenShelfProject/shelf-core/pkg/helpers/syncutil"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// SchemaVersion of the snapshot envelope. Snapshots with a different version
// load as empty rather than being migrated.
const SchemaVersion = 1

type snapshot struct {
	SavedAt       time.Time       `json:"savedAt"`
	Entries       catalog.Catalog `json:"entries"`
	SchemaVersion int             `json:"schemaVersion"`
}

// Store reads and writes the snapshot file. The filesystem is injected so
// tests run against memory.
type Store struct {
	fs    afero.Fs
	clock func() time.Time
	path  string
	mu    syncutil.Mutex
}

// New returns a store backed by the OS filesystem at path.
func New(path string) *Store {
	return NewWithFs(afero.NewOsFs(), path)
}

// NewWithFs returns a store backed by an arbitrary filesystem, for tests.
func NewWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path, clock: time.Now}
}

// DefaultPath returns the snapshot location inside the user data directory.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(filepath.Join(config.AppName, config.CacheFile))
	if err != nil {
		return "", err //nolint:wrapcheck // xdg error is self-describing
	}
	return path, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the last persisted catalog. A missing, unreadable, corrupt or
// version-mismatched snapshot yields an empty catalog, never an error: the
// cache is an optimization the engine must be able to live without.
func (s *Store) Load() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", s.path).Msg("no catalog snapshot on disk")
		} else {
			log.Warn().Err(err).Str("path", s.path).Msg("error reading catalog snapshot")
		}
		return catalog.Catalog{}
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("corrupt catalog snapshot, starting empty")
		return catalog.Catalog{}
	}

	if snap.SchemaVersion != SchemaVersion {
		log.Warn().
			Int("got", snap.SchemaVersion).
			Int("want", SchemaVersion).
			Msg("catalog snapshot schema mismatch, starting empty")
		return catalog.Catalog{}
	}

	return snap.Entries
}

// Save overwrites the snapshot wholesale with an atomic write-then-rename.
// Failures are logged and swallowed: the in-memory catalog stays correct for
// the session and persistence is best-effort.
func (s *Store) Save(c catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		SchemaVersion: SchemaVersion,
		SavedAt:       s.clock(),
		Entries:       c,
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("error marshaling catalog snapshot")
		return
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("error creating snapshot directory")
		return
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		log.Warn().Err(err).Str("path", tmp).Msg("error writing catalog snapshot")
		return
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("error replacing catalog snapshot")
		if rmErr := s.fs.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Debug().Err(rmErr).Msg("error removing snapshot temp file")
		}
	}
}

// Clear deletes the snapshot. This is the only removal path for ghost
// entries and is an explicit operator action, so the error propagates.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err //nolint:wrapcheck // caller logs with path context
	}
	return nil
}
