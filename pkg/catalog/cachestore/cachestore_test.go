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

package cachestore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/data/shelf/catalog.json"

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		{
			ID:        catalog.FileID("/games/Chrono Trigger (USA).sfc"),
			Name:      "Chrono Trigger (USA).sfc",
			Location:  "/games/Chrono Trigger (USA).sfc",
			Ext:       ".sfc",
			Platform:  "SNES",
			SizeBytes: 4194304,
			DateAdded: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			ID:         catalog.SteamID(730),
			Name:       "Counter-Strike 2",
			Location:   "/steam/steamapps/common/Counter-Strike Global Offensive",
			Ext:        catalog.SteamExtMarker,
			Platform:   catalog.PlatformSteam,
			SteamAppID: 730,
		},
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing_file_yields_empty", func(t *testing.T) {
		t.Parallel()

		store := NewWithFs(afero.NewMemMapFs(), testPath)
		assert.Empty(t, store.Load())
	})

	t.Run("corrupt_file_yields_empty", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, testPath, []byte("{invalid json"), 0o600))

		store := NewWithFs(fs, testPath)
		assert.Empty(t, store.Load())
	})

	t.Run("schema_mismatch_yields_empty", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		data, err := json.Marshal(map[string]any{
			"schemaVersion": SchemaVersion + 1,
			"entries":       testCatalog(),
		})
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, testPath, data, 0o600))

		store := NewWithFs(fs, testPath)
		assert.Empty(t, store.Load())
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store := NewWithFs(fs, testPath)

	want := testCatalog()
	store.Save(want)

	got := store.Load()
	require.Len(t, got, len(want))
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Platform, got[0].Platform)
	assert.True(t, want[0].DateAdded.Equal(got[0].DateAdded))
	assert.Equal(t, want[1].SteamAppID, got[1].SteamAppID)

	// no temp file left behind
	exists, err := afero.Exists(fs, testPath+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store := NewWithFs(fs, testPath)

	store.Save(testCatalog())
	store.Save(catalog.Catalog{{ID: "only", Name: "Only Game"}})

	got := store.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].ID)
}

func TestSaveFailureSwallowed(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := NewWithFs(fs, testPath)

	// must not panic or error, and a later load still works (as empty)
	store.Save(testCatalog())
	assert.Empty(t, store.Load())
}

func TestClear(t *testing.T) {
	t.Parallel()

	t.Run("removes_snapshot", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := NewWithFs(fs, testPath)
		store.Save(testCatalog())

		require.NoError(t, store.Clear())
		assert.Empty(t, store.Load())
	})

	t.Run("missing_snapshot_is_not_an_error", func(t *testing.T) {
		t.Parallel()

		store := NewWithFs(afero.NewMemMapFs(), testPath)
		require.NoError(t, store.Clear())
	})
}
