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

package platformdefs

import (
	"testing"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("known_extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "SNES", Resolve(".sfc", nil))
		assert.Equal(t, "NES", Resolve(".nes", nil))
	})

	t.Run("unknown_extension_maps_to_sentinel", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, catalog.PlatformUnknown, Resolve(".doc", nil))
		assert.Equal(t, catalog.PlatformUnknown, Resolve("", nil))
	})

	t.Run("normalizes_case_and_dot", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "SNES", Resolve("SFC", nil))
		assert.Equal(t, "SNES", Resolve(".SfC", nil))
	})

	t.Run("ambiguous_extension_first_declaration_wins", func(t *testing.T) {
		t.Parallel()

		// .bin and .cue are claimed by PlayStation, Sega CD, Sega Saturn
		// and 3DO. PlayStation is declared first.
		assert.Equal(t, "PlayStation", Resolve(".bin", nil))
		assert.Equal(t, "PlayStation", Resolve(".cue", nil))
		assert.Equal(t, "PlayStation", Resolve(".chd", nil))
	})

	t.Run("custom_platform_after_builtins", func(t *testing.T) {
		t.Parallel()

		custom := []Platform{{Name: "PICO-8", Extensions: []string{".p8"}}}
		assert.Equal(t, "PICO-8", Resolve(".p8", custom))

		// A custom platform cannot shadow a built-in claim.
		custom = []Platform{{Name: "My Platform", Extensions: []string{".sfc"}}}
		assert.Equal(t, "SNES", Resolve(".sfc", custom))
	})

	t.Run("custom_platforms_in_insertion_order", func(t *testing.T) {
		t.Parallel()

		custom := []Platform{
			{Name: "First", Extensions: []string{".xyz"}},
			{Name: "Second", Extensions: []string{".xyz"}},
		}
		assert.Equal(t, "First", Resolve(".xyz", custom))
	})
}

func TestAllExtensions(t *testing.T) {
	t.Parallel()

	t.Run("includes_builtins", func(t *testing.T) {
		t.Parallel()

		exts := AllExtensions(nil)
		assert.Contains(t, exts, ".sfc")
		assert.Contains(t, exts, ".nes")
		assert.Contains(t, exts, ".chd")
	})

	t.Run("includes_custom", func(t *testing.T) {
		t.Parallel()

		custom := []Platform{{Name: "PICO-8", Extensions: []string{"P8"}}}
		exts := AllExtensions(custom)
		assert.Contains(t, exts, ".p8")
	})
}

func TestBuiltinsWellFormed(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, len(Builtins))
	for i := range Builtins {
		assert.NotEmpty(t, Builtins[i].Name)
		assert.NotEmpty(t, Builtins[i].Extensions, "platform %s has no extensions", Builtins[i].Name)

		_, dup := seen[Builtins[i].Name]
		assert.False(t, dup, "duplicate platform name %s", Builtins[i].Name)
		seen[Builtins[i].Name] = struct{}{}

		for _, ext := range Builtins[i].Extensions {
			assert.Equal(t, NormalizeExt(ext), ext,
				"extension %s of %s is not normalized", ext, Builtins[i].Name)
		}
	}
}
