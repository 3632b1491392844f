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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSort(t *testing.T) {
	t.Parallel()

	t.Run("case_insensitive_order", func(t *testing.T) {
		t.Parallel()

		c := Catalog{
			{ID: "1", Name: "zelda"},
			{ID: "2", Name: "Chrono Trigger"},
			{ID: "3", Name: "banjo"},
			{ID: "4", Name: "Banjo-Tooie"},
		}
		c.Sort()

		names := make([]string, len(c))
		for i := range c {
			names[i] = c[i].Name
		}
		assert.Equal(t, []string{"banjo", "Banjo-Tooie", "Chrono Trigger", "zelda"}, names)
	})

	t.Run("locale_aware_accents", func(t *testing.T) {
		t.Parallel()

		c := Catalog{
			{ID: "1", Name: "Súper Game"},
			{ID: "2", Name: "Simple Game"},
			{ID: "3", Name: "Sz Game"},
		}
		c.Sort()

		// Accented "ú" collates with "u", not after "z" as raw bytes would.
		assert.Equal(t, "Simple Game", c[0].Name)
		assert.Equal(t, "Súper Game", c[1].Name)
		assert.Equal(t, "Sz Game", c[2].Name)
	})

	t.Run("stable_for_equal_names", func(t *testing.T) {
		t.Parallel()

		c := Catalog{
			{ID: "b", Name: "Same"},
			{ID: "a", Name: "Same"},
		}
		c.Sort()

		assert.Equal(t, "b", c[0].ID)
		assert.Equal(t, "a", c[1].ID)
	})
}

func TestCatalogIDs(t *testing.T) {
	t.Parallel()

	c := Catalog{
		{ID: "a"},
		{ID: "b"},
	}
	ids := c.IDs()

	require.Len(t, ids, 2)
	assert.Contains(t, ids, "a")
	assert.Contains(t, ids, "b")
}

func TestCatalogClone(t *testing.T) {
	t.Parallel()

	c := Catalog{{ID: "a", Name: "Game"}}
	clone := c.Clone()

	clone[0].Name = "Changed"
	assert.Equal(t, "Game", c[0].Name)

	assert.Nil(t, Catalog(nil).Clone())
}
