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
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is the full set of known entries, kept sorted by name for
// presentation. IDs are unique within a catalog.
type Catalog []Entry

// IDs returns the set of entry IDs in the catalog.
func (c Catalog) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c))
	for i := range c {
		ids[c[i].ID] = struct{}{}
	}
	return ids
}

// Sort orders the catalog in place by case-insensitive, locale-aware name
// comparison. The sort is stable so entries with equal names keep their
// relative order across refreshes.
func (c Catalog) Sort() {
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(c, func(i, j int) bool {
		return col.CompareString(c[i].Name, c[j].Name) < 0
	})
}

// Clone returns a copy of the catalog that callers can hold without racing
// against a later refresh.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}
