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

	"pgregory.net/rapid"
)

// TestPropertyFileIDRoundTrip verifies every path survives encode/decode.
func TestPropertyFileIDRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.String().Draw(t, "path")

		decoded, err := PathFromFileID(FileID(path))
		if err != nil {
			t.Fatalf("decode failed for path %q: %v", path, err)
		}
		if decoded != path {
			t.Fatalf("round trip mismatch: %q != %q", decoded, path)
		}
	})
}

// TestPropertyFileIDDeterministic verifies repeated encoding is identical.
func TestPropertyFileIDDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.String().Draw(t, "path")

		if FileID(path) != FileID(path) {
			t.Fatalf("FileID not deterministic for %q", path)
		}
	})
}

// TestPropertyAbsolutePathIDNeverCollidesWithSteam verifies the Steam ID
// namespace stays disjoint from IDs derived from absolute paths.
func TestPropertyAbsolutePathIDNeverCollidesWithSteam(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		rest := rapid.String().Draw(t, "rest")
		absolute := "/" + rest

		if _, ok := SteamAppIDFromID(FileID(absolute)); ok {
			t.Fatalf("file ID for %q parsed as a Steam ID", absolute)
		}
	})
}
