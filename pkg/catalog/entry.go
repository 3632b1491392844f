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

// Package catalog defines the library data model shared by the scanners,
// the cache store and the reconciliation engine.
package catalog

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// PlatformUnknown is assigned when no platform claims a file's extension.
	PlatformUnknown = "Unknown"

	// PlatformSteam is assigned to every entry synthesized from Steam manifests.
	PlatformSteam = "Steam"

	// SteamExtMarker stands in for a file extension on Steam entries, which
	// point at install directories rather than single files.
	SteamExtMarker = ".steam"

	steamIDPrefix = "steam-"
)

// Entry is one discovered title, either a file found under a media root or a
// title synthesized from a Steam app manifest.
type Entry struct {
	DateAdded  time.Time `json:"dateAdded"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Ext        string    `json:"ext"`
	Platform   string    `json:"platform"`
	SizeBytes  int64     `json:"sizeBytes"`
	SteamAppID int       `json:"steamAppId,omitempty"`
}

// IsSteam reports whether the entry came from the Steam source. The presence
// of a Steam app ID is the only discriminator.
func (e *Entry) IsSteam() bool {
	return e.SteamAppID != 0
}

// Available reports whether the entry's source can currently serve it.
// Filesystem entries are checked against their path at call time so the
// result never goes stale. Steam entries depend only on the launcher being
// installed, since an install directory doesn't exist before a first
// download.
func (e *Entry) Available(steamInstalled bool) bool {
	if e.IsSteam() {
		return steamInstalled
	}
	_, err := os.Stat(e.Location)
	return err == nil
}

// FileID derives the stable catalog ID for an absolute file path. The path is
// encoded rather than used directly so that any byte sequence a filesystem
// can produce still round-trips to a valid identifier.
func FileID(path string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

// PathFromFileID reverses FileID.
func PathFromFileID(id string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return "", fmt.Errorf("invalid file entry id %q: %w", id, err)
	}
	return string(raw), nil
}

// SteamID derives the stable catalog ID for a Steam app. Absolute paths
// always start with a separator or a drive letter, neither of which encodes
// to a leading "s", so the prefix keeps Steam IDs disjoint from file IDs.
func SteamID(appID int) string {
	return steamIDPrefix + strconv.Itoa(appID)
}

// SteamAppIDFromID extracts the app ID from a Steam entry ID.
func SteamAppIDFromID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, steamIDPrefix)
	if !ok {
		return 0, false
	}
	appID, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return appID, true
}
