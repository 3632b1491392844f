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

// Package steam implements the external launcher source: it synthesizes
// catalog entries from Steam's library manifests without walking any game
// files on disk.
package steam

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

const steamAppsDirName = "steamapps"

// Installed reports whether a Steam install is present at root. This is the
// availability check for Steam entries: the install directory of an
// individual title can legitimately be absent before a first download, so
// only the launcher itself is probed.
func Installed(root string) bool {
	if root == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(root, steamAppsDirName))
	return err == nil && info.IsDir()
}

// DefaultRoot returns the first conventional Steam install location that
// exists on this system, or empty if none do.
func DefaultRoot() string {
	for _, candidate := range defaultRoots() {
		if Installed(candidate) {
			return candidate
		}
	}
	return ""
}

func defaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join("C:\\", "Program Files (x86)", "Steam"),
			filepath.Join("C:\\", "Program Files", "Steam"),
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	default:
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			// Flatpak
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam",
				".steam", "steam"),
		}
	}
}

// libraryRoots reads libraryfolders.vdf and returns every declared library
// root. The install root itself is always included and always first, so a
// missing or malformed manifest degrades to scanning the default library.
func libraryRoots(root string) []string {
	roots := []string{root}
	seen := map[string]struct{}{root: {}}

	manifest := filepath.Join(root, steamAppsDirName, "libraryfolders.vdf")
	//nolint:gosec // Safe: reads Steam config files for game library scanning
	f, err := os.Open(manifest)
	if err != nil {
		log.Debug().Err(err).Msg("no libraryfolders.vdf, using install root only")
		return roots
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		log.Warn().Err(err).Msg("error parsing libraryfolders.vdf")
		return roots
	}
	m = normalizeVDFKeys(m)

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		log.Warn().Msg("libraryfolders is not a map")
		return roots
	}

	// Only the top-level "path" key of each library block matters here.
	for id, v := range lfs {
		block, ok := v.(map[string]any)
		if !ok {
			continue
		}
		path, ok := block["path"].(string)
		if !ok {
			log.Debug().Str("library", id).Msg("library block has no path")
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		roots = append(roots, path)
	}

	return roots
}
