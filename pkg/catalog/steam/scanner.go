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

package steam

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/andygrunwald/vdf"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// nonGameKeywords mark manifest entries Steam mixes into a library that are
// tooling rather than titles. The match is a case-insensitive substring test
// against the reported name. This filter is part of the source's contract:
// without it every library gains redistributables and runtimes as "games".
var nonGameKeywords = []string{
	"redistributable",
	"redist",
	"runtime",
	"sdk",
	"dedicated server",
	"proton",
	"steamworks",
	"compatibility tool",
	"steam linux runtime",
}

// IsNonGame reports whether a manifest name matches the tooling denylist.
func IsNonGame(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range nonGameKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Scanner reads a Steam install's manifests and synthesizes catalog entries.
type Scanner struct {
	clock clockwork.Clock
}

// NewScanner returns a scanner using the system clock for timestamp fallbacks.
func NewScanner() *Scanner {
	return &Scanner{clock: clockwork.NewRealClock()}
}

// NewScannerWithClock returns a scanner with an injected clock, for tests.
func NewScannerWithClock(clk clockwork.Clock) *Scanner {
	return &Scanner{clock: clk}
}

// Scan enumerates every app manifest in every library declared by the
// install at root and returns one entry per title that passes the non-game
// filter. A missing install yields an empty result and no error; manifests
// that cannot be parsed are skipped.
func (s *Scanner) Scan(root string) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	if root == "" || !Installed(root) {
		log.Debug().Str("root", root).Msg("steam not present, skipping source")
		return entries, nil
	}

	for _, library := range libraryRoots(root) {
		steamApps := filepath.Join(library, steamAppsDirName)
		files, err := os.ReadDir(steamApps)
		if err != nil {
			log.Warn().Err(err).Str("library", library).Msg("error listing steamapps folder")
			continue
		}

		for _, f := range files {
			if !strings.HasPrefix(f.Name(), "appmanifest_") {
				continue
			}
			entry, ok := s.readManifest(filepath.Join(steamApps, f.Name()), library)
			if !ok {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// readManifest parses one appmanifest_*.acf file. The required fields are
// the numeric app ID and the display name; install directory, size on disk
// and last-updated time are best-effort.
func (s *Scanner) readManifest(path, library string) (catalog.Entry, bool) {
	//nolint:gosec // Safe: reads Steam manifest files for game library scanning
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("manifest", path).Msg("error opening manifest")
		return catalog.Entry{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing manifest file")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		log.Warn().Err(err).Str("manifest", path).Msg("error parsing manifest")
		return catalog.Entry{}, false
	}
	m = normalizeVDFKeys(m)

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		log.Warn().Str("manifest", path).Msg("appstate is not a map")
		return catalog.Entry{}, false
	}

	appIDStr, ok := appState["appid"].(string)
	if !ok {
		log.Warn().Str("manifest", path).Msg("appid missing")
		return catalog.Entry{}, false
	}
	appID, err := strconv.Atoi(appIDStr)
	if err != nil {
		log.Warn().Str("manifest", path).Str("appid", appIDStr).Msg("appid not numeric")
		return catalog.Entry{}, false
	}

	name, ok := appState["name"].(string)
	if !ok || name == "" {
		log.Warn().Str("manifest", path).Msg("name missing")
		return catalog.Entry{}, false
	}

	if IsNonGame(name) {
		log.Debug().Str("name", name).Msg("filtered non-game manifest")
		return catalog.Entry{}, false
	}

	installDir, _ := appState["installdir"].(string) //nolint:revive // installdir is optional

	var size int64
	if sizeStr, ok := appState["sizeondisk"].(string); ok {
		if parsed, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
			size = parsed
		}
	}

	added := s.clock.Now()
	if updatedStr, ok := appState["lastupdated"].(string); ok {
		if unix, err := strconv.ParseInt(updatedStr, 10, 64); err == nil && unix > 0 {
			added = time.Unix(unix, 0)
		}
	}

	return catalog.Entry{
		ID:         catalog.SteamID(appID),
		Name:       name,
		Location:   filepath.Join(library, steamAppsDirName, "common", installDir),
		Ext:        catalog.SteamExtMarker,
		Platform:   catalog.PlatformSteam,
		SizeBytes:  size,
		DateAdded:  added,
		SteamAppID: appID,
	}, true
}
