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
	"strings"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
)

// Platform maps a display name to the set of file extensions it claims.
type Platform struct {
	Name       string
	Extensions []string
}

// Builtins is the reference list of supported platforms. Order matters:
// several extensions are legitimately claimed by more than one platform
// (.bin/.cue/.chd in particular), and Resolve picks the first declaration
// that matches. Fixing up an ambiguous file is the job of a per-path
// override, not of this table.
var Builtins = []Platform{
	{Name: "NES", Extensions: []string{".nes", ".fds", ".unf"}},
	{Name: "SNES", Extensions: []string{".sfc", ".smc", ".bs"}},
	{Name: "Nintendo 64", Extensions: []string{".n64", ".z64", ".v64"}},
	{Name: "GameCube", Extensions: []string{".gcm", ".gcz", ".rvz"}},
	{Name: "Wii", Extensions: []string{".wbfs", ".wad"}},
	{Name: "Game Boy", Extensions: []string{".gb"}},
	{Name: "Game Boy Color", Extensions: []string{".gbc"}},
	{Name: "Game Boy Advance", Extensions: []string{".gba"}},
	{Name: "Nintendo DS", Extensions: []string{".nds"}},
	{Name: "PlayStation", Extensions: []string{".cue", ".bin", ".chd", ".pbp", ".ecm"}},
	{Name: "PlayStation 2", Extensions: []string{".iso", ".cso"}},
	{Name: "PlayStation Portable", Extensions: []string{".iso", ".cso", ".pbp"}},
	{Name: "Sega Genesis", Extensions: []string{".md", ".gen", ".smd", ".68k"}},
	{Name: "Sega CD", Extensions: []string{".cue", ".bin", ".chd"}},
	{Name: "Sega Saturn", Extensions: []string{".cue", ".bin", ".chd"}},
	{Name: "Sega Dreamcast", Extensions: []string{".gdi", ".cdi", ".chd"}},
	{Name: "Sega Master System", Extensions: []string{".sms"}},
	{Name: "Sega Game Gear", Extensions: []string{".gg"}},
	{Name: "Atari 2600", Extensions: []string{".a26"}},
	{Name: "Atari 5200", Extensions: []string{".a52"}},
	{Name: "Atari 7800", Extensions: []string{".a78"}},
	{Name: "Atari Lynx", Extensions: []string{".lnx"}},
	{Name: "Atari Jaguar", Extensions: []string{".j64", ".jag"}},
	{Name: "TurboGrafx-16", Extensions: []string{".pce", ".sgx"}},
	{Name: "Neo Geo", Extensions: []string{".neo"}},
	{Name: "Neo Geo Pocket", Extensions: []string{".ngp", ".ngc"}},
	{Name: "WonderSwan", Extensions: []string{".ws", ".wsc"}},
	{Name: "3DO", Extensions: []string{".cue", ".chd"}},
	{Name: "Virtual Boy", Extensions: []string{".vb"}},
	{Name: "ColecoVision", Extensions: []string{".col"}},
	{Name: "Intellivision", Extensions: []string{".int"}},
	{Name: "Vectrex", Extensions: []string{".vec"}},
	{Name: "MSX", Extensions: []string{".mx1", ".mx2"}},
	{Name: "Commodore 64", Extensions: []string{".d64", ".t64", ".crt", ".prg"}},
	{Name: "Amiga", Extensions: []string{".adf", ".hdf", ".lha"}},
	{Name: "ZX Spectrum", Extensions: []string{".tzx", ".tap", ".z80", ".sna"}},
	{Name: "Arcade", Extensions: []string{".zip", ".7z"}},
}

// NormalizeExt lowercases an extension and ensures the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Resolve returns the name of the first platform, built-ins before custom
// platforms in declaration order, whose extension set contains ext. Files
// nothing claims resolve to the Unknown sentinel, never to an empty string.
func Resolve(ext string, custom []Platform) string {
	ext = NormalizeExt(ext)
	if ext == "" {
		return catalog.PlatformUnknown
	}
	for i := range Builtins {
		if hasExt(&Builtins[i], ext) {
			return Builtins[i].Name
		}
	}
	for i := range custom {
		if hasExt(&custom[i], ext) {
			return custom[i].Name
		}
	}
	return catalog.PlatformUnknown
}

// AllExtensions returns the union of every extension claimed by built-in and
// custom platforms, normalized. This is the recognized set the directory
// scanner filters against.
func AllExtensions(custom []Platform) map[string]struct{} {
	exts := make(map[string]struct{})
	for i := range Builtins {
		for _, ext := range Builtins[i].Extensions {
			exts[NormalizeExt(ext)] = struct{}{}
		}
	}
	for i := range custom {
		for _, ext := range custom[i].Extensions {
			exts[NormalizeExt(ext)] = struct{}{}
		}
	}
	return exts
}

func hasExt(p *Platform, ext string) bool {
	for _, e := range p.Extensions {
		if NormalizeExt(e) == ext {
			return true
		}
	}
	return false
}
