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

package config

import "github.com/OpenShelfProject/shelf-core/pkg/catalog/platformdefs"

// RootDirs returns a copy of the configured media root directories.
func (c *Instance) RootDirs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roots := make([]string, len(c.vals.Media.Folders))
	copy(roots, c.vals.Media.Folders)
	return roots
}

// SetRootDirs replaces the configured media root directories.
func (c *Instance) SetRootDirs(roots []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Media.Folders = make([]string, len(roots))
	copy(c.vals.Media.Folders, roots)
}

// PlatformOverrides returns a copy of the per-path platform override table.
func (c *Instance) PlatformOverrides() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	overrides := make(map[string]string, len(c.vals.Platforms.Overrides))
	for k, v := range c.vals.Platforms.Overrides {
		overrides[k] = v
	}
	return overrides
}

// SetPlatformOverride assigns a platform to an exact path, outranking the
// extension table. An empty platform clears the override.
func (c *Instance) SetPlatformOverride(path, platform string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if platform == "" {
		delete(c.vals.Platforms.Overrides, path)
		return
	}
	if c.vals.Platforms.Overrides == nil {
		c.vals.Platforms.Overrides = make(map[string]string)
	}
	c.vals.Platforms.Overrides[path] = platform
}

// CustomPlatforms returns the user-defined platforms in insertion order,
// converted to registry definitions.
func (c *Instance) CustomPlatforms() []platformdefs.Platform {
	c.mu.RLock()
	defer c.mu.RUnlock()
	custom := make([]platformdefs.Platform, 0, len(c.vals.Platforms.Custom))
	for _, p := range c.vals.Platforms.Custom {
		if p.Name == "" {
			continue
		}
		exts := make([]string, len(p.Extensions))
		copy(exts, p.Extensions)
		custom = append(custom, platformdefs.Platform{
			Name:       p.Name,
			Extensions: exts,
		})
	}
	return custom
}

// SteamEnabled reports whether the Steam source should be scanned.
// Defaults to enabled.
func (c *Instance) SteamEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Steam.Enabled == nil {
		return true
	}
	return *c.vals.Steam.Enabled
}

// SetSteamEnabled toggles the Steam source.
func (c *Instance) SetSteamEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.Enabled = &enabled
}

// SteamDir returns the configured Steam install directory, or empty to probe
// the conventional locations.
func (c *Instance) SteamDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.Dir
}
