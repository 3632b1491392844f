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

// Package engine reconciles fresh scans of every source with the persisted
// snapshot into the authoritative catalog.
package engine

import (
	"context"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/cachestore"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/platformdefs"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/scanner"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/steam"
	"github.com/OpenShelfProject/shelf-core/pkg/config"
	"github.com/OpenShelfProject/shelf-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// inputs is the configuration snapshot a single refresh runs against. It is
// taken once at the start of a refresh so the scan never reads live mutable
// state.
type inputs struct {
	overrides    map[string]string
	steamDir     string
	roots        []string
	custom       []platformdefs.Platform
	steamEnabled bool
}

// Engine owns the in-memory catalog and runs refreshes against it.
type Engine struct {
	cfg   *config.Instance
	store *cachestore.Store
	dirs  *scanner.DirectoryScanner
	steam *steam.Scanner

	mu      syncutil.RWMutex
	current catalog.Catalog
	loaded  bool
	// Generation numbers give last-writer-by-completion semantics: a refresh
	// that finishes after a newer one started may not clobber its result.
	startedGen   uint64
	publishedGen uint64
}

// New returns an engine reading configuration from cfg and persisting
// snapshots through store.
func New(cfg *config.Instance, store *cachestore.Store) *Engine {
	return &Engine{
		cfg:   cfg,
		store: store,
		dirs:  scanner.New(),
		steam: steam.NewScanner(),
	}
}

// NewWithScanners returns an engine with injected scanners, for tests.
func NewWithScanners(
	cfg *config.Instance,
	store *cachestore.Store,
	dirs *scanner.DirectoryScanner,
	steamScanner *steam.Scanner,
) *Engine {
	return &Engine{cfg: cfg, store: store, dirs: dirs, steam: steamScanner}
}

// Catalog returns the currently published catalog. Before the first refresh
// completes this may be the snapshot loaded from disk, or empty.
func (e *Engine) Catalog() catalog.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Clone()
}

// Available reports whether an entry's source can currently serve it.
// Derived at query time, never stored.
func (e *Engine) Available(entry *catalog.Entry) bool {
	return entry.Available(steam.Installed(e.steamRoot()))
}

// Refresh runs one full reconciliation pass: load the previous snapshot,
// scan all sources, merge, sort, persist, publish. Entries present only in
// the snapshot are preserved as unavailable rather than dropped, so a root
// that is temporarily unplugged never empties the library. The only error
// returned is context cancellation; every source failure degrades to a
// smaller scan.
func (e *Engine) Refresh(ctx context.Context) (catalog.Catalog, error) {
	in := e.snapshotInputs()
	gen := e.beginRefresh()

	cached := e.store.Load()
	e.publishCold(cached)

	var dirEntries, steamEntries []catalog.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := e.dirs.Scan(gctx, in.roots,
			platformdefs.AllExtensions(in.custom), in.overrides, in.custom)
		if err != nil {
			return err //nolint:wrapcheck // context cancellation only
		}
		dirEntries = found
		return nil
	})
	g.Go(func() error {
		if !in.steamEnabled {
			return nil
		}
		found, err := e.steam.Scan(in.steamDir)
		if err != nil {
			return err //nolint:wrapcheck // context cancellation only
		}
		steamEntries = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scanned := make(catalog.Catalog, 0, len(dirEntries)+len(steamEntries))
	scanned = append(scanned, dirEntries...)
	scanned = append(scanned, steamEntries...)

	merged := merge(scanned, cached)
	merged.Sort()

	if e.publish(gen, merged) {
		e.store.Save(merged)
	} else {
		log.Debug().Uint64("gen", gen).Msg("stale refresh result discarded")
	}

	log.Info().
		Int("scanned", len(scanned)).
		Int("preserved", len(merged)-countScanned(merged, scanned)).
		Int("total", len(merged)).
		Msg("catalog refresh complete")

	return merged, nil
}

// merge unions the fresh scan with snapshot-only entries. Scanned entries
// win on ID conflicts and duplicate scan hits keep their first occurrence.
// A snapshot entry the scan failed to rediscover is retained untouched: it
// surfaces as unavailable instead of silently disappearing.
func merge(scanned, cached catalog.Catalog) catalog.Catalog {
	merged := make(catalog.Catalog, 0, len(scanned)+len(cached))
	seen := make(map[string]struct{}, len(scanned))

	for i := range scanned {
		if _, dup := seen[scanned[i].ID]; dup {
			continue
		}
		seen[scanned[i].ID] = struct{}{}
		merged = append(merged, scanned[i])
	}

	for i := range cached {
		if _, rediscovered := seen[cached[i].ID]; rediscovered {
			continue
		}
		seen[cached[i].ID] = struct{}{}
		merged = append(merged, cached[i])
	}

	return merged
}

func countScanned(merged, scanned catalog.Catalog) int {
	ids := scanned.IDs()
	n := 0
	for i := range merged {
		if _, ok := ids[merged[i].ID]; ok {
			n++
		}
	}
	return n
}

func (e *Engine) snapshotInputs() inputs {
	return inputs{
		roots:        e.cfg.RootDirs(),
		overrides:    e.cfg.PlatformOverrides(),
		custom:       e.cfg.CustomPlatforms(),
		steamEnabled: e.cfg.SteamEnabled(),
		steamDir:     e.steamRoot(),
	}
}

func (e *Engine) steamRoot() string {
	if dir := e.cfg.SteamDir(); dir != "" {
		return dir
	}
	return steam.DefaultRoot()
}

func (e *Engine) beginRefresh() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startedGen++
	return e.startedGen
}

// publishCold surfaces the disk snapshot immediately on the first refresh so
// a consumer has something to show before scanning completes.
func (e *Engine) publishCold(cached catalog.Catalog) {
	if len(cached) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return
	}
	e.current = cached
	e.loaded = true
}

// publish installs the merged catalog unless a newer refresh already did.
func (e *Engine) publish(gen uint64, merged catalog.Catalog) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen < e.publishedGen {
		return false
	}
	e.current = merged
	e.loaded = true
	e.publishedGen = gen
	return true
}
