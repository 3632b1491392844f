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

// Package scanner implements the filesystem source: a recursive walk of the
// configured media roots that yields one catalog entry per recognized file.
package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/platformdefs"
	"github.com/OpenShelfProject/shelf-core/pkg/helpers/syncutil"
	"github.com/charlievieth/fastwalk"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DirectoryScanner walks media roots and produces catalog entries for files
// whose extension belongs to a known platform.
type DirectoryScanner struct {
	clock clockwork.Clock
}

// New returns a scanner using the system clock for timestamp fallbacks.
func New() *DirectoryScanner {
	return &DirectoryScanner{clock: clockwork.NewRealClock()}
}

// NewWithClock returns a scanner with an injected clock, for tests.
func NewWithClock(clk clockwork.Clock) *DirectoryScanner {
	return &DirectoryScanner{clock: clk}
}

// Scan walks each root concurrently and returns one entry per regular file
// whose lowercased extension is in exts. Hidden files and directories are
// skipped. Platform resolution consults overrides first, then the registry.
// Roots or files that cannot be read are skipped, never fatal; the only
// error returned is context cancellation. Output order is unspecified.
func (s *DirectoryScanner) Scan(
	ctx context.Context,
	roots []string,
	exts map[string]struct{},
	overrides map[string]string,
	custom []platformdefs.Platform,
) ([]catalog.Entry, error) {
	var mu syncutil.Mutex
	var entries []catalog.Entry

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		g.Go(func() error {
			found, err := s.scanRoot(gctx, root, exts, overrides, custom)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DirectoryScanner) scanRoot(
	ctx context.Context,
	root string,
	exts map[string]struct{},
	overrides map[string]string,
	custom []platformdefs.Platform,
) ([]catalog.Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("skipping unresolvable media root")
		return nil, nil
	}

	// fastwalk runs the callback from multiple workers.
	var mu syncutil.Mutex
	var entries []catalog.Entry

	conf := fastwalk.Config{
		Follow: false,
	}

	walkErr := fastwalk.Walk(&conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") && path != absRoot {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := exts[ext]; !ok {
			return nil
		}

		entry := s.buildEntry(path, ext, d, overrides, custom)

		mu.Lock()
		entries = append(entries, entry)
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// An unreadable root is a transient condition (unplugged drive,
		// revoked mount); the rest of the scan proceeds without it.
		log.Warn().Err(walkErr).Str("root", absRoot).Msg("media root not scanned")
		return nil, nil
	}

	return entries, nil
}

func (s *DirectoryScanner) buildEntry(
	path, ext string,
	d fs.DirEntry,
	overrides map[string]string,
	custom []platformdefs.Platform,
) catalog.Entry {
	platform, ok := overrides[path]
	if !ok {
		platform = platformdefs.Resolve(ext, custom)
	}

	var size int64
	added := s.clock.Now()
	if info, err := d.Info(); err == nil {
		size = info.Size()
		if !info.ModTime().IsZero() {
			added = info.ModTime()
		}
	} else {
		log.Debug().Err(err).Str("path", path).Msg("file metadata unavailable")
	}

	return catalog.Entry{
		ID:        catalog.FileID(path),
		Name:      filepath.Base(path),
		Location:  path,
		Ext:       ext,
		Platform:  platform,
		SizeBytes: size,
		DateAdded: added,
	}
}
