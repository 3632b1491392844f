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

// Package service runs the catalog engine in the background: one refresh on
// start, refreshes on demand, and a config-file watch that reloads and
// rescans when roots, overrides or platforms change.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog/engine"
	"github.com/OpenShelfProject/shelf-core/pkg/config"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounce absorbs editor write bursts into a single refresh.
const debounce = 500 * time.Millisecond

// Service ties the config instance and the engine together.
type Service struct {
	cfg     *config.Instance
	eng     *engine.Engine
	trigger chan struct{}
}

// New returns an unstarted service.
func New(cfg *config.Instance, eng *engine.Engine) *Service {
	return &Service{
		cfg:     cfg,
		eng:     eng,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger requests a refresh. Nonblocking; requests made while a refresh is
// already pending coalesce.
func (s *Service) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run performs an initial refresh and then blocks, refreshing on triggers
// and on config-file changes, until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if _, err := s.eng.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("initial refresh: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing config watcher")
		}
	}()

	// Watch the directory, not the file: editors replace config files by
	// rename, which drops a direct file watch.
	cfgPath := s.cfg.Path()
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != cfgPath {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				// Stop and drain before Reset: the timer may have fired
				// while this event was being handled, leaving a stale tick
				// in the channel.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(watchErr).Msg("config watcher error")
		case <-timerC:
			timerC = nil
			timer = nil
			log.Info().Msg("config changed, reloading")
			if err := s.cfg.Load(); err != nil {
				log.Error().Err(err).Msg("error reloading config")
				continue
			}
			s.Trigger()
		case <-s.trigger:
			if _, err := s.eng.Refresh(ctx); err != nil {
				// Cancellation mid-refresh is a normal shutdown, same as
				// the ctx.Done arm.
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("refresh: %w", err)
			}
		}
	}
}
