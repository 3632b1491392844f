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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OpenShelfProject/shelf-core/pkg/catalog/cachestore"
	"github.com/OpenShelfProject/shelf-core/pkg/catalog/engine"
	"github.com/OpenShelfProject/shelf-core/pkg/config"
	"github.com/OpenShelfProject/shelf-core/pkg/helpers"
	"github.com/OpenShelfProject/shelf-core/pkg/service"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String(
		"config-dir",
		filepath.Join(xdg.ConfigHome, config.AppName),
		"directory holding the config file",
	)
	watchMode := flag.Bool(
		"watch",
		false,
		"keep running and refresh when the config changes",
	)
	clearCache := flag.Bool(
		"clear-cache",
		false,
		"delete the catalog snapshot and exit",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("shelf v%s\n", config.AppVersion)
		return nil
	}

	logDir := filepath.Join(xdg.StateHome, config.AppName)
	if err := helpers.InitLogging(logDir, []io.Writer{os.Stderr}); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	cfg, err := config.NewConfig(*configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.SetDebugLogging(cfg.DebugLogging())

	cachePath, err := cachestore.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to resolve cache path: %w", err)
	}
	store := cachestore.New(cachePath)

	if *clearCache {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear catalog snapshot: %w", err)
		}
		fmt.Println("catalog snapshot cleared")
		return nil
	}

	eng := engine.New(cfg, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watchMode {
		svc := service.New(cfg, eng)
		log.Info().Msg("starting catalog service")
		if err := svc.Run(ctx); err != nil {
			return fmt.Errorf("service stopped: %w", err)
		}
		return nil
	}

	cat, err := eng.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	for i := range cat {
		marker := " "
		if !eng.Available(&cat[i]) {
			marker = "!"
		}
		fmt.Printf("%s %-40s %-20s %s\n", marker, cat[i].Name, cat[i].Platform, cat[i].Location)
	}
	fmt.Printf("%d titles\n", len(cat))

	return nil
}
