/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Gridview serves configured tables as interactive data grids over HTTP.
// Without a config file it serves the built-in demo table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/core/server"
	"github.com/gridview/gridview/datasources"
	"github.com/gridview/gridview/demo"
)

// Config is the YAML configuration file layout.
type Config struct {
	Title         string                    `yaml:"title"`
	Subtitle      string                    `yaml:"subtitle"`
	Addr          string                    `yaml:"addr"`
	PageSize      int                       `yaml:"page_size"`
	SelectionMode string                    `yaml:"selection_mode"`
	Tables        []datasources.TableConfig `yaml:"tables"`
}

func defaultConfig() Config {
	return Config{
		Title:    "Gridview",
		Subtitle: "Filter, sort, resize and select across your tables",
		Addr:     "127.0.0.1:8097",
		PageSize: 10,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "gridview.yaml", "path to the YAML config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	pageSize := flag.Int("page-size", 0, "rows per page, overrides the config file")
	mode := flag.String("selection", "", "selection mode: none, single or multiselect")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("failed to load config: %v", err)
		}
		log.Printf("no config file at %s, serving the demo table", *configPath)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *pageSize > 0 {
		cfg.PageSize = *pageSize
	}
	if *mode != "" {
		cfg.SelectionMode = *mode
	}

	manager := datasources.NewManager()
	demo.Register(manager)
	for _, table := range cfg.Tables {
		manager.AddTable(table)
	}

	srv, err := server.New(manager, cfg.Title, cfg.Subtitle, cfg.PageSize, selection.ParseMode(cfg.SelectionMode))
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Fatal(srv.ListenAndServe(cfg.Addr))
}
