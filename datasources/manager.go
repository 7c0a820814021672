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

package datasources

import (
	"fmt"

	"github.com/gridview/gridview/core/columns"
)

// TableConfig describes one table the manager can load.
type TableConfig struct {
	Name        string            `yaml:"name"`
	DisplayName string            `yaml:"display_name"`
	Source      string            `yaml:"source"`
	Config      map[string]string `yaml:"config"`

	// Columns restricts and orders the visible columns; empty means the
	// discovered schema order.
	Columns []string `yaml:"columns"`

	// DisplayNames overrides column display labels.
	DisplayNames map[string]string `yaml:"display_names"`
}

// Manager holds the registered loaders and table configurations.
type Manager struct {
	loaders map[string]Loader
	tables  map[string]TableConfig
	order   []string
}

// NewManager creates a manager with the built-in loaders registered.
func NewManager() *Manager {
	m := &Manager{
		loaders: map[string]Loader{},
		tables:  map[string]TableConfig{},
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewSqliteLoader())
	m.RegisterLoader(NewJsonLoader())
	m.RegisterLoader(NewAutomergeLoader())
	return m
}

// RegisterLoader registers a loader under its source type, replacing any
// previous loader of that type.
func (m *Manager) RegisterLoader(l Loader) {
	m.loaders[l.SourceType()] = l
}

// AddTable registers a table configuration.
func (m *Manager) AddTable(cfg TableConfig) {
	if _, exists := m.tables[cfg.Name]; !exists {
		m.order = append(m.order, cfg.Name)
	}
	m.tables[cfg.Name] = cfg
}

// Tables returns the registered table configs in registration order.
func (m *Manager) Tables() []TableConfig {
	out := make([]TableConfig, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.tables[name])
	}
	return out
}

// Table returns the config for a table name.
func (m *Manager) Table(name string) (TableConfig, bool) {
	cfg, ok := m.tables[name]
	return cfg, ok
}

// LoadTable discovers the schema and loads the table. The returned loader
// lets hosts use source-side sorting when the loader supports it.
func (m *Manager) LoadTable(name string) (*Table, Loader, error) {
	cfg, ok := m.tables[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q", name)
	}
	loader, ok := m.loaders[cfg.Source]
	if !ok {
		return nil, nil, fmt.Errorf("no loader registered for source type %q", cfg.Source)
	}

	schema, err := loader.DiscoverSchema(cfg.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("schema discovery for %q failed: %w", name, err)
	}

	names := schema
	if len(cfg.Columns) > 0 {
		names = cfg.Columns
	}

	cols := make([]*columns.Column, 0, len(names))
	for _, colName := range names {
		cols = append(cols, columns.New(colName, cfg.DisplayNames[colName]))
	}

	table, err := loader.Load(cfg.Config, cols)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %q failed: %w", name, err)
	}
	if table.Name == "" {
		table.Name = cfg.Name
	}
	return table, loader, nil
}
