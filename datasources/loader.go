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

// Package datasources provides a unified interface for loading grid tables
// from various sources (CSV, SQLite, JSON documents, Automerge documents)
// and the host adapter that binds a loaded table to the grid.
package datasources

import (
	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
)

// Table is one loaded dataset: the record store plus the source's own
// record order, which the grid treats as authoritative.
type Table struct {
	Name       string
	Columns    []*columns.Column
	Store      records.Store
	OrderedIDs []string
}

// Loader is the interface that all data source loaders implement.
// Built-in loaders exist for "csv", "sqlite", "json" and "automerge";
// hosts can register additional loaders for databases, APIs or custom
// formats.
type Loader interface {
	// SourceType returns the type identifier used in config
	// (e.g. "csv", "sqlite").
	SourceType() string

	// DiscoverSchema returns the column names discovered from the source.
	// This is called first to determine the column sequence.
	DiscoverSchema(config map[string]string) ([]string, error)

	// Load retrieves the data and returns a Table. The column sequence
	// carries display names already applied from table config.
	Load(config map[string]string, cols []*columns.Column) (*Table, error)
}

// Sorter is implemented by loaders whose backing store can reorder records
// itself (the SQLite loader sorts with ORDER BY). The grid never compares
// records; hosts prefer a Sorter over the local fallback.
type Sorter interface {
	// SortIDs returns the record ids ordered by the column. An empty
	// column name restores the source's natural order.
	SortIDs(config map[string]string, column string, descending bool) ([]string, error)
}
