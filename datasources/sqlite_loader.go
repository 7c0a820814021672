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
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
)

// SqliteLoader implements Loader for SQLite database files. It also
// implements Sorter: sort requests run as ORDER BY in the database, so the
// "host dataset reorders, the grid only tracks intent" boundary holds with
// a real backing store.
//
// Required config keys:
//   - file_path: Path to the database file
//   - table: Table to load
//   - id_column: Column whose value becomes the record id
type SqliteLoader struct{}

// NewSqliteLoader creates a new SQLite loader.
func NewSqliteLoader() *SqliteLoader {
	return &SqliteLoader{}
}

// SourceType returns "sqlite".
func (l *SqliteLoader) SourceType() string {
	return "sqlite"
}

func (l *SqliteLoader) open(config map[string]string) (*sql.DB, string, string, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, "", "", fmt.Errorf("file_path is required")
	}
	table := config["table"]
	if table == "" {
		return nil, "", "", fmt.Errorf("table is required")
	}
	idColumn := config["id_column"]
	if idColumn == "" {
		return nil, "", "", fmt.Errorf("id_column is required")
	}

	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to open database: %w", err)
	}
	return db, table, idColumn, nil
}

// quoteIdent quotes an identifier for interpolation into SQL. Identifiers
// come from config and schema discovery, not from user input; quoting is
// still applied so odd column names round-trip.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DiscoverSchema discovers the column names of the configured table.
func (l *SqliteLoader) DiscoverSchema(config map[string]string) ([]string, error) {
	db, table, _, err := l.open(config)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT 1", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	return names, nil
}

// Load loads the table in rowid order.
func (l *SqliteLoader) Load(config map[string]string, cols []*columns.Column) (*Table, error) {
	db, table, idColumn, err := l.open(config)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	selected := make([]string, len(cols))
	for i, col := range cols {
		selected[i] = quoteIdent(col.Name())
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s", strings.Join(selected, ", "), quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	out := &Table{
		Name:    table,
		Columns: cols,
		Store:   records.Store{},
	}

	values := make([]sql.NullString, len(cols))
	scan := make([]interface{}, len(cols))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		fields := make(map[string]string, len(cols))
		id := ""
		for i, col := range cols {
			fields[col.Name()] = values[i].String
			if col.Name() == idColumn {
				id = values[i].String
			}
		}
		if id == "" {
			continue // rows without an id cannot be addressed by the grid
		}
		out.Store[id] = records.NewMapRecord(id, fields)
		out.OrderedIDs = append(out.OrderedIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return out, nil
}

// SortIDs returns the record ids ordered by the column, case-insensitively,
// via ORDER BY in the database. An empty column restores rowid order.
func (l *SqliteLoader) SortIDs(config map[string]string, column string, descending bool) ([]string, error) {
	db, table, idColumn, err := l.open(config)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	order := ""
	if column != "" {
		dir := "ASC"
		if descending {
			dir = "DESC"
		}
		order = fmt.Sprintf(" ORDER BY %s COLLATE NOCASE %s", quoteIdent(column), dir)
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s%s", quoteIdent(idColumn), quoteIdent(table), order))
	if err != nil {
		return nil, fmt.Errorf("failed to sort table %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id sql.NullString
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		if id.String != "" {
			ids = append(ids, id.String)
		}
	}
	return ids, rows.Err()
}
