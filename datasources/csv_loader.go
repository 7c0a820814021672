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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
)

// CsvLoader implements Loader for CSV files. All cells are loaded as
// strings.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - id_column: Column whose value becomes the record id
//     (default: generated row ids "row_0", "row_1", ...)
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

func (l *CsvLoader) readAll(config map[string]string) ([][]string, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = rune(d[0])
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return rows, nil
}

// DiscoverSchema discovers the column names from the CSV header.
func (l *CsvLoader) DiscoverSchema(config map[string]string) ([]string, error) {
	rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}

	if h := config["has_header"]; h != "false" {
		return rows[0], nil
	}
	names := make([]string, len(rows[0]))
	for i := range rows[0] {
		names[i] = fmt.Sprintf("col_%d", i)
	}
	return names, nil
}

// Load loads a CSV file and returns a Table in file order.
func (l *CsvLoader) Load(config map[string]string, cols []*columns.Column) (*Table, error) {
	rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}

	dataStart := 0
	if h := config["has_header"]; h != "false" {
		dataStart = 1
	}

	idColumn := config["id_column"]
	idIndex := -1
	for i, col := range cols {
		if col.Name() == idColumn {
			idIndex = i
		}
	}

	table := &Table{
		Name:    config["table"],
		Columns: cols,
		Store:   records.Store{},
	}
	for rowIdx, row := range rows[dataStart:] {
		fields := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(row) {
				fields[col.Name()] = row[i]
			} else {
				fields[col.Name()] = ""
			}
		}

		id := "row_" + strconv.Itoa(rowIdx)
		if idIndex >= 0 && idIndex < len(row) && row[idIndex] != "" {
			id = row[idIndex]
		}

		table.Store[id] = records.NewMapRecord(id, fields)
		table.OrderedIDs = append(table.OrderedIDs, id)
	}

	return table, nil
}
