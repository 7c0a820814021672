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
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
)

// JsonLoader implements Loader for files holding a JSON array of objects.
// Rows are carried as protobuf Struct payloads (records.StructRecord), so
// the grid's selection export marshals them back out via protojson.
//
// Required config keys:
//   - file_path: Path to the JSON file
//
// Optional config keys:
//   - id_field: Object field whose value becomes the record id
//     (default: generated row ids)
type JsonLoader struct{}

// NewJsonLoader creates a new JSON loader.
func NewJsonLoader() *JsonLoader {
	return &JsonLoader{}
}

// SourceType returns "json".
func (l *JsonLoader) SourceType() string {
	return "json"
}

func (l *JsonLoader) readAll(config map[string]string) ([]map[string]interface{}, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return rows, nil
}

// DiscoverSchema returns the first object's field names, id field first,
// the rest alphabetical.
func (l *JsonLoader) DiscoverSchema(config map[string]string) ([]string, error) {
	rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("JSON file has no rows")
	}

	idField := config["id_field"]
	var names []string
	for name := range rows[0] {
		if name != idField {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if idField != "" {
		names = append([]string{idField}, names...)
	}
	return names, nil
}

// Load loads the JSON rows in array order.
func (l *JsonLoader) Load(config map[string]string, cols []*columns.Column) (*Table, error) {
	rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}

	idField := config["id_field"]
	table := &Table{
		Name:    config["table"],
		Columns: cols,
		Store:   records.Store{},
	}

	for rowIdx, row := range rows {
		id := "row_" + strconv.Itoa(rowIdx)
		if idField != "" {
			if v, ok := row[idField].(string); ok && v != "" {
				id = v
			}
		}

		rec, err := records.NewStructRecord(id, row)
		if err != nil {
			return nil, fmt.Errorf("failed to convert row %d: %w", rowIdx, err)
		}
		table.Store[id] = rec
		table.OrderedIDs = append(table.OrderedIDs, id)
	}

	return table, nil
}
