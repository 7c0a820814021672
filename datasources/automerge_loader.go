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
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/automerge/automerge-go"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
)

// AutomergeLoader implements Loader for automerge document directories
// holding a "rows" list of field maps at the document root. The directory
// layout is a snapshot/ dir with at most one full save plus an optional
// incremental/ dir of change chunks applied on top.
//
// Required config keys:
//   - doc_path: Path to the document directory
//
// Optional config keys:
//   - id_field: Row field whose value becomes the record id
//     (default: generated row ids)
type AutomergeLoader struct{}

// NewAutomergeLoader creates a new automerge loader.
func NewAutomergeLoader() *AutomergeLoader {
	return &AutomergeLoader{}
}

// SourceType returns "automerge".
func (l *AutomergeLoader) SourceType() string {
	return "automerge"
}

func loadAutomergeDoc(docPath string) (*automerge.Doc, error) {
	var doc *automerge.Doc

	snapDir := filepath.Join(docPath, "snapshot")
	if entries, err := os.ReadDir(snapDir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(snapDir, e.Name()))
			if err != nil {
				continue
			}
			doc, err = automerge.Load(data)
			if err != nil {
				return nil, fmt.Errorf("load snapshot: %w", err)
			}
			break // only one snapshot
		}
	}

	incDir := filepath.Join(docPath, "incremental")
	if entries, err := os.ReadDir(incDir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(incDir, e.Name()))
			if err != nil {
				continue
			}
			if doc == nil {
				doc, err = automerge.Load(data)
				if err != nil {
					return nil, fmt.Errorf("load incremental as doc: %w", err)
				}
			} else {
				doc.LoadIncremental(data)
			}
		}
	}

	if doc == nil {
		return nil, fmt.Errorf("no data found in %s", docPath)
	}
	return doc, nil
}

// valueString formats an automerge value the way a cell displays it.
func valueString(v *automerge.Value) string {
	switch v.Kind() {
	case automerge.KindStr:
		return v.Str()
	case automerge.KindText:
		if s, err := v.Text().Get(); err == nil {
			return s
		}
		return ""
	case automerge.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case automerge.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case automerge.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return ""
	}
}

func (l *AutomergeLoader) rows(config map[string]string) ([]map[string]string, error) {
	docPath := config["doc_path"]
	if docPath == "" {
		return nil, fmt.Errorf("doc_path is required")
	}

	doc, err := loadAutomergeDoc(docPath)
	if err != nil {
		return nil, err
	}

	rowsVal, err := doc.Path("rows").Get()
	if err != nil || rowsVal.Kind() != automerge.KindList {
		return nil, fmt.Errorf("document has no rows list")
	}

	list := rowsVal.List()
	out := make([]map[string]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		rowVal, err := list.Get(i)
		if err != nil || rowVal.Kind() != automerge.KindMap {
			continue
		}
		rowMap := rowVal.Map()
		keys, err := rowMap.Keys()
		if err != nil {
			continue
		}
		fields := make(map[string]string, len(keys))
		for _, k := range keys {
			if v, err := rowMap.Get(k); err == nil {
				fields[k] = valueString(v)
			}
		}
		out = append(out, fields)
	}
	return out, nil
}

// DiscoverSchema returns the first row's field names, id field first, the
// rest alphabetical.
func (l *AutomergeLoader) DiscoverSchema(config map[string]string) ([]string, error) {
	rows, err := l.rows(config)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("document has no rows")
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

// Load loads the document rows in list order.
func (l *AutomergeLoader) Load(config map[string]string, cols []*columns.Column) (*Table, error) {
	rows, err := l.rows(config)
	if err != nil {
		return nil, err
	}

	idField := config["id_field"]
	table := &Table{
		Name:    config["table"],
		Columns: cols,
		Store:   records.Store{},
	}

	for rowIdx, fields := range rows {
		id := "row_" + strconv.Itoa(rowIdx)
		if idField != "" && fields[idField] != "" {
			id = fields[idField]
		}
		table.Store[id] = records.NewMapRecord(id, fields)
		table.OrderedIDs = append(table.OrderedIDs, id)
	}

	return table, nil
}
