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

// Package records defines the record contract the grid reads through.
// Records are owned by the host; the grid never mutates them, it only asks
// for formatted cell values by column name.
package records

import "encoding/json"

// Record is one data row, identified by a stable id.
type Record interface {
	// RecordID returns the stable identifier of the record.
	RecordID() string

	// GetFormattedValue returns the display string for the named column.
	// A missing or undefined value is the empty string.
	GetFormattedValue(columnName string) string
}

// Store maps record ids to records. A record id absent from the store is
// treated as a missing record, not an error.
type Store map[string]Record

// FormattedValue resolves a cell through the store. The second return is
// false when the record id is not present at all.
func (s Store) FormattedValue(id, columnName string) (string, bool) {
	rec, ok := s[id]
	if !ok {
		return "", false
	}
	return rec.GetFormattedValue(columnName), true
}

// MapRecord is a Record backed by a plain field map. Used by the CSV and
// SQLite loaders and throughout the tests.
type MapRecord struct {
	ID     string
	Fields map[string]string
}

// NewMapRecord creates a MapRecord. The field map is used as-is.
func NewMapRecord(id string, fields map[string]string) *MapRecord {
	if fields == nil {
		fields = map[string]string{}
	}
	return &MapRecord{ID: id, Fields: fields}
}

func (r *MapRecord) RecordID() string {
	return r.ID
}

func (r *MapRecord) GetFormattedValue(columnName string) string {
	return r.Fields[columnName]
}

// MarshalJSON emits the record as its field map plus a recordId key, which
// is the shape hosts consume from the grid's selection output.
func (r *MapRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["recordId"] = r.ID
	return json.Marshal(out)
}
