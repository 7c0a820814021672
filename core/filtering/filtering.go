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

// Package filtering evaluates per-column filter rules against formatted
// cell values. A record passes a FilterSet iff it passes every active
// filter; matching is case-insensitive on the formatted string form.
package filtering

import (
	"strings"

	"github.com/gridview/gridview/core/records"
)

// Operator selects the comparison applied by a ColumnFilter.
type Operator string

const (
	Contains       Operator = "contains"
	Equals         Operator = "equals"
	StartsWith     Operator = "startswith"
	EndsWith       Operator = "endswith"
	DoesNotContain Operator = "notcontains"
)

// NormalizeOperator maps an operator token to a known Operator. Unknown or
// empty tokens degrade to Contains rather than failing.
func NormalizeOperator(s string) Operator {
	switch Operator(strings.ToLower(strings.TrimSpace(s))) {
	case Equals:
		return Equals
	case StartsWith:
		return StartsWith
	case EndsWith:
		return EndsWith
	case DoesNotContain:
		return DoesNotContain
	default:
		return Contains
	}
}

// ColumnFilter is one active filter rule. At most one filter exists per
// column; the Value is stored trimmed.
type ColumnFilter struct {
	Column   string
	Operator Operator
	Value    string
}

// Matches reports whether the formatted cell value satisfies the filter.
func (f ColumnFilter) Matches(value string) bool {
	v := strings.ToLower(value)
	needle := strings.ToLower(f.Value)
	switch f.Operator {
	case Equals:
		return v == needle
	case StartsWith:
		return strings.HasPrefix(v, needle)
	case EndsWith:
		return strings.HasSuffix(v, needle)
	case DoesNotContain:
		return !strings.Contains(v, needle)
	default:
		return strings.Contains(v, needle)
	}
}

// FilterSet is an immutable snapshot of the active filters, keyed by column
// name. State transitions produce a new set; callers swap the pointer, which
// keeps "refresh clears everything" a single assignment.
type FilterSet struct {
	byColumn map[string]ColumnFilter
}

var emptySet = &FilterSet{byColumn: map[string]ColumnFilter{}}

// NewFilterSet returns the empty filter set.
func NewFilterSet() *FilterSet {
	return emptySet
}

// Len returns the number of active filters.
func (s *FilterSet) Len() int {
	return len(s.byColumn)
}

// Get returns the filter for a column, if one is active.
func (s *FilterSet) Get(column string) (ColumnFilter, bool) {
	f, ok := s.byColumn[column]
	return f, ok
}

// Columns returns the filtered column names in unspecified order.
func (s *FilterSet) Columns() []string {
	cols := make([]string, 0, len(s.byColumn))
	for c := range s.byColumn {
		cols = append(cols, c)
	}
	return cols
}

// With returns a set with the filter applied. The value is trimmed first;
// an empty or whitespace-only value is rejected and the receiver is
// returned unchanged with ok=false.
func (s *FilterSet) With(column string, op Operator, value string) (*FilterSet, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s, false
	}
	next := s.clone()
	next.byColumn[column] = ColumnFilter{Column: column, Operator: NormalizeOperator(string(op)), Value: value}
	return next, true
}

// Without returns a set with the column's filter removed.
func (s *FilterSet) Without(column string) *FilterSet {
	if _, ok := s.byColumn[column]; !ok {
		return s
	}
	next := s.clone()
	delete(next.byColumn, column)
	return next
}

func (s *FilterSet) clone() *FilterSet {
	next := &FilterSet{byColumn: make(map[string]ColumnFilter, len(s.byColumn))}
	for c, f := range s.byColumn {
		next.byColumn[c] = f
	}
	return next
}

// Matches reports whether the record passes every active filter.
func (s *FilterSet) Matches(rec records.Record) bool {
	for column, f := range s.byColumn {
		if !f.Matches(rec.GetFormattedValue(column)) {
			return false
		}
	}
	return true
}

// MatchesID resolves the record through the store first. A record id absent
// from the store is excluded unconditionally.
func (s *FilterSet) MatchesID(store records.Store, id string) bool {
	rec, ok := store[id]
	if !ok {
		return false
	}
	return s.Matches(rec)
}
