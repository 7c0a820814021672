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

// Package query serializes grid view state to and from URLs, which keeps
// the HTTP front end stateless: every control on the page is a link to the
// next state.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/resize"
	"github.com/gridview/gridview/core/sorting"
)

// Query represents the parsed view state of a grid URL.
type Query struct {
	// Base path (e.g. "/table")
	Path string

	Table         string                            // the table being viewed
	Page          int                               // current page, >= 1
	SortColumn    string                            // sorted column, empty when unsorted
	SortDirection sorting.Direction                 // direction of the sorted column
	Filters       map[string]filtering.ColumnFilter // column filters keyed by column name
	ColumnWidths  map[string]int                    // explicit column widths in pixels
	Selected      []string                          // selected record ids
	Popup         string                            // column whose filter popup is open
}

// NewQuery creates a Query from a URL.
//
// Parameter formats:
//
//	table=orders
//	page=3
//	sort=Status:asc
//	widths=Status:120,CustomerName:210
//	filter:Status=contains:activ
//	sel=id1,id2
//	popup=Status
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:         u.Path,
		Page:         1,
		Filters:      make(map[string]filtering.ColumnFilter),
		ColumnWidths: make(map[string]int),
	}

	q := u.Query()
	state.Table = q.Get("table")
	state.Popup = q.Get("popup")

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		state.Page = page
	}

	// sort=column:direction
	if sortStr := q.Get("sort"); sortStr != "" {
		if colonIdx := strings.LastIndex(sortStr, ":"); colonIdx != -1 {
			col := sortStr[:colonIdx]
			dir := sorting.ParseDirection(sortStr[colonIdx+1:])
			if col != "" && dir != sorting.None {
				state.SortColumn = col
				state.SortDirection = dir
			}
		}
	}

	// widths=column:px,column:px
	if widthsStr := q.Get("widths"); widthsStr != "" {
		for _, part := range strings.Split(widthsStr, ",") {
			colonIdx := strings.LastIndex(part, ":")
			if colonIdx == -1 {
				continue
			}
			if px, err := strconv.Atoi(part[colonIdx+1:]); err == nil && px > 0 {
				state.ColumnWidths[part[:colonIdx]] = px
			}
		}
	}

	// filter:columnName=operator:value
	for key, values := range q {
		if strings.HasPrefix(key, "filter:") && len(values) > 0 {
			column := strings.TrimPrefix(key, "filter:")
			op, value := splitFilterValue(values[0])
			if f, ok := filtering.NewFilterSet().With(column, op, value); ok {
				state.Filters[column], _ = f.Get(column)
			}
		}
	}

	if selStr := q.Get("sel"); selStr != "" {
		state.Selected = strings.Split(selStr, ",")
	}

	return state
}

// splitFilterValue parses "operator:value"; a missing operator token
// degrades to contains.
func splitFilterValue(s string) (filtering.Operator, string) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		return filtering.NormalizeOperator(parts[0]), parts[1]
	}
	return filtering.Contains, s
}

// Clone creates a deep copy of the Query.
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:          s.Path,
		Table:         s.Table,
		Page:          s.Page,
		SortColumn:    s.SortColumn,
		SortDirection: s.SortDirection,
		Filters:       make(map[string]filtering.ColumnFilter, len(s.Filters)),
		ColumnWidths:  make(map[string]int, len(s.ColumnWidths)),
		Selected:      make([]string, len(s.Selected)),
		Popup:         s.Popup,
	}
	for col, f := range s.Filters {
		clone.Filters[col] = f
	}
	for col, px := range s.ColumnWidths {
		clone.ColumnWidths[col] = px
	}
	copy(clone.Selected, s.Selected)
	return clone
}

// FilterSet builds the immutable filter snapshot for the view engine.
func (s *Query) FilterSet() *filtering.FilterSet {
	set := filtering.NewFilterSet()
	for _, f := range s.Filters {
		set, _ = set.With(f.Column, f.Operator, f.Value)
	}
	return set
}

// SortState returns the sort intent encoded in the URL.
func (s *Query) SortState() sorting.State {
	if s.SortColumn == "" || s.SortDirection == sorting.None {
		return sorting.State{}
	}
	return sorting.State{Column: s.SortColumn, Direction: s.SortDirection}
}

// WidthMap builds the width snapshot encoded in the URL.
func (s *Query) WidthMap() *resize.WidthMap {
	w := resize.NewWidthMap()
	for col, px := range s.ColumnWidths {
		w = w.With(col, px)
	}
	return w
}

// IsSelected reports whether the record id is in the URL's selection.
func (s *Query) IsSelected(id string) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// WithPage returns a URL positioned on the given page.
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page < 1 {
		page = 1
	}
	newState.Page = page
	return newState.ToSafeURL()
}

// WithCycledSort returns a URL with the column's sort cycled one step
// (ascending, descending, cleared) and the page reset to 1, since the new
// order invalidates previous page boundaries.
func (s *Query) WithCycledSort(column string) safehtml.URL {
	newState := s.Clone()
	next := s.SortState().Cycle(column)
	newState.SortColumn = next.Column
	newState.SortDirection = next.Direction
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithFilter returns a URL with the column's filter replaced and its popup
// closed. An empty value leaves the filters unchanged.
func (s *Query) WithFilter(column string, op filtering.Operator, value string) safehtml.URL {
	newState := s.Clone()
	newState.Popup = ""
	if f, ok := filtering.NewFilterSet().With(column, op, value); ok {
		newState.Filters[column], _ = f.Get(column)
	}
	return newState.ToSafeURL()
}

// WithoutFilter returns a URL with the column's filter removed.
func (s *Query) WithoutFilter(column string) safehtml.URL {
	newState := s.Clone()
	newState.Popup = ""
	delete(newState.Filters, column)
	return newState.ToSafeURL()
}

// WithPopupToggled returns a URL with the column's filter popup toggled.
// Opening a popup closes any other open popup; only one is open at a time.
func (s *Query) WithPopupToggled(column string) safehtml.URL {
	newState := s.Clone()
	if s.Popup == column {
		newState.Popup = ""
	} else {
		newState.Popup = column
	}
	return newState.ToSafeURL()
}

// WithSelectionToggled returns a URL with the record's selection flipped.
func (s *Query) WithSelectionToggled(id string) safehtml.URL {
	newState := s.Clone()
	newSelected := make([]string, 0, len(s.Selected)+1)
	found := false
	for _, sel := range s.Selected {
		if sel == id {
			found = true
		} else {
			newSelected = append(newSelected, sel)
		}
	}
	if !found {
		newSelected = append(newSelected, id)
	}
	newState.Selected = newSelected
	return newState.ToSafeURL()
}

// WithSingleSelection returns a URL where the record is the only selection
// (radio semantics).
func (s *Query) WithSingleSelection(id string) safehtml.URL {
	newState := s.Clone()
	newState.Selected = []string{id}
	return newState.ToSafeURL()
}

// WithSelection returns a URL with the selection replaced wholesale.
func (s *Query) WithSelection(ids []string) safehtml.URL {
	newState := s.Clone()
	newState.Selected = append([]string(nil), ids...)
	return newState.ToSafeURL()
}

// WithRefresh returns a URL with all local view state cleared: filters,
// widths, sort and popup in one transition. The selection survives.
func (s *Query) WithRefresh() safehtml.URL {
	newState := s.Clone()
	newState.Filters = map[string]filtering.ColumnFilter{}
	newState.ColumnWidths = map[string]int{}
	newState.SortColumn = ""
	newState.SortDirection = sorting.None
	newState.Popup = ""
	newState.Page = 1
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string.
func (s *Query) ToURL() string {
	u := &url.URL{Path: s.Path}
	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.SortColumn != "" && s.SortDirection != sorting.None {
		q.Set("sort", s.SortColumn+":"+s.SortDirection.String())
	}
	if len(s.ColumnWidths) > 0 {
		cols := make([]string, 0, len(s.ColumnWidths))
		for col := range s.ColumnWidths {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		parts := make([]string, 0, len(cols))
		for _, col := range cols {
			parts = append(parts, col+":"+strconv.Itoa(s.ColumnWidths[col]))
		}
		q.Set("widths", strings.Join(parts, ","))
	}
	for col, f := range s.Filters {
		q.Set("filter:"+col, string(f.Operator)+":"+f.Value)
	}
	if len(s.Selected) > 0 {
		q.Set("sel", strings.Join(s.Selected, ","))
	}
	if s.Popup != "" {
		q.Set("popup", s.Popup)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL.
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
