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

// Package views formats grid state for template consumption.
package views

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/grid"
	"github.com/gridview/gridview/core/query"
	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/core/sorting"
	"github.com/gridview/gridview/core/status"
)

// GridViewModel contains one rendered page of the grid.
type GridViewModel struct {
	Title         string
	Table         string
	Columns       []ColumnVM
	Rows          []RowVM
	Pagination    PaginationVM
	SelectionMode string
	ShowSelectAll bool         // header toggle, hidden outside multiselect
	SelectAllURL  safehtml.URL // toggles selection of the rendered rows
	SelectedCount int
	RefreshURL    safehtml.URL
	CurrentURL    safehtml.URL

	// StateFields reproduce the current view state as hidden form inputs,
	// so the filter popup form round-trips everything it does not change.
	StateFields []StateField
	Operators   []string
}

// StateField is one hidden input of the filter popup form.
type StateField struct {
	Name  string
	Value string
}

// ColumnVM is one header cell.
type ColumnVM struct {
	Name           string
	DisplayName    string
	Width          int          // pixel width, resize default when never resized
	SortDirection  string       // "asc", "desc" or "none"
	Filtered       bool         // column has an active filter
	FilterValue    string
	FilterOperator string
	PopupOpen      bool         // this column's filter popup is open
	SortURL        safehtml.URL // cycles the sort one step
	PopupURL       safehtml.URL // toggles the filter popup
	ClearURL       safehtml.URL // removes the filter
}

// RowVM is one rendered record row.
type RowVM struct {
	ID        string
	Selected  bool
	SelectURL safehtml.URL
	Cells     []CellVM
}

// CellVM is one rendered cell.
type CellVM struct {
	Value   string
	Icon    string // status icon, empty when the column is not eligible
	HasIcon bool
}

// PaginationVM describes the pager controls.
type PaginationVM struct {
	Page        int
	TotalPages  int
	Total       int  // total row count, possibly estimated
	Approximate bool // Total is a best-effort estimate, not a guaranteed count
	Filtered    int  // rows passing the active filters
	HasNext     bool
	HasPrevious bool
	FirstURL    safehtml.URL
	PreviousURL safehtml.URL
	NextURL     safehtml.URL
	LastURL     safehtml.URL
}

// operatorLabels order the filter popup's operator choices.
var operatorChoices = []filtering.Operator{
	filtering.Contains,
	filtering.Equals,
	filtering.StartsWith,
	filtering.EndsWith,
	filtering.DoesNotContain,
}

// OperatorChoices returns the operators a filter popup offers.
func OperatorChoices() []string {
	out := make([]string, len(operatorChoices))
	for i, op := range operatorChoices {
		out[i] = string(op)
	}
	return out
}

// stateFields flattens the URL state into hidden form inputs. The popup's
// own filter params are included too; the form's fcol/op/value inputs
// override them server-side.
func stateFields(q *query.Query) []StateField {
	var fields []StateField
	if q.Table != "" {
		fields = append(fields, StateField{"table", q.Table})
	}
	if q.SortColumn != "" && q.SortDirection != sorting.None {
		fields = append(fields, StateField{"sort", q.SortColumn + ":" + q.SortDirection.String()})
	}
	if len(q.ColumnWidths) > 0 {
		cols := make([]string, 0, len(q.ColumnWidths))
		for col := range q.ColumnWidths {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		parts := make([]string, 0, len(cols))
		for _, col := range cols {
			parts = append(parts, col+":"+strconv.Itoa(q.ColumnWidths[col]))
		}
		fields = append(fields, StateField{"widths", strings.Join(parts, ",")})
	}
	if len(q.Selected) > 0 {
		fields = append(fields, StateField{"sel", strings.Join(q.Selected, ",")})
	}
	filterCols := make([]string, 0, len(q.Filters))
	for col := range q.Filters {
		filterCols = append(filterCols, col)
	}
	sort.Strings(filterCols)
	for _, col := range filterCols {
		f := q.Filters[col]
		fields = append(fields, StateField{"filter:" + col, string(f.Operator) + ":" + f.Value})
	}
	return fields
}

// BuildGridViewModel formats the grid's current page against the URL state
// that produced it.
func BuildGridViewModel(g *grid.Grid, q *query.Query, title string) GridViewModel {
	cursor := g.Paging()
	pageIDs := g.CurrentView()
	filtered := g.FilteredCount()

	totalPages := (filtered + cursor.PageSize - 1) / cursor.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	total, exact := cursor.EstimateTotal(len(pageIDs), cursor.Page < totalPages)
	if exact {
		total = filtered
	}

	vm := GridViewModel{
		Title:         title,
		Table:         q.Table,
		SelectionMode: string(g.SelectionMode()),
		ShowSelectAll: g.SelectionMode() == selection.ModeMulti,
		SelectedCount: g.Selection().Len(),
		RefreshURL:    q.WithRefresh(),
		CurrentURL:    q.ToSafeURL(),
	}

	sortState := g.SortState()
	widths := g.Widths()
	for _, col := range g.Columns() {
		cvm := ColumnVM{
			Name:        col.Name(),
			DisplayName: col.DisplayName(),
			Width:       widths.Get(col.Name()),
			PopupOpen:   q.Popup == col.Name(),
			SortURL:     q.WithCycledSort(col.Name()),
			PopupURL:    q.WithPopupToggled(col.Name()),
			ClearURL:    q.WithoutFilter(col.Name()),
		}
		if sortState.Column == col.Name() {
			cvm.SortDirection = sortState.Direction.String()
		} else {
			cvm.SortDirection = "none"
		}
		if f, ok := g.Filters().Get(col.Name()); ok {
			cvm.Filtered = true
			cvm.FilterValue = f.Value
			cvm.FilterOperator = string(f.Operator)
		}
		vm.Columns = append(vm.Columns, cvm)
	}

	sel := g.Selection()
	for _, id := range pageIDs {
		rec, ok := g.Record(id)
		if !ok {
			continue
		}
		row := RowVM{
			ID:       id,
			Selected: sel.Has(id),
		}
		switch g.SelectionMode() {
		case selection.ModeSingle:
			row.SelectURL = q.WithSingleSelection(id)
		case selection.ModeMulti:
			row.SelectURL = q.WithSelectionToggled(id)
		}
		for _, col := range g.Columns() {
			value := rec.GetFormattedValue(col.Name())
			cell := CellVM{Value: value}
			if icon, ok := status.IconFor(col.Name(), value); ok {
				cell.Icon = icon
				cell.HasIcon = true
			}
			row.Cells = append(row.Cells, cell)
		}
		vm.Rows = append(vm.Rows, row)
	}

	vm.Operators = OperatorChoices()
	vm.StateFields = stateFields(q)

	if vm.ShowSelectAll {
		allSelected := len(pageIDs) > 0
		for _, id := range pageIDs {
			if !sel.Has(id) {
				allSelected = false
				break
			}
		}
		if allSelected {
			vm.SelectAllURL = q.WithSelection(nil)
		} else {
			vm.SelectAllURL = q.WithSelection(pageIDs)
		}
	}

	vm.Pagination = PaginationVM{
		Page:        cursor.Page,
		TotalPages:  totalPages,
		Total:       total,
		Approximate: !exact,
		Filtered:    filtered,
		HasNext:     cursor.Page < totalPages,
		HasPrevious: cursor.Page > 1,
		FirstURL:    q.WithPage(1),
		PreviousURL: q.WithPage(cursor.Page - 1),
		NextURL:     q.WithPage(cursor.Page + 1),
		LastURL:     q.WithPage(totalPages),
	}

	return vm
}
