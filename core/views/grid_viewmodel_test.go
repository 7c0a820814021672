/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package views

import (
	"net/url"
	"strings"
	"testing"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/grid"
	"github.com/gridview/gridview/core/paging"
	"github.com/gridview/gridview/core/query"
	"github.com/gridview/gridview/core/records"
	"github.com/gridview/gridview/core/sorting"
)

type stubHost struct {
	store  records.Store
	ids    []string
	cols   []*columns.Column
	cursor paging.Cursor
}

func (h *stubHost) Records() records.Store     { return h.store }
func (h *stubHost) SortedRecordIDs() []string  { return h.ids }
func (h *stubHost) Columns() []*columns.Column { return h.cols }
func (h *stubHost) Paging() paging.Cursor      { return h.cursor }
func (h *stubHost) HasNextPage() bool          { return h.cursor.HasNext() }
func (h *stubHost) HasPreviousPage() bool      { return h.cursor.HasPrevious() }

func (h *stubHost) Navigate(dir paging.Direction) {
	h.cursor = h.cursor.Navigate(dir, h.HasNextPage())
}
func (h *stubHost) RequestSort(column string, d sorting.Direction) {}
func (h *stubHost) SelectionChanged(ids []string)                  {}

func stubGrid(t *testing.T, rawURL string) (*grid.Grid, *query.Query) {
	t.Helper()
	h := &stubHost{
		store: records.Store{
			"o1": records.NewMapRecord("o1", map[string]string{"status": "Shipped", "name": "first"}),
			"o2": records.NewMapRecord("o2", map[string]string{"status": "Pending", "name": "second"}),
		},
		ids:    []string{"o1", "o2"},
		cols:   []*columns.Column{columns.New("status", "Status"), columns.New("name", "Name")},
		cursor: paging.Cursor{Page: 1, PageSize: 10, TotalCount: 2},
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	q := query.NewQuery(u)
	g := grid.New(h)
	g.SetViewState(q.FilterSet(), q.SortState(), q.WidthMap())
	g.ReplaceSelection(q.Selected)
	return g, q
}

func TestBuildGridViewModelBasics(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders")
	vm := BuildGridViewModel(g, q, "Orders")

	if vm.Title != "Orders" || vm.Table != "orders" {
		t.Errorf("title/table = %q/%q", vm.Title, vm.Table)
	}
	if len(vm.Columns) != 2 || len(vm.Rows) != 2 {
		t.Fatalf("columns = %d, rows = %d", len(vm.Columns), len(vm.Rows))
	}
	if vm.Columns[0].DisplayName != "Status" {
		t.Errorf("display name = %q", vm.Columns[0].DisplayName)
	}
	if vm.Columns[0].SortDirection != "none" {
		t.Errorf("unsorted column direction = %q", vm.Columns[0].SortDirection)
	}
	if !vm.ShowSelectAll {
		t.Error("multiselect grid must show the select-all toggle")
	}
	if vm.Pagination.TotalPages != 1 || vm.Pagination.HasNext {
		t.Errorf("pagination = %+v", vm.Pagination)
	}
}

func TestBuildGridViewModelStatusIcons(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders")
	vm := BuildGridViewModel(g, q, "Orders")

	statusCell := vm.Rows[0].Cells[0]
	if !statusCell.HasIcon || statusCell.Icon == "" {
		t.Errorf("Shipped status cell = %+v, want an icon", statusCell)
	}
	// The name column is not status-like: plain text even for known values.
	nameCell := vm.Rows[0].Cells[1]
	if nameCell.HasIcon {
		t.Errorf("name cell carries an icon: %+v", nameCell)
	}
}

func TestBuildGridViewModelSortAndFilterState(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders&sort=status:desc&filter:status=contains:ship")
	vm := BuildGridViewModel(g, q, "Orders")

	if vm.Columns[0].SortDirection != "desc" {
		t.Errorf("sorted column direction = %q", vm.Columns[0].SortDirection)
	}
	if !vm.Columns[0].Filtered || vm.Columns[0].FilterValue != "ship" {
		t.Errorf("filter state = %+v", vm.Columns[0])
	}
	if len(vm.Rows) != 1 || vm.Rows[0].ID != "o1" {
		t.Errorf("filtered rows = %+v", vm.Rows)
	}
	if vm.Pagination.Filtered != 1 {
		t.Errorf("filtered count = %d", vm.Pagination.Filtered)
	}

	// The popup form must round-trip sort and filter through hidden fields.
	var names []string
	for _, f := range vm.StateFields {
		names = append(names, f.Name)
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "sort") || !strings.Contains(joined, "filter:status") {
		t.Errorf("state fields = %v", names)
	}
}

func TestBuildGridViewModelSelection(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders&sel=o2")
	vm := BuildGridViewModel(g, q, "Orders")

	if vm.SelectedCount != 1 {
		t.Errorf("selected count = %d", vm.SelectedCount)
	}
	if vm.Rows[0].Selected || !vm.Rows[1].Selected {
		t.Errorf("row selection flags = %v/%v", vm.Rows[0].Selected, vm.Rows[1].Selected)
	}
}

func TestBuildGridViewModelWidths(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders&widths=status:220")
	vm := BuildGridViewModel(g, q, "Orders")

	if vm.Columns[0].Width != 220 {
		t.Errorf("resized width = %d, want 220", vm.Columns[0].Width)
	}
	if vm.Columns[1].Width != 150 {
		t.Errorf("default width = %d, want 150", vm.Columns[1].Width)
	}
}

func TestBuildGridViewModelPopup(t *testing.T) {
	g, q := stubGrid(t, "/table?table=orders&popup=status")
	vm := BuildGridViewModel(g, q, "Orders")

	if !vm.Columns[0].PopupOpen || vm.Columns[1].PopupOpen {
		t.Errorf("popup flags = %v/%v", vm.Columns[0].PopupOpen, vm.Columns[1].PopupOpen)
	}
	if len(vm.Operators) != 5 || vm.Operators[0] != string(filtering.Contains) {
		t.Errorf("operators = %v", vm.Operators)
	}
}
