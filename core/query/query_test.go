/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package query

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/sorting"
)

func parse(t *testing.T, raw string) *Query {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return NewQuery(u)
}

func TestNewQueryDefaults(t *testing.T) {
	q := parse(t, "/table?table=orders")
	if q.Table != "orders" {
		t.Errorf("table = %q, want orders", q.Table)
	}
	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if len(q.Filters) != 0 || len(q.ColumnWidths) != 0 || len(q.Selected) != 0 {
		t.Error("fresh query carries state")
	}
}

func TestNewQueryFullState(t *testing.T) {
	q := parse(t, "/table?table=orders&page=3&sort=status:desc&widths=status:120,name:210&filter:status=contains:activ&sel=r1,r2&popup=name")

	if q.Page != 3 {
		t.Errorf("page = %d, want 3", q.Page)
	}
	if q.SortColumn != "status" || q.SortDirection != sorting.Descending {
		t.Errorf("sort = %s:%s", q.SortColumn, q.SortDirection)
	}
	if got := q.ColumnWidths["status"]; got != 120 {
		t.Errorf("status width = %d, want 120", got)
	}
	if got := q.ColumnWidths["name"]; got != 210 {
		t.Errorf("name width = %d, want 210", got)
	}
	f, ok := q.Filters["status"]
	if !ok || f.Operator != filtering.Contains || f.Value != "activ" {
		t.Errorf("filter = %+v, %v", f, ok)
	}
	if !reflect.DeepEqual(q.Selected, []string{"r1", "r2"}) {
		t.Errorf("selected = %v", q.Selected)
	}
	if q.Popup != "name" {
		t.Errorf("popup = %q, want name", q.Popup)
	}
}

func TestNewQueryMalformedInput(t *testing.T) {
	q := parse(t, "/table?table=t&page=bogus&sort=status&widths=status:abc,name&filter:status=equals:")

	if q.Page != 1 {
		t.Errorf("bogus page parsed as %d", q.Page)
	}
	if q.SortColumn != "" {
		t.Errorf("directionless sort parsed as %q", q.SortColumn)
	}
	if len(q.ColumnWidths) != 0 {
		t.Errorf("malformed widths parsed as %v", q.ColumnWidths)
	}
	// An empty filter value never becomes an active filter.
	if len(q.Filters) != 0 {
		t.Errorf("empty filter value parsed as %v", q.Filters)
	}
}

func TestNewQueryFilterWithoutOperator(t *testing.T) {
	q := parse(t, "/table?table=t&filter:status=activ")
	f, ok := q.Filters["status"]
	if !ok || f.Operator != filtering.Contains || f.Value != "activ" {
		t.Errorf("filter = %+v, %v; want contains activ", f, ok)
	}
}

func TestRoundTrip(t *testing.T) {
	raw := "/table?table=orders&page=2&sort=status:asc&widths=name:210&filter:status=equals:Active&sel=r1&popup=status"
	q := parse(t, raw)
	again := parse(t, q.ToURL())

	if !reflect.DeepEqual(q, again) {
		t.Errorf("round trip changed the state:\n first %+v\nsecond %+v", q, again)
	}
}

func TestCloneIsDeep(t *testing.T) {
	q := parse(t, "/table?table=t&widths=a:100&filter:a=contains:x&sel=r1")
	c := q.Clone()
	c.ColumnWidths["a"] = 999
	c.Filters["b"] = filtering.ColumnFilter{Column: "b", Operator: filtering.Equals, Value: "y"}
	c.Selected[0] = "r2"

	if q.ColumnWidths["a"] != 100 {
		t.Error("clone shares the widths map")
	}
	if _, ok := q.Filters["b"]; ok {
		t.Error("clone shares the filters map")
	}
	if q.Selected[0] != "r1" {
		t.Error("clone shares the selection slice")
	}
}

func TestWithCycledSortResetsPage(t *testing.T) {
	q := parse(t, "/table?table=t&page=5")
	next := parse(t, q.WithCycledSort("status").String())

	if next.SortColumn != "status" || next.SortDirection != sorting.Ascending {
		t.Errorf("sort = %s:%s, want status:asc", next.SortColumn, next.SortDirection)
	}
	if next.Page != 1 {
		t.Errorf("page = %d, want reset to 1", next.Page)
	}

	// Full cycle: asc -> desc -> cleared.
	next = parse(t, next.WithCycledSort("status").String())
	if next.SortDirection != sorting.Descending {
		t.Errorf("second cycle = %s", next.SortDirection)
	}
	next = parse(t, next.WithCycledSort("status").String())
	if next.SortColumn != "" {
		t.Errorf("third cycle left sort %q", next.SortColumn)
	}
}

func TestWithFilterClosesPopupAndIgnoresEmpty(t *testing.T) {
	q := parse(t, "/table?table=t&popup=status&filter:status=contains:old")

	next := parse(t, q.WithFilter("status", filtering.Equals, "new").String())
	if next.Popup != "" {
		t.Error("popup survived filter apply")
	}
	if f := next.Filters["status"]; f.Operator != filtering.Equals || f.Value != "new" {
		t.Errorf("filter = %+v", f)
	}

	// Empty value: popup closes, the old filter stays.
	next = parse(t, q.WithFilter("status", filtering.Equals, "   ").String())
	if next.Popup != "" {
		t.Error("popup survived empty filter apply")
	}
	if f := next.Filters["status"]; f.Value != "old" {
		t.Errorf("filter after empty apply = %+v", f)
	}
}

func TestWithPopupToggled(t *testing.T) {
	q := parse(t, "/table?table=t&popup=status")
	if next := parse(t, q.WithPopupToggled("status").String()); next.Popup != "" {
		t.Error("toggling the open popup did not close it")
	}
	if next := parse(t, q.WithPopupToggled("name").String()); next.Popup != "name" {
		t.Error("opening another popup did not replace the open one")
	}
}

func TestWithSelectionToggled(t *testing.T) {
	q := parse(t, "/table?table=t&sel=r1,r2")
	next := parse(t, q.WithSelectionToggled("r1").String())
	if !reflect.DeepEqual(next.Selected, []string{"r2"}) {
		t.Errorf("selected = %v, want [r2]", next.Selected)
	}
	next = parse(t, q.WithSelectionToggled("r3").String())
	if !reflect.DeepEqual(next.Selected, []string{"r1", "r2", "r3"}) {
		t.Errorf("selected = %v, want [r1 r2 r3]", next.Selected)
	}
}

func TestWithRefreshKeepsSelectionAndTable(t *testing.T) {
	q := parse(t, "/table?table=orders&page=4&sort=status:desc&widths=a:100&filter:a=contains:x&popup=a&sel=r1")
	next := parse(t, q.WithRefresh().String())

	if next.Table != "orders" {
		t.Errorf("table = %q", next.Table)
	}
	if next.Page != 1 || next.SortColumn != "" || len(next.Filters) != 0 ||
		len(next.ColumnWidths) != 0 || next.Popup != "" {
		t.Errorf("view state survived refresh: %+v", next)
	}
	if !reflect.DeepEqual(next.Selected, []string{"r1"}) {
		t.Errorf("selection = %v, want [r1]", next.Selected)
	}
}

func TestViewStateConversions(t *testing.T) {
	q := parse(t, "/table?table=t&sort=status:asc&widths=name:210&filter:status=contains:x")

	if st := q.SortState(); st != (sorting.State{Column: "status", Direction: sorting.Ascending}) {
		t.Errorf("SortState = %+v", st)
	}
	set := q.FilterSet()
	if f, ok := set.Get("status"); !ok || f.Value != "x" {
		t.Errorf("FilterSet filter = %+v, %v", f, ok)
	}
	if w := q.WidthMap(); w.Get("name") != 210 {
		t.Errorf("WidthMap name = %d", w.Get("name"))
	}
	if q.IsSelected("r1") {
		t.Error("IsSelected reported a hit on an empty selection")
	}
}
