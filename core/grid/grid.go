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

// Package grid binds the view-state engine to a host-provided dataset.
// The grid owns local view state only (filters, widths, sort intent,
// selection, popups); records, their order and pagination belong to the
// host, which also performs the actual reordering on sort requests.
package grid

import (
	"encoding/json"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/paging"
	"github.com/gridview/gridview/core/records"
	"github.com/gridview/gridview/core/resize"
	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/core/sorting"
	"github.com/gridview/gridview/core/view"
)

// Host supplies the dataset and receives the grid's intent callbacks.
type Host interface {
	// Records returns the loaded record store.
	Records() records.Store

	// SortedRecordIDs returns the host-sorted record order, authoritative.
	SortedRecordIDs() []string

	// Columns returns the ordered column sequence.
	Columns() []*columns.Column

	// Paging returns the current pagination cursor.
	Paging() paging.Cursor

	// HasNextPage and HasPreviousPage are the host's own notion of the
	// page boundaries, which covers unknown totals.
	HasNextPage() bool
	HasPreviousPage() bool

	// Navigate requests a page change. Out-of-range requests are no-ops.
	Navigate(dir paging.Direction)

	// RequestSort asks the host dataset to reorder itself. Direction None
	// clears the sort.
	RequestSort(column string, dir sorting.Direction)

	// SelectionChanged reports the new selection wholesale.
	SelectionChanged(ids []string)
}

// LinkHost is implemented by hosts that handle primary-column link clicks.
type LinkHost interface {
	LinkClicked(id string)
}

// ActionHost is implemented by hosts that expose row edit/delete actions.
type ActionHost interface {
	EditClicked(id string)
	DeleteClicked(id string)
}

// Option configures a Grid.
type Option func(*Grid)

// WithSelectionMode sets the selection semantics (default multiselect).
func WithSelectionMode(mode selection.Mode) Option {
	return func(g *Grid) { g.mode = mode }
}

// WithPointerEvents sets the document-scoped pointer source used while a
// resize session is active.
func WithPointerEvents(events resize.PointerEvents) Option {
	return func(g *Grid) { g.pointerEvents = events }
}

// Grid is the view-state engine for one bound table.
type Grid struct {
	host          Host
	mode          selection.Mode
	pointerEvents resize.PointerEvents

	filters   *filtering.FilterSet
	sort      sorting.State
	resizer   *resize.Controller
	selection *selection.Adapter
	deriver   view.Deriver

	// gen identifies the host data snapshot for memoization; bumped by
	// Invalidate and by every local state change that affects the view.
	gen uint64

	// openPopup is the column whose filter popup is open, or empty.
	openPopup string

	// refreshSeen is the edge detector for the host refresh signal.
	refreshSeen bool

	lastClicked string // record id of the most recent link click, or empty
}

// New creates a grid bound to the host.
func New(host Host, opts ...Option) *Grid {
	g := &Grid{
		host:    host,
		mode:    selection.ModeMulti,
		filters: filtering.NewFilterSet(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.resizer = resize.NewController(g.pointerEvents)
	g.selection = selection.NewAdapter(g.mode, host.SelectionChanged)
	return g
}

// Invalidate tells the grid the host's records or record order changed.
func (g *Grid) Invalidate() {
	g.gen++
	g.deriver.Invalidate()
}

// CurrentView derives the record ids rendered for the current page.
func (g *Grid) CurrentView() []string {
	cursor := g.host.Paging()
	return g.deriver.Derive(g.gen, g.host.SortedRecordIDs(), g.host.Records(), g.filters, cursor.Page, cursor.PageSize)
}

// Columns returns the host's ordered column sequence.
func (g *Grid) Columns() []*columns.Column {
	return g.host.Columns()
}

// Record resolves a record id through the host store.
func (g *Grid) Record(id string) (records.Record, bool) {
	rec, ok := g.host.Records()[id]
	return rec, ok
}

// Paging returns the host's pagination cursor.
func (g *Grid) Paging() paging.Cursor {
	return g.host.Paging()
}

// HasNextPage reports the host's notion of a next page.
func (g *Grid) HasNextPage() bool {
	return g.host.HasNextPage()
}

// HasPreviousPage reports the host's notion of a previous page.
func (g *Grid) HasPreviousPage() bool {
	return g.host.HasPreviousPage()
}

// FilteredCount returns the number of host records passing the active
// filters.
func (g *Grid) FilteredCount() int {
	return view.FilteredCount(g.host.SortedRecordIDs(), g.host.Records(), g.filters)
}

// SetViewState installs externally carried view state (filters, sort
// intent, widths) in one transition, used by stateless front ends that
// round-trip state through URLs. The sort intent is forwarded to the host.
func (g *Grid) SetViewState(filters *filtering.FilterSet, sort sorting.State, widths *resize.WidthMap) {
	if filters == nil {
		filters = filtering.NewFilterSet()
	}
	g.filters = filters
	g.sort = sort
	g.resizer.SetWidths(widths)
	g.host.RequestSort(sort.Column, sort.Direction)
	g.Invalidate()
}

// Filters returns the active filter snapshot.
func (g *Grid) Filters() *filtering.FilterSet {
	return g.filters
}

// SortState returns the current sort intent.
func (g *Grid) SortState() sorting.State {
	return g.sort
}

// Widths returns the column width snapshot.
func (g *Grid) Widths() *resize.WidthMap {
	return g.resizer.Widths()
}

// Selection returns the current selection snapshot.
func (g *Grid) Selection() selection.Set {
	return g.selection.Selected()
}

// SelectionMode returns the grid's selection semantics.
func (g *Grid) SelectionMode() selection.Mode {
	return g.mode
}

// OpenFilterPopup opens the column's filter popup, closing any other open
// popup first; only one popup is open at a time.
func (g *Grid) OpenFilterPopup(column string) {
	g.openPopup = column
}

// CloseFilterPopup closes the open popup, if any.
func (g *Grid) CloseFilterPopup() {
	g.openPopup = ""
}

// OpenPopup returns the column whose filter popup is open, or empty.
func (g *Grid) OpenPopup() string {
	return g.openPopup
}

// ApplyFilter applies a filter from the column's popup and closes it.
// The value is trimmed; an empty or whitespace-only value is silently
// ignored and the filter mapping is left unchanged.
func (g *Grid) ApplyFilter(column string, op filtering.Operator, value string) bool {
	next, ok := g.filters.With(column, op, value)
	g.filters = next
	g.openPopup = ""
	if ok {
		g.gen++
	}
	return ok
}

// ClearFilter removes the column's filter and closes its popup.
func (g *Grid) ClearFilter(column string) {
	g.filters = g.filters.Without(column)
	g.openPopup = ""
	g.gen++
}

// CycleSort advances the sort state for the column and delegates the
// reordering to the host. Every sort change resets pagination to the first
// page, since the new order invalidates previous page boundaries.
func (g *Grid) CycleSort(column string) sorting.State {
	g.sort = g.sort.Cycle(column)
	g.host.RequestSort(g.sort.Column, g.sort.Direction)
	g.host.Navigate(paging.First)
	g.Invalidate()
	return g.sort
}

// Navigate forwards a pagination request to the host.
func (g *Grid) Navigate(dir paging.Direction) {
	g.host.Navigate(dir)
	g.Invalidate()
}

// BeginResize starts a resize session on the column's handle.
func (g *Grid) BeginResize(column string, pointerX int) {
	g.resizer.Begin(column, pointerX)
}

// MoveResize feeds a pointer move into the live session.
func (g *Grid) MoveResize(pointerX int) {
	g.resizer.Move(pointerX)
}

// EndResize terminates the session; the last computed width persists.
func (g *Grid) EndResize(pointerX int) {
	g.resizer.End(pointerX)
}

// Resizing reports whether a resize session is active.
func (g *Grid) Resizing() bool {
	return g.resizer.Active()
}

// ToggleRow handles a row selection event under the grid's mode.
func (g *Grid) ToggleRow(id string) {
	g.selection.Toggle(id)
}

// ReplaceSelection applies a widget selection change wholesale.
func (g *Grid) ReplaceSelection(ids []string) {
	g.selection.Replace(ids)
}

// ToggleSelectAll handles the header toggle over the currently rendered
// rows (multiselect only).
func (g *Grid) ToggleSelectAll() {
	g.selection.ToggleAll(g.CurrentView())
}

// ClickLink records the link-clicked record and notifies the host if it
// handles link clicks.
func (g *Grid) ClickLink(id string) {
	if _, ok := g.host.Records()[id]; !ok {
		return
	}
	g.lastClicked = id
	if lh, ok := g.host.(LinkHost); ok {
		lh.LinkClicked(id)
	}
}

// ClickEdit forwards a row edit action to hosts that expose one.
func (g *Grid) ClickEdit(id string) {
	if ah, ok := g.host.(ActionHost); ok {
		ah.EditClicked(id)
	}
}

// ClickDelete forwards a row delete action to hosts that expose one.
func (g *Grid) ClickDelete(id string) {
	if ah, ok := g.host.(ActionHost); ok {
		ah.DeleteClicked(id)
	}
}

// SetRefreshRequested feeds the host's refresh signal. The grid reacts to
// the false -> true transition only, not to a sustained true.
func (g *Grid) SetRefreshRequested(requested bool) {
	rising := requested && !g.refreshSeen
	g.refreshSeen = requested
	if rising {
		g.Refresh()
	}
}

// Refresh clears filters, widths, any live resize session, sort state and
// the open popup in one transition, so no view is derived from a mix of
// old and cleared state.
func (g *Grid) Refresh() {
	g.filters = filtering.NewFilterSet()
	g.resizer.Reset()
	g.sort = sorting.State{}
	g.openPopup = ""
	g.Invalidate()
}

// Teardown releases resources held by interaction state, in particular any
// document-scoped pointer listeners of a live resize session.
func (g *Grid) Teardown() {
	g.resizer.Teardown()
}

// SelectedRecords resolves the current selection to full records, skipping
// ids whose record has gone missing from the store.
func (g *Grid) SelectedRecords() []records.Record {
	store := g.host.Records()
	ids := g.selection.Selected().IDs()
	out := make([]records.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := store[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// SelectedRecordsJSON is the exported aggregate for host consumption: the
// currently selected full records as a JSON list.
func (g *Grid) SelectedRecordsJSON() ([]byte, error) {
	return json.Marshal(g.SelectedRecords())
}

// LastClickedRecordJSON is the exported aggregate for the most recently
// link-clicked record: a JSON singleton list, overwritten on each click.
func (g *Grid) LastClickedRecordJSON() ([]byte, error) {
	if g.lastClicked == "" {
		return []byte("[]"), nil
	}
	rec, ok := g.host.Records()[g.lastClicked]
	if !ok {
		return []byte("[]"), nil
	}
	return json.Marshal([]records.Record{rec})
}
