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
	"log"
	"sort"
	"strings"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/paging"
	"github.com/gridview/gridview/core/records"
	"github.com/gridview/gridview/core/sorting"
)

// TableHost binds a loaded Table to the grid as its host: it owns the
// record order, performs the actual reordering on sort requests and tracks
// the pagination cursor. When the table's loader supports source-side
// sorting (Sorter), reordering is pushed down to the source.
type TableHost struct {
	table  *Table
	loader Loader
	config map[string]string

	cursor    paging.Cursor
	sortedIDs []string

	onSelection func(ids []string)
	onLink      func(id string)
	onEdit      func(id string)
	onDelete    func(id string)
}

// HostOption configures a TableHost.
type HostOption func(*TableHost)

// WithSourceSort lets the host push sort requests down to the loader's
// backing store.
func WithSourceSort(loader Loader, config map[string]string) HostOption {
	return func(h *TableHost) {
		h.loader = loader
		h.config = config
	}
}

// WithUnknownTotal makes the host report an unknown total count, the way
// streaming sources do; consumers fall back to the estimated total.
func WithUnknownTotal() HostOption {
	return func(h *TableHost) { h.cursor.TotalCount = paging.UnknownTotal }
}

// OnSelectionChange registers the selection callback.
func OnSelectionChange(fn func(ids []string)) HostOption {
	return func(h *TableHost) { h.onSelection = fn }
}

// OnLinkClick registers the link-click callback.
func OnLinkClick(fn func(id string)) HostOption {
	return func(h *TableHost) { h.onLink = fn }
}

// OnRowActions registers the optional edit/delete callbacks.
func OnRowActions(onEdit, onDelete func(id string)) HostOption {
	return func(h *TableHost) {
		h.onEdit = onEdit
		h.onDelete = onDelete
	}
}

// NewTableHost creates a host over a loaded table.
func NewTableHost(table *Table, pageSize int, opts ...HostOption) *TableHost {
	h := &TableHost{
		table:     table,
		sortedIDs: append([]string(nil), table.OrderedIDs...),
	}
	h.cursor = paging.NewCursor(pageSize)
	h.cursor.TotalCount = len(table.OrderedIDs)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TableHost) Records() records.Store {
	return h.table.Store
}

func (h *TableHost) SortedRecordIDs() []string {
	return h.sortedIDs
}

func (h *TableHost) Columns() []*columns.Column {
	return h.table.Columns
}

func (h *TableHost) Paging() paging.Cursor {
	return h.cursor
}

func (h *TableHost) HasNextPage() bool {
	if h.cursor.TotalCount == paging.UnknownTotal {
		return h.cursor.Page*h.cursor.PageSize < len(h.sortedIDs)
	}
	return h.cursor.HasNext()
}

func (h *TableHost) HasPreviousPage() bool {
	return h.cursor.HasPrevious()
}

// Navigate moves the cursor; out-of-range requests retain the previous
// state.
func (h *TableHost) Navigate(dir paging.Direction) {
	h.cursor = h.cursor.Navigate(dir, h.HasNextPage())
}

// SetPage positions the cursor directly, used by URL-driven front ends.
func (h *TableHost) SetPage(page int) {
	h.cursor = h.cursor.WithPage(page)
}

// RequestSort reorders the host's record order. Direction None restores
// the source's natural order. The grid never compares records; comparison
// happens here or in the backing store.
func (h *TableHost) RequestSort(column string, dir sorting.Direction) {
	if column == "" || dir == sorting.None {
		h.sortedIDs = append([]string(nil), h.table.OrderedIDs...)
		return
	}

	if sorter, ok := h.loader.(Sorter); ok {
		ids, err := sorter.SortIDs(h.config, column, dir == sorting.Descending)
		if err == nil {
			h.sortedIDs = ids
			return
		}
		log.Printf("source-side sort on %s failed, sorting locally: %v", column, err)
	}

	ids := append([]string(nil), h.table.OrderedIDs...)
	desc := dir == sorting.Descending
	sort.SliceStable(ids, func(i, j int) bool {
		a, _ := h.table.Store.FormattedValue(ids[i], column)
		b, _ := h.table.Store.FormattedValue(ids[j], column)
		cmp := strings.Compare(strings.ToLower(a), strings.ToLower(b))
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	h.sortedIDs = ids
}

// SelectionChanged forwards the selection wholesale.
func (h *TableHost) SelectionChanged(ids []string) {
	if h.onSelection != nil {
		h.onSelection(ids)
	}
}

// LinkClicked forwards a primary-column link click.
func (h *TableHost) LinkClicked(id string) {
	if h.onLink != nil {
		h.onLink(id)
	}
}

// EditClicked forwards a row edit action.
func (h *TableHost) EditClicked(id string) {
	if h.onEdit != nil {
		h.onEdit(id)
	}
}

// DeleteClicked forwards a row delete action.
func (h *TableHost) DeleteClicked(id string) {
	if h.onDelete != nil {
		h.onDelete(id)
	}
}
