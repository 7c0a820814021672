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

// Package view derives the displayed row window from the host-ordered
// record ids, the active filters and the pagination cursor.
package view

import (
	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/records"
)

// Window computes the record ids for one page. Filtering is a stable
// subsequence selection over orderedIDs (never a re-sort), applied only
// when filters are active; the page slice is taken from the filtered
// sequence and may be short or empty on the last pages.
func Window(orderedIDs []string, store records.Store, filters *filtering.FilterSet, page, pageSize int) []string {
	if page < 1 || pageSize < 1 {
		return nil
	}

	ids := orderedIDs
	if filters != nil && filters.Len() > 0 {
		ids = make([]string, 0, len(orderedIDs))
		for _, id := range orderedIDs {
			if filters.MatchesID(store, id) {
				ids = append(ids, id)
			}
		}
	}

	start := (page - 1) * pageSize
	if start >= len(ids) {
		return []string{}
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}

// FilteredCount returns the number of ids that survive the active filters.
func FilteredCount(orderedIDs []string, store records.Store, filters *filtering.FilterSet) int {
	if filters == nil || filters.Len() == 0 {
		return len(orderedIDs)
	}
	n := 0
	for _, id := range orderedIDs {
		if filters.MatchesID(store, id) {
			n++
		}
	}
	return n
}

// Deriver memoizes Window on its inputs. The host data snapshot is
// identified by a generation counter the owner bumps whenever records or
// the id order change; filter sets are immutable so pointer identity is a
// valid key. A memo hit is always equal to a fresh computation.
type Deriver struct {
	valid    bool
	gen      uint64
	filters  *filtering.FilterSet
	page     int
	pageSize int
	out      []string
}

// Derive returns the page window, recomputing only when an input changed.
func (d *Deriver) Derive(gen uint64, orderedIDs []string, store records.Store, filters *filtering.FilterSet, page, pageSize int) []string {
	if d.valid && d.gen == gen && d.filters == filters && d.page == page && d.pageSize == pageSize {
		return d.out
	}
	d.valid = true
	d.gen = gen
	d.filters = filters
	d.page = page
	d.pageSize = pageSize
	d.out = Window(orderedIDs, store, filters, page, pageSize)
	return d.out
}

// Invalidate drops the memo so the next Derive recomputes.
func (d *Deriver) Invalidate() {
	d.valid = false
}
