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

// Package paging holds the pagination cursor. The current page only moves
// on explicit navigation requests; it is never recomputed from the total.
package paging

// UnknownTotal is the sentinel a host reports when it cannot count its
// records up front.
const UnknownTotal = -1

// Direction is a navigation request.
type Direction int

const (
	First Direction = iota
	Previous
	Next
	Last
)

func (d Direction) String() string {
	switch d {
	case First:
		return "first"
	case Previous:
		return "previous"
	case Next:
		return "next"
	default:
		return "last"
	}
}

// Cursor is an immutable pagination snapshot. TotalCount is UnknownTotal
// when the host cannot report it.
type Cursor struct {
	Page       int
	PageSize   int
	TotalCount int
}

// NewCursor returns a cursor on the first page.
func NewCursor(pageSize int) Cursor {
	if pageSize < 1 {
		pageSize = 1
	}
	return Cursor{Page: 1, PageSize: pageSize, TotalCount: UnknownTotal}
}

// HasPrevious reports whether a previous page exists.
func (c Cursor) HasPrevious() bool {
	return c.Page > 1
}

// HasNext reports whether a next page exists. With an unknown total this
// is false; hosts that know better override it through their own paging
// accessors.
func (c Cursor) HasNext() bool {
	if c.TotalCount == UnknownTotal {
		return false
	}
	return c.Page < c.TotalPages()
}

// TotalPages returns the page count for a known total, at least 1.
func (c Cursor) TotalPages() int {
	if c.TotalCount <= 0 {
		return 1
	}
	return (c.TotalCount + c.PageSize - 1) / c.PageSize
}

// Navigate returns the cursor after a navigation request. hasNext is the
// host's own notion of whether a next page exists, which covers unknown
// totals. Requests that run past the available pages are no-ops.
func (c Cursor) Navigate(dir Direction, hasNext bool) Cursor {
	switch dir {
	case First:
		c.Page = 1
	case Previous:
		if c.Page > 1 {
			c.Page--
		}
	case Next:
		if hasNext {
			c.Page++
		}
	case Last:
		if c.TotalCount != UnknownTotal {
			c.Page = c.TotalPages()
		}
	}
	return c
}

// WithPage returns the cursor positioned on the given page, clamped to 1.
func (c Cursor) WithPage(page int) Cursor {
	if page < 1 {
		page = 1
	}
	c.Page = page
	return c
}

// EstimateTotal returns the total row count, or a best-effort estimate
// when the host reports UnknownTotal: the rows behind the current page
// plus what is loaded, plus one when a next page is known to exist. The
// estimate is approximate and can shrink or jump as pages load.
func (c Cursor) EstimateTotal(loadedRows int, hasNext bool) (total int, exact bool) {
	if c.TotalCount != UnknownTotal {
		return c.TotalCount, true
	}
	total = (c.Page-1)*c.PageSize + loadedRows
	if hasNext {
		total++
	}
	return total, false
}
