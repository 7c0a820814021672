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

package resize

const (
	// DefaultWidth is the pixel width of a column that was never resized.
	DefaultWidth = 150
	// MinWidth is the smallest width a drag can produce.
	MinWidth = 80
)

// WidthMap is an immutable snapshot of per-column pixel widths. Entries are
// created lazily on first resize; absent entries mean DefaultWidth. Stored
// values are always >= MinWidth.
type WidthMap struct {
	byColumn map[string]int
}

var emptyWidths = &WidthMap{byColumn: map[string]int{}}

// NewWidthMap returns the empty width map.
func NewWidthMap() *WidthMap {
	return emptyWidths
}

// Get returns the width for a column, falling back to DefaultWidth.
func (w *WidthMap) Get(column string) int {
	if px, ok := w.byColumn[column]; ok {
		return px
	}
	return DefaultWidth
}

// Has reports whether the column has an explicit width entry.
func (w *WidthMap) Has(column string) bool {
	_, ok := w.byColumn[column]
	return ok
}

// Len returns the number of explicit entries.
func (w *WidthMap) Len() int {
	return len(w.byColumn)
}

// With returns a map with the column's width set, clamped to MinWidth.
func (w *WidthMap) With(column string, px int) *WidthMap {
	if px < MinWidth {
		px = MinWidth
	}
	next := &WidthMap{byColumn: make(map[string]int, len(w.byColumn)+1)}
	for c, v := range w.byColumn {
		next.byColumn[c] = v
	}
	next.byColumn[column] = px
	return next
}

// Each calls fn for every explicit entry.
func (w *WidthMap) Each(fn func(column string, px int)) {
	for c, v := range w.byColumn {
		fn(c, v)
	}
}
