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

// Package selection translates the widget-level selection primitive into a
// record-id-keyed selection set and reports changes upward.
package selection

import "sort"

// Mode controls the selection semantics of the grid.
type Mode string

const (
	// ModeNone hides the selection UI entirely.
	ModeNone Mode = "none"
	// ModeSingle gives radio semantics: selecting a row deselects any
	// other, and the header select-all control is hidden.
	ModeSingle Mode = "single"
	// ModeMulti gives checkbox semantics with a header toggle over the
	// currently rendered rows.
	ModeMulti Mode = "multiselect"
)

// ParseMode maps a mode token to a Mode, defaulting to ModeMulti.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeNone:
		return ModeNone
	case ModeSingle:
		return ModeSingle
	default:
		return ModeMulti
	}
}

// Set is an immutable set of selected record ids, order-irrelevant.
type Set struct {
	ids map[string]struct{}
}

var emptySelection = Set{ids: map[string]struct{}{}}

// NewSet builds a set from the given ids.
func NewSet(ids ...string) Set {
	if len(ids) == 0 {
		return emptySelection
	}
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Has reports whether the id is selected.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted for deterministic reporting.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Adapter applies mode semantics to selection events and republishes every
// change wholesale: the set is replaced, never diffed, and the listener is
// notified synchronously.
type Adapter struct {
	mode   Mode
	set    Set
	notify func(ids []string)
}

// NewAdapter creates an adapter. notify may be nil.
func NewAdapter(mode Mode, notify func(ids []string)) *Adapter {
	return &Adapter{mode: mode, set: NewSet(), notify: notify}
}

// Mode returns the adapter's selection mode.
func (a *Adapter) Mode() Mode {
	return a.mode
}

// Selected returns the current selection snapshot.
func (a *Adapter) Selected() Set {
	return a.set
}

// Toggle handles a row-level selection event. In single mode the row
// replaces the selection; in multi mode its membership flips; in none mode
// selection is disabled and the event is dropped.
func (a *Adapter) Toggle(id string) {
	switch a.mode {
	case ModeNone:
		return
	case ModeSingle:
		a.replace(NewSet(id))
	default:
		if a.set.Has(id) {
			ids := a.set.IDs()
			kept := make([]string, 0, len(ids)-1)
			for _, v := range ids {
				if v != id {
					kept = append(kept, v)
				}
			}
			a.replace(NewSet(kept...))
		} else {
			a.replace(NewSet(append(a.set.IDs(), id)...))
		}
	}
}

// Replace applies a widget change event wholesale.
func (a *Adapter) Replace(ids []string) {
	if a.mode == ModeNone {
		return
	}
	if a.mode == ModeSingle && len(ids) > 1 {
		ids = ids[:1]
	}
	a.replace(NewSet(ids...))
}

// ToggleAll handles the header select-all control over the currently
// rendered rows: it selects them all, or clears the selection when every
// rendered row is already selected. Only meaningful in multi mode.
func (a *Adapter) ToggleAll(rendered []string) {
	if a.mode != ModeMulti {
		return
	}
	all := len(rendered) > 0
	for _, id := range rendered {
		if !a.set.Has(id) {
			all = false
			break
		}
	}
	if all {
		a.replace(NewSet())
	} else {
		a.replace(NewSet(rendered...))
	}
}

// Clear empties the selection.
func (a *Adapter) Clear() {
	if a.set.Len() == 0 {
		return
	}
	a.replace(NewSet())
}

func (a *Adapter) replace(next Set) {
	a.set = next
	if a.notify != nil {
		a.notify(next.IDs())
	}
}
