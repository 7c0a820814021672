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

// Package sorting tracks sort intent. The grid never reorders records
// itself; it cycles a (column, direction) tuple and hands it to the host,
// whose dataset performs the actual reordering.
package sorting

// Direction is the sort direction of the single sorted column.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// ParseDirection maps a direction token to a Direction. Unknown tokens
// parse as None.
func ParseDirection(s string) Direction {
	switch s {
	case "asc":
		return Ascending
	case "desc":
		return Descending
	default:
		return None
	}
}

// State holds the sorted column and its direction. Column is empty iff
// Direction is None; at most one column is sorted at a time.
type State struct {
	Column    string
	Direction Direction
}

// IsSorted reports whether any column is currently sorted.
func (s State) IsSorted() bool {
	return s.Column != ""
}

// Cycle advances the state for a "sort this column" request. Repeated
// requests on one column step ascending, descending, cleared; requesting a
// different column abandons the old state and starts ascending.
func (s State) Cycle(column string) State {
	if s.Column != column {
		return State{Column: column, Direction: Ascending}
	}
	switch s.Direction {
	case Ascending:
		return State{Column: column, Direction: Descending}
	default:
		return State{}
	}
}
