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

// Package columns defines the column metadata the grid renders against.
// The column sequence supplied by a host is ordered and that order defines
// render and iteration order; columns are immutable per render pass.
package columns

// Column describes one named field of the bound table.
type Column struct {
	name        string // unique key, must not contain any of the following characters: & = : ,
	displayName string
}

// New creates a Column with the given unique name and display label.
// An empty display name falls back to the column name.
func New(name, displayName string) *Column {
	if displayName == "" {
		displayName = name
	}
	return &Column{
		name:        name,
		displayName: displayName,
	}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) DisplayName() string {
	return c.displayName
}

// Names returns the names of the given columns in sequence order.
func Names(cols []*Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return names
}

// ByName returns the column with the given name, or nil if absent.
func ByName(cols []*Column, name string) *Column {
	for _, c := range cols {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
