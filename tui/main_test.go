/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridview/gridview/core/sorting"
)

func testModel(t *testing.T) model {
	t.Helper()
	g, host, title, err := buildGrid("", "", 5)
	require.NoError(t, err)
	return newModel(g, host, title)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func TestSortKeyCyclesCurrentColumn(t *testing.T) {
	m := testModel(t)

	m = update(t, m, key("s"))
	st := m.grid.SortState()
	assert.Equal(t, "order_id", st.Column)
	assert.Equal(t, sorting.Ascending, st.Direction)

	m = update(t, m, key("s"))
	assert.Equal(t, sorting.Descending, m.grid.SortState().Direction)

	m = update(t, m, key("s"))
	assert.False(t, m.grid.SortState().IsSorted())
}

func TestFilterPopupFlow(t *testing.T) {
	m := testModel(t)

	// Move to the status column and open its popup.
	for i := 0; i < 3; i++ {
		m = update(t, m, key("l"))
	}
	require.Equal(t, "status", m.columnName())

	m = update(t, m, key("f"))
	require.Equal(t, "status", m.grid.OpenPopup())

	for _, r := range "ship" {
		m = update(t, m, key(string(r)))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.grid.OpenPopup())
	f, ok := m.grid.Filters().Get("status")
	require.True(t, ok)
	assert.Equal(t, "ship", f.Value)

	// Only shipped orders remain rendered.
	for _, id := range m.grid.CurrentView() {
		rec, _ := m.grid.Record(id)
		assert.Equal(t, "Shipped", rec.GetFormattedValue("status"))
	}
}

func TestFilterPopupEscCloses(t *testing.T) {
	m := testModel(t)
	m = update(t, m, key("f"))
	require.NotEmpty(t, m.grid.OpenPopup())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.grid.OpenPopup())
	assert.Zero(t, m.grid.Filters().Len())
}

func TestSelectionKeys(t *testing.T) {
	m := testModel(t)

	m = update(t, m, key(" "))
	assert.Equal(t, 1, m.grid.Selection().Len())

	m = update(t, m, key("a"))
	assert.Equal(t, 5, m.grid.Selection().Len(), "select-all covers the rendered page")

	m = update(t, m, key("A"))
	assert.Zero(t, m.grid.Selection().Len())
}

func TestResetKeyClearsViewState(t *testing.T) {
	m := testModel(t)
	m = update(t, m, key("s"))
	m = update(t, m, key("f"))
	for _, r := range "x" {
		m = update(t, m, key(string(r)))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, key("r"))
	assert.Zero(t, m.grid.Filters().Len())
	assert.False(t, m.grid.SortState().IsSorted())

	// The reset key simulates one full signal pulse, so the next reset
	// works too.
	m = update(t, m, key("s"))
	m = update(t, m, key("r"))
	assert.False(t, m.grid.SortState().IsSorted())
}

func TestMouseResizeDrag(t *testing.T) {
	m := testModel(t)

	// The first column's right edge: selection gutter, 15 cells of column,
	// one separator.
	edge := checkboxGutter(m.grid.SelectionMode()) + m.cellWidth("order_id") + 1

	m = update(t, m, tea.MouseMsg{Type: tea.MouseLeft, X: edge, Y: headerRow})
	require.True(t, m.grid.Resizing())

	m = update(t, m, tea.MouseMsg{Type: tea.MouseMotion, X: edge + 5, Y: headerRow})
	assert.Equal(t, 200, m.grid.Widths().Get("order_id"), "5 cells right = 50px wider")

	m = update(t, m, tea.MouseMsg{Type: tea.MouseRelease, X: edge + 3, Y: headerRow})
	assert.False(t, m.grid.Resizing())
	assert.Equal(t, 180, m.grid.Widths().Get("order_id"))
}

func TestPagingKeys(t *testing.T) {
	m := testModel(t)
	require.Equal(t, 1, m.grid.Paging().Page)

	m = update(t, m, key("n"))
	assert.Equal(t, 2, m.grid.Paging().Page)
	m = update(t, m, key("p"))
	assert.Equal(t, 1, m.grid.Paging().Page)
	m = update(t, m, key("G"))
	assert.Equal(t, 5, m.grid.Paging().Page, "23 demo rows at page size 5")
	m = update(t, m, key("g"))
	assert.Equal(t, 1, m.grid.Paging().Page)
}

func TestViewRenders(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()
	assert.Contains(t, out, "Demo Orders")
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "page 1")
}
