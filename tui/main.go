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

// Gridview-tui browses a table as an interactive grid in the terminal:
// sorting, filtering, selection and mouse-drag column resizing over the
// same engine the HTTP front end uses.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/grid"
	"github.com/gridview/gridview/core/paging"
	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/core/sorting"
	"github.com/gridview/gridview/core/status"
	"github.com/gridview/gridview/datasources"
	"github.com/gridview/gridview/demo"
)

// pxPerCell maps terminal cells to the engine's pixel widths, so the
// clamp floor (80px) lands on a usable 8-cell column.
const pxPerCell = 10

const headerRow = 1 // title occupies row 0

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	activeColumn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
	popupStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var operators = []filtering.Operator{
	filtering.Contains,
	filtering.Equals,
	filtering.StartsWith,
	filtering.EndsWith,
	filtering.DoesNotContain,
}

type model struct {
	grid *grid.Grid
	host *datasources.TableHost

	title   string
	col     int // column cursor
	row     int // row cursor within the current page
	width   int
	height  int
	message string

	filterInput textinput.Model
	opIndex     int
}

func newModel(g *grid.Grid, host *datasources.TableHost, title string) model {
	ti := textinput.New()
	ti.Placeholder = "filter value"
	ti.CharLimit = 64
	return model{grid: g, host: host, title: title, filterInput: ti}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) columnName() string {
	cols := m.grid.Columns()
	if m.col >= len(cols) {
		return ""
	}
	return cols[m.col].Name()
}

// cellWidth converts a column's engine width to terminal cells.
func (m model) cellWidth(column string) int {
	return m.grid.Widths().Get(column) / pxPerCell
}

// columnAtBoundary returns the column whose right edge sits at terminal
// column x (within one cell), for resize-handle hit testing.
func (m model) columnAtBoundary(x int) (string, bool) {
	edge := checkboxGutter(m.grid.SelectionMode())
	for _, c := range m.grid.Columns() {
		edge += m.cellWidth(c.Name()) + 1 // +1 for the separator
		if x >= edge-1 && x <= edge {
			return c.Name(), true
		}
	}
	return "", false
}

func checkboxGutter(mode selection.Mode) int {
	if mode == selection.ModeNone {
		return 0
	}
	return 4 // "[x] "
}

func (m *model) clampCursors() {
	rows := len(m.grid.CurrentView())
	if m.row >= rows {
		m.row = rows - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	cols := len(m.grid.Columns())
	if m.col >= cols {
		m.col = cols - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.grid.OpenPopup() != "" {
			return m.updatePopup(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		if m.grid.Resizing() {
			return m, nil
		}
		if msg.Y == headerRow {
			if col, ok := m.columnAtBoundary(msg.X); ok {
				m.grid.BeginResize(col, msg.X*pxPerCell)
			}
		}
	case tea.MouseMotion:
		if m.grid.Resizing() {
			m.grid.MoveResize(msg.X * pxPerCell)
		}
	case tea.MouseRelease:
		if m.grid.Resizing() {
			m.grid.EndResize(msg.X * pxPerCell)
		}
	}
	return m, nil
}

func (m model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.grid.CloseFilterPopup()
		m.filterInput.Blur()
		return m, nil
	case "tab":
		m.opIndex = (m.opIndex + 1) % len(operators)
		return m, nil
	case "enter":
		column := m.grid.OpenPopup()
		if m.grid.ApplyFilter(column, operators[m.opIndex], m.filterInput.Value()) {
			m.message = fmt.Sprintf("filtered %s", column)
		} else {
			m.message = "empty filter ignored"
		}
		m.filterInput.Blur()
		m.clampCursors()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.grid.Teardown()
		return m, tea.Quit

	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++

	case "s":
		state := m.grid.CycleSort(m.columnName())
		m.row = 0
		if state.Direction == sorting.None {
			m.message = "sort cleared"
		} else {
			m.message = fmt.Sprintf("sorted %s %s", state.Column, state.Direction)
		}

	case "f":
		m.grid.OpenFilterPopup(m.columnName())
		if f, ok := m.grid.Filters().Get(m.columnName()); ok {
			m.filterInput.SetValue(f.Value)
			for i, op := range operators {
				if op == f.Operator {
					m.opIndex = i
				}
			}
		} else {
			m.filterInput.SetValue("")
			m.opIndex = 0
		}
		m.filterInput.Focus()

	case "x":
		m.grid.ClearFilter(m.columnName())
		m.message = fmt.Sprintf("cleared filter on %s", m.columnName())

	case " ":
		if view := m.grid.CurrentView(); m.row < len(view) {
			m.grid.ToggleRow(view[m.row])
		}
	case "a":
		m.grid.ToggleSelectAll()
	case "A":
		m.grid.ReplaceSelection(nil)
		m.message = "selection cleared"

	case "enter":
		if view := m.grid.CurrentView(); m.row < len(view) {
			m.grid.ClickLink(view[m.row])
			m.message = fmt.Sprintf("opened %s", view[m.row])
		}

	case "n", "pgdown":
		m.grid.Navigate(paging.Next)
		m.row = 0
	case "p", "pgup":
		m.grid.Navigate(paging.Previous)
		m.row = 0
	case "g":
		m.grid.Navigate(paging.First)
		m.row = 0
	case "G":
		m.grid.Navigate(paging.Last)
		m.row = 0

	case "r":
		// Simulate one rising edge of the host refresh signal.
		m.grid.SetRefreshRequested(true)
		m.grid.SetRefreshRequested(false)
		m.row = 0
		m.message = "view state reset"

	case "c":
		data, err := m.grid.SelectedRecordsJSON()
		if err != nil {
			m.message = fmt.Sprintf("copy failed: %v", err)
			break
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			m.message = fmt.Sprintf("clipboard unavailable: %v", err)
			break
		}
		m.message = fmt.Sprintf("copied %d selected record(s)", m.grid.Selection().Len())
	}

	m.clampCursors()
	return m, nil
}

func pad(s string, w int) string {
	if len(s) > w {
		if w <= 1 {
			return s[:w]
		}
		return s[:w-1] + "…"
	}
	return s + strings.Repeat(" ", w-len(s))
}

func (m model) headerCell(i int, c string, display string) string {
	w := m.cellWidth(c)
	label := display
	if st := m.grid.SortState(); st.Column == c {
		switch st.Direction {
		case sorting.Ascending:
			label += " ▲"
		case sorting.Descending:
			label += " ▼"
		}
	}
	if _, ok := m.grid.Filters().Get(c); ok {
		label += " ⊙"
	}
	cell := pad(label, w)
	if i == m.col {
		return activeColumn.Render(cell)
	}
	return headerStyle.Render(cell)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	gutter := checkboxGutter(m.grid.SelectionMode())
	cols := m.grid.Columns()

	// Header.
	if gutter > 0 {
		b.WriteString("    ")
	}
	for i, c := range cols {
		b.WriteString(m.headerCell(i, c.Name(), c.DisplayName()))
		b.WriteString("│")
	}
	b.WriteString("\n")

	// Rows.
	view := m.grid.CurrentView()
	sel := m.grid.Selection()
	for ri, id := range view {
		var line strings.Builder
		if gutter > 0 {
			if sel.Has(id) {
				line.WriteString(selectedStyle.Render("[x]"))
			} else {
				line.WriteString("[ ]")
			}
			line.WriteString(" ")
		}
		rec, ok := m.grid.Record(id)
		for _, c := range cols {
			w := m.cellWidth(c.Name())
			value := ""
			if ok {
				value = rec.GetFormattedValue(c.Name())
			}
			if icon, found := status.IconFor(c.Name(), value); found {
				value = icon + " " + value
			}
			line.WriteString(pad(value, w))
			line.WriteString("│")
		}
		row := line.String()
		if ri == m.row {
			row = cursorStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(view) == 0 {
		b.WriteString(footerStyle.Render("  no rows match the active filters"))
		b.WriteString("\n")
	}

	// Filter popup.
	if popup := m.grid.OpenPopup(); popup != "" {
		content := fmt.Sprintf("filter %s  [%s]\n%s\n(tab: operator, enter: apply, esc: close)",
			popup, operators[m.opIndex], m.filterInput.View())
		b.WriteString(popupStyle.Render(content))
		b.WriteString("\n")
	}

	// Footer.
	cursor := m.grid.Paging()
	total, exact := cursor.EstimateTotal(len(view), m.grid.HasNextPage())
	totalLabel := fmt.Sprintf("%d", total)
	if !exact {
		totalLabel += "+"
	}
	footer := fmt.Sprintf("page %d · %s rows · %d filtered · %d selected",
		cursor.Page, totalLabel, m.grid.FilteredCount(), m.grid.Selection().Len())
	if m.grid.Resizing() {
		footer += " · resizing"
	}
	if m.message != "" {
		footer += " · " + m.message
	}
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("←→ column · ↑↓ row · s sort · f filter · x clear · space select · a all · n/p page · r reset · c copy · q quit"))
	return b.String()
}

func buildGrid(csvPath, idColumn string, pageSize int) (*grid.Grid, *datasources.TableHost, string, error) {
	manager := datasources.NewManager()
	demo.Register(manager)

	name := "orders"
	if csvPath != "" {
		name = "csv"
		manager.AddTable(datasources.TableConfig{
			Name:   "csv",
			Source: "csv",
			Config: map[string]string{"file_path": csvPath, "id_column": idColumn},
		})
	}

	table, loader, err := manager.LoadTable(name)
	if err != nil {
		return nil, nil, "", err
	}
	cfg, _ := manager.Table(name)

	host := datasources.NewTableHost(table, pageSize,
		datasources.WithSourceSort(loader, cfg.Config),
		datasources.OnLinkClick(func(id string) {}))
	g := grid.New(host)
	title := cfg.DisplayName
	if title == "" {
		title = table.Name
	}
	return g, host, title, nil
}

func main() {
	csvPath := flag.String("csv", "", "browse a CSV file instead of the demo table")
	idColumn := flag.String("id-column", "", "CSV column holding the record id")
	pageSize := flag.Int("page-size", 15, "rows per page")
	flag.Parse()

	g, host, title, err := buildGrid(*csvPath, *idColumn, *pageSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(
		newModel(g, host, title),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
