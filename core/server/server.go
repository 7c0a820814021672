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

// Package server exposes the grid over HTTP. Every view state (page, sort,
// filters, widths, selection) lives in the URL, so each control is a plain
// link and the server holds no per-session state.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gridview/gridview/core/filtering"
	"github.com/gridview/gridview/core/grid"
	"github.com/gridview/gridview/core/query"
	"github.com/gridview/gridview/core/rendering"
	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/core/views"
	"github.com/gridview/gridview/datasources"
)

// Server serves grids for the tables a Manager can load.
type Server struct {
	manager  *datasources.Manager
	renderer *rendering.GridRenderer
	title    string
	subtitle string
	pageSize int
	mode     selection.Mode

	tableCache map[string]*cachedTable
}

type cachedTable struct {
	table  *datasources.Table
	loader datasources.Loader
	config map[string]string
}

// New creates a server over the manager's tables.
func New(manager *datasources.Manager, title, subtitle string, pageSize int, mode selection.Mode) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Server{
		manager:    manager,
		renderer:   renderer,
		title:      title,
		subtitle:   subtitle,
		pageSize:   pageSize,
		mode:       mode,
		tableCache: map[string]*cachedTable{},
	}, nil
}

// Routes registers the server's handlers on the mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/table", s.handleTable)
	mux.HandleFunc("/table/selected.json", s.handleSelectedJSON)
}

func (s *Server) loadTable(name string) (*cachedTable, error) {
	if ct, ok := s.tableCache[name]; ok {
		return ct, nil
	}
	table, loader, err := s.manager.LoadTable(name)
	if err != nil {
		return nil, err
	}
	cfg, _ := s.manager.Table(name)
	ct := &cachedTable{table: table, loader: loader, config: cfg.Config}
	s.tableCache[name] = ct
	return ct, nil
}

// buildGrid assembles a host and grid for the URL's view state.
func (s *Server) buildGrid(q *query.Query) (*grid.Grid, error) {
	ct, err := s.loadTable(q.Table)
	if err != nil {
		return nil, err
	}

	host := datasources.NewTableHost(ct.table, s.pageSize,
		datasources.WithSourceSort(ct.loader, ct.config))
	host.SetPage(q.Page)

	g := grid.New(host, grid.WithSelectionMode(s.mode))
	g.SetViewState(q.FilterSet(), q.SortState(), q.WidthMap())
	g.ReplaceSelection(q.Selected)
	return g, nil
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	vm := views.LandingViewModel{Title: s.title, Subtitle: s.subtitle}
	for _, cfg := range s.manager.Tables() {
		display := cfg.DisplayName
		if display == "" {
			display = cfg.Name
		}
		vm.Tables = append(vm.Tables, views.NewTableLink(cfg.Name, display))
	}
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		log.Printf("failed to render landing page: %v", err)
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	if q.Table == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The filter popup submits fcol/fop/fvalue; fold them into the view
	// state and redirect to the canonical URL. An empty value falls
	// through WithFilter unchanged, so the popup just closes.
	if fcol := r.URL.Query().Get("fcol"); fcol != "" {
		op := filtering.NormalizeOperator(r.URL.Query().Get("fop"))
		target := q.WithFilter(fcol, op, r.URL.Query().Get("fvalue"))
		http.Redirect(w, r, target.String(), http.StatusSeeOther)
		return
	}

	g, err := s.buildGrid(q)
	if err != nil {
		log.Printf("failed to build grid for %q: %v", q.Table, err)
		http.Error(w, "table not available", http.StatusNotFound)
		return
	}

	title := q.Table
	if cfg, ok := s.manager.Table(q.Table); ok && cfg.DisplayName != "" {
		title = cfg.DisplayName
	}

	vm := views.BuildGridViewModel(g, q, title)
	if err := s.renderer.Render(w, vm); err != nil {
		log.Printf("failed to render grid for %q: %v", q.Table, err)
	}
}

// handleSelectedJSON serves the grid's exported aggregate: the currently
// selected full records as JSON.
func (s *Server) handleSelectedJSON(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	if q.Table == "" {
		http.NotFound(w, r)
		return
	}
	g, err := s.buildGrid(q)
	if err != nil {
		http.Error(w, "table not available", http.StatusNotFound)
		return
	}
	data, err := g.SelectedRecordsJSON()
	if err != nil {
		http.Error(w, "failed to marshal selection", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.Routes(mux)
	log.Printf("gridview listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
