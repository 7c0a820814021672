/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridview/gridview/core/selection"
	"github.com/gridview/gridview/datasources"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	csv := "id,status,amount\no1,Active,10\no2,Pending,5\no3,Shipped,7\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	m := datasources.NewManager()
	m.AddTable(datasources.TableConfig{
		Name:        "orders",
		DisplayName: "Orders",
		Source:      "csv",
		Config:      map[string]string{"file_path": path, "id_column": "id"},
	})

	s, err := New(m, "Gridview", "test", 2, selection.ModeMulti)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	s.Routes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestLandingPage(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Gridview") || !strings.Contains(body, "Orders") {
		t.Errorf("landing body missing content:\n%s", body)
	}
}

func TestTablePage(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table?table=orders")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	// Page size 2: the third row is on page 2.
	if !strings.Contains(body, "o1") || !strings.Contains(body, "o2") {
		t.Error("first page rows missing")
	}
	if strings.Contains(body, ">o3<") {
		t.Error("second page row rendered on the first page")
	}
	if !strings.Contains(body, "Page 1 of 2") {
		t.Error("pager missing")
	}
}

func TestTableMissingParamRedirects(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to landing", rec.Code)
	}
}

func TestUnknownTable(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table?table=ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFilterFormRedirect(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table?table=orders&fcol=status&fop=contains&fvalue=activ")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if got := loc.Query().Get("filter:status"); got != "contains:activ" {
		t.Errorf("redirect filter = %q", got)
	}
	if loc.Query().Get("fcol") != "" {
		t.Error("form params leaked into the canonical URL")
	}
}

func TestFilterFormEmptyValueJustCloses(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table?table=orders&popup=status&fcol=status&fop=equals&fvalue=")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Query().Get("filter:status") != "" {
		t.Error("empty value created a filter")
	}
	if loc.Query().Get("popup") != "" {
		t.Error("popup stayed open")
	}
}

func TestSelectedJSON(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table/selected.json?table=orders&sel=o2,o1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var rows []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("selected %d records, want 2", len(rows))
	}
	if rows[0]["recordId"] != "o1" || rows[0]["status"] != "Active" {
		t.Errorf("first record = %v", rows[0])
	}
}

func TestSortedTablePage(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/table?table=orders&sort=status:asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	// Ascending status: Active, Pending | Shipped. The sorted header shows
	// the ascending marker.
	if !strings.Contains(body, "▲") {
		t.Error("ascending marker missing")
	}
}
