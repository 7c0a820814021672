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

// Package demo provides a built-in sample table so the binaries work
// without any configuration.
package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gridview/gridview/core/columns"
	"github.com/gridview/gridview/core/records"
	"github.com/gridview/gridview/datasources"
)

// order is one demo row. Values in the status-like columns match the
// classifier's icon tables so the demo shows icons out of the box.
type order struct {
	id       string
	customer string
	product  string
	status   string
	priority string
	stage    string
	total    float64
}

var orders = []order{
	{"ORD-1001", "Acme Corp", "Widget A", "Pending", "High", "In Review", 120.50},
	{"ORD-1002", "Globex", "Widget B", "Processing", "Medium", "Approved", 89.99},
	{"ORD-1003", "Initech", "Gadget X", "Shipped", "Low", "Approved", 430.00},
	{"ORD-1004", "Umbrella", "Widget A", "Delivered", "Critical", "Approved", 1520.75},
	{"ORD-1005", "Stark Industries", "Gizmo Z", "Cancelled", "Low", "Rejected", 15.00},
	{"ORD-1006", "Wayne Enterprises", "Widget B", "Pending", "Urgent", "Submitted", 310.40},
	{"ORD-1007", "Wonka", "Gadget X", "Returned", "Medium", "Approved", 77.10},
	{"ORD-1008", "Tyrell", "Gizmo Z", "Processing", "High", "In Review", 980.00},
	{"ORD-1009", "Cyberdyne", "Widget A", "Shipped", "Medium", "Approved", 240.25},
	{"ORD-1010", "Aperture", "Widget C", "Delivered", "Low", "Approved", 66.60},
	{"ORD-1011", "Oscorp", "Gadget X", "Pending", "High", "Submitted", 412.00},
	{"ORD-1012", "Hooli", "Widget B", "Processing", "Critical", "In Review", 2100.00},
	{"ORD-1013", "Pied Piper", "Gizmo Z", "Delivered", "Low", "Approved", 55.00},
	{"ORD-1014", "Massive Dynamic", "Widget C", "Shipped", "Medium", "Approved", 199.99},
	{"ORD-1015", "Vandelay", "Widget A", "Cancelled", "Low", "Rejected", 34.50},
	{"ORD-1016", "Dunder Mifflin", "Gadget X", "Pending", "Medium", "Submitted", 825.30},
	{"ORD-1017", "Bluth Company", "Widget B", "Delivered", "High", "Approved", 142.80},
	{"ORD-1018", "Soylent", "Gizmo Z", "Processing", "Urgent", "In Review", 670.00},
	{"ORD-1019", "Monarch", "Widget C", "Shipped", "Low", "Approved", 48.20},
	{"ORD-1020", "Sterling Cooper", "Widget A", "Pending", "Medium", "Submitted", 365.75},
	{"ORD-1021", "Gekko & Co", "Gadget X", "Delivered", "High", "Approved", 5100.00},
	{"ORD-1022", "Prestige Worldwide", "Gizmo Z", "Returned", "Low", "Approved", 29.99},
	{"ORD-1023", "Los Pollos", "Widget B", "Processing", "Medium", "In Review", 260.00},
}

// Loader serves the built-in orders table as a datasource. It sorts on
// the in-memory rows itself, exercising the same source-side sort path a
// database-backed loader takes.
type Loader struct{}

// NewLoader creates the demo loader.
func NewLoader() *Loader {
	return &Loader{}
}

// SourceType returns "demo".
func (l *Loader) SourceType() string {
	return "demo"
}

// DiscoverSchema returns the fixed demo schema.
func (l *Loader) DiscoverSchema(config map[string]string) ([]string, error) {
	return []string{"order_id", "customer", "product", "status", "priority", "approval_stage", "total"}, nil
}

func (o order) fields() map[string]interface{} {
	return map[string]interface{}{
		"order_id":       o.id,
		"customer":       o.customer,
		"product":        o.product,
		"status":         o.status,
		"priority":       o.priority,
		"approval_stage": o.stage,
		"total":          o.total,
	}
}

// Load builds the orders table.
func (l *Loader) Load(config map[string]string, cols []*columns.Column) (*datasources.Table, error) {
	table := &datasources.Table{
		Name:    "orders",
		Columns: cols,
		Store:   records.Store{},
	}
	for _, o := range orders {
		rec, err := records.NewStructRecord(o.id, o.fields())
		if err != nil {
			return nil, fmt.Errorf("failed to build demo row %s: %w", o.id, err)
		}
		table.Store[o.id] = rec
		table.OrderedIDs = append(table.OrderedIDs, o.id)
	}
	return table, nil
}

// SortIDs sorts the demo rows on a column, case-insensitively on the
// formatted value, and returns the reordered ids.
func (l *Loader) SortIDs(config map[string]string, column string, descending bool) ([]string, error) {
	table, err := l.Load(config, nil)
	if err != nil {
		return nil, err
	}
	ids := table.OrderedIDs
	sort.SliceStable(ids, func(i, j int) bool {
		a, _ := table.Store.FormattedValue(ids[i], column)
		b, _ := table.Store.FormattedValue(ids[j], column)
		cmp := strings.Compare(strings.ToLower(a), strings.ToLower(b))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return ids, nil
}

// TableConfig returns the manager config for the demo table.
func TableConfig() datasources.TableConfig {
	return datasources.TableConfig{
		Name:        "orders",
		DisplayName: "Demo Orders",
		Source:      "demo",
		DisplayNames: map[string]string{
			"order_id":       "Order",
			"customer":       "Customer",
			"product":        "Product",
			"status":         "Status",
			"priority":       "Priority",
			"approval_stage": "Approval Stage",
			"total":          "Total",
		},
	}
}

// Register wires the demo loader and table into a manager.
func Register(m *datasources.Manager) {
	m.RegisterLoader(NewLoader())
	m.AddTable(TableConfig())
}
