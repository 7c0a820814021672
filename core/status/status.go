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

// Package status maps status-like cell values to display icons. Classify
// is pure lookup; whether a column's cells should be classified at all is
// the caller's decision via Eligible.
package status

import "strings"

// eligibleKeywords mark columns whose cells carry status-like values.
var eligibleKeywords = []string{
	"status", "state", "stage", "priority", "approval", "progress", "condition",
}

// Eligible reports whether a column name qualifies for classification:
// it contains one of the status keywords, case-insensitively.
func Eligible(columnName string) bool {
	name := strings.ToLower(columnName)
	for _, kw := range eligibleKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// iconTables maps category -> value -> icon. Categories exist only to keep
// the tables readable; lookup scans all of them.
var iconTables = map[string]map[string]string{
	"order": {
		"Pending":    "⏳",
		"Processing": "🔄",
		"Shipped":    "🚚",
		"Delivered":  "📦",
		"Cancelled":  "❌",
		"Returned":   "↩️",
	},
	"record": {
		"Active":   "🟢",
		"Inactive": "⚪",
		"Draft":    "📝",
		"Archived": "🗄️",
		"New":      "✨",
		"Open":     "🔓",
		"Closed":   "🔒",
	},
	"priority": {
		"Critical": "🔺",
		"Urgent":   "🚨",
		"High":     "🔴",
		"Medium":   "🟠",
		"Low":      "🟢",
	},
	"progress": {
		"Not Started": "⬜",
		"In Progress": "🔵",
		"Completed":   "✅",
		"Blocked":     "⛔",
		"On Hold":     "⏸️",
	},
	"approval": {
		"Submitted": "📨",
		"In Review": "👀",
		"Approved":  "✅",
		"Rejected":  "❌",
	},
	"condition": {
		"Good": "👍",
		"Fair": "➖",
		"Poor": "👎",
	},
}

// Classify returns the display icon for a status-like cell value. Lookup
// tries an exact match across every category first, then a case-insensitive
// pass; ok is false when no table has an entry for the value.
func Classify(columnName, value string) (icon string, ok bool) {
	if value == "" {
		return "", false
	}
	for _, table := range iconTables {
		if icon, ok := table[value]; ok {
			return icon, true
		}
	}
	for _, table := range iconTables {
		for entry, icon := range table {
			if strings.EqualFold(entry, value) {
				return icon, true
			}
		}
	}
	return "", false
}

// IconFor is the gated composition the grid renders with: only cells of
// eligible columns attempt classification.
func IconFor(columnName, value string) (icon string, ok bool) {
	if !Eligible(columnName) {
		return "", false
	}
	return Classify(columnName, value)
}
