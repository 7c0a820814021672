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

package views

import (
	"net/url"

	"github.com/google/safehtml"
)

// LandingViewModel lists the tables the server can display.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableLink
}

// TableLink is one entry on the landing page.
type TableLink struct {
	Name        string
	DisplayName string
	URL         safehtml.URL
}

// NewTableLink builds a landing entry pointing at the grid page.
func NewTableLink(name, displayName string) TableLink {
	u := &url.URL{Path: "/table"}
	q := u.Query()
	q.Set("table", name)
	u.RawQuery = q.Encode()
	return TableLink{
		Name:        name,
		DisplayName: displayName,
		URL:         safehtml.URLSanitized(u.String()),
	}
}
