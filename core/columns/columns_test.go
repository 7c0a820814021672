/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package columns

import (
	"reflect"
	"testing"
)

func TestNewDisplayNameFallback(t *testing.T) {
	c := New("order_id", "")
	if c.DisplayName() != "order_id" {
		t.Errorf("DisplayName = %q, want fallback to the name", c.DisplayName())
	}
	c = New("order_id", "Order")
	if c.DisplayName() != "Order" {
		t.Errorf("DisplayName = %q, want Order", c.DisplayName())
	}
}

func TestNamesAndByName(t *testing.T) {
	cols := []*Column{New("a", ""), New("b", "B")}
	if got := Names(cols); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names = %v", got)
	}
	if got := ByName(cols, "b"); got == nil || got.DisplayName() != "B" {
		t.Errorf("ByName(b) = %v", got)
	}
	if got := ByName(cols, "ghost"); got != nil {
		t.Errorf("ByName(ghost) = %v, want nil", got)
	}
}
