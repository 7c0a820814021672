/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors
*/

package resize

import "testing"

// fakePointerEvents counts listener installs and releases and lets tests
// drive the callbacks directly.
type fakePointerEvents struct {
	onMove    func(int)
	onUp      func(int)
	installed int
	released  int
}

func (f *fakePointerEvents) Listen(onMove, onUp func(int)) func() {
	f.onMove = onMove
	f.onUp = onUp
	f.installed++
	return func() { f.released++ }
}

func TestWidthMapDefaults(t *testing.T) {
	w := NewWidthMap()
	if got := w.Get("anything"); got != DefaultWidth {
		t.Errorf("unset width = %d, want default %d", got, DefaultWidth)
	}
	if w.Has("anything") {
		t.Error("Has reported an unset column")
	}
}

func TestWidthMapClamp(t *testing.T) {
	w := NewWidthMap().With("name", 20)
	if got := w.Get("name"); got != MinWidth {
		t.Errorf("width below minimum = %d, want clamp to %d", got, MinWidth)
	}
	w = w.With("name", 300)
	if got := w.Get("name"); got != 300 {
		t.Errorf("width = %d, want 300", got)
	}
}

func TestWidthMapImmutability(t *testing.T) {
	base := NewWidthMap()
	derived := base.With("name", 200)
	if base.Has("name") {
		t.Error("With mutated the receiver")
	}
	if derived.Len() != 1 {
		t.Errorf("derived map len = %d, want 1", derived.Len())
	}
}

func TestSessionWidth(t *testing.T) {
	s := Session{Column: "name", StartX: 100, StartWidth: 150}
	if got := s.Width(130); got != 180 {
		t.Errorf("drag right: width = %d, want 180", got)
	}
	if got := s.Width(50); got != 100 {
		t.Errorf("drag left: width = %d, want 100", got)
	}
	// Clamped at the floor no matter how far left the pointer goes.
	if got := s.Width(-1000); got != MinWidth {
		t.Errorf("drag far left: width = %d, want %d", got, MinWidth)
	}
}

func TestControllerDragLifecycle(t *testing.T) {
	events := &fakePointerEvents{}
	c := NewController(events)

	c.Begin("name", 100)
	if !c.Active() {
		t.Fatal("no session after Begin")
	}
	if events.installed != 1 {
		t.Fatalf("listeners installed = %d, want 1", events.installed)
	}

	events.onMove(160)
	if got := c.Widths().Get("name"); got != DefaultWidth+60 {
		t.Errorf("live width = %d, want %d", got, DefaultWidth+60)
	}

	events.onUp(140)
	if c.Active() {
		t.Error("session still active after pointer-up")
	}
	if got := c.Widths().Get("name"); got != DefaultWidth+40 {
		t.Errorf("final width = %d, want %d", got, DefaultWidth+40)
	}
	if events.released != 1 {
		t.Errorf("listeners released = %d, want 1", events.released)
	}
}

func TestControllerSecondBeginIgnored(t *testing.T) {
	events := &fakePointerEvents{}
	c := NewController(events)

	c.Begin("name", 100)
	c.Begin("other", 500)
	if got := c.Session().Column; got != "name" {
		t.Errorf("second Begin replaced the session, column = %q", got)
	}
	if events.installed != 1 {
		t.Errorf("listeners installed = %d, want 1", events.installed)
	}
}

func TestControllerMoveEndWhileIdle(t *testing.T) {
	c := NewController(nil)
	c.Move(300)
	c.End(300)
	if c.Widths().Len() != 0 {
		t.Error("idle Move/End wrote widths")
	}
}

func TestControllerCancelKeepsLastWidth(t *testing.T) {
	events := &fakePointerEvents{}
	c := NewController(events)

	c.Begin("name", 100)
	c.Move(180)
	c.Cancel()

	if c.Active() {
		t.Error("session survived Cancel")
	}
	if got := c.Widths().Get("name"); got != DefaultWidth+80 {
		t.Errorf("width after Cancel = %d, want last live value %d", got, DefaultWidth+80)
	}
	if events.released != 1 {
		t.Errorf("listeners released = %d, want 1", events.released)
	}
}

func TestControllerReset(t *testing.T) {
	events := &fakePointerEvents{}
	c := NewController(events)

	c.Begin("name", 100)
	c.Move(200)
	c.Reset()

	if c.Active() {
		t.Error("session survived Reset")
	}
	if c.Widths().Len() != 0 {
		t.Error("widths survived Reset")
	}
	if events.released != 1 {
		t.Errorf("listeners released = %d, want 1", events.released)
	}
}

func TestControllerTeardownMidDrag(t *testing.T) {
	events := &fakePointerEvents{}
	c := NewController(events)

	c.Begin("name", 100)
	c.Teardown()
	c.Teardown() // repeat must not double-release

	if events.released != 1 {
		t.Errorf("listeners released = %d, want exactly 1", events.released)
	}
}

func TestControllerNilEvents(t *testing.T) {
	c := NewController(nil)
	c.Begin("name", 100)
	c.Move(150)
	c.End(150)
	if got := c.Widths().Get("name"); got != DefaultWidth+50 {
		t.Errorf("width = %d, want %d", got, DefaultWidth+50)
	}
}

func TestSetWidthsNil(t *testing.T) {
	c := NewController(nil)
	c.SetWidths(nil)
	if c.Widths() == nil {
		t.Fatal("SetWidths(nil) left a nil width map")
	}
}
