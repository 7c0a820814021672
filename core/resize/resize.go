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

// Package resize implements the column resize interaction: a pointer-drag
// state machine (Idle -> Resizing -> Idle) writing live widths into an
// immutable width map.
package resize

// Session is the transient drag state, alive between pointer-down on a
// resize handle and the matching pointer-up. At most one session exists
// system-wide.
type Session struct {
	Column     string
	StartX     int
	StartWidth int
}

// Width computes the live width for the current pointer position, clamped
// to MinWidth.
func (s Session) Width(pointerX int) int {
	w := s.StartWidth + (pointerX - s.StartX)
	if w < MinWidth {
		w = MinWidth
	}
	return w
}

// PointerEvents is the document-scoped pointer listener source. While a
// session is active the pointer may leave the handle's bounds, so moves and
// the terminating up must be observed globally, not element-locally.
// Listen returns a release func that uninstalls both listeners; callers
// must release on every exit path or the listeners leak across renders.
type PointerEvents interface {
	Listen(onMove func(pointerX int), onUp func(pointerX int)) (release func())
}

// Controller runs the resize state machine over a WidthMap. The zero
// events source is allowed for hosts whose event loop already delivers
// global pointer traffic (the terminal front end drives Move/End itself).
type Controller struct {
	widths  *WidthMap
	session *Session
	events  PointerEvents
	release func()
}

// NewController creates a controller with an empty width map.
func NewController(events PointerEvents) *Controller {
	return &Controller{widths: NewWidthMap(), events: events}
}

// Widths returns the current width snapshot.
func (c *Controller) Widths() *WidthMap {
	return c.widths
}

// SetWidths replaces the width snapshot, used when widths arrive from a
// serialized view state.
func (c *Controller) SetWidths(w *WidthMap) {
	if w == nil {
		w = NewWidthMap()
	}
	c.widths = w
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns the live session, or nil when idle.
func (c *Controller) Session() *Session {
	return c.session
}

// Begin starts a session for the column's handle. A second pointer-down
// while a session is active is ignored; exactly one resize may be active.
func (c *Controller) Begin(column string, pointerX int) {
	if c.session != nil {
		return
	}
	c.session = &Session{
		Column:     column,
		StartX:     pointerX,
		StartWidth: c.widths.Get(column),
	}
	if c.events != nil {
		c.release = c.events.Listen(c.Move, c.End)
	}
}

// Move applies live feedback for a pointer move: the new width is written
// straight into the width map, there is no separate preview buffer.
func (c *Controller) Move(pointerX int) {
	if c.session == nil {
		return
	}
	c.widths = c.widths.With(c.session.Column, c.session.Width(pointerX))
}

// End terminates the session on pointer-up, wherever it fires. The last
// computed width persists.
func (c *Controller) End(pointerX int) {
	if c.session == nil {
		return
	}
	c.Move(pointerX)
	c.stop()
}

// Cancel ends the session without applying a final position. Used by the
// refresh signal and by component teardown.
func (c *Controller) Cancel() {
	if c.session == nil {
		return
	}
	c.stop()
}

// Reset atomically clears the width map and any live session.
func (c *Controller) Reset() {
	c.Cancel()
	c.widths = NewWidthMap()
}

// Teardown releases any installed listeners. Safe to call repeatedly; a
// controller must be torn down when its component unmounts even if a
// session is mid-drag.
func (c *Controller) Teardown() {
	c.Cancel()
}

func (c *Controller) stop() {
	c.session = nil
	if c.release != nil {
		release := c.release
		c.release = nil
		release()
	}
}
