package draggable

import (
	"sync"

	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
)

// Test fakes for the host interfaces: an environment with adjustable sizes,
// an element whose bounds track its rendered translation, and an event
// source with countable listener registrations.

type fakeEnv struct {
	viewport geometry.Size
	document geometry.Size
}

func (e *fakeEnv) ViewportSize() geometry.Size { return e.viewport }
func (e *fakeEnv) DocumentSize() geometry.Size { return e.document }

type fakeElement struct {
	natural     Point
	size        geometry.Size
	mode        geometry.Mode
	borders     geometry.Borders
	translation geometry.Offset
	attrs       map[string]string

	// translations records every rendered offset, in order, so tests can
	// assert that no intermediate frame left the legal range.
	translations []geometry.Offset
}

func newFakeElement(mode geometry.Mode, size geometry.Size) *fakeElement {
	return &fakeElement{
		mode:  mode,
		size:  size,
		attrs: make(map[string]string),
	}
}

func (e *fakeElement) Bounds() Rect {
	return Rect{
		Left: e.natural.X + e.translation.X,
		Top:  e.natural.Y + e.translation.Y,
		Size: e.size,
	}
}

func (e *fakeElement) Mode() geometry.Mode        { return e.mode }
func (e *fakeElement) Borders() geometry.Borders  { return e.borders }
func (e *fakeElement) SetAttr(name, value string) { e.attrs[name] = value }

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) SetTranslation(o geometry.Offset) {
	e.translation = o
	e.translations = append(e.translations, o)
}

type pressSub struct {
	id int
	el Element
	fn PointerHandler
}

// fakeEvents dispatches pointer events to registered handlers. Release
// registrations are one-shot, mirroring the host contract.
type fakeEvents struct {
	mu       sync.Mutex
	next     int
	presses  []pressSub
	moves    map[int]PointerHandler
	releases map[int]PointerHandler
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{
		moves:    make(map[int]PointerHandler),
		releases: make(map[int]PointerHandler),
	}
}

func (f *fakeEvents) OnPress(el Element, fn PointerHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.presses = append(f.presses, pressSub{id: id, el: el, fn: fn})
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.presses {
			if s.id == id {
				f.presses = append(f.presses[:i], f.presses[i+1:]...)
				return
			}
		}
	}
}

func (f *fakeEvents) OnMove(fn PointerHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.moves[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.moves, id)
	}
}

func (f *fakeEvents) OnRelease(fn PointerHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.releases[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.releases, id)
	}
}

func (f *fakeEvents) firePress(el Element, ev PointerEvent) {
	f.mu.Lock()
	var fns []PointerHandler
	for _, s := range f.presses {
		if s.el == el {
			fns = append(fns, s.fn)
		}
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (f *fakeEvents) fireMove(ev PointerEvent) {
	f.mu.Lock()
	fns := make([]PointerHandler, 0, len(f.moves))
	for _, fn := range f.moves {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// fireRelease delivers the release and consumes all one-shot registrations.
func (f *fakeEvents) fireRelease(ev PointerEvent) {
	f.mu.Lock()
	fns := make([]PointerHandler, 0, len(f.releases))
	for _, fn := range f.releases {
		fns = append(fns, fn)
	}
	f.releases = make(map[int]PointerHandler)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (f *fakeEvents) pressCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.presses)
}

func (f *fakeEvents) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

func (f *fakeEvents) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.releases)
}
