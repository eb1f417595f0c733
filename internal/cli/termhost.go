package cli

import (
	"sync"

	"github.com/neophoriac/SimpleDraggable/pkg/draggable"
	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
)

// =============================================================================
// Terminal Host Adapters
// =============================================================================
//
// These types back the demo command: they present the terminal as a host
// surface for the drag engine. Cell coordinates stand in for pixels, and the
// terminal window acts as both viewport and document.

// termEnv reports the drawable terminal area as the host geometry.
type termEnv struct {
	mu     sync.Mutex
	width  float64
	height float64
}

func (e *termEnv) set(w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = float64(w), float64(h)
}

func (e *termEnv) ViewportSize() geometry.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return geometry.Size{Width: e.width, Height: e.height}
}

// DocumentSize equals the viewport: a terminal canvas has no scrollable
// overflow.
func (e *termEnv) DocumentSize() geometry.Size {
	return e.ViewportSize()
}

// termCard is a fixed-position rectangular element on the terminal canvas.
type termCard struct {
	mu          sync.Mutex
	left        float64 // natural position, before translation
	top         float64
	size        geometry.Size
	translation geometry.Offset
	attrs       map[string]string
}

func newTermCard(left, top float64, size geometry.Size) *termCard {
	return &termCard{left: left, top: top, size: size, attrs: make(map[string]string)}
}

func (c *termCard) Bounds() draggable.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return draggable.Rect{
		Left: c.left + c.translation.X,
		Top:  c.top + c.translation.Y,
		Size: c.size,
	}
}

func (c *termCard) Mode() geometry.Mode { return geometry.ModeFixed }

// Borders returns zero: the box border is part of the card size.
func (c *termCard) Borders() geometry.Borders { return geometry.Borders{} }

func (c *termCard) Attr(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.attrs[name]
	return v, ok
}

func (c *termCard) SetAttr(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs[name] = value
}

func (c *termCard) SetTranslation(o geometry.Offset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translation = o
}

// translationSnapshot returns the currently rendered translation.
func (c *termCard) translationSnapshot() geometry.Offset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translation
}

// termPointer dispatches terminal mouse input to registered pointer
// handlers. Release handlers are one-shot, matching the Events contract.
type termPointer struct {
	mu       sync.Mutex
	nextID   int
	presses  map[int]pressSub
	moves    map[int]draggable.PointerHandler
	releases map[int]draggable.PointerHandler
}

type pressSub struct {
	el draggable.Element
	fn draggable.PointerHandler
}

func newTermPointer() *termPointer {
	return &termPointer{
		presses:  make(map[int]pressSub),
		moves:    make(map[int]draggable.PointerHandler),
		releases: make(map[int]draggable.PointerHandler),
	}
}

func (p *termPointer) OnPress(el draggable.Element, fn draggable.PointerHandler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.presses[id] = pressSub{el: el, fn: fn}
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.presses, id)
	}
}

func (p *termPointer) OnMove(fn draggable.PointerHandler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.moves[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.moves, id)
	}
}

func (p *termPointer) OnRelease(fn draggable.PointerHandler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.releases[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.releases, id)
	}
}

// firePress delivers a press that landed on el.
func (p *termPointer) firePress(el draggable.Element, ev draggable.PointerEvent) {
	p.mu.Lock()
	var fns []draggable.PointerHandler
	for _, sub := range p.presses {
		if sub.el == el {
			fns = append(fns, sub.fn)
		}
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (p *termPointer) fireMove(ev draggable.PointerEvent) {
	p.mu.Lock()
	fns := make([]draggable.PointerHandler, 0, len(p.moves))
	for _, fn := range p.moves {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// fireRelease delivers the release to all registered handlers and removes
// them before calling, so a handler re-registering during delivery is kept.
func (p *termPointer) fireRelease(ev draggable.PointerEvent) {
	p.mu.Lock()
	fns := make([]draggable.PointerHandler, 0, len(p.releases))
	for _, fn := range p.releases {
		fns = append(fns, fn)
	}
	p.releases = make(map[int]draggable.PointerHandler)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

var (
	_ draggable.Environment = (*termEnv)(nil)
	_ draggable.Element     = (*termCard)(nil)
	_ draggable.Events      = (*termPointer)(nil)
)
