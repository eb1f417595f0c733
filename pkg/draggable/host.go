// Package draggable turns pointer input into bounded translation offsets for
// a target element, persists the result, and keeps sibling views of the same
// element in sync.
//
// The package is host-agnostic: geometry queries, element annotations, and
// pointer input all go through the small interfaces in this file, so the
// engine runs against a DOM-like surface, a terminal adapter (see the demo
// command), or plain test fakes.
package draggable

import "github.com/neophoriac/SimpleDraggable/pkg/geometry"

// Annotation attribute names written to / read from the target element.
const (
	// AttrOffset holds the serialized current translation offset. The engine
	// writes it on drag end and on every reconciliation, and reads it back at
	// drag start. Round-trips losslessly for finite numbers.
	AttrOffset = "data-drag-offset"

	// AttrDraggable is the externally writable override flag. The engine only
	// reads it: when set to "false" (or "0"), both drag input and sync
	// notifications are suppressed without calling Disable.
	AttrDraggable = "data-draggable"
)

// Point is a pointer position in pixels.
type Point struct {
	X float64
	Y float64
}

// Button identifies a pointer button.
type Button int

// Pointer buttons.
const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonAuxiliary
)

// PointerEvent is one input sample delivered by the host.
type PointerEvent struct {
	Pos    Point
	Button Button
}

// PointerHandler consumes pointer events.
type PointerHandler func(PointerEvent)

// Rect is an element bounding box: top-left position plus border-box size,
// in container coordinates.
type Rect struct {
	Left float64
	Top  float64
	Size geometry.Size
}

// Environment answers geometry queries about the host surface. Queries are
// pure and synchronous; results are not cached beyond a single operation
// because viewport and document size change between drags.
type Environment interface {
	// ViewportSize returns the size of the visible viewport.
	ViewportSize() geometry.Size

	// DocumentSize returns the full scrollable document extent minus the
	// current scroll offset. Unlike the viewport, this accounts for
	// scrollable overflow.
	DocumentSize() geometry.Size
}

// Element is a host node the engine repositions or listens on.
type Element interface {
	// Bounds returns the element's border box, including any currently
	// rendered translation.
	Bounds() Rect

	// Mode returns the element's effective positioning mode.
	Mode() geometry.Mode

	// Borders returns the summed horizontal/vertical border thickness.
	Borders() geometry.Borders

	// Attr returns the annotation attribute named name.
	Attr(name string) (string, bool)

	// SetAttr writes an annotation attribute.
	SetAttr(name, value string)

	// SetTranslation renders the offset as the element's visual transform.
	SetTranslation(geometry.Offset)
}

// Events is the pointer input surface of the host. Each subscription returns
// a cancel func that removes exactly that listener; cancels are idempotent.
// Handlers are registered once per instance and reused across attach/detach
// cycles, so removal always matches the original registration.
type Events interface {
	// OnPress delivers button presses that land on el.
	OnPress(el Element, fn PointerHandler) (cancel func())

	// OnMove delivers pointer motion, regardless of target.
	OnMove(fn PointerHandler) (cancel func())

	// OnRelease delivers the next button release anywhere, then removes
	// itself. One-shot registration is what guarantees a single live drag
	// session per instance.
	OnRelease(fn PointerHandler) (cancel func())
}
