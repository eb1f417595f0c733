// Package geometry implements the positioning engine behind draggable
// elements: threshold ranges, clamp corrections, and offset encoding.
//
// The engine is deliberately free of host dependencies so it can be tested
// without a rendering surface. All values are pixels.
//
// # Threshold ranges
//
// For an element of a given border-box size inside a container, the threshold
// range is the maximum legal top-left position before the element overflows
// the container on any side:
//
//	max = container − (element + borders)
//
// Negative maxima are valid and mean the element is larger than its
// container; any positive offset is already out of bounds and the element
// pins to the origin edge.
//
// # Clamp corrections
//
// Clamp returns an additive correction, not an absolute replacement. Callers
// add the correction to their running translation, which keeps the running
// offset numerically continuous across frames while guaranteeing the rendered
// position never leaves the legal range.
package geometry

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Borders holds the summed border thickness of an element box:
// Horizontal = left + right, Vertical = top + bottom.
type Borders struct {
	Horizontal float64
	Vertical   float64
}

// Range is the maximum legal top-left position of an element within its
// container, per axis. Negative maxima are legal (element larger than
// container).
type Range struct {
	MaxX float64
	MaxY float64
}

// Correction is the additive adjustment that brings a proposed position back
// within a Range. A zero correction means the position is already legal.
type Correction struct {
	X float64
	Y float64
}

// IsZero returns true if the correction adjusts neither axis.
func (c Correction) IsZero() bool { return c.X == 0 && c.Y == 0 }

// ThresholdRange computes the legal movement range for an element of the
// given border-box size inside a container.
func ThresholdRange(container, element Size, b Borders) Range {
	return Range{
		MaxX: container.Width - (element.Width + b.Horizontal),
		MaxY: container.Height - (element.Height + b.Vertical),
	}
}

// Clamp returns the minimal additive correction needed to bring the proposed
// top-left position (left, top) back within [0, max] on each axis
// independently. Axes are corrected independently: a position can exceed the
// right bound while being legal vertically.
func Clamp(left, top float64, r Range) Correction {
	return Correction{
		X: clampAxis(left, r.MaxX),
		Y: clampAxis(top, r.MaxY),
	}
}

// clampAxis corrects a single axis. Exceeding max pulls back (negative
// correction); a negative position pushes forward (positive correction).
// The max bound wins when both apply, which pins oversized elements to the
// origin edge.
func clampAxis(pos, max float64) float64 {
	if max-pos < 0 {
		return max - pos
	}
	if pos < 0 {
		return -pos
	}
	return 0
}

// Mode is the positioning mode of a draggable element. Dragging requires the
// element to be taken out of normal flow, so only fixed and absolute are
// supported.
type Mode string

// Supported positioning modes.
const (
	// ModeFixed positions against the visible viewport.
	ModeFixed Mode = "fixed"
	// ModeAbsolute positions against the full scrollable document.
	ModeAbsolute Mode = "absolute"
)

// Supported returns true if m is a positioning mode dragging can work with.
func (m Mode) Supported() bool {
	return m == ModeFixed || m == ModeAbsolute
}
