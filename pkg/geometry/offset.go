package geometry

import (
	"encoding/json"
	"math"
)

// Offset is a translation in pixels from an element's natural (un-dragged)
// position. The zero value means the element sits where layout put it.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the offset shifted by a clamp correction.
func (o Offset) Add(c Correction) Offset {
	return Offset{X: o.X + c.X, Y: o.Y + c.Y}
}

// Shift returns the offset moved by a raw pointer delta.
func (o Offset) Shift(dx, dy float64) Offset {
	return Offset{X: o.X + dx, Y: o.Y + dy}
}

// IsZero returns true for the natural position.
func (o Offset) IsZero() bool { return o.X == 0 && o.Y == 0 }

// EncodeOffset renders o as a JSON payload of the form {"x":10,"y":-4.5}.
// The encoding round-trips losslessly through DecodeOffset for all finite
// components. Non-finite components are flattened to zero so the result is
// always well-formed.
func EncodeOffset(o Offset) []byte {
	if !isFinite(o.X) {
		o.X = 0
	}
	if !isFinite(o.Y) {
		o.Y = 0
	}
	data, err := json.Marshal(o)
	if err != nil {
		// Unreachable for finite floats, but never hand callers a broken payload.
		return []byte(`{"x":0,"y":0}`)
	}
	return data
}

// DecodeOffset parses a payload produced by EncodeOffset. Absent or malformed
// input yields the zero offset; stored values are never trusted enough to
// crash over.
func DecodeOffset(data []byte) Offset {
	var o Offset
	if len(data) == 0 {
		return Offset{}
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return Offset{}
	}
	if !isFinite(o.X) || !isFinite(o.Y) {
		return Offset{}
	}
	return o
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
