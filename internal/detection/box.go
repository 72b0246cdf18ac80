package detection

// Box is an axis-aligned bounding box in source-image pixel space.
type Box struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the box width, never negative.
func (b Box) Width() float64 {
	if b.Right < b.Left {
		return 0
	}
	return b.Right - b.Left
}

// Height returns the box height, never negative.
func (b Box) Height() float64 {
	if b.Bottom < b.Top {
		return 0
	}
	return b.Bottom - b.Top
}

// Area returns the box area, zero for degenerate boxes.
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}

// IsValid reports whether the box has positive extent.
func (b Box) IsValid() bool {
	return b.Right > b.Left && b.Bottom > b.Top
}

// IoU computes intersection-over-union of two boxes. Degenerate inputs
// (non-overlapping or zero-area boxes) yield 0, never NaN or a negative
// value.
func IoU(a, b Box) float64 {
	interLeft := max(a.Left, b.Left)
	interTop := max(a.Top, b.Top)
	interRight := min(a.Right, b.Right)
	interBottom := min(a.Bottom, b.Bottom)

	interWidth := interRight - interLeft
	interHeight := interBottom - interTop
	if interWidth <= 0 || interHeight <= 0 {
		return 0
	}

	interArea := interWidth * interHeight
	union := a.Area() + b.Area() - interArea
	if union <= 0 {
		return 0
	}
	return interArea / union
}
