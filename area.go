package quadtree

import "fmt"

// Coordinate is the set of signed integer types usable as quadtree
// coordinates.
type Coordinate interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Point[U Coordinate] struct {
	X U
	Y U
}

func NewPoint[U Coordinate](x, y U) Point[U] {
	return Point[U]{X: x, Y: y}
}

func (p Point[U]) String() string {
	return fmt.Sprintf("(%d,%d)", int64(p.X), int64(p.Y))
}

// Area is an axis-aligned rectangle anchored at its minimum corner. Bounds
// are half-open: the anchor-side edges are included, the far edges are not.
// Zero width or height is valid and denotes a degenerate rectangle.
type Area[U Coordinate] struct {
	Anchor Point[U]
	Width  U
	Height U
}

func NewArea[U Coordinate](anchor Point[U], width, height U) Area[U] {
	return Area[U]{Anchor: anchor, Width: width, Height: height}
}

// PointArea returns the 1x1 area covering a single coordinate cell.
func PointArea[U Coordinate](p Point[U]) Area[U] {
	return Area[U]{Anchor: p, Width: 1, Height: 1}
}

// Contains reports whether other lies entirely within a's bounds.
func (a Area[U]) Contains(other Area[U]) bool {
	return other.Anchor.X >= a.Anchor.X &&
		other.Anchor.Y >= a.Anchor.Y &&
		other.Anchor.X+other.Width <= a.Anchor.X+a.Width &&
		other.Anchor.Y+other.Height <= a.Anchor.Y+a.Height
}

// Intersects reports whether a and other share at least one coordinate cell.
// A degenerate rectangle covers no cells and never intersects anything.
func (a Area[U]) Intersects(other Area[U]) bool {
	return max(a.Anchor.X, other.Anchor.X) < min(a.Anchor.X+a.Width, other.Anchor.X+other.Width) &&
		max(a.Anchor.Y, other.Anchor.Y) < min(a.Anchor.Y+a.Height, other.Anchor.Y+other.Height)
}

func (a Area[U]) String() string {
	return fmt.Sprintf("%s+(%d,%d)", a.Anchor, int64(a.Width), int64(a.Height))
}

// quadrants bisects a along both axes. The four results exactly tile a.
func (a Area[U]) quadrants() [4]Area[U] {
	halfW := a.Width / 2
	halfH := a.Height / 2
	return [4]Area[U]{
		{Anchor: Point[U]{X: a.Anchor.X, Y: a.Anchor.Y}, Width: halfW, Height: halfH},
		{Anchor: Point[U]{X: a.Anchor.X + halfW, Y: a.Anchor.Y}, Width: a.Width - halfW, Height: halfH},
		{Anchor: Point[U]{X: a.Anchor.X, Y: a.Anchor.Y + halfH}, Width: halfW, Height: a.Height - halfH},
		{Anchor: Point[U]{X: a.Anchor.X + halfW, Y: a.Anchor.Y + halfH}, Width: a.Width - halfW, Height: a.Height - halfH},
	}
}
