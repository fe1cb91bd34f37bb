package model

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box (rectangle). Coordinates follow the source
// layer: recognizers report top-left origin, PDF text layers bottom-left.
// Structure recovery only ever uses centers and relative distances, so the
// origin convention never matters past this package.
type BBox struct {
	X      float64 // Left
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from an origin and size.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromCorners creates a bounding box from two opposite corners, as
// reported by OCR engines ({x0,y0,x1,y1}).
func NewBBoxFromCorners(x0, y0, x1, y1 float64) BBox {
	x := math.Min(x0, x1)
	y := math.Min(y0, y1)
	return BBox{X: x, Y: y, Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0)}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Token is one positioned text token produced by a recognizer or a native
// text layer, already confidence-filtered by the producer.
type Token struct {
	Text       string
	BBox       BBox
	Confidence float64 // 0-1; 1 for native text layers
}
