// Package geom provides the transform math behind the warp kernels: affine
// and perspective matrices, inversion, and per-row coordinate mapping.
//
// Matrices are row-major and act on column vectors: an [Affine] maps
// (x, y) to (M00*x + M01*y + M02, M10*x + M11*y + M12), and a [Perspective]
// additionally divides by the homogeneous w component. Composition follows
// (A.Mul(B)).Apply(p) == A.Apply(B.Apply(p)).
package geom

import (
	"errors"
	"math"
)

// Errors returned by transform constructors and inversion.
var (
	ErrSingularMatrix    = errors.New("geom: singular matrix")
	ErrDegenerateQuad    = errors.New("geom: degenerate quadrilateral")
	ErrCollinearTriangle = errors.New("geom: collinear triangle points")
)

// Point is a position in image space.
type Point struct {
	X, Y float64
}

// Affine describes a 2x3 affine transform.
//
//	| M00 M01 M02 |
//	| M10 M11 M12 |
//
// A struct instead of an array so the compiler can keep coefficients in
// registers through the per-row mapping loops.
type Affine struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
}

// AffineIdentity is the identity transform.
var AffineIdentity = Affine{1, 0, 0, 0, 1, 0}

// NewAffine builds a transform from row-major coefficients.
func NewAffine(m [6]float64) Affine {
	return Affine{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// Coefficients returns the row-major coefficients.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.M00, aff.M01, aff.M02, aff.M10, aff.M11, aff.M12}
}

// Translate shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, tx, 0, 1, ty}
}

// Scale scales by sx horizontally and sy vertically.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Rotate rotates by th radians about the origin. In the y-down image
// coordinate system a positive angle rotates clockwise.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// RotateAbout rotates by th radians about center.
func RotateAbout(th float64, center Point) Affine {
	return Translate(center.X, center.Y).Mul(Rotate(th)).Mul(Translate(-center.X, -center.Y))
}

// Shear slants x by shx per unit y and y by shy per unit x.
func Shear(shx, shy float64) Affine {
	return Affine{1, shx, 0, shy, 1, 0}
}

// Mul composes two transforms; o applies first.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.M00*o.M00 + aff.M01*o.M10,
		aff.M00*o.M01 + aff.M01*o.M11,
		aff.M00*o.M02 + aff.M01*o.M12 + aff.M02,
		aff.M10*o.M00 + aff.M11*o.M10,
		aff.M10*o.M01 + aff.M11*o.M11,
		aff.M10*o.M02 + aff.M11*o.M12 + aff.M12,
	}
}

// Determinant computes the determinant of the linear part.
func (aff Affine) Determinant() float64 {
	return aff.M00*aff.M11 - aff.M01*aff.M10
}

// Invert computes the inverse transform.
//
// Produces non-finite coefficients when the determinant is zero; such a
// transform maps every point out of bounds under the warp kernels.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	return Affine{
		+invDet * aff.M11,
		-invDet * aff.M01,
		+invDet * (aff.M01*aff.M12 - aff.M11*aff.M02),
		-invDet * aff.M10,
		+invDet * aff.M00,
		+invDet * (aff.M10*aff.M02 - aff.M00*aff.M12),
	}
}

// Apply maps a single point.
func (aff Affine) Apply(x, y float64) (float64, float64) {
	return aff.M00*x + (aff.M01*y + aff.M02), aff.M10*x + (aff.M11*y + aff.M12)
}

// MapRow fills xs and ys with the mapped coordinates of (i, y) for
// i = 0..len(xs)-1. The evaluation order matches Apply exactly, so the two
// agree bitwise. xs and ys must have equal length.
func (aff Affine) MapRow(y int, xs, ys []float64) {
	fy := float64(y)
	cx := aff.M01*fy + aff.M02
	cy := aff.M11*fy + aff.M12

	for i := range xs {
		fx := float64(i)
		xs[i] = aff.M00*fx + cx
		ys[i] = aff.M10*fx + cy
	}
}

// AffineFromTriangles computes the transform mapping the src triangle onto
// the dst triangle. Returns ErrCollinearTriangle when the source points do
// not span a triangle.
func AffineFromTriangles(src, dst [3]Point) (Affine, error) {
	// Cramer's rule on the 3x3 system with rows (x_i, y_i, 1).
	d := src[0].X*(src[1].Y-src[2].Y) - src[0].Y*(src[1].X-src[2].X) +
		(src[1].X*src[2].Y - src[2].X*src[1].Y)
	if d == 0 {
		return Affine{}, ErrCollinearTriangle
	}

	inv := 1 / d
	c0 := (src[1].Y - src[2].Y) * inv
	c1 := (src[2].Y - src[0].Y) * inv
	c2 := (src[0].Y - src[1].Y) * inv
	c3 := (src[2].X - src[1].X) * inv
	c4 := (src[0].X - src[2].X) * inv
	c5 := (src[1].X - src[0].X) * inv
	c6 := (src[1].X*src[2].Y - src[2].X*src[1].Y) * inv
	c7 := (src[2].X*src[0].Y - src[0].X*src[2].Y) * inv
	c8 := (src[0].X*src[1].Y - src[1].X*src[0].Y) * inv

	return Affine{
		dst[0].X*c0 + dst[1].X*c1 + dst[2].X*c2,
		dst[0].X*c3 + dst[1].X*c4 + dst[2].X*c5,
		dst[0].X*c6 + dst[1].X*c7 + dst[2].X*c8,
		dst[0].Y*c0 + dst[1].Y*c1 + dst[2].Y*c2,
		dst[0].Y*c3 + dst[1].Y*c4 + dst[2].Y*c5,
		dst[0].Y*c6 + dst[1].Y*c7 + dst[2].Y*c8,
	}, nil
}
