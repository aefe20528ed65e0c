package geom

import "math"

// Determinants this close to zero, relative to the cube of the largest
// coefficient magnitude, count as singular.
const singularEps = 1e-12

// Perspective describes a 3x3 projective transform.
//
//	| P00 P01 P02 |
//	| P10 P11 P12 |
//	| P20 P21 P22 |
//
// Apply divides by the homogeneous component w = P20*x + P21*y + P22; a
// point with w == 0 has no finite image and maps to non-finite coordinates.
type Perspective struct {
	P00, P01, P02 float64
	P10, P11, P12 float64
	P20, P21, P22 float64
}

// PerspectiveIdentity is the identity transform.
var PerspectiveIdentity = Perspective{1, 0, 0, 0, 1, 0, 0, 0, 1}

// NewPerspective builds a transform from row-major coefficients.
func NewPerspective(m [9]float64) Perspective {
	return Perspective{m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8]}
}

// Coefficients returns the row-major coefficients.
func (p Perspective) Coefficients() [9]float64 {
	return [9]float64{p.P00, p.P01, p.P02, p.P10, p.P11, p.P12, p.P20, p.P21, p.P22}
}

// PerspectiveFromAffine embeds an affine transform in homogeneous form.
func PerspectiveFromAffine(aff Affine) Perspective {
	return Perspective{
		aff.M00, aff.M01, aff.M02,
		aff.M10, aff.M11, aff.M12,
		0, 0, 1,
	}
}

// Mul composes two transforms; o applies first.
func (p Perspective) Mul(o Perspective) Perspective {
	return Perspective{
		p.P00*o.P00 + p.P01*o.P10 + p.P02*o.P20,
		p.P00*o.P01 + p.P01*o.P11 + p.P02*o.P21,
		p.P00*o.P02 + p.P01*o.P12 + p.P02*o.P22,
		p.P10*o.P00 + p.P11*o.P10 + p.P12*o.P20,
		p.P10*o.P01 + p.P11*o.P11 + p.P12*o.P21,
		p.P10*o.P02 + p.P11*o.P12 + p.P12*o.P22,
		p.P20*o.P00 + p.P21*o.P10 + p.P22*o.P20,
		p.P20*o.P01 + p.P21*o.P11 + p.P22*o.P21,
		p.P20*o.P02 + p.P21*o.P12 + p.P22*o.P22,
	}
}

// Determinant computes the determinant by cofactor expansion.
func (p Perspective) Determinant() float64 {
	return p.P00*(p.P11*p.P22-p.P12*p.P21) -
		p.P01*(p.P10*p.P22-p.P12*p.P20) +
		p.P02*(p.P10*p.P21-p.P11*p.P20)
}

// Adjoint returns the adjugate (transpose of the cofactor matrix). For a
// projective transform the adjugate acts as an unnormalized inverse.
func (p Perspective) Adjoint() Perspective {
	return Perspective{
		p.P11*p.P22 - p.P12*p.P21,
		p.P02*p.P21 - p.P01*p.P22,
		p.P01*p.P12 - p.P02*p.P11,
		p.P12*p.P20 - p.P10*p.P22,
		p.P00*p.P22 - p.P02*p.P20,
		p.P02*p.P10 - p.P00*p.P12,
		p.P10*p.P21 - p.P11*p.P20,
		p.P01*p.P20 - p.P00*p.P21,
		p.P00*p.P11 - p.P01*p.P10,
	}
}

// Invert computes the inverse via the adjugate. Returns ErrSingularMatrix
// when the determinant vanishes relative to the coefficient magnitudes.
func (p Perspective) Invert() (Perspective, error) {
	det := p.Determinant()
	norm := p.maxAbs()
	if norm == 0 || math.Abs(det) <= singularEps*norm*norm*norm {
		return Perspective{}, ErrSingularMatrix
	}

	adj := p.Adjoint()
	invDet := 1 / det
	return Perspective{
		adj.P00 * invDet, adj.P01 * invDet, adj.P02 * invDet,
		adj.P10 * invDet, adj.P11 * invDet, adj.P12 * invDet,
		adj.P20 * invDet, adj.P21 * invDet, adj.P22 * invDet,
	}, nil
}

func (p Perspective) maxAbs() float64 {
	m := math.Abs(p.P00)
	for _, v := range [...]float64{p.P01, p.P02, p.P10, p.P11, p.P12, p.P20, p.P21, p.P22} {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Apply maps a single point with homogeneous division.
func (p Perspective) Apply(x, y float64) (float64, float64) {
	w := p.P20*x + (p.P21*y + p.P22)
	sx := (p.P00*x + (p.P01*y + p.P02)) / w
	sy := (p.P10*x + (p.P11*y + p.P12)) / w
	return sx, sy
}

// MapRow fills xs and ys with the mapped coordinates of (i, y) for
// i = 0..len(xs)-1, matching Apply bitwise. Points on the w == 0 line come
// out non-finite. xs and ys must have equal length.
func (p Perspective) MapRow(y int, xs, ys []float64) {
	fy := float64(y)
	cx := p.P01*fy + p.P02
	cy := p.P11*fy + p.P12
	cw := p.P21*fy + p.P22

	for i := range xs {
		fx := float64(i)
		w := p.P20*fx + cw
		xs[i] = (p.P00*fx + cx) / w
		ys[i] = (p.P10*fx + cy) / w
	}
}

// SquareToQuad computes the transform taking the unit square corners
// (0,0), (1,0), (1,1), (0,1) to q[0..3] in order. Returns
// ErrDegenerateQuad when the corners admit no projective solution.
func SquareToQuad(q [4]Point) (Perspective, error) {
	dx3 := q[0].X - q[1].X + q[2].X - q[3].X
	dy3 := q[0].Y - q[1].Y + q[2].Y - q[3].Y
	if dx3 == 0 && dy3 == 0 {
		// Parallelogram target, plain affine.
		return Perspective{
			q[1].X - q[0].X, q[2].X - q[1].X, q[0].X,
			q[1].Y - q[0].Y, q[2].Y - q[1].Y, q[0].Y,
			0, 0, 1,
		}, nil
	}

	dx1 := q[1].X - q[2].X
	dx2 := q[3].X - q[2].X
	dy1 := q[1].Y - q[2].Y
	dy2 := q[3].Y - q[2].Y
	den := dx1*dy2 - dx2*dy1
	if den == 0 {
		return Perspective{}, ErrDegenerateQuad
	}

	g := (dx3*dy2 - dx2*dy3) / den
	h := (dx1*dy3 - dx3*dy1) / den
	return Perspective{
		q[1].X - q[0].X + g*q[1].X, q[3].X - q[0].X + h*q[3].X, q[0].X,
		q[1].Y - q[0].Y + g*q[1].Y, q[3].Y - q[0].Y + h*q[3].Y, q[0].Y,
		g, h, 1,
	}, nil
}

// QuadToSquare computes the transform taking q[0..3] to the unit square
// corners. It is the adjugate of [SquareToQuad].
func QuadToSquare(q [4]Point) (Perspective, error) {
	sq, err := SquareToQuad(q)
	if err != nil {
		return Perspective{}, err
	}
	return sq.Adjoint(), nil
}

// QuadToQuad computes the transform taking the src quadrilateral corners to
// the dst corners, both in the order (top-left, top-right, bottom-right,
// bottom-left) or any consistent winding.
func QuadToQuad(src, dst [4]Point) (Perspective, error) {
	toSquare, err := QuadToSquare(src)
	if err != nil {
		return Perspective{}, err
	}
	fromSquare, err := SquareToQuad(dst)
	if err != nil {
		return Perspective{}, err
	}
	return fromSquare.Mul(toSquare), nil
}
