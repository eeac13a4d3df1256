package noding

import (
	"fmt"
	"math"
	"math/big"
)

// Intersection is an intersection between two line segments A and B.
type Intersection struct {
	// coordinate of intersection
	Point

	// position along segment A and B [0,1]
	T [2]float64
}

// Endpoint returns true if the intersection is at an endpoint of either segment.
func (z Intersection) Endpoint() bool {
	return z.T[0] == 0.0 || z.T[0] == 1.0 || z.T[1] == 0.0 || z.T[1] == 1.0
}

func (z Intersection) String() string {
	return fmt.Sprintf("({%v,%v} t={%v,%v})", z.Point.X, z.Point.Y, z.T[0], z.T[1])
}

// Intersections is a list of intersections.
type Intersections []Intersection

func (zs Intersections) add(pos Point, ta, tb float64) Intersections {
	ta = math.Max(0.0, math.Min(1.0, ta))
	tb = math.Max(0.0, math.Min(1.0, tb))
	return append(zs, Intersection{pos, [2]float64{ta, tb}})
}

// snapParameter returns t snapped to zero or one when within Epsilon.
func snapParameter(t float64) float64 {
	if Equal(t, 0.0) {
		return 0.0
	} else if Equal(t, 1.0) {
		return 1.0
	}
	return t
}

// projectParameter returns the position of p projected on the line through a0 and a1, where t=0 is a0 and t=1 is a1.
func projectParameter(a0, a1, p Point) float64 {
	da := a1.Sub(a0)
	return p.Sub(a0).Dot(da) / da.Dot(da)
}

// IntersectSegments appends the intersections between line segments A (a0-a1) and B (b0-b1) to zs. Crossing and touching segments give one intersection, collinear overlapping segments give one intersection at each end of the overlap. Intersections at or near an endpoint take the exact coordinate of that endpoint. Zero-length segments are ignored.
func IntersectSegments(zs Intersections, a0, a1, b0, b1 Point) Intersections {
	if a0 == a1 || b0 == b1 {
		return zs
	}

	da := a1.Sub(a0)
	db := b1.Sub(b0)
	div := da.PerpDot(db)
	if math.Abs(div) <= Epsilon*da.Length()*db.Length() {
		// parallel
		if !Equal(da.PerpDot(b0.Sub(a0))/da.Length(), 0.0) {
			return zs
		}

		// collinear, find the overlap along A
		tb0 := projectParameter(a0, a1, b0)
		tb1 := projectParameter(a0, a1, b1)
		lo, hi := math.Max(0.0, math.Min(tb0, tb1)), math.Min(1.0, math.Max(tb0, tb1))
		if hi < lo-Epsilon {
			return zs
		}

		overlapPoint := func(ta float64) (Point, float64) {
			if ta == 0.0 || Equal(ta, 0.0) {
				return a0, 0.0
			} else if ta == 1.0 || Equal(ta, 1.0) {
				return a1, 1.0
			} else if Equal(ta, tb0) {
				return b0, ta
			}
			return b1, ta
		}
		p, ta := overlapPoint(lo)
		zs = zs.add(p, ta, snapParameter(projectParameter(b0, b1, p)))
		if q, ta := overlapPoint(hi); q != p {
			zs = zs.add(q, ta, snapParameter(projectParameter(b0, b1, q)))
		}
		return zs
	}

	// handle common cases with endpoints to avoid numerical issues
	if a0 == b0 {
		return zs.add(a0, 0.0, 0.0)
	} else if a0 == b1 {
		return zs.add(a0, 0.0, 1.0)
	} else if a1 == b0 {
		return zs.add(a1, 1.0, 0.0)
	} else if a1 == b1 {
		return zs.add(a1, 1.0, 1.0)
	}

	ta := db.PerpDot(a0.Sub(b0)) / div
	tb := da.PerpDot(a0.Sub(b0)) / div
	if !Interval(ta, 0.0, 1.0) || !Interval(tb, 0.0, 1.0) {
		return zs
	}

	ta, tb = snapParameter(ta), snapParameter(tb)
	var pos Point
	switch {
	case ta == 0.0:
		pos = a0
	case ta == 1.0:
		pos = a1
	case tb == 0.0:
		pos = b0
	case tb == 1.0:
		pos = b1
	default:
		pos = a0.Interpolate(a1, ta)
	}
	return zs.add(pos, ta, tb)
}

// orientation returns 1 if r lies to the left of the directed line through p and q, -1 if it lies to the right and 0 if the three points are collinear. The sign is computed in floating point when it is certain and in exact arithmetic otherwise.
func orientation(p, q, r Point) int {
	detleft := (p.X - r.X) * (q.Y - r.Y)
	detright := (p.Y - r.Y) * (q.X - r.X)
	det := detleft - detright

	var detsum float64
	if 0.0 < detleft {
		if detright <= 0.0 {
			return sign(det)
		}
		detsum = detleft + detright
	} else if detleft < 0.0 {
		if 0.0 <= detright {
			return sign(det)
		}
		detsum = -detleft - detright
	} else {
		return sign(det)
	}

	// error bound of the floating point determinant, see Shewchuk
	if errbound := 1e-15 * detsum; errbound <= det || errbound <= -det {
		return sign(det)
	}

	rat := func(f float64) *big.Rat {
		return new(big.Rat).SetFloat64(f)
	}
	dx1 := new(big.Rat).Sub(rat(q.X), rat(p.X))
	dy1 := new(big.Rat).Sub(rat(q.Y), rat(p.Y))
	dx2 := new(big.Rat).Sub(rat(r.X), rat(p.X))
	dy2 := new(big.Rat).Sub(rat(r.Y), rat(p.Y))
	dx1.Mul(dx1, dy2)
	dy1.Mul(dy1, dx2)
	return dx1.Sub(dx1, dy1).Sign()
}

func sign(f float64) int {
	if 0.0 < f {
		return 1
	} else if f < 0.0 {
		return -1
	}
	return 0
}
