package noding

import (
	"math"
	"math/big"
	"sort"
)

// hotPixel is a unit square on the integer grid that contains a vertex or an intersection. Hot pixels are half-open: the left and bottom edges belong to the pixel but the top and right edges do not, so that every point of the plane lies in exactly one pixel.
type hotPixel struct {
	center  Point
	touches []segmentRef
}

// intersects returns true if the line segment p-q passes through the hot pixel.
func (h *hotPixel) intersects(p, q Point) bool {
	if q.X < p.X {
		p, q = q, p
	}
	x0, x1 := h.center.X-0.5, h.center.X+0.5
	y0, y1 := h.center.Y-0.5, h.center.Y+0.5
	if x1 <= p.X || q.X < x0 || y1 <= math.Min(p.Y, q.Y) || math.Max(p.Y, q.Y) < y0 {
		return false
	} else if p.X == q.X || p.Y == q.Y {
		return true
	}

	// p is left of q, find on which side of the segment each corner lies
	ul := orientation(p, q, Point{x0, y1})
	if ul == 0 {
		return q.Y < p.Y // only downward segments enter the interior from the upper-left corner
	}
	ur := orientation(p, q, Point{x1, y1})
	if ur == 0 {
		return p.Y < q.Y
	} else if ul != ur {
		return true // crosses top edge
	}
	ll := orientation(p, q, Point{x0, y0})
	if ll == 0 || ll != ul {
		return true // lower-left corner or crosses left edge
	}
	lr := orientation(p, q, Point{x1, y0})
	if lr == 0 {
		return false // touches lower-right corner only
	}
	return ll != lr || lr != ur
}

// trivial returns true if the hot pixel is only touched by the segments adjacent to a single vertex of one segment string, in which case there is nothing to node.
func (h *hotPixel) trivial() bool {
	l := h.touches[0].list
	vertex := -1
	for _, touch := range h.touches {
		if touch.list != l {
			return false
		}
		a, b := touch.points()
		v := touch.seg
		if b == h.center {
			v++
		} else if a != h.center {
			return false
		}
		if v == len(l.coords)-1 && l.closed() {
			v = 0
		}
		if vertex == -1 {
			vertex = v
		} else if vertex != v {
			return false
		}
	}
	return true
}

// SnapRounder nodes segment strings on the integer grid using snap rounding. All vertices and intersection points are rounded to the nearest integer, the unit squares around them are called hot pixels. Every segment that passes through a hot pixel is noded at the hot pixel's center. The noded segment strings have integer coordinates and do not cross each other, although they may overlap.
//
// Hot pixels are half-open and tile the plane: a segment passing only through the top or right edge of a pixel does not touch it. Halfway values therefore round up, ie. towards positive infinity.
//
// Use SnapRounder together with ScaledNoder to snap round floating point input to a grid of arbitrary size.
type SnapRounder struct {
	lists []*nodeList
}

// NewSnapRounder returns a snap-rounding noder on the unit grid.
func NewSnapRounder() *SnapRounder {
	return &SnapRounder{}
}

// ComputeNodes rounds the segment strings to the integer grid and computes the nodes at all hot pixels.
func (n *SnapRounder) ComputeNodes(ss []*SegmentString) error {
	if err := checkSegmentStrings(ss); err != nil {
		return err
	}

	rounded := make([]*SegmentString, len(ss))
	for i, s := range ss {
		rounded[i] = &SegmentString{roundCoords(s.coords), s.Data}
	}
	n.lists = newNodeLists(rounded)

	pixels := map[Point]*hotPixel{}
	addPixel := func(p Point) {
		if _, ok := pixels[p]; !ok {
			pixels[p] = &hotPixel{center: p}
		}
	}
	for _, l := range n.lists {
		for _, coord := range l.coords {
			addPixel(coord)
		}
	}
	sweepPairs(n.lists, func(a, b segmentRef) {
		intersect(a, b, func(z Intersection, a, b segmentRef) {
			addPixel(intersectionPixel(z, a, b))
		})
	})

	// sort hot pixels along X for lookup
	sorted := make([]*hotPixel, 0, len(pixels))
	for _, h := range pixels {
		sorted = append(sorted, h)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].center.X != sorted[j].center.X {
			return sorted[i].center.X < sorted[j].center.X
		}
		return sorted[i].center.Y < sorted[j].center.Y
	})

	for _, l := range n.lists {
		for i := 0; i < l.segments(); i++ {
			seg := segmentRef{l, i}
			a, b := seg.points()
			bounds := seg.bounds().Expand(0.5)
			k := sort.Search(len(sorted), func(k int) bool {
				return bounds.X0 <= sorted[k].center.X
			})
			for ; k < len(sorted) && sorted[k].center.X <= bounds.X1; k++ {
				h := sorted[k]
				if bounds.Contains(h.center) && h.intersects(a, b) {
					h.touches = append(h.touches, seg)
				}
			}
		}
	}

	for _, h := range sorted {
		if len(h.touches) == 0 || h.trivial() {
			continue
		}
		for _, touch := range h.touches {
			a, b := touch.points()
			var t float64
			if h.center == a {
				t = 0.0
			} else if h.center == b {
				t = 1.0
			} else {
				t = math.Max(0.0, math.Min(1.0, projectParameter(a, b, h.center)))
			}
			touch.list.add(h.center, touch.seg, t)
		}
	}
	return nil
}

// NodedSubstrings returns the snap-rounded segment strings split at all hot pixels they pass through. Each call returns new segment strings.
func (n *SnapRounder) NodedSubstrings() ([]*SegmentString, error) {
	if n.lists == nil {
		return nil, ErrNotComputed
	}
	return splitAll(n.lists), nil
}

// snapPoint returns the center of the pixel that contains p.
func snapPoint(p Point) Point {
	return Point{math.Floor(p.X + 0.5), math.Floor(p.Y + 0.5)}
}

// intersectionPixel returns the center of the pixel that contains intersection z between segments a and b. Crossings in the interior of both segments are located in exact arithmetic, so that a crossing on a pixel boundary is not moved into the neighbouring pixel by rounding errors.
func intersectionPixel(z Intersection, a, b segmentRef) Point {
	if !z.Endpoint() {
		a0, a1 := a.points()
		b0, b1 := b.points()
		if p, ok := crossingPixel(a0, a1, b0, b1); ok {
			return p
		}
	}
	return snapPoint(z.Point)
}

// crossingPixel returns the center of the pixel that contains the crossing of the lines through a0-a1 and b0-b1. It returns false if the lines are parallel.
func crossingPixel(a0, a1, b0, b1 Point) (Point, bool) {
	rat := func(f float64) *big.Rat {
		return new(big.Rat).SetFloat64(f)
	}
	sub := func(a, b float64) *big.Rat {
		return new(big.Rat).Sub(rat(a), rat(b))
	}
	dax, day := sub(a1.X, a0.X), sub(a1.Y, a0.Y)
	dbx, dby := sub(b1.X, b0.X), sub(b1.Y, b0.Y)
	wx, wy := sub(a0.X, b0.X), sub(a0.Y, b0.Y)

	div := new(big.Rat).Mul(dax, dby)
	div.Sub(div, new(big.Rat).Mul(day, dbx))
	if div.Sign() == 0 {
		return Point{}, false
	}
	ta := new(big.Rat).Mul(dbx, wy)
	ta.Sub(ta, new(big.Rat).Mul(dby, wx))
	ta.Quo(ta, div)

	x := new(big.Rat).Mul(ta, dax)
	y := new(big.Rat).Mul(ta, day)
	return Point{
		floorHalf(x.Add(x, rat(a0.X))),
		floorHalf(y.Add(y, rat(a0.Y))),
	}, true
}

// floorHalf returns floor(x+1/2).
func floorHalf(x *big.Rat) float64 {
	num := new(big.Int).Lsh(x.Num(), 1)
	num.Add(num, x.Denom())
	den := new(big.Int).Lsh(x.Denom(), 1)
	f, _ := new(big.Float).SetInt(num.Div(num, den)).Float64()
	return f
}

// roundCoords returns the coordinates snapped to the integer grid, with consecutive duplicates removed.
func roundCoords(coords []Point) []Point {
	rounded := make([]Point, 0, len(coords))
	for _, coord := range coords {
		coord = snapPoint(coord)
		if len(rounded) == 0 || rounded[len(rounded)-1] != coord {
			rounded = append(rounded, coord)
		}
	}
	return rounded
}
