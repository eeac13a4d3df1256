package noding

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInput is returned by the noders in this package for segment strings without coordinates or with non-finite coordinates.
var ErrInvalidInput = errors.New("invalid segment string")

func checkSegmentStrings(ss []*SegmentString) error {
	for i, s := range ss {
		if s == nil || s.Len() == 0 {
			return fmt.Errorf("%w: segment string %d has no coordinates", ErrInvalidInput, i)
		}
		for j, coord := range s.coords {
			if !isFinite(coord.X) || !isFinite(coord.Y) {
				return fmt.Errorf("%w: segment string %d has non-finite coordinate %d: %v", ErrInvalidInput, i, j, coord)
			}
		}
	}
	return nil
}

// node is a split position along a segment string.
type node struct {
	Point
	seg int     // segment index
	t   float64 // position along segment [0,1)
}

func (a node) less(b node) bool {
	if a.seg != b.seg {
		return a.seg < b.seg
	} else if a.t != b.t {
		return a.t < b.t
	} else if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// nodeList collects the nodes of one segment string.
type nodeList struct {
	index  int // index in the input
	coords []Point
	data   any
	nodes  []node
}

func newNodeLists(ss []*SegmentString) []*nodeList {
	ls := make([]*nodeList, len(ss))
	for i, s := range ss {
		ls[i] = &nodeList{
			index:  i,
			coords: s.coords,
			data:   s.Data,
		}
	}
	return ls
}

func (l *nodeList) segments() int {
	if len(l.coords) < 2 {
		return 0
	}
	return len(l.coords) - 1
}

func (l *nodeList) closed() bool {
	return 1 < len(l.coords) && l.coords[0] == l.coords[len(l.coords)-1]
}

// add adds a node at segment seg and position t along the segment. A position at the end of a segment is moved to the start of the next.
func (l *nodeList) add(p Point, seg int, t float64) {
	if t == 1.0 && seg+1 < l.segments() {
		seg++
		t = 0.0
	}
	l.nodes = append(l.nodes, node{p, seg, t})
}

// trivial returns true if the intersection at p between segments i of l and j of m is where two consecutive segments of the same segment string meet.
func trivial(l *nodeList, i int, m *nodeList, j int, p Point) bool {
	if l != m {
		return false
	}
	if j < i {
		i, j = j, i
	}
	if j == i+1 {
		return p == l.coords[j]
	} else if i == 0 && j == l.segments()-1 && l.closed() {
		return p == l.coords[0]
	}
	return false
}

// split returns the substrings between all nodes, the endpoints of the segment string are always nodes. Substrings that collapse to a single point are dropped.
func (l *nodeList) split() []*SegmentString {
	if len(l.coords) < 2 {
		coords := make([]Point, len(l.coords))
		copy(coords, l.coords)
		return []*SegmentString{{coords, l.data}}
	}

	n := len(l.coords)
	nodes := make([]node, 0, len(l.nodes)+2)
	nodes = append(nodes, node{l.coords[0], 0, 0.0})
	nodes = append(nodes, l.nodes...)
	nodes = append(nodes, node{l.coords[n-1], n - 2, 1.0})
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].less(nodes[j])
	})

	// remove duplicate nodes at the same position
	k := 1
	for _, nd := range nodes[1:] {
		if prev := nodes[k-1]; prev.seg == nd.seg && prev.Point == nd.Point {
			continue
		}
		nodes[k] = nd
		k++
	}
	nodes = nodes[:k]

	ss := []*SegmentString{}
	for i := 1; i < len(nodes); i++ {
		if coords := l.substring(nodes[i-1], nodes[i]); 1 < len(coords) {
			ss = append(ss, &SegmentString{coords, l.data})
		}
	}
	return ss
}

// substring returns the coordinates from node a to node b, without consecutive duplicates.
func (l *nodeList) substring(a, b node) []Point {
	coords := []Point{a.Point}
	for k := a.seg + 1; k <= b.seg; k++ {
		if k == b.seg && b.t == 0.0 {
			break // b lies on vertex k
		}
		if l.coords[k] != coords[len(coords)-1] {
			coords = append(coords, l.coords[k])
		}
	}
	if b.Point != coords[len(coords)-1] {
		coords = append(coords, b.Point)
	}
	return coords
}

// segmentRef refers to a segment of a segment string.
type segmentRef struct {
	list *nodeList
	seg  int
}

func (r segmentRef) points() (Point, Point) {
	return r.list.coords[r.seg], r.list.coords[r.seg+1]
}

func (r segmentRef) bounds() Rect {
	return RectFromPoints(r.points())
}

// before returns true if r comes before q in the input order.
func (r segmentRef) before(q segmentRef) bool {
	if r.list.index != q.list.index {
		return r.list.index < q.list.index
	}
	return r.seg < q.seg
}

// intersect calls f for every non-trivial intersection between segments a and b. Segments are always passed in input order so that the intersection coordinates do not depend on the order in which pairs are visited.
func intersect(a, b segmentRef, f func(z Intersection, a, b segmentRef)) {
	if b.before(a) {
		a, b = b, a
	} else if a == b {
		return
	}
	a0, a1 := a.points()
	b0, b1 := b.points()
	for _, z := range IntersectSegments(nil, a0, a1, b0, b1) {
		if !trivial(a.list, a.seg, b.list, b.seg, z.Point) {
			f(z, a, b)
		}
	}
}

// addNodes adds the intersection as node to both segments.
func addNodes(z Intersection, a, b segmentRef) {
	a.list.add(z.Point, a.seg, z.T[0])
	b.list.add(z.Point, b.seg, z.T[1])
}

func splitAll(ls []*nodeList) []*SegmentString {
	ss := []*SegmentString{}
	for _, l := range ls {
		ss = append(ss, l.split()...)
	}
	return ss
}
