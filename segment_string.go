package noding

import (
	"strings"
)

// SegmentString is a polyline of coordinates in 2D space with an opaque payload. The payload is set by the caller, for example to identify the edge of the originating geometry, and is carried through noding untouched. If the last coordinate equals the first coordinate, the segment string is closed.
type SegmentString struct {
	coords []Point
	Data   any
}

// NewSegmentString returns a segment string over the given coordinates. The coordinates are not copied.
func NewSegmentString(coords []Point, data any) *SegmentString {
	return &SegmentString{coords, data}
}

// Empty returns true if the segment string has no segments.
func (ss *SegmentString) Empty() bool {
	return len(ss.coords) < 2
}

// Len returns the number of coordinates.
func (ss *SegmentString) Len() int {
	return len(ss.coords)
}

// Segments returns the number of segments.
func (ss *SegmentString) Segments() int {
	if ss.Empty() {
		return 0
	}
	return len(ss.coords) - 1
}

// Coords returns the list of coordinates. Changing a coordinate changes the segment string.
func (ss *SegmentString) Coords() []Point {
	return ss.coords
}

// Coord returns the i-th coordinate.
func (ss *SegmentString) Coord(i int) Point {
	return ss.coords[i]
}

// Segment returns the start and end coordinates of the i-th segment.
func (ss *SegmentString) Segment(i int) (Point, Point) {
	return ss.coords[i], ss.coords[i+1]
}

// Add adds a new coordinate to the segment string.
func (ss *SegmentString) Add(x, y float64) *SegmentString {
	ss.coords = append(ss.coords, Point{x, y})
	return ss
}

// Close adds a new coordinate equal to the first, closing the segment string.
func (ss *SegmentString) Close() *SegmentString {
	if 0 < len(ss.coords) {
		ss.coords = append(ss.coords, ss.coords[0])
	}
	return ss
}

// Closed returns true if the last coordinate coincides with the first.
func (ss *SegmentString) Closed() bool {
	return 1 < len(ss.coords) && ss.coords[0] == ss.coords[len(ss.coords)-1]
}

// IsEndpoint returns true if p equals the first or last coordinate.
func (ss *SegmentString) IsEndpoint(p Point) bool {
	return 0 < len(ss.coords) && (ss.coords[0] == p || ss.coords[len(ss.coords)-1] == p)
}

// Bounds returns the bounding box of the segment string.
func (ss *SegmentString) Bounds() Rect {
	if len(ss.coords) == 0 {
		return Rect{}
	}
	r := Rect{ss.coords[0].X, ss.coords[0].Y, ss.coords[0].X, ss.coords[0].Y}
	for _, coord := range ss.coords[1:] {
		r = r.AddPoint(coord)
	}
	return r
}

// Copy returns a deep copy of the coordinates, the payload is shared.
func (ss *SegmentString) Copy() *SegmentString {
	coords := make([]Point, len(ss.coords))
	copy(coords, ss.coords)
	return &SegmentString{coords, ss.Data}
}

// Equals returns true if both segment strings have exactly the same coordinates. The payload is not compared.
func (ss *SegmentString) Equals(q *SegmentString) bool {
	if len(ss.coords) != len(q.coords) {
		return false
	}
	for i := range ss.coords {
		if ss.coords[i] != q.coords[i] {
			return false
		}
	}
	return true
}

// String returns the coordinates in the text format understood by ParseSegmentString.
func (ss *SegmentString) String() string {
	sb := strings.Builder{}
	for i, coord := range ss.coords {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ftos(coord.X))
		sb.WriteByte(' ')
		sb.WriteString(ftos(coord.Y))
	}
	return sb.String()
}

// Bounds returns the bounding box of all segment strings.
func Bounds(ss []*SegmentString) Rect {
	var r Rect
	first := true
	for _, s := range ss {
		if s.Len() == 0 {
			continue
		} else if first {
			r = s.Bounds()
			first = false
		} else {
			r = r.Add(s.Bounds())
		}
	}
	return r
}

// SegmentStringsString returns the segment strings in the text format understood by ParseSegmentStrings.
func SegmentStringsString(ss []*SegmentString) string {
	sb := strings.Builder{}
	for i, s := range ss {
		if i != 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
