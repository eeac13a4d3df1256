package noding

import (
	"fmt"

	"github.com/paulmach/orb"
)

// FromLineString returns a segment string from an orb line string. The coordinates are copied.
func FromLineString(ls orb.LineString, data any) *SegmentString {
	coords := make([]Point, len(ls))
	for i, p := range ls {
		coords[i] = Point{p[0], p[1]}
	}
	return &SegmentString{coords, data}
}

// FromGeometry returns the segment strings of the linear components of an orb geometry: line strings, polygon rings and single points. Each segment string gets the same payload.
func FromGeometry(g orb.Geometry, data any) ([]*SegmentString, error) {
	switch g := g.(type) {
	case orb.Point:
		return []*SegmentString{{[]Point{{g[0], g[1]}}, data}}, nil
	case orb.MultiPoint:
		ss := make([]*SegmentString, 0, len(g))
		for _, p := range g {
			ss = append(ss, &SegmentString{[]Point{{p[0], p[1]}}, data})
		}
		return ss, nil
	case orb.LineString:
		return []*SegmentString{FromLineString(g, data)}, nil
	case orb.Ring:
		return []*SegmentString{FromLineString(orb.LineString(g), data)}, nil
	case orb.MultiLineString:
		ss := make([]*SegmentString, 0, len(g))
		for _, ls := range g {
			ss = append(ss, FromLineString(ls, data))
		}
		return ss, nil
	case orb.Polygon:
		ss := make([]*SegmentString, 0, len(g))
		for _, ring := range g {
			ss = append(ss, FromLineString(orb.LineString(ring), data))
		}
		return ss, nil
	case orb.MultiPolygon:
		ss := []*SegmentString{}
		for _, poly := range g {
			for _, ring := range poly {
				ss = append(ss, FromLineString(orb.LineString(ring), data))
			}
		}
		return ss, nil
	case orb.Collection:
		ss := []*SegmentString{}
		for _, h := range g {
			ssH, err := FromGeometry(h, data)
			if err != nil {
				return nil, err
			}
			ss = append(ss, ssH...)
		}
		return ss, nil
	case orb.Bound:
		return FromGeometry(g.ToRing(), data)
	}
	return nil, fmt.Errorf("unsupported geometry: %T", g)
}

// LineString returns the segment string as an orb line string. The coordinates are copied.
func (ss *SegmentString) LineString() orb.LineString {
	ls := make(orb.LineString, len(ss.coords))
	for i, coord := range ss.coords {
		ls[i] = orb.Point{coord.X, coord.Y}
	}
	return ls
}

// ToMultiLineString returns the segment strings as an orb multi line string.
func ToMultiLineString(ss []*SegmentString) orb.MultiLineString {
	mls := make(orb.MultiLineString, len(ss))
	for i, s := range ss {
		mls[i] = s.LineString()
	}
	return mls
}
