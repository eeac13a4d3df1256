package geoio

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/tdewolff/noding"
)

// ReadWKT reads one WKT geometry per line. All linear components of a geometry get the line index as payload, not counting empty lines.
func ReadWKT(r io.Reader) ([]*noding.SegmentString, error) {
	ss := []*noding.SegmentString{}
	err := readLines(r, func(i int, line string) error {
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		ssG, err := noding.FromGeometry(g, i)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		ss = append(ss, ssG...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

// WriteWKT writes one LINESTRING per line, or a POINT for segment strings with a single coordinate.
func WriteWKT(w io.Writer, ss []*noding.SegmentString) error {
	for _, s := range ss {
		var g orb.Geometry = s.LineString()
		if s.Len() == 1 {
			g = orb.Point{s.Coord(0).X, s.Coord(0).Y}
		}
		if _, err := fmt.Fprintln(w, wkt.MarshalString(g)); err != nil {
			return err
		}
	}
	return nil
}
