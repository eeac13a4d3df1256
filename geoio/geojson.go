package geoio

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/noding"
)

// ReadGeoJSON reads a feature collection. All linear components of a feature get the feature ID as payload, or the feature index if it has no ID.
func ReadGeoJSON(r io.Reader) ([]*noding.SegmentString, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, err
	}
	return fromFeatures(fc.Features)
}

func fromFeatures(features []*geojson.Feature) ([]*noding.SegmentString, error) {
	ss := []*noding.SegmentString{}
	for i, f := range features {
		var data any = i
		if f.ID != nil {
			data = f.ID
		}
		ssF, err := noding.FromGeometry(f.Geometry, data)
		if err != nil {
			return nil, err
		}
		ss = append(ss, ssF...)
	}
	return ss, nil
}

// WriteGeoJSON writes a feature collection with one LineString feature per segment string, or a Point feature for segment strings with a single coordinate. The payload is written as feature ID.
func WriteGeoJSON(w io.Writer, ss []*noding.SegmentString) error {
	fc := geojson.NewFeatureCollection()
	for _, s := range ss {
		var g orb.Geometry = s.LineString()
		if s.Len() == 1 {
			g = orb.Point{s.Coord(0).X, s.Coord(0).Y}
		}
		f := geojson.NewFeature(g)
		f.ID = s.Data
		fc.Append(f)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
