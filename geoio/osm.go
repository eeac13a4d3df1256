package geoio

import (
	"encoding/xml"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
	"github.com/tdewolff/noding"
)

// ReadOSM reads OpenStreetMap XML and returns the ways as segment strings with the feature ID (eg. "way/42") as payload. When keys are given, only ways that have at least one of those tags are returned.
func ReadOSM(r io.Reader, keys ...string) ([]*noding.SegmentString, error) {
	o := &osm.OSM{}
	if err := xml.NewDecoder(r).Decode(o); err != nil {
		return nil, err
	}
	return FromOSM(o, keys...)
}

// FromOSM returns the ways of the OpenStreetMap data as segment strings, see ReadOSM.
func FromOSM(o *osm.OSM, keys ...string) ([]*noding.SegmentString, error) {
	fc, err := osmgeojson.Convert(o,
		osmgeojson.NoMeta(true),
		osmgeojson.NoRelationMembership(true))
	if err != nil {
		return nil, err
	}

	ss := []*noding.SegmentString{}
	for _, f := range fc.Features {
		if 0 < len(keys) {
			tags, _ := f.Properties["tags"].(map[string]string)
			if !hasAnyKey(tags, keys) {
				continue
			}
		}
		ssF, err := noding.FromGeometry(f.Geometry, f.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range ssF {
			if 1 < s.Len() {
				ss = append(ss, s)
			}
		}
	}
	return ss, nil
}

func hasAnyKey(tags map[string]string, keys []string) bool {
	for _, key := range keys {
		if _, ok := tags[key]; ok {
			return true
		}
	}
	return false
}
