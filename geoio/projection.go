package geoio

import (
	"github.com/tdewolff/noding"
	"github.com/wroge/wgs84/v2"
)

// Projection transforms segment strings between two coordinate reference systems given by their EPSG codes. Noding geographic coordinates directly is usually a bad idea, as degrees are not uniform in size. Project to a metric system such as UTM before noding and back afterwards.
type Projection struct {
	From, To         int
	forward, inverse func(float64, float64, float64) (float64, float64, float64)
}

// NewProjection returns a projection from EPSG code from to EPSG code to, eg. NewProjection(4326, 32631) for WGS84 to UTM zone 31N.
func NewProjection(from, to int) *Projection {
	return &Projection{
		From:    from,
		To:      to,
		forward: wgs84.Transform(wgs84.EPSG(from), wgs84.EPSG(to)),
		inverse: wgs84.Transform(wgs84.EPSG(to), wgs84.EPSG(from)),
	}
}

// Forward transforms the coordinates of the segment strings in place from the source to the target system.
func (p *Projection) Forward(ss []*noding.SegmentString) {
	transform(ss, p.forward)
}

// Inverse transforms the coordinates of the segment strings in place from the target back to the source system.
func (p *Projection) Inverse(ss []*noding.SegmentString) {
	transform(ss, p.inverse)
}

func transform(ss []*noding.SegmentString, f func(float64, float64, float64) (float64, float64, float64)) {
	for _, s := range ss {
		coords := s.Coords()
		for i := range coords {
			coords[i].X, coords[i].Y, _ = f(coords[i].X, coords[i].Y, 0.0)
		}
	}
}
