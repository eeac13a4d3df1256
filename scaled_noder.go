package noding

import (
	"fmt"
)

// ScaledNoder wraps a Noder and transforms its input into the integer domain. This is intended for snap-rounding noders, which only work on integer coordinates. Coordinates are mapped as round((x-offsetX)*scale) before noding and back as x/scale+offsetX after noding. Rounding uses math.Round, ie. halfway values round away from zero.
//
// Rounding is lossy: input coordinates that fall into the same grid cell collapse into the same integer coordinate, which is how the tolerance of snap rounding is set. Offsets can be given to move the coordinates closer to the origin, increasing the number of digits available for precision.
//
// A scale factor of exactly 1.0 is taken to mean that the input is already integral: the segment strings are passed to and from the wrapped noder untouched, and the offsets are not applied either.
type ScaledNoder struct {
	noder            Noder
	scale            float64
	offsetX, offsetY float64
	isScaled         bool
}

// NewScaledNoder returns a noder that scales the input coordinates by scale before passing them to noder.
func NewScaledNoder(noder Noder, scale float64) (*ScaledNoder, error) {
	return NewScaledNoderWithOffset(noder, scale, 0.0, 0.0)
}

// NewScaledNoderWithOffset returns a noder that translates the input coordinates by (-offsetX,-offsetY) and then scales them by scale before passing them to noder. The scale factor must be finite and non-zero.
func NewScaledNoderWithOffset(noder Noder, scale, offsetX, offsetY float64) (*ScaledNoder, error) {
	if noder == nil {
		return nil, fmt.Errorf("%w: noder is nil", ErrInvalidConfiguration)
	} else if scale == 0.0 || !isFinite(scale) {
		return nil, fmt.Errorf("%w: scale factor must be finite and non-zero: %v", ErrInvalidConfiguration, scale)
	} else if !isFinite(offsetX) || !isFinite(offsetY) {
		return nil, fmt.Errorf("%w: offset must be finite: (%v,%v)", ErrInvalidConfiguration, offsetX, offsetY)
	}

	n := &ScaledNoder{
		noder:   noder,
		scale:   scale,
		offsetX: offsetX,
		offsetY: offsetY,
	}
	n.isScaled = !n.IsIntegerPrecision() // no need to scale if input precision is already integral
	return n, nil
}

// IsIntegerPrecision returns true if the scale factor is exactly one. The offsets are not taken into account.
func (n *ScaledNoder) IsIntegerPrecision() bool {
	return n.scale == 1.0
}

// Scale returns the scale factor.
func (n *ScaledNoder) Scale() float64 {
	return n.scale
}

// Offset returns the offset that is subtracted before scaling.
func (n *ScaledNoder) Offset() (float64, float64) {
	return n.offsetX, n.offsetY
}

// Noder returns the wrapped noder.
func (n *ScaledNoder) Noder() Noder {
	return n.noder
}

// ComputeNodes scales the segment strings to the integer domain and computes the nodes with the wrapped noder. The given segment strings are not modified, scaled copies sharing the same payloads are passed instead. When the precision is already integral, the segment strings are passed as is. Errors of the wrapped noder are returned unchanged.
func (n *ScaledNoder) ComputeNodes(ss []*SegmentString) error {
	intSS := ss
	if n.isScaled {
		intSS = n.scaleSegmentStrings(ss)
	}
	return n.noder.ComputeNodes(intSS)
}

// NodedSubstrings returns the noded segment strings of the wrapped noder, rescaled back to the original domain. The coordinates of the returned segment strings are modified in place. Errors of the wrapped noder are returned unchanged.
//
// Calling NodedSubstrings more than once only gives the same result if the wrapped noder returns new segment strings on every call, as do the noders in this package. Otherwise the coordinates are rescaled again.
func (n *ScaledNoder) NodedSubstrings() ([]*SegmentString, error) {
	ss, err := n.noder.NodedSubstrings()
	if err != nil {
		return nil, err
	}
	if n.isScaled {
		n.rescaleSegmentStrings(ss)
	}
	return ss, nil
}

func (n *ScaledNoder) scaleSegmentStrings(ss []*SegmentString) []*SegmentString {
	intSS := make([]*SegmentString, len(ss))
	for i, s := range ss {
		if s != nil {
			intSS[i] = &SegmentString{n.scaleCoords(s.coords), s.Data}
		}
	}
	return intSS
}

func (n *ScaledNoder) scaleCoords(coords []Point) []Point {
	offset := Point{n.offsetX, n.offsetY}
	roundCoords := make([]Point, len(coords))
	for i, coord := range coords {
		roundCoords[i] = coord.Sub(offset).Mul(n.scale).Round()
	}
	return roundCoords
}

func (n *ScaledNoder) rescaleSegmentStrings(ss []*SegmentString) {
	for _, s := range ss {
		if s != nil {
			n.rescaleCoords(s.coords)
		}
	}
}

func (n *ScaledNoder) rescaleCoords(coords []Point) {
	for i := range coords {
		coords[i].X = coords[i].X/n.scale + n.offsetX
		coords[i].Y = coords[i].Y/n.scale + n.offsetY
	}
}
