package noding

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

// identityNoder returns its input as result.
type identityNoder struct {
	ss    []*SegmentString
	calls int
}

func (n *identityNoder) ComputeNodes(ss []*SegmentString) error {
	n.ss = ss
	n.calls++
	return nil
}

func (n *identityNoder) NodedSubstrings() ([]*SegmentString, error) {
	if n.ss == nil {
		return nil, ErrNotComputed
	}
	return n.ss, nil
}

// fixedNoder ignores its input and returns a fixed result.
type fixedNoder struct {
	result []*SegmentString
}

func (n *fixedNoder) ComputeNodes(ss []*SegmentString) error {
	return nil
}

func (n *fixedNoder) NodedSubstrings() ([]*SegmentString, error) {
	return n.result, nil
}

// failingNoder fails on every call.
type failingNoder struct {
	err error
}

func (n *failingNoder) ComputeNodes(ss []*SegmentString) error {
	return n.err
}

func (n *failingNoder) NodedSubstrings() ([]*SegmentString, error) {
	return nil, n.err
}

func TestScaledNoderConfiguration(t *testing.T) {
	var tts = []struct {
		noder            Noder
		scale            float64
		offsetX, offsetY float64
		err              error
	}{
		{&identityNoder{}, 1.0, 0.0, 0.0, nil},
		{&identityNoder{}, 1000.0, 5.0, -5.0, nil},
		{&identityNoder{}, -10.0, 0.0, 0.0, nil},
		{&identityNoder{}, 0.0, 0.0, 0.0, ErrInvalidConfiguration},
		{&identityNoder{}, math.NaN(), 0.0, 0.0, ErrInvalidConfiguration},
		{&identityNoder{}, math.Inf(1), 0.0, 0.0, ErrInvalidConfiguration},
		{&identityNoder{}, math.Inf(-1), 0.0, 0.0, ErrInvalidConfiguration},
		{&identityNoder{}, 10.0, math.NaN(), 0.0, ErrInvalidConfiguration},
		{&identityNoder{}, 10.0, 0.0, math.Inf(1), ErrInvalidConfiguration},
		{nil, 10.0, 0.0, 0.0, ErrInvalidConfiguration},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			n, err := NewScaledNoderWithOffset(tt.noder, tt.scale, tt.offsetX, tt.offsetY)
			if tt.err == nil {
				test.Error(t, err)
				test.Float(t, n.Scale(), tt.scale)
				x, y := n.Offset()
				test.Float(t, x, tt.offsetX)
				test.Float(t, y, tt.offsetY)
				test.That(t, n.Noder() == tt.noder)
			} else {
				test.That(t, errors.Is(err, tt.err), "expected", tt.err, "got", err)
				test.That(t, n == nil)
			}
		})
	}
}

func TestScaledNoderIsIntegerPrecision(t *testing.T) {
	var tts = []struct {
		scale            float64
		offsetX, offsetY float64
		integer          bool
	}{
		{1.0, 0.0, 0.0, true},
		{1.0, 100.0, -3.5, true}, // offsets are ignored
		{1.0 + 1e-15, 0.0, 0.0, false},
		{100.0, 0.0, 0.0, false},
		{0.5, 0.0, 0.0, false},
		{-1.0, 0.0, 0.0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			n, err := NewScaledNoderWithOffset(&identityNoder{}, tt.scale, tt.offsetX, tt.offsetY)
			test.Error(t, err)
			test.T(t, n.IsIntegerPrecision(), tt.integer)
			test.T(t, n.IsIntegerPrecision(), tt.integer) // no side-effects
		})
	}
}

func TestScaledNoderIdentity(t *testing.T) {
	// a scale factor of one passes the segment strings untouched, even with an offset
	inner := &identityNoder{}
	n, err := NewScaledNoderWithOffset(inner, 1.0, 5.0, 7.0)
	test.Error(t, err)

	ss := []*SegmentString{
		NewSegmentString([]Point{{0.25, 0.75}, {1.5, 2.5}}, "a"),
		NewSegmentString([]Point{{-3.125, 4.0}}, "b"),
	}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.calls, 1)
	test.T(t, len(inner.ss), len(ss))
	test.That(t, &inner.ss[0] == &ss[0], "same slice is forwarded")
	for i := range ss {
		test.That(t, inner.ss[i] == ss[i], "same segment string is forwarded")
	}

	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, len(result), 2)
	test.That(t, result[0] == ss[0])
	test.That(t, result[1] == ss[1])
	test.T(t, result[0].Coords(), []Point{{0.25, 0.75}, {1.5, 2.5}})
	test.T(t, result[1].Coords(), []Point{{-3.125, 4.0}})
}

func TestScaledNoderForward(t *testing.T) {
	inner := &identityNoder{}
	n, err := NewScaledNoderWithOffset(inner, 10.0, 1.0, 2.0)
	test.Error(t, err)

	coords := []Point{{1.04, 2.06}, {3.5, -1.25}, {1.0, 2.0}}
	ss := []*SegmentString{NewSegmentString(coords, 42)}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.calls, 1)

	test.T(t, len(inner.ss), 1)
	test.That(t, inner.ss[0] != ss[0], "scaled copy is forwarded")
	test.T(t, inner.ss[0].Data, 42)
	test.T(t, inner.ss[0].Coords(), []Point{{0.0, 1.0}, {25.0, -33.0}, {0.0, 0.0}})

	// input is not modified
	test.T(t, ss[0].Coords(), []Point{{1.04, 2.06}, {3.5, -1.25}, {1.0, 2.0}})
	test.T(t, &ss[0].Coords()[0] == &coords[0], true)
}

func TestScaledNoderForwardMatchesFormula(t *testing.T) {
	scale, ox, oy := 1000.0, 512.25, -0.125
	coords := []Point{}
	for i := 0; i < 50; i++ {
		f := float64(i)
		coords = append(coords, Point{ox + f*0.0137 - 0.3, oy - f*0.0291 + 0.7})
	}

	inner := &identityNoder{}
	n, err := NewScaledNoderWithOffset(inner, scale, ox, oy)
	test.Error(t, err)
	test.Error(t, n.ComputeNodes([]*SegmentString{NewSegmentString(coords, nil)}))

	scaled := inner.ss[0].Coords()
	test.T(t, len(scaled), len(coords))
	for i, coord := range coords {
		test.T(t, scaled[i], Point{math.Round((coord.X - ox) * scale), math.Round((coord.Y - oy) * scale)}, fmt.Sprint(i))
	}
}

func TestScaledNoderRoundHalfAwayFromZero(t *testing.T) {
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 2.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{0.25, -0.25}, {1.25, -1.25}, {0.75, -0.75}}, nil)}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.ss[0].Coords(), []Point{{1.0, -1.0}, {3.0, -3.0}, {2.0, -2.0}})
}

func TestScaledNoderReverse(t *testing.T) {
	result := []*SegmentString{
		NewSegmentString([]Point{{3.0, -6.0}, {0.0, 0.0}}, "x"),
		NewSegmentString([]Point{{-2.0, 1.0}}, "y"),
	}
	n, err := NewScaledNoderWithOffset(&fixedNoder{result}, 4.0, 10.0, -2.0)
	test.Error(t, err)
	test.Error(t, n.ComputeNodes(nil))

	ss, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, len(ss), 2)
	test.That(t, ss[0] == result[0], "rescaled in place")
	test.That(t, ss[1] == result[1], "rescaled in place")
	test.T(t, ss[0].Coords(), []Point{{10.75, -3.5}, {10.0, -2.0}})
	test.T(t, ss[1].Coords(), []Point{{9.5, -1.75}})
	test.T(t, ss[0].Data, "x")
	test.T(t, ss[1].Data, "y")
}

func TestScaledNoderNil(t *testing.T) {
	// nil segment strings are passed through in both directions
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 10.0)
	test.Error(t, err)

	test.Error(t, n.ComputeNodes([]*SegmentString{nil, NewSegmentString([]Point{{0.5, 1.5}}, nil)}))
	test.T(t, len(inner.ss), 2)
	test.That(t, inner.ss[0] == nil)
	test.T(t, inner.ss[1].Coords(), []Point{{5.0, 15.0}})

	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.That(t, result[0] == nil)
	test.T(t, result[1].Coords(), []Point{{0.5, 1.5}})

	n, err = NewScaledNoder(&fixedNoder{[]*SegmentString{nil}}, 10.0)
	test.Error(t, err)
	test.Error(t, n.ComputeNodes(nil))
	result, err = n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, len(result), 1)
	test.That(t, result[0] == nil)
}

func TestScaledNoderPayload(t *testing.T) {
	type edge struct{ id int }
	a, b := &edge{1}, &edge{2}

	n, err := NewScaledNoder(&identityNoder{}, 100.0)
	test.Error(t, err)
	ss := []*SegmentString{
		NewSegmentString([]Point{{0.0, 0.0}, {1.0, 1.0}}, a),
		NewSegmentString([]Point{{0.0, 1.0}, {1.0, 0.0}}, b),
	}
	test.Error(t, n.ComputeNodes(ss))
	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, len(result), 2)
	test.That(t, result[0].Data.(*edge) == a)
	test.That(t, result[1].Data.(*edge) == b)
}

func TestScaledNoderCollapse(t *testing.T) {
	// points within the same grid cell collapse to the same integer coordinate
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 10.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{0.11, 0.12}, {0.14, 0.09}}, nil)}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.ss[0].Coords(), []Point{{1.0, 1.0}, {1.0, 1.0}})

	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, result[0].Coords(), []Point{{0.1, 0.1}, {0.1, 0.1}})
}

func TestScaledNoderRoundTrip(t *testing.T) {
	// x*scale and y*scale round to exactly the integers 12345 and 67890, so dividing gives back the original values
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 10000.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{1.2345, 6.789}}, nil)}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.ss[0].Coords(), []Point{{12345.0, 67890.0}})

	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, result[0].Coords(), []Point{{1.2345, 6.789}})
	test.T(t, ss[0].Coords(), []Point{{1.2345, 6.789}})
}

func TestScaledNoderExample(t *testing.T) {
	// 1.005 is stored as 1.00499999999999989..., so 1.005*100 lies just below the halfway point and rounds down
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 100.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{1.005, 2.004}}, nil)}
	test.Error(t, n.ComputeNodes(ss))
	test.T(t, inner.ss[0].Coords(), []Point{{100.0, 200.0}})

	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, result[0].Coords(), []Point{{1.0, 2.0}})
}

func TestScaledNoderErrors(t *testing.T) {
	errNoding := errors.New("noding failed")
	n, err := NewScaledNoder(&failingNoder{errNoding}, 10.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{0.0, 0.0}, {1.0, 1.0}}, nil)}
	err = n.ComputeNodes(ss)
	test.That(t, err == errNoding, "error is returned unchanged")
	result, err := n.NodedSubstrings()
	test.That(t, err == errNoding, "error is returned unchanged")
	test.That(t, result == nil)

	// retrieval before computing follows the wrapped noder
	n, err = NewScaledNoder(NewSimpleNoder(), 10.0)
	test.Error(t, err)
	_, err = n.NodedSubstrings()
	test.That(t, errors.Is(err, ErrNotComputed), err)

	// invalid input is rejected by the wrapped noder
	n, err = NewScaledNoder(NewSimpleNoder(), 10.0)
	test.Error(t, err)
	err = n.ComputeNodes([]*SegmentString{NewSegmentString([]Point{{math.Inf(1), 0.0}, {1.0, 1.0}}, nil)})
	test.That(t, errors.Is(err, ErrInvalidInput), err)
}

func TestScaledNoderRecompute(t *testing.T) {
	inner := &identityNoder{}
	n, err := NewScaledNoder(inner, 10.0)
	test.Error(t, err)

	test.Error(t, n.ComputeNodes([]*SegmentString{NewSegmentString([]Point{{0.5, 0.5}}, nil)}))
	test.Error(t, n.ComputeNodes([]*SegmentString{NewSegmentString([]Point{{0.25, 0.75}}, nil)}))
	test.T(t, inner.calls, 2)
	test.T(t, inner.ss[0].Coords(), []Point{{3.0, 8.0}})
}

func TestScaledNoderComposition(t *testing.T) {
	// a scaled noder is itself a noder and can be wrapped
	innermost := &identityNoder{}
	inner, err := NewScaledNoder(innermost, 10.0)
	test.Error(t, err)
	outer, err := NewScaledNoder(inner, 10.0)
	test.Error(t, err)

	ss := []*SegmentString{NewSegmentString([]Point{{0.123, -0.456}}, "p")}
	test.Error(t, outer.ComputeNodes(ss))
	test.T(t, innermost.ss[0].Coords(), []Point{{10.0, -50.0}})

	result, err := outer.NodedSubstrings()
	test.Error(t, err)
	test.T(t, result[0].Coords(), []Point{{0.1, -0.5}})
	test.T(t, result[0].Data, "p")
}

func TestScaledNoderSnapRounder(t *testing.T) {
	n, err := NewScaledNoder(NewSnapRounder(), 10.0)
	test.Error(t, err)

	ss := []*SegmentString{
		NewSegmentString([]Point{{0.0, 0.0}, {0.3, 0.1}}, 0),
		NewSegmentString([]Point{{0.0, 0.1}, {0.3, 0.0}}, 1),
	}
	test.Error(t, n.ComputeNodes(ss))
	result, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, SegmentStringsString(result), "0 0, 0.2 0.1; 0.2 0.1, 0.3 0.1; 0 0.1, 0.2 0.1; 0.2 0.1, 0.3 0")
	test.T(t, result[0].Data, 0)
	test.T(t, result[1].Data, 0)
	test.T(t, result[2].Data, 1)
	test.T(t, result[3].Data, 1)
	test.Error(t, ValidateNoding(result))

	// repeated retrieval gives the same result
	again, err := n.NodedSubstrings()
	test.Error(t, err)
	test.T(t, SegmentStringsString(again), SegmentStringsString(result))
}
