package noding

import (
	"errors"
	"fmt"
)

// ErrNotNoded is returned by ValidateNoding when segment strings intersect in their interior.
var ErrNotNoded = errors.New("segment strings are not fully noded")

// NodingError describes an interior intersection between two segment strings.
type NodingError struct {
	Point
	A, B int // indices of the segment strings
}

func (e *NodingError) Error() string {
	return fmt.Sprintf("%v: segment strings %d and %d intersect at %v", ErrNotNoded, e.A, e.B, e.Point)
}

func (e *NodingError) Unwrap() error {
	return ErrNotNoded
}

// ValidateNoding checks that the segment strings only intersect at their endpoints, ie. that they are fully noded. Non-adjacent segments of the same segment string may not intersect either, except for the first and last segment of a closed segment string. It returns a *NodingError for the first interior intersection found, which matches ErrNotNoded.
func ValidateNoding(ss []*SegmentString) error {
	if err := checkSegmentStrings(ss); err != nil {
		return err
	}

	var nerr *NodingError
	sweepPairs(newNodeLists(ss), func(a, b segmentRef) {
		if nerr != nil {
			return
		}
		intersect(a, b, func(z Intersection, a, b segmentRef) {
			if nerr != nil {
				return
			}
			sa, sb := ss[a.list.index], ss[b.list.index]
			if !sa.IsEndpoint(z.Point) || !sb.IsEndpoint(z.Point) {
				nerr = &NodingError{z.Point, a.list.index, b.list.index}
			} else if a.list == b.list && !(isEndParameter(z.T[0]) && isEndParameter(z.T[1])) {
				nerr = &NodingError{z.Point, a.list.index, b.list.index}
			}
		})
	})
	if nerr != nil {
		return nerr
	}
	return nil
}

func isEndParameter(t float64) bool {
	return t == 0.0 || t == 1.0
}
