// Package noding computes the intersections between segment strings and splits them so that the result is fully noded, ie. no segment crosses another without sharing a vertex.
//
// Noders follow a two-phase protocol: ComputeNodes is called once with the input segment strings, after which NodedSubstrings returns the result and may be called repeatedly. A Noder is not safe for concurrent use, use one per noding job.
//
// ScaledNoder wraps another noder and moves its input to an integer grid and its output back again, which allows snap-rounding noders such as SnapRounder to be used on floating point input.
package noding

import "errors"

// ErrInvalidConfiguration is returned when a noder is constructed with parameters it cannot work with.
var ErrInvalidConfiguration = errors.New("invalid noder configuration")

// ErrNotComputed is returned when the noded substrings are requested before the nodes were computed.
var ErrNotComputed = errors.New("nodes not computed")

// Noder computes all intersections between segment strings and splits them at those intersections.
type Noder interface {
	// ComputeNodes computes the intersections between the segment strings. The noder may keep a reference to the segment strings.
	ComputeNodes([]*SegmentString) error

	// NodedSubstrings returns the noded segment strings from the last call to ComputeNodes.
	NodedSubstrings() ([]*SegmentString, error)
}
