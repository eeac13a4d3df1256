package noding

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is returned when the text representation of segment strings is malformed.
var ErrSyntax = errors.New("bad segment string syntax")

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

// ParseSegmentString parses a list of coordinates, such as "0 0, 10 0, 10 10". Numbers are separated by whitespace or commas and taken pairwise as X and Y. The payload is left nil.
func ParseSegmentString(s string) (*SegmentString, error) {
	b := []byte(s)
	coords := []Point{}

	i := skipCommaWhitespace(b)
	for i < len(b) {
		x, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("%w: expected number at position %d: %s", ErrSyntax, i, s)
		}
		i += n
		i += skipCommaWhitespace(b[i:])

		y, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("%w: expected Y coordinate at position %d: %s", ErrSyntax, i, s)
		}
		i += n
		i += skipCommaWhitespace(b[i:])
		coords = append(coords, Point{x, y})
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: no coordinates", ErrSyntax)
	}
	return &SegmentString{coords: coords}, nil
}

// ParseSegmentStrings parses a semicolon separated list of segment strings, such as "0 0, 10 10; 0 10, 10 0". The payload of each segment string is set to its index.
func ParseSegmentStrings(s string) ([]*SegmentString, error) {
	ss := []*SegmentString{}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ';' {
			part := s[start:i]
			start = i + 1
			if skipCommaWhitespace([]byte(part)) == len(part) {
				if i == len(s) {
					break // allow trailing semicolon
				}
				return nil, fmt.Errorf("%w: empty segment string %d", ErrSyntax, len(ss))
			}

			seg, err := ParseSegmentString(part)
			if err != nil {
				return nil, err
			}
			seg.Data = len(ss)
			ss = append(ss, seg)
		}
	}
	return ss, nil
}

// MustParseSegmentString parses a segment string and panics on error.
func MustParseSegmentString(s string) *SegmentString {
	ss, err := ParseSegmentString(s)
	if err != nil {
		panic(err)
	}
	return ss
}

// MustParseSegmentStrings parses a list of segment strings and panics on error.
func MustParseSegmentStrings(s string) []*SegmentString {
	ss, err := ParseSegmentStrings(s)
	if err != nil {
		panic(err)
	}
	return ss
}
