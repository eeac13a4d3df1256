// Package geoio reads and writes segment strings from and to common geodata formats: WKT, GeoJSON, OpenStreetMap XML, SVG and a plain text format.
package geoio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tdewolff/noding"
)

// ErrUnknownFormat is returned for formats that cannot be read or written.
var ErrUnknownFormat = errors.New("unknown format")

// Formats.
const (
	WKT     = "wkt"
	GeoJSON = "geojson"
	OSM     = "osm"
	SVG     = "svg"
	Text    = "txt"
)

// FormatFromFilename returns the format by the filename extension, or an empty string if unknown.
func FormatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wkt":
		return WKT
	case ".geojson", ".json":
		return GeoJSON
	case ".osm", ".xml":
		return OSM
	case ".svg":
		return SVG
	case ".txt":
		return Text
	}
	return ""
}

// Read reads segment strings in the given format.
func Read(format string, r io.Reader) ([]*noding.SegmentString, error) {
	switch format {
	case WKT:
		return ReadWKT(r)
	case GeoJSON:
		return ReadGeoJSON(r)
	case OSM:
		return ReadOSM(r)
	case Text:
		return ReadText(r)
	}
	return nil, fmt.Errorf("%w: cannot read %q", ErrUnknownFormat, format)
}

// Write writes segment strings in the given format.
func Write(format string, w io.Writer, ss []*noding.SegmentString) error {
	switch format {
	case WKT:
		return WriteWKT(w, ss)
	case GeoJSON:
		return WriteGeoJSON(w, ss)
	case SVG:
		return WriteSVG(w, ss, nil)
	case Text:
		return WriteText(w, ss)
	}
	return fmt.Errorf("%w: cannot write %q", ErrUnknownFormat, format)
}

// readLines calls f for every non-empty line with the index of the non-empty line.
func readLines(r io.Reader, f func(i int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	i := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := f(i, line); err != nil {
			return err
		}
		i++
	}
	return scanner.Err()
}

// ReadText reads one segment string per line in the format understood by noding.ParseSegmentString. The payload is the line index, not counting empty lines.
func ReadText(r io.Reader) ([]*noding.SegmentString, error) {
	ss := []*noding.SegmentString{}
	err := readLines(r, func(i int, line string) error {
		s, err := noding.ParseSegmentString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		s.Data = i
		ss = append(ss, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

// WriteText writes one segment string per line.
func WriteText(w io.Writer, ss []*noding.SegmentString) error {
	for _, s := range ss {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return err
		}
	}
	return nil
}
