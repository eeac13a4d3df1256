package geoio

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/noding"
)

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", noding.Precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), noding.Precision))
}

// SVGOptions are the options for writing SVG.
type SVGOptions struct {
	Width       float64  // width of the image, the height follows from the aspect ratio
	StrokeWidth float64  // in image units
	Colors      []string // stroke colors, cycled over the segment strings
	Nodes       bool     // draw the endpoints of every segment string
}

// DefaultSVGOptions are the default options for writing SVG.
var DefaultSVGOptions = SVGOptions{
	Width:       800.0,
	StrokeWidth: 1.5,
	Colors:      []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"},
	Nodes:       true,
}

// WriteSVG draws the segment strings as minified SVG, with the Y-axis pointing up.
func WriteSVG(w io.Writer, ss []*noding.SegmentString, opts *SVGOptions) error {
	if opts == nil {
		opts = &DefaultSVGOptions
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = []string{"black"}
	}

	bounds := noding.Bounds(ss)
	size := math.Max(bounds.W(), bounds.H())
	if size == 0.0 {
		size = 1.0
	}
	margin := 0.05 * size
	bounds = bounds.Expand(margin)
	scale := opts.Width / bounds.W()
	width, height := opts.Width, bounds.H()*scale
	view := noding.Identity.ReflectYAt(height / 2.0).Scale(scale, scale).Translate(-bounds.X0, -bounds.Y0)

	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	mw := m.Writer("image/svg+xml", w)

	fmt.Fprintf(mw, `<svg version="1.1" width="%v" height="%v" viewBox="0 0 %v %v" xmlns="http://www.w3.org/2000/svg">`, num(width), num(height), num(width), num(height))
	fmt.Fprintf(mw, `<g fill="none" stroke-width="%v" stroke-linecap="round" stroke-linejoin="round">`, num(opts.StrokeWidth))
	for i, s := range ss {
		if s.Len() == 0 {
			continue
		}
		sb := strings.Builder{}
		for j, coord := range s.Coords() {
			p := view.Dot(coord)
			if j == 0 {
				fmt.Fprintf(&sb, "M%v %v", num(p.X), num(p.Y))
			} else {
				fmt.Fprintf(&sb, "L%v %v", num(p.X), num(p.Y))
			}
		}
		fmt.Fprintf(mw, `<path stroke="%s" d="%s"/>`, colors[i%len(colors)], sb.String())
	}
	fmt.Fprintf(mw, `</g>`)

	if opts.Nodes {
		r := 2.0 * opts.StrokeWidth
		fmt.Fprintf(mw, `<g fill="black">`)
		for _, s := range ss {
			if s.Len() == 0 {
				continue
			}
			for _, coord := range []noding.Point{s.Coord(0), s.Coord(s.Len() - 1)} {
				p := view.Dot(coord)
				fmt.Fprintf(mw, `<circle cx="%v" cy="%v" r="%v"/>`, num(p.X), num(p.Y), num(r))
			}
		}
		fmt.Fprintf(mw, `</g>`)
	}

	if _, err := fmt.Fprintf(mw, "</svg>"); err != nil {
		return err
	}
	return mw.Close()
}
