// Package svgdoc assembles and serializes the output SVG document: a
// root with a view box and pixel dimensions containing groups of
// polygons. Serialization is deterministic — identical documents
// produce byte-identical output.
package svgdoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ViewBox is the document's user-coordinate rectangle.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// Attr is a single XML attribute. Attribute order is preserved as
// given, which keeps output stable across runs.
type Attr struct {
	Key, Value string
}

// Point is a 2D document-space coordinate.
type Point struct {
	X, Y float64
}

// Polygon is an ordered list of 2D points with optional attributes.
type Polygon struct {
	Points []Point
	Attrs  []Attr
}

// Group is one drawing group: group-level attributes plus polygons in
// draw order (earlier polygons are overpainted by later ones).
type Group struct {
	Attrs    []Attr
	Polygons []Polygon
}

// Document is the output vector image.
type Document struct {
	ViewBox ViewBox
	Width   int
	Height  int
	Groups  []Group
}

// New creates an empty document.
func New(vb ViewBox, width, height int) *Document {
	return &Document{ViewBox: vb, Width: width, Height: height}
}

// AddGroup appends a group. Later groups sit visually on top of
// earlier ones regardless of depth.
func (d *Document) AddGroup(g Group) {
	d.Groups = append(d.Groups, g)
}

// PolygonCount returns the total number of polygons across all groups.
func (d *Document) PolygonCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Polygons)
	}
	return n
}

// fnum formats a coordinate with the shortest representation that
// round-trips, so output is stable and compact. Non-finite values
// serialize as +Inf/-Inf/NaN; they are invalid SVG but preserved
// rather than masked (unclipped geometry can produce them).
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		fmt.Fprintf(b, " %s=%q", a.Key, a.Value)
	}
}

// String serializes the document.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"%s %s %s %s\">\n",
		d.Width, d.Height,
		fnum(d.ViewBox.MinX), fnum(d.ViewBox.MinY), fnum(d.ViewBox.Width), fnum(d.ViewBox.Height))

	for _, g := range d.Groups {
		b.WriteString("<g")
		writeAttrs(&b, g.Attrs)
		b.WriteString(">\n")
		for _, p := range g.Polygons {
			pts := make([]string, len(p.Points))
			for i, pt := range p.Points {
				pts[i] = fnum(pt.X) + "," + fnum(pt.Y)
			}
			b.WriteString("<polygon")
			writeAttrs(&b, p.Attrs)
			fmt.Fprintf(&b, " points=\"%s\"/>\n", strings.Join(pts, " "))
		}
		b.WriteString("</g>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// WriteFile writes the document to path. Any failure is fatal to the
// run; there is no partial output or retry.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svgdoc: create %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("svgdoc: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("svgdoc: close %s: %w", path, err)
	}
	return nil
}
