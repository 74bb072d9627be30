// Package loaders reads external triangle-mesh files. The only format
// is OFF: an indexed vertex/triangle file carrying one triangle per
// record referencing shared vertices. Loading failures are fatal for
// the whole run; no partial mesh is produced.
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/hedron/pkg/geom"
)

// LoadOFF reads an OFF file from disk and returns its faces, each
// carrying its own three points (shared-vertex topology is flattened).
func LoadOFF(filename string) ([]geom.Face, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open OFF file: %w", err)
	}
	defer file.Close()

	faces, err := ReadOFF(file)
	if err != nil {
		return nil, fmt.Errorf("loaders: %s: %w", filename, err)
	}
	return faces, nil
}

// ReadOFF parses OFF data from r.
func ReadOFF(r io.Reader) ([]geom.Face, error) {
	sc := newLineScanner(r)

	header, err := sc.next()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	counts := header
	if strings.EqualFold(counts[0], "OFF") {
		// Counts may share the header line or follow on the next one.
		if len(counts) > 1 {
			counts = counts[1:]
		} else {
			counts, err = sc.next()
			if err != nil {
				return nil, fmt.Errorf("read counts: %w", err)
			}
		}
	}
	if len(counts) < 2 {
		return nil, fmt.Errorf("malformed counts line %q", strings.Join(counts, " "))
	}
	vertexCount, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid vertex count %q", counts[0])
	}
	faceCount, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid face count %q", counts[1])
	}
	if vertexCount < 0 || faceCount < 0 {
		return nil, fmt.Errorf("negative element count")
	}

	vertices := make([]geom.Vec3, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		fields, err := sc.next()
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("vertex %d: expected 3 coordinates, got %d", i, len(fields))
		}
		var v geom.Vec3
		if v.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if v.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if v.Z, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		vertices = append(vertices, v)
	}

	faces := make([]geom.Face, 0, faceCount)
	for i := 0; i < faceCount; i++ {
		fields, err := sc.next()
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("face %d: invalid vertex count %q", i, fields[0])
		}
		if n != 3 {
			return nil, fmt.Errorf("face %d: only triangular faces supported, got %d vertices", i, n)
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("face %d: expected 3 indices, got %d", i, len(fields)-1)
		}
		var face geom.Face
		for j := 0; j < 3; j++ {
			idx, err := strconv.Atoi(fields[1+j])
			if err != nil {
				return nil, fmt.Errorf("face %d: invalid index %q", i, fields[1+j])
			}
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: index %d out of range [0,%d)", i, idx, len(vertices))
			}
			face[j] = vertices[idx]
		}
		faces = append(faces, face)
	}

	return faces, nil
}

// lineScanner yields the fields of each non-blank, non-comment line.
type lineScanner struct {
	sc *bufio.Scanner
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

func (l *lineScanner) next() ([]string, error) {
	for l.sc.Scan() {
		line := strings.TrimSpace(l.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := l.sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of file")
}
