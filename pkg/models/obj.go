package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string, opts LoadOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path), opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return mesh, nil
}

// ParseOBJ reads the v, vt and f records of an OBJ stream. Other records
// (normals, groups, materials) are skipped. Texture v is flipped (v' = 1-v)
// on ingestion. Face indices are 1-based in the file.
func ParseOBJ(r io.Reader, name string, opts LoadOptions) (*Mesh, error) {
	src, err := parseOBJSource(r)
	if err != nil {
		return nil, err
	}
	return FromSource(name, src, opts)
}

func parseOBJSource(r io.Reader) (*indexedMesh, error) {
	src := &indexedMesh{}
	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			nums, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			src.verts = append(src.verts, math3d.V3(nums[0], nums[1], nums[2]))

		case "vt":
			nums, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			src.texs = append(src.texs, math3d.V2(nums[0], 1-nums[1]))

		case "f":
			face, err := parseFace(fields[1:], len(src.verts), len(src.texs))
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			src.faces = append(src.faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return src, nil
}

// parseFloats parses exactly the first n fields; extra fields (such as a
// vertex w) are ignored.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d: %w", n, len(fields), ErrMalformed)
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", fields[i], ErrMalformed)
		}
		out[i] = v
	}
	return out, nil
}

// parseFace parses "i", "i/t", "i/t/n" and "i//n" references and converts
// them to 0-based indices. Either every reference has a texture index or none does.
func parseFace(fields []string, nVerts, nTexs int) (Face, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return Face{}, fmt.Errorf("want 3 or 4 vertices, got %d: %w", len(fields), ErrMalformed)
	}

	var face Face
	for i, ref := range fields {
		parts := strings.Split(ref, "/")

		vi, err := parseIndex(parts[0], nVerts)
		if err != nil {
			return Face{}, fmt.Errorf("vertex %q: %w", ref, err)
		}
		face.V = append(face.V, vi)

		hasTex := len(parts) > 1 && parts[1] != ""
		if i > 0 && hasTex != (face.T != nil) {
			return Face{}, fmt.Errorf("mixed texture references in %q: %w", ref, ErrMalformed)
		}
		if !hasTex {
			continue
		}
		ti, err := parseIndex(parts[1], nTexs)
		if err != nil {
			return Face{}, fmt.Errorf("texture %q: %w", ref, err)
		}
		face.T = append(face.T, ti)
	}
	return face, nil
}

// parseIndex converts a 1-based OBJ index to 0-based and range-checks it
// against the records read so far.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformed)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("index %d out of range [1,%d]: %w", i, n, ErrMalformed)
	}
	return i - 1, nil
}
