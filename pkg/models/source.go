package models

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Face references vertices (and optionally texture coordinates) by 0-based
// index. Three indices make a triangle, four make a quad.
type Face struct {
	V []int
	T []int // nil when the face has no texture coordinates
}

// Source is an indexed mesh description produced by a file parser or a
// procedural generator.
type Source interface {
	Vertices() []math3d.Vec3
	TexCoords() []math3d.Vec2
	Faces() []Face
}

// FromSource builds a mesh from an indexed source. Quads are fanned into
// (v0,v1,v2) and (v0,v2,v3). Any out-of-range index fails the whole build.
func FromSource(name string, src Source, opts LoadOptions) (*Mesh, error) {
	verts := src.Vertices()
	texs := src.TexCoords()

	if opts.Recenter && len(verts) > 0 {
		verts = recenterPoints(verts)
	}

	var tris []Triangle
	for i, f := range src.Faces() {
		if len(f.V) != 3 && len(f.V) != 4 {
			return nil, fmt.Errorf("face %d has %d vertices, want 3 or 4: %w", i, len(f.V), ErrMalformed)
		}
		if f.T != nil && len(f.T) != len(f.V) {
			return nil, fmt.Errorf("face %d has %d texture indices for %d vertices: %w", i, len(f.T), len(f.V), ErrMalformed)
		}

		var p [4]math3d.Vec3
		var t [4]math3d.Vec2
		for k, vi := range f.V {
			if vi < 0 || vi >= len(verts) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d): %w", i, vi, len(verts), ErrMalformed)
			}
			p[k] = verts[vi]
			t[k] = math3d.V2(0, 0)
			if f.T == nil {
				continue
			}
			ti := f.T[k]
			if ti < 0 || ti >= len(texs) {
				return nil, fmt.Errorf("face %d: texture index %d out of range [0,%d): %w", i, ti, len(texs), ErrMalformed)
			}
			t[k] = texs[ti]
		}

		tris = append(tris, NewTexturedTriangle(p[0], p[1], p[2], t[0], t[1], t[2]))
		if len(f.V) == 4 {
			tris = append(tris, NewTexturedTriangle(p[0], p[2], p[3], t[0], t[2], t[3]))
		}
	}

	return &Mesh{Name: name, tris: tris}, nil
}

// recenterPoints returns the points shifted by minus their mean.
func recenterPoints(pts []math3d.Vec3) []math3d.Vec3 {
	var sx, sy, sz float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
		sz += p.Z
	}
	n := float64(len(pts))
	cx, cy, cz := sx/n, sy/n, sz/n

	out := make([]math3d.Vec3, len(pts))
	for i, p := range pts {
		out[i] = math3d.V3(p.X-cx, p.Y-cy, p.Z-cz)
	}
	return out
}

// indexedMesh is the in-memory Source used by the parsers.
type indexedMesh struct {
	verts []math3d.Vec3
	texs  []math3d.Vec2
	faces []Face
}

func (m *indexedMesh) Vertices() []math3d.Vec3  { return m.verts }
func (m *indexedMesh) TexCoords() []math3d.Vec2 { return m.texs }
func (m *indexedMesh) Faces() []Face            { return m.faces }
