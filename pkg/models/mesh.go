// Package models provides the triangle mesh data model for scanline and the
// loaders that build it.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrMalformed is wrapped by every mesh validation failure.
var ErrMalformed = errors.New("malformed mesh data")

// Mesh is an ordered, immutable sequence of triangles.
// It is built once at load time; per-frame work copies triangles out of it.
type Mesh struct {
	Name string

	tris []Triangle
}

// LoadOptions control load-time processing shared by every mesh source.
type LoadOptions struct {
	// Recenter subtracts the mean vertex position so the mesh sits on the origin.
	Recenter bool
}

// NewMesh creates a mesh holding a copy of tris.
func NewMesh(name string, tris []Triangle) *Mesh {
	m := &Mesh{
		Name: name,
		tris: make([]Triangle, len(tris)),
	}
	copy(m.tris, tris)
	return m
}

// NewMeshFromTuples builds a mesh from per-triangle scalar tuples.
// A tuple holds either 9 values (three xyz positions) or 15 values
// (three positions followed by three uv pairs).
func NewMeshFromTuples(name string, tuples [][]float64) (*Mesh, error) {
	tris := make([]Triangle, 0, len(tuples))
	for i, tu := range tuples {
		if len(tu) != 9 && len(tu) != 15 {
			return nil, fmt.Errorf("tuple %d has %d values, want 9 or 15: %w", i, len(tu), ErrMalformed)
		}
		p0 := math3d.V3(tu[0], tu[1], tu[2])
		p1 := math3d.V3(tu[3], tu[4], tu[5])
		p2 := math3d.V3(tu[6], tu[7], tu[8])
		if len(tu) == 9 {
			tris = append(tris, NewTriangle(p0, p1, p2))
			continue
		}
		tris = append(tris, NewTexturedTriangle(p0, p1, p2,
			math3d.V2(tu[9], tu[10]),
			math3d.V2(tu[11], tu[12]),
			math3d.V2(tu[13], tu[14]),
		))
	}
	return &Mesh{Name: name, tris: tris}, nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.tris)
}

// Triangle returns a copy of triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	return m.tris[i]
}

// Triangles returns a copy of every triangle.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.tris))
	copy(out, m.tris)
	return out
}

// Centroid returns the arithmetic mean of every vertex position.
// Shared vertices count once per triangle that references them.
func (m *Mesh) Centroid() math3d.Vec3 {
	if len(m.tris) == 0 {
		return math3d.Zero3()
	}
	var sx, sy, sz float64
	for _, t := range m.tris {
		for _, p := range t.P {
			sx += p.X
			sy += p.Y
			sz += p.Z
		}
	}
	n := float64(len(m.tris) * 3)
	return math3d.V3(sx/n, sy/n, sz/n)
}

// Recentered returns a new mesh translated so its centroid is the origin.
func (m *Mesh) Recentered() *Mesh {
	c := m.Centroid()
	out := NewMesh(m.Name, m.tris)
	for i := range out.tris {
		for j := range out.tris[i].P {
			p := out.tris[i].P[j]
			out.tris[i].P[j] = math3d.V3(p.X-c.X, p.Y-c.Y, p.Z-c.Z)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	if len(m.tris) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	lo = m.tris[0].P[0]
	hi = lo
	for _, t := range m.tris {
		for _, p := range t.P {
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	return lo, hi
}
