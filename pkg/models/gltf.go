package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadGLB loads the triangle primitives of every mesh in a glTF or GLB file.
//
// glTF is right-handed with counter-clockwise front faces. Positions are
// mirrored in Z and each face has its second and third vertex swapped, which
// keeps cross(p1-p0, p2-p0) pointing out of the surface in the left-handed
// frame the renderer uses. glTF texture coordinates already have v=0 at the
// top row, so they are kept as is.
func LoadGLB(path string, opts LoadOptions) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return meshFromDocument(doc, filepath.Base(path), opts)
}

// LoadGLBWithTexture loads a GLB file and returns the mesh plus the first
// decodable image it references. The image is nil when the file has none.
func LoadGLBWithTexture(path string, opts LoadOptions) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := meshFromDocument(doc, filepath.Base(path), opts)
	if err != nil {
		return nil, nil, err
	}

	for _, data := range documentImages(doc, filepath.Dir(path)) {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return mesh, img, nil
		}
	}
	return mesh, nil, nil
}

func meshFromDocument(doc *gltf.Document, name string, opts LoadOptions) (*Mesh, error) {
	src := &indexedMesh{}
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, src); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return FromSource(name, src, opts)
}

// appendGLTFMesh adds the triangle primitives of m to src. Primitives without
// UVs get (0,0) texture coordinates so every face carries a T slice.
func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, src *indexedMesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(src.verts)
		for i, p := range positions {
			src.verts = append(src.verts, math3d.V3(p.X, p.Y, -p.Z))
			uv := math3d.V2(0, 0)
			if i < len(uvs) {
				uv = uvs[i]
			}
			src.texs = append(src.texs, uv)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := base+indices[i], base+indices[i+2], base+indices[i+1]
			src.faces = append(src.faces, Face{
				V: []int{a, b, c},
				T: []int{a, b, c},
			})
		}
	}
	return nil
}

func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	accessor, data, stride, err := accessorBytes(doc, idx, gltf.AccessorVec3, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		b := data[i*stride:]
		out[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	accessor, data, stride, err := accessorBytes(doc, idx, gltf.AccessorVec2, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, accessor.Count)
	for i := range out {
		b := data[i*stride:]
		out[i] = math3d.V2(readFloat32(b), readFloat32(b[4:]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range: %w", idx, ErrMalformed)
	}
	size := 0
	switch doc.Accessors[idx].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("index component type %v: %w", doc.Accessors[idx].ComponentType, ErrMalformed)
	}

	accessor, data, stride, err := accessorBytes(doc, idx, gltf.AccessorScalar, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, accessor.Count)
	for i := range out {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

// accessorBytes resolves an accessor to the slice of its buffer starting at
// the first element, together with the element stride. It checks that the
// last element lies inside the buffer.
func accessorBytes(doc *gltf.Document, idx int, typ gltf.AccessorType, elemSize int) (*gltf.Accessor, []byte, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, nil, 0, fmt.Errorf("accessor %d out of range: %w", idx, ErrMalformed)
	}
	accessor := doc.Accessors[idx]
	if accessor.Type != typ {
		return nil, nil, 0, fmt.Errorf("accessor %d: expected %v, got %v: %w", idx, typ, accessor.Type, ErrMalformed)
	}
	if accessor.BufferView == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d has no buffer view: %w", idx, ErrMalformed)
	}

	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, fmt.Errorf("accessor %d: buffer view %d out of range: %w", idx, *accessor.BufferView, ErrMalformed)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, nil, 0, fmt.Errorf("buffer view %d: buffer %d out of range: %w", *accessor.BufferView, view.Buffer, ErrMalformed)
	}
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, nil, 0, fmt.Errorf("buffer %d has no data: %w", view.Buffer, ErrMalformed)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if start > len(buf.Data) {
		return nil, nil, 0, fmt.Errorf("accessor %d starts past buffer end (%d > %d): %w", idx, start, len(buf.Data), ErrMalformed)
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if end > len(buf.Data) {
			return nil, nil, 0, fmt.Errorf("accessor %d overruns buffer (%d > %d): %w", idx, end, len(buf.Data), ErrMalformed)
		}
	}
	return accessor, buf.Data[start:], stride, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// documentImages returns the encoded bytes of every image in the document,
// in document order. Embedded images come from their buffer view; external
// ones are read relative to dir. Unreadable images are skipped.
func documentImages(doc *gltf.Document, dir string) [][]byte {
	var out [][]byte
	for _, img := range doc.Images {
		switch {
		case img.BufferView != nil:
			if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
				continue
			}
			bv := doc.BufferViews[*img.BufferView]
			if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
				continue
			}
			buf := doc.Buffers[bv.Buffer]
			if buf.Data == nil || bv.ByteOffset+bv.ByteLength > len(buf.Data) {
				continue
			}
			out = append(out, buf.Data[bv.ByteOffset:bv.ByteOffset+bv.ByteLength])
		case img.URI != "":
			data, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				continue
			}
			out = append(out, data)
		}
	}
	return out
}
