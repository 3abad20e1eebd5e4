package terrain

import "fmt"

// BuildMesh creates a mesh from heightmap samples.
// Vertex (col, row) is placed at (col, sample, row).
func BuildMesh(src Samples) *Mesh {
	width, height := src.Size()
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("terrain: empty sample grid %dx%d", width, height))
	}

	vertices := make([]float32, 0, width*height*3)
	for row := range height {
		for col := range width {
			vertices = append(vertices, float32(col), src.At(col, row), float32(row))
		}
	}

	return newMesh(width, height, vertices)
}

// IndexCount returns the number of strip indices for a width x height grid.
func IndexCount(width, height int) int {
	if width < 1 || height < 2 {
		return 0
	}
	numStrips := height - 1
	return 2*width*numStrips + 2*(numStrips-1)
}

// StripIndices builds a single triangle strip covering a width x height grid.
// Consecutive rows are joined by repeating the last vertex of one strip and the
// first vertex of the next, which yields zero-area triangles between them.
func StripIndices(width, height int) []uint32 {
	indices := make([]uint32, 0, IndexCount(width, height))
	if width < 1 || height < 2 {
		return indices
	}

	w := uint32(width)
	for y := uint32(0); y < uint32(height-1); y++ {
		if y > 0 {
			indices = append(indices, y*w) // first vertex of this strip
		}
		for x := uint32(0); x < w; x++ {
			indices = append(indices, y*w+x, (y+1)*w+x)
		}
		if int(y) < height-2 {
			indices = append(indices, (y+2)*w-1) // last vertex of this strip
		}
	}
	return indices
}

// newMesh wraps vertices in a Mesh and rebuilds its index buffer.
func newMesh(width, height int, vertices []float32) *Mesh {
	if len(vertices) != width*height*3 {
		panic(fmt.Sprintf("terrain: %d vertex floats for %dx%d grid", len(vertices), width, height))
	}
	indices := StripIndices(width, height)
	if len(indices) != IndexCount(width, height) {
		panic(fmt.Sprintf("terrain: built %d indices, want %d", len(indices), IndexCount(width, height)))
	}
	return &Mesh{
		Width:    width,
		Height:   height,
		Vertices: vertices,
		Indices:  indices,
	}
}

// Vertex returns the position of the vertex at (col, row).
func (m *Mesh) Vertex(col, row int) [3]float32 {
	i := (row*m.Width + col) * 3
	return [3]float32{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return m.Width * m.Height
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Width:    m.Width,
		Height:   m.Height,
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	if len(m.Vertices) < 3 {
		return lo, hi
	}
	copy(lo[:], m.Vertices[:3])
	copy(hi[:], m.Vertices[:3])
	for i := 3; i < len(m.Vertices); i += 3 {
		for k := range 3 {
			v := m.Vertices[i+k]
			if v < lo[k] {
				lo[k] = v
			}
			if v > hi[k] {
				hi[k] = v
			}
		}
	}
	return lo, hi
}
