package shader

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names looked up in a shader override directory.
const (
	VertexFile   = "terrain.vert"
	FragmentFile = "terrain.frag"
)

// Source is an uncompiled vertex/fragment pair.
type Source struct {
	Vertex   string
	Fragment string
}

// LoadSource reads terrain.vert and terrain.frag from dir.
func LoadSource(dir string) (Source, error) {
	vert, err := os.ReadFile(filepath.Join(dir, VertexFile))
	if err != nil {
		return Source{}, fmt.Errorf("read vertex shader: %w", err)
	}
	frag, err := os.ReadFile(filepath.Join(dir, FragmentFile))
	if err != nil {
		return Source{}, fmt.Errorf("read fragment shader: %w", err)
	}
	return Source{Vertex: string(vert), Fragment: string(frag)}, nil
}
