// Package terrain builds and transforms triangle-strip meshes from heightmap samples.
//
// A Terrain owns two meshes: the original, built once from the heightmap and never
// modified, and the current one, which is replaced wholesale by every transition of
// the processing pipeline (reduce, smooth along X, smooth along Z).
package terrain

import "errors"

// Valid ranges for user supplied processing parameters.
const (
	MinSkipSize = 1
	MaxSkipSize = 300

	MinStepSize float32 = 0.01
	MaxStepSize float32 = 1.0
)

// MaxVertices bounds the size of a generated mesh. Indices are uint32 and a
// fully smoothed 300x300 grid at the smallest step size would not fit.
const MaxVertices = 1 << 26

var (
	// ErrSkipSizeOutOfRange is returned when a skip size is outside [MinSkipSize, MaxSkipSize].
	ErrSkipSizeOutOfRange = errors.New("skip size out of range")
	// ErrSkipSizeTooLarge is returned when reducing would leave fewer than 2 points on an axis.
	ErrSkipSizeTooLarge = errors.New("skip size leaves fewer than 2 points on an axis")
	// ErrStepSizeOutOfRange is returned when a step size is not in (0, 1].
	ErrStepSizeOutOfRange = errors.New("step size out of range")
	// ErrMeshTooLarge is returned when a transition would exceed MaxVertices.
	ErrMeshTooLarge = errors.New("mesh too large")
)

// Samples is a 2D grid of normalized elevations, addressed by column and row.
type Samples interface {
	Size() (width, height int)
	At(col, row int) float32
}

// Mesh is a width x height grid of vertices with a triangle-strip index buffer.
//
// Vertices are stored flat, three floats (x, y, z) per vertex, in row-major order.
// Indices are always derived from Width and Height by StripIndices.
type Mesh struct {
	Width    int
	Height   int
	Vertices []float32
	Indices  []uint32
}

// Axis selects the grid axis a smoothing pass runs along.
type Axis int

const (
	// AxisX runs along each row (columns grow).
	AxisX Axis = iota
	// AxisZ runs along each column (rows grow).
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisZ:
		return "Z"
	}
	return "unknown"
}

// State is the position of a Terrain in its processing pipeline.
type State int

const (
	StateBaseline State = iota
	StateReduced
	StateSmoothedX
	StateSmoothedZ
)

func (s State) String() string {
	switch s {
	case StateBaseline:
		return "baseline"
	case StateReduced:
		return "reduced"
	case StateSmoothedX:
		return "smoothed-x"
	case StateSmoothedZ:
		return "smoothed-z"
	}
	return "unknown"
}

// Target identifies one of the two GPU buffer sets fed by a Terrain.
type Target int

const (
	TargetOriginal Target = iota
	TargetCurrent
)

func (t Target) String() string {
	if t == TargetOriginal {
		return "original"
	}
	return "current"
}

// Uploader receives mesh data whenever a buffer set has to be refreshed.
// Implementations own the GPU handles; the mesh must not be retained.
type Uploader interface {
	Upload(target Target, m *Mesh) error
}

// Stats summarizes a Terrain for display.
type Stats struct {
	State          State
	OriginalWidth  int
	OriginalHeight int
	Width          int
	Height         int
	VertexCount    int
	IndexCount     int
}
