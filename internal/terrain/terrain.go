package terrain

import (
	"go.uber.org/zap"
)

// Terrain holds the original heightmap mesh, the mesh produced by the
// processing pipeline, and the pipeline state.
type Terrain struct {
	original *Mesh
	current  *Mesh
	state    State

	uploader Uploader
	pending  [2]bool // indexed by Target
	log      *zap.Logger
}

// Option configures a Terrain.
type Option func(*Terrain)

// WithUploader sets the receiver of buffer refreshes.
func WithUploader(u Uploader) Option {
	return func(t *Terrain) {
		t.uploader = u
	}
}

// WithLogger sets the logger used to report upload failures and transitions.
func WithLogger(log *zap.Logger) Option {
	return func(t *Terrain) {
		if log != nil {
			t.log = log
		}
	}
}

// New builds the original mesh from src. The current mesh starts as a copy of
// it and both buffer sets are uploaded.
func New(src Samples, opts ...Option) *Terrain {
	t := &Terrain{
		state: StateBaseline,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.original = BuildMesh(src)
	t.current = t.original.Clone()

	lo, hi := t.original.Bounds()
	t.log.Info("terrain built",
		zap.Int("width", t.original.Width),
		zap.Int("height", t.original.Height),
		zap.Int("indices", len(t.original.Indices)),
		zap.Float32("minElevation", lo[1]),
		zap.Float32("maxElevation", hi[1]),
	)

	t.pending[TargetOriginal] = true
	t.pending[TargetCurrent] = true
	t.Sync()
	return t
}

// ApplyReduction rebuilds the current mesh from the original at the given
// skip size and moves to StateReduced, whatever the state was before.
// On error the terrain is left untouched.
func (t *Terrain) ApplyReduction(skip int) error {
	m, err := Reduce(t.original, skip)
	if err != nil {
		return err
	}
	t.replace(m, StateReduced)
	t.log.Debug("reduced", zap.Int("skip", skip))
	return nil
}

// Advance runs the next smoothing pass: along X from StateReduced, along Z
// from StateSmoothedX. In any other state it does nothing and returns false.
func (t *Terrain) Advance(step float32) (bool, error) {
	var (
		axis Axis
		next State
	)
	switch t.state {
	case StateReduced:
		axis, next = AxisX, StateSmoothedX
	case StateSmoothedX:
		axis, next = AxisZ, StateSmoothedZ
	default:
		t.log.Debug("advance ignored", zap.Stringer("state", t.state))
		return false, nil
	}

	if err := ValidateStepSize(step); err != nil {
		return false, err
	}
	m, err := SmoothAxis(t.current, axis, step)
	if err != nil {
		return false, err
	}
	t.replace(m, next)
	t.log.Debug("smoothed", zap.Stringer("axis", axis), zap.Float32("step", step))
	return true, nil
}

func (t *Terrain) replace(m *Mesh, next State) {
	t.current = m
	t.state = next
	t.pending[TargetCurrent] = true
	t.Sync()
}

// Sync uploads every buffer set whose contents changed since its last
// successful upload. Failed uploads stay pending and are retried on the next call.
func (t *Terrain) Sync() error {
	if t.uploader == nil {
		t.pending = [2]bool{}
		return nil
	}

	var firstErr error
	for _, target := range []Target{TargetOriginal, TargetCurrent} {
		if !t.pending[target] {
			continue
		}
		m := t.current
		if target == TargetOriginal {
			m = t.original
		}
		if err := t.uploader.Upload(target, m); err != nil {
			t.log.Warn("buffer upload failed, will retry",
				zap.Stringer("target", target),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		t.pending[target] = false
	}
	return firstErr
}

// Pending reports whether target still waits for a successful upload.
func (t *Terrain) Pending(target Target) bool {
	return t.pending[target]
}

// State returns the current pipeline state.
func (t *Terrain) State() State {
	return t.state
}

// Original returns the mesh built from the heightmap. Callers must not modify it.
func (t *Terrain) Original() *Mesh {
	return t.original
}

// Current returns the mesh produced by the last transition. Callers must not modify it.
func (t *Terrain) Current() *Mesh {
	return t.current
}

// Stats returns sizes and state for display.
func (t *Terrain) Stats() Stats {
	return Stats{
		State:          t.state,
		OriginalWidth:  t.original.Width,
		OriginalHeight: t.original.Height,
		Width:          t.current.Width,
		Height:         t.current.Height,
		VertexCount:    t.current.VertexCount(),
		IndexCount:     len(t.current.Indices),
	}
}
