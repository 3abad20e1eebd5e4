package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSources(t *testing.T, dir, vert, frag string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VertexFile), []byte(vert), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentFile), []byte(frag), 0644))
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, "#version 410 core\nvoid main(){}", "#version 410 core\nout vec4 c;\nvoid main(){c=vec4(1);}")

	src, err := LoadSource(dir)
	require.NoError(t, err)
	assert.Contains(t, src.Vertex, "void main(){}")
	assert.Contains(t, src.Fragment, "vec4(1)")
}

func TestLoadSourceMissingFragment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VertexFile), []byte("x"), 0644))

	_, err := LoadSource(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragment")
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, "v1", "f1")

	w, err := NewWatcher(dir, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentFile), []byte("f2"), 0644))

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after writing fragment shader")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, "v1", "f1")

	w, err := NewWatcher(dir, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	select {
	case <-w.Changed():
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	assert.Error(t, err)
}
