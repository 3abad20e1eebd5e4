//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Viewer builds and starts the viewer with the default heightmap.
func (Run) Viewer() error {
	mg.Deps(Build.Viewer)
	fmt.Println("Run viewer...")
	_, err := executeCmd(binary, withStream())
	return err
}

// Dev starts the viewer with debug logging and hot-reloaded shaders from
// internal/engine/renderer/shaders.
func (Run) Dev() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/terrainview",
		"-debug",
		"-windowed",
		"-shaders", "internal/engine/renderer/shaders",
	), withStream())
	return err
}
