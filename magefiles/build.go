//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binary = "bin/terrainview"

type Build mg.Namespace

// Viewer compiles the terrain viewer into bin/.
func (Build) Viewer() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/terrainview"), withStream())
	return err
}

// Vet runs go vet over the module.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

type Test mg.Namespace

// Unit runs the tests of the packages that need neither a display nor GL.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test",
		"./internal/terrain/...",
		"./internal/heightmap/...",
		"./internal/command/...",
		"./internal/config/...",
		"./internal/logger/...",
		"./internal/viewer/...",
		"./internal/engine/camera/...",
		"./pkg/...",
	), withStream())
	return err
}

// All runs every test, including the ones that link SDL2 and OpenGL.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
