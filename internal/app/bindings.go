package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrainview/internal/command"
	"github.com/Faultbox/terrainview/internal/engine/input"
)

// Commands that repeat while their key is held, subject to the throttle.
var heldBindings = []struct {
	key sdl.Scancode
	cmd command.Command
}{
	{sdl.SCANCODE_N, command.Advance},
	{sdl.SCANCODE_M, command.ToggleOriginal},
	{sdl.SCANCODE_F12, command.Screenshot},
}

// Commands that fire once per key press.
var pressBindings = map[sdl.Scancode]command.Command{
	sdl.SCANCODE_ESCAPE:    command.Quit,
	sdl.SCANCODE_BACKSPACE: command.Reset,
	sdl.SCANCODE_T:         command.DrawStrip,
	sdl.SCANCODE_P:         command.DrawPoints,
}

// collectCommands gathers this frame's commands in a stable order.
func collectCommands(in *input.Input, dst []command.Command) []command.Command {
	dst = dst[:0]
	for _, e := range in.Events() {
		if e.Type != input.EventKeyDown {
			continue
		}
		if cmd, ok := pressBindings[e.Key]; ok {
			dst = append(dst, cmd)
		}
	}
	for _, b := range heldBindings {
		if in.IsKeyHeld(b.key) {
			dst = append(dst, b.cmd)
		}
	}
	return dst
}
