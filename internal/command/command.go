// Package command defines the viewer's discrete commands and their rate limiting.
package command

import "time"

// Command is a discrete user action.
type Command int

const (
	None Command = iota
	Quit
	Reset
	Advance
	ToggleOriginal
	DrawStrip
	DrawPoints
	Screenshot
)

var names = map[Command]string{
	None:           "none",
	Quit:           "quit",
	Reset:          "reset",
	Advance:        "advance",
	ToggleOriginal: "toggle-original",
	DrawStrip:      "draw-strip",
	DrawPoints:     "draw-points",
	Screenshot:     "screenshot",
}

func (c Command) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "unknown"
}

// DefaultCooldown is the minimum time between two firings of a throttled command.
const DefaultCooldown = time.Second

// Throttle rate-limits commands that are triggered while a key is held.
// Each command has its own cooldown window; commands not registered pass through.
type Throttle struct {
	cooldown time.Duration
	limited  map[Command]bool
	last     map[Command]time.Time
}

// NewThrottle creates a throttle applying cooldown to the given commands.
func NewThrottle(cooldown time.Duration, limited ...Command) *Throttle {
	t := &Throttle{
		cooldown: cooldown,
		limited:  make(map[Command]bool, len(limited)),
		last:     make(map[Command]time.Time, len(limited)),
	}
	for _, c := range limited {
		t.limited[c] = true
	}
	return t
}

// Allow reports whether cmd may fire at now, and records the firing if so.
func (t *Throttle) Allow(cmd Command, now time.Time) bool {
	if !t.limited[cmd] {
		return true
	}
	if last, ok := t.last[cmd]; ok && now.Sub(last) <= t.cooldown {
		return false
	}
	t.last[cmd] = now
	return true
}

// Filter returns the commands in cmds that are allowed at now, in order.
func (t *Throttle) Filter(cmds []Command, now time.Time) []Command {
	out := cmds[:0]
	for _, c := range cmds {
		if t.Allow(c, now) {
			out = append(out, c)
		}
	}
	return out
}
