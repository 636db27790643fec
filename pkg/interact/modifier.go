package interact

import (
	"fmt"
	"runtime"
	"strings"
)

// Modifiers is the modifier key state of a pointer event.
type Modifiers struct {
	Meta  bool
	Ctrl  bool
	Shift bool
	Alt   bool
}

// ActivationModifier reports whether an event carries the modifier that
// turns a click into "open link".
type ActivationModifier func(Modifiers) bool

// MetaModifier activates on the meta (command) key.
func MetaModifier(m Modifiers) bool { return m.Meta }

// CtrlModifier activates on the control key.
func CtrlModifier(m Modifiers) bool { return m.Ctrl }

// PlatformModifier returns the conventional modifier for goos: meta on
// darwin, ctrl elsewhere. An empty goos means the running system.
func PlatformModifier(goos string) ActivationModifier {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "darwin" {
		return MetaModifier
	}
	return CtrlModifier
}

// ModifierByName resolves a configured modifier: "auto", "meta" or "ctrl".
func ModifierByName(name string) (ActivationModifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return PlatformModifier(""), nil
	case "meta", "cmd", "command":
		return MetaModifier, nil
	case "ctrl", "control":
		return CtrlModifier, nil
	default:
		return nil, fmt.Errorf("unknown link modifier %q (want auto, meta or ctrl)", name)
	}
}

// ParseModifiers reads a comma or plus separated list such as "ctrl+shift".
func ParseModifiers(spec string) (Modifiers, error) {
	var mods Modifiers
	for _, key := range strings.FieldsFunc(strings.ToLower(spec), func(r rune) bool {
		return r == ',' || r == '+' || r == ' '
	}) {
		switch key {
		case "meta", "cmd", "command":
			mods.Meta = true
		case "ctrl", "control":
			mods.Ctrl = true
		case "shift":
			mods.Shift = true
		case "alt", "option":
			mods.Alt = true
		default:
			return Modifiers{}, fmt.Errorf("unknown modifier %q", key)
		}
	}
	return mods, nil
}
