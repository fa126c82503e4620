package editor

import "fmt"

// Action is what a bound key does.
type Action int

const (
	ActionNone Action = iota
	ActionGrow
	ActionShrink
	ActionYawLeft
	ActionYawRight
	ActionRaiseRed
	ActionRaiseGreen
	ActionRaiseBlue
	ActionLowerRed
	ActionLowerGreen
	ActionLowerBlue
	ActionLighten
	ActionDarken
	ActionCyclePalette
	ActionCycleShader
)

var actionNames = map[Action]string{
	ActionGrow:         "grow",
	ActionShrink:       "shrink",
	ActionYawLeft:      "yaw-left",
	ActionYawRight:     "yaw-right",
	ActionRaiseRed:     "raise-red",
	ActionRaiseGreen:   "raise-green",
	ActionRaiseBlue:    "raise-blue",
	ActionLowerRed:     "lower-red",
	ActionLowerGreen:   "lower-green",
	ActionLowerBlue:    "lower-blue",
	ActionLighten:      "lighten",
	ActionDarken:       "darken",
	ActionCyclePalette: "cycle-palette",
	ActionCycleShader:  "cycle-shader",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Held reports whether the action acts every frame while its key is down,
// as opposed to once per press.
func (a Action) Held() bool {
	return a >= ActionGrow && a <= ActionDarken
}

// With returns in with the held flag for a set to down.
func (in Input) With(a Action, down bool) Input {
	switch a {
	case ActionGrow:
		in.Grow = down
	case ActionShrink:
		in.Shrink = down
	case ActionYawLeft:
		in.YawLeft = down
	case ActionYawRight:
		in.YawRight = down
	case ActionRaiseRed:
		in.RaiseRed = down
	case ActionRaiseGreen:
		in.RaiseGreen = down
	case ActionRaiseBlue:
		in.RaiseBlue = down
	case ActionLowerRed:
		in.LowerRed = down
	case ActionLowerGreen:
		in.LowerGreen = down
	case ActionLowerBlue:
		in.LowerBlue = down
	case ActionLighten:
		in.Lighten = down
	case ActionDarken:
		in.Darken = down
	}
	return in
}

// Bindings maps key names, as the input source reports them, to actions.
type Bindings map[string]Action

// DefaultBindings returns the stock key map. Shifted color keys lower a channel.
func DefaultBindings() Bindings {
	return Bindings{
		"w": ActionGrow,
		"s": ActionShrink,
		"a": ActionYawLeft,
		"d": ActionYawRight,
		"r": ActionRaiseRed,
		"g": ActionRaiseGreen,
		"b": ActionRaiseBlue,
		"R": ActionLowerRed,
		"G": ActionLowerGreen,
		"B": ActionLowerBlue,
		"i": ActionLighten,
		"k": ActionDarken,
		"e": ActionCyclePalette,
		"x": ActionCycleShader,
	}
}
