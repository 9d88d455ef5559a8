package viewer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidButtonMapping is returned when rotate, pan and dolly are not each bound to exactly one button
var ErrInvalidButtonMapping = errors.New("invalid button mapping")

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonAuxiliary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonAuxiliary:
		return "auxiliary"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Action is what a pointer drag does to the camera
type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionPan
	ActionDolly
)

var actionNames = []string{"none", "rotate", "pan", "dolly"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a name to an action. "zoom" is accepted as an alias for dolly.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "zoom" {
		return ActionDolly, nil
	}
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown camera action %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("unknown camera action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	action, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// ButtonMapping binds each pointer button to a camera action
type ButtonMapping struct {
	Primary   Action `toml:"primary"`
	Secondary Action `toml:"secondary"`
	Auxiliary Action `toml:"auxiliary"`
}

// DefaultButtonMapping rotates with the primary button, pans with the
// secondary one and dollies with the wheel button
func DefaultButtonMapping() ButtonMapping {
	return ButtonMapping{
		Primary:   ActionRotate,
		Secondary: ActionPan,
		Auxiliary: ActionDolly,
	}
}

// ActionFor returns the action bound to b
func (m ButtonMapping) ActionFor(b Button) Action {
	switch b {
	case ButtonPrimary:
		return m.Primary
	case ButtonSecondary:
		return m.Secondary
	case ButtonAuxiliary:
		return m.Auxiliary
	default:
		return ActionNone
	}
}

// Validate checks that rotate, pan and dolly are each reachable from exactly one button
func (m ButtonMapping) Validate() error {
	counts := map[Action]int{}
	for _, a := range []Action{m.Primary, m.Secondary, m.Auxiliary} {
		if a < ActionNone || a > ActionDolly {
			return fmt.Errorf("%w: unknown action %d", ErrInvalidButtonMapping, int(a))
		}
		counts[a]++
	}
	for _, a := range []Action{ActionRotate, ActionPan, ActionDolly} {
		if counts[a] != 1 {
			return fmt.Errorf("%w: %s is bound to %d buttons", ErrInvalidButtonMapping, a, counts[a])
		}
	}
	return nil
}

func (m ButtonMapping) String() string {
	return fmt.Sprintf("primary=%s secondary=%s auxiliary=%s", m.Primary, m.Secondary, m.Auxiliary)
}
