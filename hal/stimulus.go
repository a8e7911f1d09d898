package hal

import "fmt"

// Action is an external stimulus applied to a simulated board.
type Action uint8

const (
	ActionLaserOn Action = iota + 1
	ActionLaserOff
	ActionPullSet
	ActionReleaseSet
	ActionPullCnt
	ActionReleaseCnt
)

var actionNames = [...]string{
	ActionLaserOn:    "laser_on",
	ActionLaserOff:   "laser_off",
	ActionPullSet:    "pull_set",
	ActionReleaseSet: "release_set",
	ActionPullCnt:    "pull_cnt",
	ActionReleaseCnt: "release_cnt",
}

func (a Action) String() string {
	if int(a) < len(actionNames) && actionNames[a] != "" {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction maps a script keyword to an Action.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name != "" && name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("hal: unknown action %q", s)
}

// Stimulus schedules an Action at a time offset in milliseconds from start.
type Stimulus struct {
	AtMs   uint32
	Action Action
}

// Simulator is implemented by HALs whose inputs can be driven from outside.
type Simulator interface {
	Apply(a Action)
}
