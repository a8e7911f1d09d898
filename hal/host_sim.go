//go:build !tinygo

package hal

// Apply drives the simulated board inputs.
func (h *hostHAL) Apply(a Action) {
	switch a {
	case ActionLaserOn:
		h.sensor.setLaser(true)
	case ActionLaserOff:
		h.sensor.setLaser(false)
	case ActionPullSet:
		h.lines[LineSet].pull(true)
	case ActionReleaseSet:
		h.lines[LineSet].pull(false)
	case ActionPullCnt:
		h.lines[LineCnt].pull(true)
	case ActionReleaseCnt:
		h.lines[LineCnt].pull(false)
	default:
		return
	}
	h.logger.WriteLineString("sim: " + a.String())
}

// script replays stimuli in order as simulated time advances.
type script struct {
	steps []Stimulus
	next  int
}

// advance applies every step due at or before nowMs.
func (s *script) advance(sim Simulator, nowMs uint64) {
	for s.next < len(s.steps) && uint64(s.steps[s.next].AtMs) <= nowMs {
		sim.Apply(s.steps[s.next].Action)
		s.next++
	}
}

func (s *script) done() bool { return s.next >= len(s.steps) }
