//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostControls maps held keys onto simulated inputs:
// Space aims the laser at the target, S pulls SET low, C pulls CNT low.
type hostControls struct{}

func (hostControls) poll(sim Simulator) {
	edge := func(key ebiten.Key, press, release Action) {
		if inpututil.IsKeyJustPressed(key) {
			sim.Apply(press)
		}
		if inpututil.IsKeyJustReleased(key) {
			sim.Apply(release)
		}
	}
	edge(ebiten.KeySpace, ActionLaserOn, ActionLaserOff)
	edge(ebiten.KeyS, ActionPullSet, ActionReleaseSet)
	edge(ebiten.KeyC, ActionPullCnt, ActionReleaseCnt)
}
