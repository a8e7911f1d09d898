package hal

import (
	"errors"
	"sync"
)

// ErrSensorOff is returned by Read while the sensor is shut down.
var ErrSensorOff = errors.New("sensor: powered down")

// simSensor is a colour sensor model: a fixed ambient level per channel,
// plus a per-channel gain while a laser spot is on the target.
type simSensor struct {
	mu      sync.Mutex
	on      bool
	laser   bool
	ambient [4]uint16
	gain    [4]uint16
}

func newSimSensor() *simSensor {
	s := &simSensor{}
	s.ambient[ColorGreen] = 300
	s.ambient[ColorRed] = 250
	s.ambient[ColorBlue] = 200
	s.ambient[ColorClear] = 800
	s.gain[ColorGreen] = 40
	s.gain[ColorRed] = 600
	s.gain[ColorBlue] = 20
	s.gain[ColorClear] = 650
	return s
}

func (s *simSensor) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = true
	return nil
}

func (s *simSensor) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = false
	return nil
}

func (s *simSensor) Read(ch ColorChannel) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.on {
		return 0, ErrSensorOff
	}
	if int(ch) >= len(s.ambient) {
		return 0, errors.New("sensor: invalid channel")
	}
	v := s.ambient[ch]
	if s.laser {
		v += s.gain[ch]
	}
	return v, nil
}

func (s *simSensor) setLaser(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.laser = on
}

func (s *simSensor) powered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}
