package hal

import "fmt"

// TCS3414 register map.
const (
	tcs3414Addr = 0x39

	tcs3414Cmd     = 0x80
	tcs3414CmdWord = 0x20

	tcs3414RegControl = 0x00
	tcs3414RegTiming  = 0x01
	tcs3414RegGain    = 0x07
	tcs3414RegData    = 0x10

	tcs3414Power = 0x01
	tcs3414ADCEn = 0x02
)

// i2cBus is the transfer primitive shared by machine.I2C and test fakes.
type i2cBus interface {
	Tx(addr uint16, w, r []byte) error
}

// tcs3414 drives a TAOS TCS3414 colour sensor.
type tcs3414 struct {
	bus i2cBus
	buf [2]byte
}

func newTCS3414(bus i2cBus) *tcs3414 {
	return &tcs3414{bus: bus}
}

func (s *tcs3414) write(reg, v uint8) error {
	if err := s.bus.Tx(tcs3414Addr, []byte{tcs3414Cmd | reg, v}, nil); err != nil {
		return fmt.Errorf("tcs3414: write %#02x: %w", reg, err)
	}
	return nil
}

// Init powers the sensor and enables free-running integration at 1x gain.
func (s *tcs3414) Init() error {
	if err := s.write(tcs3414RegControl, tcs3414Power); err != nil {
		return err
	}
	if err := s.write(tcs3414RegTiming, 0x00); err != nil {
		return err
	}
	if err := s.write(tcs3414RegGain, 0x00); err != nil {
		return err
	}
	return s.write(tcs3414RegControl, tcs3414Power|tcs3414ADCEn)
}

func (s *tcs3414) Shutdown() error {
	return s.write(tcs3414RegControl, 0x00)
}

func (s *tcs3414) Read(ch ColorChannel) (uint16, error) {
	if ch > ColorClear {
		return 0, fmt.Errorf("tcs3414: invalid channel %d", ch)
	}
	reg := uint8(tcs3414RegData + 2*ch)
	if err := s.bus.Tx(tcs3414Addr, []byte{tcs3414Cmd | tcs3414CmdWord | reg}, s.buf[:]); err != nil {
		return 0, fmt.Errorf("tcs3414: read %#02x: %w", reg, err)
	}
	return uint16(s.buf[0]) | uint16(s.buf[1])<<8, nil
}
