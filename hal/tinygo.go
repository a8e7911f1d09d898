//go:build tinygo && baremetal

package hal

import "machine"

// Board wiring (Raspberry Pi Pico).
const (
	pinRed  = machine.GP18
	pinBlue = machine.GP19
	pinSet  = machine.GP20
	pinCnt  = machine.GP21
	pinSync = machine.GP22
	pinSDA  = machine.GP16
	pinSCL  = machine.GP17
)

type tinyGoHAL struct {
	logger *uartLogger
	red    *pinLED
	blue   *pinLED
	lines  [lineCount]*pinLine
	sensor *tcs3414
	fb     Framebuffer
	t      *tinyGoTime
}

// New returns the target board HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// TCS3414: I2C0 on GP16 (SDA) / GP17 (SCL), SYNC on GP22.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	red := newPinLED(pinRed)
	blue := newPinLED(pinBlue)

	pinSync.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinSync.Low()

	i2c := machine.I2C0
	i2c.Configure(machine.I2CConfig{SDA: pinSDA, SCL: pinSCL, Frequency: 100_000})

	h := &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		red:    red,
		blue:   blue,
		sensor: newTCS3414(i2c),
		fb:     &stubFramebuffer{w: 240, h: 160, format: PixelFormatRGB565},
		t:      newTinyGoTime(),
	}
	h.lines[LineSet] = newPinLine(pinSet)
	h.lines[LineCnt] = newPinLine(pinCnt)
	return h
}

func (h *tinyGoHAL) Logger() Logger      { return h.logger }
func (h *tinyGoHAL) RedLED() LED         { return h.red }
func (h *tinyGoHAL) BlueLED() LED        { return h.blue }
func (h *tinyGoHAL) Sensor() ColorSensor { return h.sensor }
func (h *tinyGoHAL) Display() Display    { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time          { return h.t }

func (h *tinyGoHAL) Line(id LineID) Line {
	if id >= lineCount {
		return nil
	}
	return h.lines[id]
}
