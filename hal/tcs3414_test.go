package hal

import (
	"bytes"
	"errors"
	"testing"
)

type fakeBus struct {
	writes [][]byte
	reply  []byte
	err    error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if addr != tcs3414Addr {
		return errors.New("wrong address")
	}
	if b.err != nil {
		return b.err
	}
	b.writes = append(b.writes, append([]byte(nil), w...))
	copy(r, b.reply)
	return nil
}

func TestTCS3414Init(t *testing.T) {
	bus := &fakeBus{}
	s := newTCS3414(bus)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	want := [][]byte{
		{0x80, 0x01},
		{0x81, 0x00},
		{0x87, 0x00},
		{0x80, 0x03},
	}
	if len(bus.writes) != len(want) {
		t.Fatalf("writes = %x, want %x", bus.writes, want)
	}
	for i := range want {
		if !bytes.Equal(bus.writes[i], want[i]) {
			t.Fatalf("write[%d] = %x, want %x", i, bus.writes[i], want[i])
		}
	}
}

func TestTCS3414Read(t *testing.T) {
	bus := &fakeBus{reply: []byte{0x34, 0x12}}
	s := newTCS3414(bus)

	v, err := s.Read(ColorRed)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0x1234 {
		t.Fatalf("Read() = %#x, want %#x", v, 0x1234)
	}
	if got := bus.writes[0]; !bytes.Equal(got, []byte{0xB2}) {
		t.Fatalf("command = %x, want b2", got)
	}

	if _, err := s.Read(ColorChannel(9)); err == nil {
		t.Fatal("Read(invalid) err = nil, want error")
	}
}

func TestTCS3414BusError(t *testing.T) {
	boom := errors.New("nack")
	s := newTCS3414(&fakeBus{err: boom})
	if err := s.Shutdown(); !errors.Is(err, boom) {
		t.Fatalf("Shutdown err = %v, want wrapped nack", err)
	}
}
