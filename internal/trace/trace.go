// Package trace provides structured event logging on top of hal.Logger.
package trace

import (
	"fmt"
	"sync/atomic"
	"time"

	"juicy/hal"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger used by the application layers.
type Logger = logiface.Logger[*stumpy.Event]

// Tracer couples a Logger with a limiter for repetitive warnings.
type Tracer struct {
	L *Logger

	limit      *catrate.Limiter
	suppressed atomic.Uint64
}

// DefaultRates bounds warnings per category to 1/s and 10/min.
var DefaultRates = map[time.Duration]int{
	time.Second: 1,
	time.Minute: 10,
}

// New returns a Tracer writing one JSON object per line to out.
func New(out hal.Logger, level logiface.Level) *Tracer {
	return NewWithRates(out, level, DefaultRates)
}

// NewWithRates is New with custom warning limits. Nil rates disable
// limiting.
func NewWithRates(out hal.Logger, level logiface.Level, rates map[time.Duration]int) *Tracer {
	w := logiface.WriterFunc[*stumpy.Event](func(e *stumpy.Event) error {
		b := e.Bytes()
		line := make([]byte, 0, len(b)+1)
		line = append(line, b...)
		line = append(line, '}')
		out.WriteLineBytes(line)
		return nil
	})
	t := &Tracer{
		L: stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithTimeField("")),
			stumpy.L.WithWriter(w),
			stumpy.L.WithLevel(level),
		),
	}
	if len(rates) != 0 {
		t.limit = catrate.NewLimiter(rates)
	}
	return t
}

// Warn logs a warning for category unless that category is over its rate.
// It reports whether the line was written.
func (t *Tracer) Warn(category, msg string, fields ...Field) bool {
	if t == nil {
		return false
	}
	if t.limit != nil {
		if _, ok := t.limit.Allow(category); !ok {
			t.suppressed.Add(1)
			return false
		}
	}
	b := t.L.Warning().Str("kind", category)
	for _, f := range fields {
		b = f(b)
	}
	if n := t.suppressed.Swap(0); n != 0 {
		b = b.Uint64("suppressed", n)
	}
	b.Log(msg)
	return true
}

// Suppressed returns the number of warnings dropped since the last one
// was written.
func (t *Tracer) Suppressed() uint64 { return t.suppressed.Load() }

// Field adds a value to a warning.
type Field func(b *logiface.Builder[*stumpy.Event]) *logiface.Builder[*stumpy.Event]

func Uint64(key string, v uint64) Field {
	return func(b *logiface.Builder[*stumpy.Event]) *logiface.Builder[*stumpy.Event] {
		return b.Uint64(key, v)
	}
}

func Str(key, v string) Field {
	return func(b *logiface.Builder[*stumpy.Event]) *logiface.Builder[*stumpy.Event] {
		return b.Str(key, v)
	}
}

// ParseLevel maps a level keyword (as printed by logiface.Level) to a Level.
func ParseLevel(s string) (logiface.Level, error) {
	for l := logiface.LevelDisabled; l <= logiface.LevelTrace; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	switch s {
	case "warn":
		return logiface.LevelWarning, nil
	case "error":
		return logiface.LevelError, nil
	}
	return logiface.LevelDisabled, fmt.Errorf("trace: unknown level %q", s)
}
