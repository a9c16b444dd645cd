package unisimd

import (
	"testing"

	"github.com/neonkingfr/UniSIMDc-sub002/internal/sim"
)

// Test memory layout: caller data at dataBase (x0), scratch frame at
// frameBase (x28), stack at the top of the emulator's 64 KiB.
const (
	dataBase  = 0x1000
	frameBase = 0x8000
)

func newTestOut(t *testing.T, opts ...func(*Config)) *Out {
	t.Helper()
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	o, err := NewOut(cfg)
	if err != nil {
		t.Fatalf("NewOut: %v", err)
	}
	return o
}

func nativeInts(c *Config) {
	c.NativeCompare64 = true
	c.NativeMinMax64 = true
}

func words32(ws []Word) []uint32 {
	out := make([]uint32, len(ws))
	for i, w := range ws {
		out[i] = uint32(w)
	}
	return out
}

// newMachine returns an emulator with x0 and x28 pointing at the test regions
func newMachine() *sim.Emulator {
	e := sim.NewEmulator()
	e.RegFile().X[X0] = dataBase
	e.RegFile().X[X28] = frameBase
	return e
}

// execute runs everything o emitted on e
func execute(t *testing.T, o *Out, e *sim.Emulator) {
	t.Helper()
	words, err := o.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := e.Run(words32(words)); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
