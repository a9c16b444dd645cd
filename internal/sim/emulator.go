// Completion: 100% - Module complete
package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefined is returned for a word outside the supported subset
	ErrUndefined = errors.New("undefined instruction")
	// ErrFault is returned for a memory access outside Memory
	ErrFault = errors.New("memory fault")
	// ErrLimit is returned when the instruction budget is exhausted
	ErrLimit = errors.New("instruction limit reached")
)

// RoundingMode is FPCR.RMode
type RoundingMode uint8

const (
	RoundNearest RoundingMode = iota // RN, the reset value
	RoundPlusInf                     // RP
	RoundMinusInf                    // RM
	RoundZero                        // RZ
)

// Emulator executes a word stream against registers and memory
type Emulator struct {
	regFile     *RegFile
	simdRegFile *SIMDRegFile
	memory      *Memory

	// FPCR.RMode, consulted by FRINTI, SCVTF and UCVTF
	rmode RoundingMode

	pc               int // word index of the next instruction
	cur              int // word index of the executing instruction
	maxInstructions  uint64
	instructionCount uint64
}

// EmulatorOption configures an Emulator
type EmulatorOption func(*Emulator)

// WithMemorySize sets the size of the flat address space (default 64 KiB)
func WithMemorySize(n int) EmulatorOption {
	return func(e *Emulator) {
		e.memory = NewMemory(n)
	}
}

// WithRoundingMode sets FPCR.RMode
func WithRoundingMode(m RoundingMode) EmulatorOption {
	return func(e *Emulator) {
		e.rmode = m
	}
}

// WithMaxInstructions bounds the number of executed instructions
func WithMaxInstructions(n uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = n
	}
}

// NewEmulator returns an emulator with SP at the top of memory
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:         &RegFile{},
		simdRegFile:     &SIMDRegFile{},
		memory:          NewMemory(64 << 10),
		maxInstructions: 1 << 20,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.regFile.SP = uint64(e.memory.Size())
	return e
}

// RegFile returns the general-purpose state
func (e *Emulator) RegFile() *RegFile { return e.regFile }

// SIMDRegFile returns the vector registers
func (e *Emulator) SIMDRegFile() *SIMDRegFile { return e.simdRegFile }

// Memory returns the address space
func (e *Emulator) Memory() *Memory { return e.memory }

// InstructionCount returns how many instructions have executed
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// SetRoundingMode changes FPCR.RMode
func (e *Emulator) SetRoundingMode(m RoundingMode) { e.rmode = m }

// Run executes program from its first word until control leaves it.
// It returns the word index control left at, which is len(program) on a
// fall-through exit. On error it returns the index of the failing word.
func (e *Emulator) Run(program []uint32) (int, error) {
	e.pc = 0
	for e.pc >= 0 && e.pc < len(program) {
		if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
			return e.pc, ErrLimit
		}
		if err := e.Step(program[e.pc]); err != nil {
			return e.cur, fmt.Errorf("word %d (%08x): %w", e.cur, program[e.cur], err)
		}
		e.instructionCount++
	}
	return e.pc, nil
}

// Step decodes and executes one word and advances the program counter
func (e *Emulator) Step(word uint32) error {
	e.cur = e.pc
	def := Decode(word)
	if def == nil {
		return ErrUndefined
	}
	e.pc++
	return def.exec(e, word)
}
