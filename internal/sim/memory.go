// Completion: 100% - Module complete
package sim

import (
	"encoding/binary"
	"fmt"
)

// Memory is a flat little-endian address space starting at zero
type Memory struct {
	data []byte
}

// NewMemory returns size bytes of zeroed memory
func NewMemory(size int) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the number of addressable bytes
func (m *Memory) Size() int {
	return len(m.data)
}

func (m *Memory) span(addr uint64, n int) ([]byte, error) {
	if addr > uint64(len(m.data)) || uint64(len(m.data))-addr < uint64(n) {
		return nil, fmt.Errorf("%w: %d bytes at 0x%x", ErrFault, n, addr)
	}
	return m.data[addr : addr+uint64(n)], nil
}

// Read64 reads a doubleword
func (m *Memory) Read64(addr uint64) (uint64, error) {
	b, err := m.span(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Write64 writes a doubleword
func (m *Memory) Write64(addr, v uint64) error {
	b, err := m.span(addr, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// Read128 reads a quadword as two 64-bit lanes, lane 0 at the lower address
func (m *Memory) Read128(addr uint64) ([2]uint64, error) {
	lo, err := m.Read64(addr)
	if err != nil {
		return [2]uint64{}, err
	}
	hi, err := m.Read64(addr + 8)
	if err != nil {
		return [2]uint64{}, err
	}
	return [2]uint64{lo, hi}, nil
}

// Write128 writes two 64-bit lanes
func (m *Memory) Write128(addr uint64, v [2]uint64) error {
	if _, err := m.span(addr, 16); err != nil {
		return err
	}
	_ = m.Write64(addr, v[0])
	return m.Write64(addr+8, v[1])
}
