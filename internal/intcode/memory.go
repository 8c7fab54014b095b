package intcode

import "slices"

// Memory a fixed-length sequence of signed words addressed from zero.
// Its length never changes after construction.
type Memory struct {
	words []int64
}

// NewMemory copies words so the machine owns its memory exclusively.
func NewMemory(words []int64) Memory {
	return Memory{words: slices.Clone(words)}
}

func (m *Memory) Len() int {
	return len(m.words)
}

// Read returns the word at address or an out of range fault
func (m *Memory) Read(address int64) (int64, error) {
	if !m.contains(address) {
		return 0, &ErrOutOfRangeAddress{Address: address}
	}
	return m.words[address], nil
}

// Write stores value at address or returns an out of range fault
func (m *Memory) Write(address int64, value int64) error {
	if !m.contains(address) {
		return &ErrOutOfRangeAddress{Address: address}
	}
	m.words[address] = value
	return nil
}

// Snapshot returns a copy of the current contents.
func (m *Memory) Snapshot() []int64 {
	return slices.Clone(m.words)
}

func (m *Memory) contains(address int64) bool {
	return address >= 0 && address < int64(len(m.words))
}
