package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word   int64
		opcode Opcode
		modes  []Mode
	}{
		{word: 1, opcode: Add, modes: []Mode{Positional, Positional}},
		{word: 1002, opcode: Multiply, modes: []Mode{Positional, Immediate}},
		{word: 1101, opcode: Add, modes: []Mode{Immediate, Immediate}},
		{word: 102, opcode: Multiply, modes: []Mode{Immediate, Positional}},
		{word: 3, opcode: Input, modes: []Mode{}},
		{word: 104, opcode: Output, modes: []Mode{Immediate}},
		{word: 1005, opcode: JumpIfTrue, modes: []Mode{Positional, Immediate}},
		{word: 1106, opcode: JumpIfFalse, modes: []Mode{Immediate, Immediate}},
		{word: 1107, opcode: LessThan, modes: []Mode{Immediate, Immediate}},
		{word: 1008, opcode: Equals, modes: []Mode{Positional, Immediate}},
		// the destination mode digit is ignored
		{word: 11101, opcode: Add, modes: []Mode{Immediate, Immediate}},
		{word: 99, opcode: Halt, modes: []Mode{}},
	}
	for _, tc := range tests {
		t.Run(FormatProgram([]int64{tc.word}), func(t *testing.T) {
			opcode, modes, err := Decode(tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.opcode, opcode)
			assert.Equal(t, tc.modes, modes)
		})
	}
}

func TestDecode_UnknownOpcode(t *testing.T) {
	for _, word := range []int64{0, 9, 42, 98, 100, -1, -99} {
		_, _, err := Decode(word)
		var unknown *ErrUnknownOpcode
		require.ErrorAs(t, err, &unknown, "word %d", word)
		assert.Equal(t, word, unknown.Word)
	}
}

func TestDecode_UnknownMode(t *testing.T) {
	_, _, err := Decode(201)
	var unknown *ErrUnknownMode
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, Mode(2), unknown.Mode)

	_, _, err = Decode(1901)
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, Mode(9), unknown.Mode)
}

func TestOpcodeTable(t *testing.T) {
	tests := []struct {
		opcode      Opcode
		length      int64
		readParams  int
		destination bool
	}{
		{Add, 4, 2, true},
		{Multiply, 4, 2, true},
		{Input, 2, 0, true},
		{Output, 2, 1, false},
		{JumpIfTrue, 3, 2, false},
		{JumpIfFalse, 3, 2, false},
		{LessThan, 4, 2, true},
		{Equals, 4, 2, true},
		{Halt, 1, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.opcode.String(), func(t *testing.T) {
			assert.True(t, tc.opcode.IsValid())
			assert.Equal(t, tc.length, tc.opcode.Length())
			assert.Equal(t, tc.readParams, tc.opcode.ReadParams())
			assert.Equal(t, tc.destination, tc.opcode.HasDestination())
		})
	}
	assert.False(t, Opcode(9).IsValid())
}
