package intcode

import "fmt"

type Opcode int64

const (
	Add         Opcode = 1  // add
	Multiply    Opcode = 2  // multiply
	Input       Opcode = 3  // input
	Output      Opcode = 4  // output
	JumpIfTrue  Opcode = 5  // jump_if_true
	JumpIfFalse Opcode = 6  // jump_if_false
	LessThan    Opcode = 7  // less_than
	Equals      Opcode = 8  // equals
	Halt        Opcode = 99 // halt
)

// Mode selects how a read-parameter word is interpreted
type Mode uint8

const (
	Positional Mode = 0 // the word is an address to dereference
	Immediate  Mode = 1 // the word is the value itself
)

func (m Mode) String() string {
	switch m {
	case Positional:
		return "positional"
	case Immediate:
		return "immediate"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// opcodeInfo a row of the opcode table
type opcodeInfo struct {
	name        string
	length      int64 // instruction word length including the opcode word
	readParams  int   // parameters resolved to values
	destination bool  // whether the last parameter is a write address
}

var opcodeTable = map[Opcode]opcodeInfo{
	Add:         {name: "add", length: 4, readParams: 2, destination: true},
	Multiply:    {name: "mul", length: 4, readParams: 2, destination: true},
	Input:       {name: "in", length: 2, readParams: 0, destination: true},
	Output:      {name: "out", length: 2, readParams: 1},
	JumpIfTrue:  {name: "jnz", length: 3, readParams: 2},
	JumpIfFalse: {name: "jz", length: 3, readParams: 2},
	LessThan:    {name: "lt", length: 4, readParams: 2, destination: true},
	Equals:      {name: "eq", length: 4, readParams: 2, destination: true},
	Halt:        {name: "halt", length: 1},
}

func (op Opcode) IsValid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Length the number of words the instruction occupies, including the opcode word
func (op Opcode) Length() int64 {
	return opcodeTable[op].length
}

// ReadParams the number of parameters resolved through their mode
func (op Opcode) ReadParams() int {
	return opcodeTable[op].readParams
}

// HasDestination reports whether the final parameter is a write address
func (op Opcode) HasDestination() bool {
	return opcodeTable[op].destination
}

func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("opcode(%d)", int64(op))
}
