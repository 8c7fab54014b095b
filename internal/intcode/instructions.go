package intcode

import "fmt"

// Instruction a decoded instruction with its read-parameters already resolved.
// The set of implementations is closed: one per opcode.
type Instruction interface {
	fmt.Stringer
	Opcode() Opcode
	isInstruction()
}

type AddInst struct {
	A, B int64
	Dest int64
}

type MultiplyInst struct {
	A, B int64
	Dest int64
}

type InputInst struct {
	Dest int64
}

type OutputInst struct {
	A int64
}

type JumpIfTrueInst struct {
	Cond, Target int64
}

type JumpIfFalseInst struct {
	Cond, Target int64
}

type LessThanInst struct {
	A, B int64
	Dest int64
}

type EqualsInst struct {
	A, B int64
	Dest int64
}

type HaltInst struct{}

func (AddInst) Opcode() Opcode         { return Add }
func (MultiplyInst) Opcode() Opcode    { return Multiply }
func (InputInst) Opcode() Opcode       { return Input }
func (OutputInst) Opcode() Opcode      { return Output }
func (JumpIfTrueInst) Opcode() Opcode  { return JumpIfTrue }
func (JumpIfFalseInst) Opcode() Opcode { return JumpIfFalse }
func (LessThanInst) Opcode() Opcode    { return LessThan }
func (EqualsInst) Opcode() Opcode      { return Equals }
func (HaltInst) Opcode() Opcode        { return Halt }

func (AddInst) isInstruction()         {}
func (MultiplyInst) isInstruction()    {}
func (InputInst) isInstruction()       {}
func (OutputInst) isInstruction()      {}
func (JumpIfTrueInst) isInstruction()  {}
func (JumpIfFalseInst) isInstruction() {}
func (LessThanInst) isInstruction()    {}
func (EqualsInst) isInstruction()      {}
func (HaltInst) isInstruction()        {}

func (i AddInst) String() string      { return fmt.Sprintf("add %d %d -> [%d]", i.A, i.B, i.Dest) }
func (i MultiplyInst) String() string { return fmt.Sprintf("mul %d %d -> [%d]", i.A, i.B, i.Dest) }
func (i InputInst) String() string    { return fmt.Sprintf("in -> [%d]", i.Dest) }
func (i OutputInst) String() string   { return fmt.Sprintf("out %d", i.A) }
func (i JumpIfTrueInst) String() string {
	return fmt.Sprintf("jnz %d @%d", i.Cond, i.Target)
}
func (i JumpIfFalseInst) String() string {
	return fmt.Sprintf("jz %d @%d", i.Cond, i.Target)
}
func (i LessThanInst) String() string { return fmt.Sprintf("lt %d %d -> [%d]", i.A, i.B, i.Dest) }
func (i EqualsInst) String() string   { return fmt.Sprintf("eq %d %d -> [%d]", i.A, i.B, i.Dest) }
func (HaltInst) String() string       { return "halt" }

type outcomeKind uint8

const (
	advance outcomeKind = iota
	jump
	stop
)

// Outcome what the execution loop does with the pointer after an instruction.
// Exactly one outcome is applied per step.
type Outcome struct {
	kind  outcomeKind
	value int64
}

// Advance moves the pointer forward by n words
func Advance(n int64) Outcome { return Outcome{kind: advance, value: n} }

// JumpTo sets the pointer to address without the default advance
func JumpTo(address int64) Outcome { return Outcome{kind: jump, value: address} }

// Stop ends the run normally
func Stop() Outcome { return Outcome{kind: stop} }

func (o Outcome) String() string {
	switch o.kind {
	case advance:
		return fmt.Sprintf("advance(%d)", o.value)
	case jump:
		return fmt.Sprintf("jump(%d)", o.value)
	}
	return "stop"
}
