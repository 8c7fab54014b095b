package intcode

import "github.com/eigerco/intcode/internal/safemath"

func (m *Machine) add(ins AddInst) (Outcome, error) {
	v, ok := safemath.Add(ins.A, ins.B)
	if !ok {
		return Outcome{}, &ErrArithmeticOverflow{}
	}
	return m.store(ins.Dest, v, Add)
}

func (m *Machine) multiply(ins MultiplyInst) (Outcome, error) {
	v, ok := safemath.Mul(ins.A, ins.B)
	if !ok {
		return Outcome{}, &ErrArithmeticOverflow{}
	}
	return m.store(ins.Dest, v, Multiply)
}

func (m *Machine) input(ins InputInst) (Outcome, error) {
	v, ok := m.in.pop()
	if !ok {
		return Outcome{}, &ErrBufferUnderflow{}
	}
	return m.store(ins.Dest, v, Input)
}

func (m *Machine) output(ins OutputInst) (Outcome, error) {
	m.out.push(ins.A)
	return Advance(Output.Length()), nil
}

func (m *Machine) jumpIfTrue(ins JumpIfTrueInst) (Outcome, error) {
	return m.branch(ins.Cond != 0, ins.Target, JumpIfTrue)
}

func (m *Machine) jumpIfFalse(ins JumpIfFalseInst) (Outcome, error) {
	return m.branch(ins.Cond == 0, ins.Target, JumpIfFalse)
}

func (m *Machine) lessThan(ins LessThanInst) (Outcome, error) {
	return m.store(ins.Dest, boolToWord(ins.A < ins.B), LessThan)
}

func (m *Machine) equals(ins EqualsInst) (Outcome, error) {
	return m.store(ins.Dest, boolToWord(ins.A == ins.B), Equals)
}

// store writes value to dest and advances past the instruction
func (m *Machine) store(dest, value int64, op Opcode) (Outcome, error) {
	if err := m.memory.Write(dest, value); err != nil {
		return Outcome{}, err
	}
	return Advance(op.Length()), nil
}

// branch jumps to target if condition holds, otherwise advances past the instruction.
// A target outside memory faults here rather than at the next fetch.
func (m *Machine) branch(condition bool, target int64, op Opcode) (Outcome, error) {
	if !condition {
		return Advance(op.Length()), nil
	}
	if !m.memory.contains(target) {
		return Outcome{}, &ErrOutOfRangeAddress{Address: target}
	}
	return JumpTo(target), nil
}

func boolToWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
