package intcode

// Decode splits an instruction word into its opcode and one mode per
// read-parameter, ordered first to last. Missing high digits are positional.
func Decode(word int64) (Opcode, []Mode, error) {
	op := Opcode(word % 100)
	if !op.IsValid() {
		return 0, nil, &ErrUnknownOpcode{Word: word}
	}

	modes := make([]Mode, op.ReadParams())
	digits := word / 100
	for k := range modes {
		mode := Mode(digits % 10)
		if mode != Positional && mode != Immediate {
			return op, nil, &ErrUnknownMode{Word: word, Mode: mode}
		}
		modes[k] = mode
		digits /= 10
	}
	return op, modes, nil
}

// param resolves the read-parameter at offset k from the pointer
func (m *Machine) param(k int, mode Mode) (int64, error) {
	raw, err := m.memory.Read(m.pointer + int64(k))
	if err != nil {
		return 0, err
	}
	if mode == Immediate {
		return raw, nil
	}
	return m.memory.Read(raw)
}

// address fetches the write-parameter at offset k as a bare address; its mode is ignored
func (m *Machine) address(k int) (int64, error) {
	return m.memory.Read(m.pointer + int64(k))
}

// decode builds the instruction variant for the word at the pointer
func (m *Machine) decode(word int64) (Instruction, error) {
	op, modes, err := Decode(word)
	if err != nil {
		return nil, err
	}

	var p [2]int64
	for k, mode := range modes {
		if p[k], err = m.param(k+1, mode); err != nil {
			return nil, err
		}
	}

	var dest int64
	if op.HasDestination() {
		if dest, err = m.address(len(modes) + 1); err != nil {
			return nil, err
		}
	}

	switch op {
	case Add:
		return AddInst{A: p[0], B: p[1], Dest: dest}, nil
	case Multiply:
		return MultiplyInst{A: p[0], B: p[1], Dest: dest}, nil
	case Input:
		return InputInst{Dest: dest}, nil
	case Output:
		return OutputInst{A: p[0]}, nil
	case JumpIfTrue:
		return JumpIfTrueInst{Cond: p[0], Target: p[1]}, nil
	case JumpIfFalse:
		return JumpIfFalseInst{Cond: p[0], Target: p[1]}, nil
	case LessThan:
		return LessThanInst{A: p[0], B: p[1], Dest: dest}, nil
	case Equals:
		return EqualsInst{A: p[0], B: p[1], Dest: dest}, nil
	case Halt:
		return HaltInst{}, nil
	}
	return nil, &ErrUnknownOpcode{Word: word}
}
