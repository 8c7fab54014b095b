package intcode

import "fmt"

// Run executes until halt or fault. A halted run returns nil; a fault moves
// the machine to Faulted and is returned with the pointer and instruction word.
func (m *Machine) Run() error {
	if m.status != Running {
		return ErrMachineStopped
	}
	for {
		halted, err := m.step()
		if err != nil {
			m.status = Faulted
			err = annotate(err, m.pointer, m.word)
			m.logger.Debug().Err(err).Uint64("steps", m.steps).Msg("machine faulted")
			return err
		}
		if halted {
			m.status = Halted
			m.logger.Debug().
				Uint64("steps", m.steps).
				Int("outputs", len(m.out.values)).
				Msg("machine halted")
			return nil
		}
	}
}

// step fetches, decodes and executes the instruction at the pointer, then
// applies its outcome
func (m *Machine) step() (bool, error) {
	m.word = 0
	word, err := m.memory.Read(m.pointer)
	if err != nil {
		return false, err
	}
	m.word = word

	ins, err := m.decode(word)
	if err != nil {
		return false, err
	}
	if m.tracer != nil {
		m.tracer(m.pointer, ins)
	}
	m.logger.Trace().Int64("pointer", m.pointer).Stringer("instruction", ins).Msg("step")

	var outcome Outcome
	switch ins := ins.(type) {
	case AddInst:
		outcome, err = m.add(ins)
	case MultiplyInst:
		outcome, err = m.multiply(ins)
	case InputInst:
		outcome, err = m.input(ins)
	case OutputInst:
		outcome, err = m.output(ins)
	case JumpIfTrueInst:
		outcome, err = m.jumpIfTrue(ins)
	case JumpIfFalseInst:
		outcome, err = m.jumpIfFalse(ins)
	case LessThanInst:
		outcome, err = m.lessThan(ins)
	case EqualsInst:
		outcome, err = m.equals(ins)
	case HaltInst:
		outcome = Stop()
	default:
		panic(fmt.Sprintf("unhandled instruction %T", ins))
	}
	if err != nil {
		return false, err
	}
	m.steps++

	switch outcome.kind {
	case advance:
		m.pointer += outcome.value
	case jump:
		m.pointer = outcome.value
	case stop:
		return true, nil
	}
	return false, nil
}
