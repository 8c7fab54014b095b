package intcode

// Result the final state of a halted machine
type Result struct {
	Memory []int64
	Output []int64
	Steps  uint64
}

// Run executes program on a fresh machine with the given input queue.
// On fault no partial result is returned.
func Run(program []int64, input []int64, opts ...Option) (*Result, error) {
	m := Instantiate(program, input, opts...)
	if err := m.Run(); err != nil {
		return nil, err
	}
	return m.Results(), nil
}

// RunText parses program text and runs it, see Run.
func RunText(text string, input []int64, opts ...Option) (*Result, error) {
	program, err := ParseProgram(text)
	if err != nil {
		return nil, err
	}
	return Run(program, input, opts...)
}

// Results snapshots the machine state. It is only meaningful once the
// machine has halted.
func (m *Machine) Results() *Result {
	return &Result{
		Memory: m.memory.Snapshot(),
		Output: m.out.snapshot(),
		Steps:  m.steps,
	}
}
