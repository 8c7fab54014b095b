package intcode

import "github.com/rs/zerolog"

type Status uint8

const (
	Running Status = iota
	Halted
	Faulted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Tracer observes every decoded instruction before it executes
type Tracer func(pointer int64, ins Instruction)

type Option func(*Machine)

func WithTracer(t Tracer) Option {
	return func(m *Machine) { m.tracer = t }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// Instantiate creates a machine over a private copy of program, ready to run
// from address zero. input is consumed in order by input instructions.
func Instantiate(program []int64, input []int64, opts ...Option) *Machine {
	m := &Machine{
		memory: NewMemory(program),
		in:     newInputQueue(input),
		status: Running,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Machine is not safe for concurrent use. Distinct machines share nothing and
// may run in parallel.
type Machine struct {
	memory  Memory       // exclusively owned
	pointer int64        // the instruction pointer
	word    int64        // the instruction word at pointer, kept for fault reports
	in      inputQueue   // consumed by input
	out     outputBuffer // appended by output
	status  Status
	steps   uint64

	tracer Tracer
	logger zerolog.Logger
}

func (m *Machine) Status() Status {
	return m.status
}

func (m *Machine) Pointer() int64 {
	return m.pointer
}

// Steps the number of instructions executed so far
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Memory returns a copy of the machine memory
func (m *Machine) Memory() []int64 {
	return m.memory.Snapshot()
}

// Output returns a copy of everything written by output instructions
func (m *Machine) Output() []int64 {
	return m.out.snapshot()
}

// PendingInput the number of input values not yet consumed
func (m *Machine) PendingInput() int {
	return m.in.len()
}
