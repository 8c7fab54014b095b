package intcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRun_Memory(t *testing.T) {
	tests := []struct {
		name    string
		program string
		memory  []int64
	}{
		{"self add", "1,0,0,0,99", []int64{2, 0, 0, 0, 99}},
		{"multiply positional and immediate", "1002,4,3,4,33", []int64{1002, 4, 3, 4, 99}},
		{"add immediates", "1101,100,-1,4,0", []int64{1101, 100, -1, 4, 99}},
		{"multiply into own memory", "2,3,0,3,99", []int64{2, 3, 0, 6, 99}},
		{"multiply past halt", "2,4,4,5,99,0", []int64{2, 4, 4, 5, 99, 9801}},
		{"self modifying", "1,1,1,4,99,5,6,0,99", []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"add then multiply", "1,9,10,3,2,3,11,0,99,30,40,50", []int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := RunText(tc.program, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.memory, result.Memory)
			assert.Empty(t, result.Output)
		})
	}
}

func TestRun_Echo(t *testing.T) {
	result, err := RunText("3,0,4,0,99", []int64{42})
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, result.Output)
	assert.Equal(t, uint64(3), result.Steps)
}

func TestRun_Comparisons(t *testing.T) {
	const larger = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	tests := []struct {
		name    string
		program string
		input   int64
		output  int64
	}{
		{"equal to 8 positional", "3,9,8,9,10,9,4,9,99,-1,8", 8, 1},
		{"not equal to 8 positional", "3,9,8,9,10,9,4,9,99,-1,8", 7, 0},
		{"less than 8 positional", "3,9,7,9,10,9,4,9,99,-1,8", 5, 1},
		{"not less than 8 positional", "3,9,7,9,10,9,4,9,99,-1,8", 8, 0},
		{"equal to 8 immediate", "3,3,1108,-1,8,3,4,3,99", 8, 1},
		{"not equal to 8 immediate", "3,3,1108,-1,8,3,4,3,99", 9, 0},
		{"less than 8 immediate", "3,3,1107,-1,8,3,4,3,99", -3, 1},
		{"not less than 8 immediate", "3,3,1107,-1,8,3,4,3,99", 10, 0},
		{"jump positional zero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", 0, 0},
		{"jump positional non zero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", 5, 1},
		{"jump immediate zero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", 0, 0},
		{"jump immediate non zero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", -2, 1},
		{"below 8", larger, 7, 999},
		{"exactly 8", larger, 8, 1000},
		{"above 8", larger, 9, 1001},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := RunText(tc.program, []int64{tc.input})
			require.NoError(t, err)
			assert.Equal(t, []int64{tc.output}, result.Output)
		})
	}
}

func TestRun_JumpSkipsAddress(t *testing.T) {
	var decoded []int64
	tracer := func(pointer int64, ins Instruction) {
		decoded = append(decoded, pointer)
	}

	_, err := RunText("1105,1,4,99,1,1,1,9", nil, WithTracer(tracer))

	assert.NotContains(t, decoded, int64(3))
	assert.Equal(t, []int64{0, 4}, decoded)

	// the instruction at 4 writes to address 9 of an eight word memory
	var outOfRange *ErrOutOfRangeAddress
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, int64(4), outOfRange.Pointer)
	assert.Equal(t, int64(1), outOfRange.Word)
	assert.Equal(t, int64(9), outOfRange.Address)
}

func TestRun_JumpNotTaken(t *testing.T) {
	var decoded []Instruction
	tracer := func(pointer int64, ins Instruction) {
		decoded = append(decoded, ins)
	}

	result, err := RunText("1106,1,4,99,1,1,1,9", nil, WithTracer(tracer))
	require.NoError(t, err)
	assert.Equal(t, []Instruction{JumpIfFalseInst{Cond: 1, Target: 4}, HaltInst{}}, decoded)
	assert.Equal(t, uint64(2), result.Steps)
}

func TestRun_Deterministic(t *testing.T) {
	const text = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	first, err := RunText(text, []int64{8})
	require.NoError(t, err)
	second, err := RunText(text, []int64{8})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_Faults(t *testing.T) {
	tests := []struct {
		name    string
		program string
		input   []int64
		check   func(t *testing.T, err error)
	}{
		{
			name:    "jump without parameters",
			program: "5",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrOutOfRangeAddress{Pointer: 0, Word: 5, Address: 1}, *e)
			},
		},
		{
			name:    "jump with one parameter",
			program: "5,1",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrOutOfRangeAddress{Pointer: 0, Word: 5, Address: 2}, *e)
			},
		},
		{
			name:    "input with empty queue",
			program: "3,0,99",
			check: func(t *testing.T, err error) {
				var e *ErrBufferUnderflow
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrBufferUnderflow{Pointer: 0, Word: 3}, *e)
			},
		},
		{
			name:    "input queue drained",
			program: "3,0,3,0,99",
			input:   []int64{1},
			check: func(t *testing.T, err error) {
				var e *ErrBufferUnderflow
				require.ErrorAs(t, err, &e)
				assert.Equal(t, int64(2), e.Pointer)
			},
		},
		{
			name:    "unknown opcode",
			program: "1101,1,1,0,42",
			check: func(t *testing.T, err error) {
				var e *ErrUnknownOpcode
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrUnknownOpcode{Pointer: 4, Word: 42}, *e)
			},
		},
		{
			name:    "unknown mode",
			program: "201,0,0,0,99",
			check: func(t *testing.T, err error) {
				var e *ErrUnknownMode
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrUnknownMode{Pointer: 0, Word: 201, Mode: 2}, *e)
			},
		},
		{
			name:    "positional read out of range",
			program: "1,0,7,0,99",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, int64(7), e.Address)
			},
		},
		{
			name:    "write out of range",
			program: "1,0,0,10,99",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrOutOfRangeAddress{Pointer: 0, Word: 1, Address: 10}, *e)
			},
		},
		{
			name:    "negative destination",
			program: "1101,1,1,-1,99",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, int64(-1), e.Address)
			},
		},
		{
			name:    "runs off the end",
			program: "1,0,0,0",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrOutOfRangeAddress{Pointer: 4, Word: 0, Address: 4}, *e)
			},
		},
		{
			name:    "jump to negative address",
			program: "1105,1,-1",
			check: func(t *testing.T, err error) {
				var e *ErrOutOfRangeAddress
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrOutOfRangeAddress{Pointer: 0, Word: 1105, Address: -1}, *e)
			},
		},
		{
			name:    "multiply overflow",
			program: "1102,9223372036854775807,2,0,99",
			check: func(t *testing.T, err error) {
				var e *ErrArithmeticOverflow
				require.ErrorAs(t, err, &e)
				assert.Equal(t, ErrArithmeticOverflow{Pointer: 0, Word: 1102}, *e)
			},
		},
		{
			name:    "add overflow",
			program: "1101,-9223372036854775808,-1,0,99",
			check: func(t *testing.T, err error) {
				var e *ErrArithmeticOverflow
				require.ErrorAs(t, err, &e)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			program, err := ParseProgram(tc.program)
			require.NoError(t, err)

			m := Instantiate(program, tc.input)
			err = m.Run()
			require.Error(t, err)
			assert.Equal(t, Faulted, m.Status())
			tc.check(t, err)

			result, err := Run(program, tc.input)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestMachine_Lifecycle(t *testing.T) {
	program := []int64{3, 0, 4, 0, 99}
	m := Instantiate(program, []int64{7, 8})
	assert.Equal(t, Running, m.Status())
	assert.Equal(t, 2, m.PendingInput())

	require.NoError(t, m.Run())
	assert.Equal(t, Halted, m.Status())
	assert.Equal(t, int64(4), m.Pointer())
	assert.Equal(t, []int64{7}, m.Output())
	assert.Equal(t, []int64{7, 0, 4, 0, 99}, m.Memory())
	assert.Equal(t, 1, m.PendingInput())

	// the caller's program is untouched
	assert.Equal(t, []int64{3, 0, 4, 0, 99}, program)

	assert.ErrorIs(t, m.Run(), ErrMachineStopped)

	faulted := Instantiate([]int64{3, 0}, nil)
	require.Error(t, faulted.Run())
	assert.ErrorIs(t, faulted.Run(), ErrMachineStopped)
}

func TestRun_Concurrent(t *testing.T) {
	program, err := ParseProgram("3,9,8,9,10,9,4,9,99,-1,8")
	require.NoError(t, err)

	outputs := make([][]int64, 32)
	var g errgroup.Group
	for i := range outputs {
		g.Go(func() error {
			result, err := Run(program, []int64{int64(i % 16)})
			if err != nil {
				return err
			}
			outputs[i] = result.Output
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, out := range outputs {
		want := int64(0)
		if i%16 == 8 {
			want = 1
		}
		assert.Equal(t, []int64{want}, out, "run %d", i)
	}
	assert.Equal(t, int64(-1), program[9])
}

func TestRun_LargeValues(t *testing.T) {
	result, err := RunText("1102,34915192,34915192,7,4,7,99,0", nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1219070632396864}, result.Output)

	result, err = RunText("104,1125899906842624,99", nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1125899906842624}, result.Output)

	result, err = RunText("1101,9223372036854775806,1,0,99", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), result.Memory[0])
}
