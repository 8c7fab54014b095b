package intcode

import (
	"errors"
	"fmt"
)

// ErrMachineStopped a machine that already halted or faulted was asked to run again
var ErrMachineStopped = errors.New("machine is not running")

// ErrMalformedProgram program text could not be parsed into memory words
var ErrMalformedProgram = errors.New("malformed program")

// ErrUnknownOpcode the word at the pointer does not encode a known opcode
type ErrUnknownOpcode struct {
	Pointer int64
	Word    int64
}

func (e *ErrUnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode %d: pointer=%d word=%d", e.Word%100, e.Pointer, e.Word)
}

// ErrUnknownMode a parameter mode digit is neither positional nor immediate
type ErrUnknownMode struct {
	Pointer int64
	Word    int64
	Mode    Mode
}

func (e *ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown parameter mode %d: pointer=%d word=%d", e.Mode, e.Pointer, e.Word)
}

// ErrOutOfRangeAddress a read or write referenced a position outside memory
type ErrOutOfRangeAddress struct {
	Pointer int64
	Word    int64
	Address int64
}

func (e *ErrOutOfRangeAddress) Error() string {
	return fmt.Sprintf("address out of range: address=%d pointer=%d word=%d", e.Address, e.Pointer, e.Word)
}

// ErrBufferUnderflow input executed with an empty input queue
type ErrBufferUnderflow struct {
	Pointer int64
	Word    int64
}

func (e *ErrBufferUnderflow) Error() string {
	return fmt.Sprintf("input buffer underflow: pointer=%d word=%d", e.Pointer, e.Word)
}

// ErrArithmeticOverflow the result of add or multiply does not fit in 64 bits
type ErrArithmeticOverflow struct {
	Pointer int64
	Word    int64
}

func (e *ErrArithmeticOverflow) Error() string {
	return fmt.Sprintf("arithmetic overflow: pointer=%d word=%d", e.Pointer, e.Word)
}

// annotate stamps the faulting pointer and instruction word onto err.
func annotate(err error, pointer, word int64) error {
	switch e := err.(type) {
	case *ErrUnknownOpcode:
		e.Pointer, e.Word = pointer, word
	case *ErrUnknownMode:
		e.Pointer, e.Word = pointer, word
	case *ErrOutOfRangeAddress:
		e.Pointer, e.Word = pointer, word
	case *ErrBufferUnderflow:
		e.Pointer, e.Word = pointer, word
	case *ErrArithmeticOverflow:
		e.Pointer, e.Word = pointer, word
	}
	return err
}
