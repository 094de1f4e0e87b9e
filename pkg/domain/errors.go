package domain

import "errors"

// ErrMissingTable is returned when a machine definition has no transition table.
var ErrMissingTable = errors.New("machine definition has no table")

// ErrMissingStartState is returned when a machine definition has no start state.
var ErrMissingStartState = errors.New("machine definition has no start state")

// ErrInvalidBlank is returned when the blank is not exactly one symbol.
var ErrInvalidBlank = errors.New("blank must be exactly one symbol")

// ErrInvalidInstruction is returned when an instruction cannot be decoded.
var ErrInvalidInstruction = errors.New("invalid instruction")

// ErrInvalidSymbol is returned when a write entry carries more than one symbol.
// A tape cell holds exactly one symbol.
var ErrInvalidSymbol = errors.New("write symbol must be exactly one symbol")

// ErrUnorderedCompound is returned when a compound instruction is given as a Go map
// with more than one key, which carries no entry order.
var ErrUnorderedCompound = errors.New("compound instruction with several keys must be ordered")

// ErrReservedSymbol is returned when a guard on L, R or write has to be encoded.
var ErrReservedSymbol = errors.New("guard symbol collides with a reserved action tag")

// ErrNestingTooDeep is returned when guarded instructions nest beyond the configured limit.
var ErrNestingTooDeep = errors.New("instruction nesting too deep")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrMachineNotFound is returned when a loader has no machine under the requested name.
var ErrMachineNotFound = errors.New("machine not found")
