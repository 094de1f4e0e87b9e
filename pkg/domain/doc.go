/*
Package domain contains the core domain models of the turingtoy simulator.

It defines the read-only machine definition (transition table, blank symbol, start
state), the instruction variant applied on every fetch-execute cycle, and the
structured trace produced by a run. This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - Machine: the externally supplied definition (Table, Blank, StartState).
  - Table: maps (state, symbol) to an Instruction, falling back to the blank-keyed entry.
  - Instruction: an ordered list of move, write and guard entries.
  - HistoryEntry: a snapshot taken right before an instruction is applied.
  - Result: final tape, history, and whether the machine halted in DoneState.
*/
package domain
