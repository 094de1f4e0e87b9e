/*
Package turingtoy simulates abstract single-tape Turing machines.

A machine is a transition table, a blank symbol and a start state. The engine runs the
fetch-execute cycle until the machine reaches the "done" state, exhausts an optional
step budget, or finds no transition for the current (state, symbol) pair. Every run
returns the trimmed final tape, the full history of pre-execution snapshots, and
whether the machine halted in "done".

# Instructions

A table entry is an ordered list of actions applied on a single cycle: moves (with
an optional next state), writes, and guards that run a nested instruction only when
the head reads a given symbol. Guards observe the tape as left by the earlier actions
of the same instruction.

# Usage

	machine := &domain.Machine{
		Table: domain.Table{
			"s": {
				"1": domain.NewInstruction(domain.MoveEntry(domain.Right, "")),
				"_": domain.NewInstruction(
					domain.WriteEntry("1"),
					domain.MoveEntry(domain.Right, domain.DoneState),
				),
			},
		},
		Blank:      "_",
		StartState: "s",
	}

	tape, history, halted, err := turingtoy.RunTuringMachine(machine, "111", nil)

Machines can also be built with package dsl or loaded from YAML/JSON files with
package file.
*/
package turingtoy
