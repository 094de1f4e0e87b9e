/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing
turingtoy machines.

It allows developers to define transition tables using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. Unlike the file format, guards built
here may test any symbol, including "L", "R" and "write".

Example usage:

	b := dsl.New("_").Start("s")

	b.State("s").
		On("1", dsl.Right()).
		On("_", dsl.Write("1").Right(domain.DoneState))

	machine, err := b.Build()
*/
package dsl
