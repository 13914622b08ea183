// Package errors provides structured error types for the value printer's
// collaborators: memory views, descriptor loaders and the command line tool.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
//		Path("Point", "x").
//		TypeName("int").
//		Detail("field offset %d past record size %d", 12, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(0x1000, 8, 65536)
//
// The printer itself never returns errors; it degrades to an address
// rendering instead. All errors implement the standard error interface and
// support errors.Is/As.
package errors
