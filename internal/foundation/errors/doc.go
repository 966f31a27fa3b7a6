// Package errors provides the classified error type used across gitin.
//
// Every failure that reaches the command line carries a category and a
// severity. The category decides the process exit status: setup failures
// (an uncreatable destination directory, an unopenable repository, an
// output file that cannot be written) exit with ExitSetup, everything
// else with its own small code or ExitFailure.
//
// Example usage:
//
//	err := errors.SetupError("cannot create directory").
//		WithPath(dir).
//		WithCause(originalErr).
//		Build()
package errors
