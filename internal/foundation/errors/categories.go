package errors

// ErrorCategory groups errors by the part of a run that failed. The category
// alone decides the process exit status.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // site configuration cannot be used
	CategoryValidation ErrorCategory = "validation" // command line is incomplete or contradictory
	CategorySetup      ErrorCategory = "setup"      // destination directories, output files, repository open
	CategoryGit        ErrorCategory = "git"        // object store reads
	CategoryFileSystem ErrorCategory = "filesystem" // writes after a file was opened
	CategoryContent    ErrorCategory = "content"    // repository content, recovered locally
	CategoryInternal   ErrorCategory = "internal"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitConfig   = 7
	ExitInternal = 10
	ExitSetup    = 100
)

var exitCodes = map[ErrorCategory]int{
	CategorySetup:      ExitSetup,
	CategoryValidation: ExitUsage,
	CategoryConfig:     ExitConfig,
	CategoryInternal:   ExitInternal,
}

// ExitCode is the process status for a run that ended with an error of c.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return ExitFailure
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Fails the current repository
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext carries structured attributes such as the offending path.
// Values are never modified in place once attached to a ClassifiedError.
type ErrorContext map[string]any

// With returns a copy of c with key set to value.
func (c ErrorContext) With(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}

// String returns the value of key if it is a string.
func (c ErrorContext) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
