package errors

import (
	stdErrors "errors"
	"fmt"
)

// ClassifiedError is an error with a category, a severity and structured
// context. Build one with the ErrorBuilder constructors.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	s := fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e *ClassifiedError) Unwrap() error           { return e.cause }
func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }
func (e *ClassifiedError) IsFatal() bool           { return e.severity == SeverityFatal }
func (e *ClassifiedError) ExitCode() int           { return e.category.ExitCode() }
func (e *ClassifiedError) Is(target error) bool    { return sameKind(e, target) }

// Path returns the offending path recorded with WithPath, if any.
func (e *ClassifiedError) Path() string {
	p, _ := e.context.String(pathKey)
	return p
}

// WithContext returns a copy of e with one more context attribute.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	c := *e
	c.context = e.context.With(key, value)
	return &c
}

// sameKind matches errors that carry the same category and message,
// whatever their context.
func sameKind(e *ClassifiedError, target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stdErrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// IsClassified reports whether err's chain contains a ClassifiedError.
func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory reports whether err's chain carries a ClassifiedError of
// category.
func HasCategory(err error, category ErrorCategory) bool {
	c, ok := AsClassified(err)
	return ok && c.category == category
}

// GetCategory returns the category of err, CategoryInternal when err is
// not classified.
func GetCategory(err error) ErrorCategory {
	if c, ok := AsClassified(err); ok {
		return c.category
	}
	return CategoryInternal
}

// GetSeverity returns the severity of err, SeverityError when err is not
// classified.
func GetSeverity(err error) ErrorSeverity {
	if c, ok := AsClassified(err); ok {
		return c.severity
	}
	return SeverityError
}
