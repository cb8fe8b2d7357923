package repository

import (
	stderrors "errors"
	"fmt"

	platformerrors "github.com/jmgilman/go/errors"
)

var (
	// ErrNoSources is returned when the repository has no source for the
	// capability an operation needs. It means the repository was built
	// wrong, not that a value is missing.
	ErrNoSources = platformerrors.New(platformerrors.CodeInvalidConfig, "no data source configured for the requested capability")

	// ErrWriteFailed is returned when a write or delete did not reach the
	// targets its policy requires
	ErrWriteFailed = platformerrors.New(platformerrors.CodeUnavailable, "write did not reach the required targets")

	// ErrNotFound is for callers that need absence as an error value.
	// Repository reads report absence with found=false instead.
	ErrNotFound = platformerrors.New(platformerrors.CodeNotFound, "value not found")
)

// SourceError records a failure of one data source during one operation
type SourceError struct {
	Source    string
	Operation string
	Err       error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s failed during %s: %v", e.Source, e.Operation, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err means the repository lacks a
// source for the requested capability
func IsConfigurationError(err error) bool {
	return stderrors.Is(err, ErrNoSources)
}

// IsSourceFailure reports whether err carries a data source failure
func IsSourceFailure(err error) bool {
	var sourceErr *SourceError
	return stderrors.As(err, &sourceErr)
}

// IsAggregatedWriteFailure reports whether err means a write or delete
// did not reach the targets its policy requires
func IsAggregatedWriteFailure(err error) bool {
	return stderrors.Is(err, ErrWriteFailed)
}

// FailedSource returns the name of the source behind a source failure
func FailedSource(err error) (string, bool) {
	var sourceErr *SourceError
	if !stderrors.As(err, &sourceErr) {
		return "", false
	}
	return sourceErr.Source, true
}

func newSourceFailure(source, operation string, err error) error {
	code := platformerrors.GetCode(err)
	if code == platformerrors.CodeUnknown {
		code = platformerrors.CodeUnavailable
	}
	return platformerrors.WrapWithContext(
		&SourceError{Source: source, Operation: operation, Err: err},
		code,
		"data source failure",
		map[string]interface{}{
			"source":    source,
			"operation": operation,
		},
	)
}

func newConfigurationError(operation string, policy fmt.Stringer) error {
	return platformerrors.WrapWithContext(
		ErrNoSources,
		platformerrors.CodeInvalidConfig,
		fmt.Sprintf("repository cannot serve %s", operation),
		map[string]interface{}{
			"operation": operation,
			"policy":    policy.String(),
		},
	)
}

func newAggregatedWriteFailure(operation string, result WriteResult) error {
	errs := []error{ErrWriteFailed}
	for _, outcome := range result.Failed() {
		errs = append(errs, outcome.Err)
	}
	return platformerrors.WrapWithContext(
		stderrors.Join(errs...),
		platformerrors.CodeUnavailable,
		fmt.Sprintf("%s failed on %d of %d targets", operation, len(result.Failed()), len(result.Outcomes)),
		map[string]interface{}{
			"operation":      operation,
			"failed_targets": result.FailedSources(),
		},
	)
}
