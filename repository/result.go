package repository

import "errors"

// TargetOutcome is the result of a write or delete on one source.
// Err is a source failure, nil on success.
type TargetOutcome struct {
	Source string
	Err    error
}

// WriteResult aggregates the outcome of a write or delete fanned out to
// several sources, in the order the sources were attempted
type WriteResult struct {
	Outcomes []TargetOutcome
}

func (r *WriteResult) add(source string, err error) {
	r.Outcomes = append(r.Outcomes, TargetOutcome{Source: source, Err: err})
}

// Succeeded reports whether at least one target accepted the operation
func (r WriteResult) Succeeded() bool {
	return r.SuccessCount() > 0
}

// SuccessCount returns the number of targets that accepted the operation
func (r WriteResult) SuccessCount() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err == nil {
			count++
		}
	}
	return count
}

// Failed returns the outcomes of targets that failed
func (r WriteResult) Failed() []TargetOutcome {
	var failed []TargetOutcome
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// FailedSources returns the names of targets that failed
func (r WriteResult) FailedSources() []string {
	var names []string
	for _, outcome := range r.Failed() {
		names = append(names, outcome.Source)
	}
	return names
}

// Attempted returns the names of every target attempted, in order
func (r WriteResult) Attempted() []string {
	names := make([]string, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		names = append(names, outcome.Source)
	}
	return names
}

// Err joins the errors of every failed target, nil if none failed
func (r WriteResult) Err() error {
	var errs []error
	for _, outcome := range r.Failed() {
		errs = append(errs, outcome.Err)
	}
	return errors.Join(errs...)
}
