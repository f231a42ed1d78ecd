package rrecur

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", ErrX) so callers
// can still errors.Is against the kind after context is attached — the
// same shape zurustar-sdd01/engine.go and bdd-runitor/cron.go use for
// their own domain sentinels.
var (
	// ErrInvalidRule is returned for unknown FREQ, COUNT and UNTIL both
	// set, non-positive INTERVAL/COUNT, a BYDAY element failing its
	// pattern, an out-of-range BY-part integer, or an illegal FREQ/BY
	// combination.
	ErrInvalidRule = errors.New("rrecur: invalid rule")

	// ErrUnknownPart is returned when a rule string contains a key
	// outside the recognised set.
	ErrUnknownPart = errors.New("rrecur: unknown rule part")

	// ErrHorizonExceeded is returned only when a yearly scan crosses the
	// horizon with yearly_skip_upper_limit disabled; otherwise the
	// cursor silently becomes exhausted.
	ErrHorizonExceeded = errors.New("rrecur: horizon exceeded")

	// ErrLogicError is returned by FastForwardToEnd on an infinite rule.
	ErrLogicError = errors.New("rrecur: logic error")
)

// RuleError wraps a sentinel error kind with the offending rule part name.
type RuleError struct {
	Part string
	Err  error
}

func (e *RuleError) Error() string {
	if e.Part == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Part)
}

func (e *RuleError) Unwrap() error { return e.Err }

func invalidRule(part string) error {
	return &RuleError{Part: part, Err: ErrInvalidRule}
}

func unknownPart(part string) error {
	return &RuleError{Part: part, Err: ErrUnknownPart}
}
