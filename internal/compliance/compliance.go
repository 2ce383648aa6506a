// Package compliance implements the working-time rules engine.
//
// The engine validates one employee's shifts against the statutory
// thresholds in a domain.RuleSet and reports findings with severity and a
// composite 0-100 score. Every operation is a pure function of its inputs:
// the engine keeps no state between calls, performs no I/O, and is safe to
// use from any number of goroutines.
//
// Inputs are assumed to be well-formed (`YYYY-MM-DD` dates, `HH:mm` clock
// times). Malformed strings surface as parse errors from the underlying
// time conversion; the engine does not validate or translate them.
package compliance

import (
	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// Checker evaluates shifts against a fixed rule set.
//
// The zero value is not usable; construct with NewChecker. The rule set is
// copied in and never mutated.
type Checker struct {
	rules domain.RuleSet
}

// NewChecker returns a Checker bound to the given rule set.
func NewChecker(rules domain.RuleSet) *Checker {
	return &Checker{rules: rules}
}

// Rules returns the rule set the checker evaluates against.
func (c *Checker) Rules() domain.RuleSet {
	return c.rules
}
