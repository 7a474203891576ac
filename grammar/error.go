package grammar

import (
	"fmt"
	"strings"

	"github.com/arr-ai/rulecheck/gotree"
)

// SyntaxError reports a grammar line that cannot be parsed.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Text     string // the offending line
	Reason   string
}

func (e *SyntaxError) Error() string {
	filename := e.Filename
	if filename == "" {
		filename = "<grammar>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %q", filename, e.Line, e.Column, e.Reason, e.Text)
}

// CycleError reports a rule that refers back to itself. Path starts and ends
// with the same rule.
type CycleError struct {
	Path []RuleID
}

// NewCycleError builds the error for reaching id again while current is the
// path of rules being walked. The reported path is the part of current from
// the earlier visit of id, closed by id itself.
func NewCycleError(current []RuleID, id RuleID) *CycleError {
	for i, c := range current {
		if c == id {
			path := append([]RuleID{}, current[i:]...)
			return &CycleError{Path: append(path, id)}
		}
	}
	return &CycleError{Path: []RuleID{id, id}}
}

func (e *CycleError) Error() string {
	return "cyclic grammar: " + joinPath(e.Path)
}

// UnknownRuleError reports a reference to a rule that is not in the store.
// From holds the rules that led to the reference, outermost first; it is
// empty when the missing rule was asked for directly.
type UnknownRuleError struct {
	ID   RuleID
	From []RuleID
}

func (e *UnknownRuleError) Error() string {
	if len(e.From) == 0 {
		return fmt.Sprintf("rule %s is not defined", e.ID)
	}
	return fmt.Sprintf("rule %s is not defined (referenced from %s)", e.ID, joinPath(e.From))
}

// ValidationError gathers every problem found by Store.Validate.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	tree := gotree.New("invalid grammar")
	for _, err := range e.Errs {
		tree.Add(err.Error())
	}
	return "\n" + tree.Print()
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

func joinPath(path []RuleID) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, " > ")
}
