package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arr-ai/frozen"

	"github.com/arr-ai/rulecheck/grammar"
)

// neverRE matches no character, so an anchored pattern built on it matches
// nothing at all.
const neverRE = `[^\x00-\x{10FFFF}]`

// Pattern is a grammar rendered into a single anchored regular expression.
// It only exists for grammars with no cycle reachable from the start rule.
type Pattern struct {
	re *regexp.Regexp
}

// Compile renders the rules reachable from start into a Pattern. It fails
// with a *grammar.CycleError if a rule refers back to itself, and with a
// *grammar.UnknownRuleError if a referenced rule is missing. An empty store
// compiles to a Pattern that matches nothing.
func Compile(store grammar.Store, start grammar.RuleID) (*Pattern, error) {
	body := neverRE
	if store.Count() > 0 {
		r := renderer{store: store, rendered: map[grammar.RuleID]string{}}
		var err error
		if body, err = r.rule(start, frozen.NewSet[uint32](), nil); err != nil {
			return nil, err
		}
	}
	re, err := regexp.Compile(`^(?:` + body + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling rule %s: %w", start, err)
	}
	return &Pattern{re: re}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(store grammar.Store, start grammar.RuleID) *Pattern {
	p, err := Compile(store, start)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) Match(message string) (bool, error) {
	return p.re.MatchString(message), nil
}

// String returns the anchored pattern.
func (p *Pattern) String() string {
	return p.re.String()
}

type renderer struct {
	store    grammar.Store
	rendered map[grammar.RuleID]string
}

// rule renders a rule once and reuses the text wherever it is referenced.
// seen holds the rules on the current render path.
func (r *renderer) rule(id grammar.RuleID, seen frozen.Set[uint32], current []grammar.RuleID) (string, error) {
	if s, has := r.rendered[id]; has {
		return s, nil
	}
	if seen.Has(uint32(id)) {
		return "", grammar.NewCycleError(current, id)
	}
	tree, err := r.store.Lookup(id, current...)
	if err != nil {
		return "", err
	}
	current = append(current[:len(current):len(current)], id)
	s, err := r.tree(tree, seen.With(uint32(id)), current)
	if err != nil {
		return "", err
	}
	r.rendered[id] = s
	return s, nil
}

func (r *renderer) tree(t grammar.Tree, seen frozen.Set[uint32], current []grammar.RuleID) (string, error) {
	switch t := t.(type) {
	case grammar.Literal:
		return regexp.QuoteMeta(string(t)), nil
	case grammar.Alt:
		left, err := r.tree(t.Left, seen, current)
		if err != nil {
			return "", err
		}
		right, err := r.tree(t.Right, seen, current)
		if err != nil {
			return "", err
		}
		return "(?:" + left + "|" + right + ")", nil
	case grammar.Seq:
		var sb strings.Builder
		for _, id := range t {
			s, err := r.rule(id, seen, current)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	}
	panic(fmt.Errorf("unexpected rule body: %T", t))
}
