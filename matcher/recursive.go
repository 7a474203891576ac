package matcher

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/rulecheck/grammar"
)

// Matcher evaluates a grammar directly against each message. Unlike a
// compiled Pattern it accepts grammars whose rules refer to themselves.
// A Matcher holds no mutable state and may be used from many goroutines.
type Matcher struct {
	store grammar.Store
	start grammar.RuleID
}

func New(store grammar.Store, start grammar.RuleID) *Matcher {
	return &Matcher{store: store, start: start}
}

// Apply returns every length that rule id can consume from the start of
// tail. An empty result means the rule does not match there.
func (m *Matcher) Apply(id grammar.RuleID, tail string) (Offsets, error) {
	e := newEvaluation(m.store, tail)
	return e.run(func() (Offsets, error) { return e.rule(id, 0) })
}

// ApplyTree is Apply for a rule body that need not be in the store. Rules it
// refers to are looked up in the store.
func (m *Matcher) ApplyTree(tree grammar.Tree, tail string) (Offsets, error) {
	e := newEvaluation(m.store, tail)
	return e.run(func() (Offsets, error) { return e.tree(tree, 0) })
}

// Match reports whether the start rule can consume all of message. An empty
// store matches nothing.
func (m *Matcher) Match(message string) (bool, error) {
	if m.store.Count() == 0 {
		return false, nil
	}
	lengths, err := m.Apply(m.start, message)
	if err != nil {
		return false, err
	}
	return lengths.Has(len(message)), nil
}

type memoKey struct {
	id grammar.RuleID
	at int
}

// evaluation holds the state of one top-level Apply. Offsets inside an
// evaluation are absolute positions in input; at position 0 they equal
// consumption lengths.
//
// Results are memoized per (rule, position). A rule that reaches itself
// again at the same position without consuming input (left recursion) sees
// the result recorded so far for that key. When that happened and some
// result grew, the whole evaluation runs again from the recorded results
// until nothing changes.
type evaluation struct {
	store  grammar.Store
	input  string
	memo   map[memoKey]Offsets
	done   map[memoKey]struct{}
	active map[memoKey]struct{}
	path   []grammar.RuleID

	reentered bool
	grown     bool
	depth     int
}

func newEvaluation(store grammar.Store, input string) *evaluation {
	return &evaluation{
		store:  store,
		input:  input,
		memo:   map[memoKey]Offsets{},
		active: map[memoKey]struct{}{},
	}
}

func (e *evaluation) run(eval func() (Offsets, error)) (Offsets, error) {
	for pass := 1; ; pass++ {
		e.done = map[memoKey]struct{}{}
		e.reentered, e.grown = false, false
		ends, err := eval()
		if err != nil {
			return Offsets{}, err
		}
		if !e.reentered || !e.grown {
			return ends, nil
		}
		logrus.WithField("pass", pass).Trace("left recursion grew a result, evaluating again")
	}
}

func (e *evaluation) rule(id grammar.RuleID, at int) (ends Offsets, err error) {
	k := memoKey{id: id, at: at}
	if _, done := e.done[k]; done {
		return e.memo[k], nil
	}
	if _, active := e.active[k]; active {
		e.reentered = true
		return e.memo[k], nil
	}
	tree, err := e.store.Lookup(id, e.path...)
	if err != nil {
		return Offsets{}, err
	}
	defer e.enterf("rule %s @%d", id, at).exitf("%v", &ends)

	e.active[k] = struct{}{}
	e.path = append(e.path, id)
	ends, err = e.tree(tree, at)
	e.path = e.path[:len(e.path)-1]
	delete(e.active, k)
	if err != nil {
		return Offsets{}, err
	}

	if !ends.Equal(e.memo[k]) {
		e.memo[k] = ends
		e.grown = true
	}
	e.done[k] = struct{}{}
	return ends, nil
}

func (e *evaluation) tree(t grammar.Tree, at int) (Offsets, error) {
	switch t := t.(type) {
	case grammar.Literal:
		if strings.HasPrefix(e.input[at:], string(t)) {
			return NewOffsets(at + len(t)), nil
		}
		return Offsets{}, nil
	case grammar.Alt:
		left, err := e.tree(t.Left, at)
		if err != nil {
			return Offsets{}, err
		}
		right, err := e.tree(t.Right, at)
		if err != nil {
			return Offsets{}, err
		}
		return left.Union(right), nil
	case grammar.Seq:
		return e.seq(t, at)
	}
	panic(fmt.Errorf("unexpected rule body: %T", t))
}

// seq applies the first rule, then the rest of the sequence from every
// position the first rule can reach.
func (e *evaluation) seq(ids grammar.Seq, at int) (Offsets, error) {
	if len(ids) == 0 {
		return NewOffsets(at), nil
	}
	mids, err := e.rule(ids[0], at)
	if err != nil {
		return Offsets{}, err
	}
	ends := Offsets{}
	for _, mid := range mids.Sorted() {
		rest, err := e.seq(ids[1:], mid)
		if err != nil {
			return Offsets{}, err
		}
		ends = ends.Union(rest)
	}
	return ends, nil
}
