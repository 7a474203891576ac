package grammar

import (
	"sort"
	"strings"

	"github.com/arr-ai/frozen"
)

// LoopOverrides turn rules 8 and 11 of the message grammar into
// self-referential rules: 8 becomes one or more 42s, and 11 becomes n 42s
// followed by n 31s.
var LoopOverrides = []string{
	"8: 42 | 42 8",
	"11: 42 31 | 42 11 31",
}

// Store maps rule ids to rule bodies. A Store is immutable: With and
// Override return a new Store and leave the receiver untouched, so a Store
// may be shared freely between goroutines. The zero Store is empty.
type Store struct {
	rules frozen.Map[uint32, Tree]
}

// NewStore builds a Store from a plain map.
func NewStore(rules map[RuleID]Tree) Store {
	s := Store{}
	for id, tree := range rules {
		s = s.With(id, tree)
	}
	return s
}

// With returns a Store where id is defined as tree.
func (s Store) With(id RuleID, tree Tree) Store {
	return Store{rules: s.rules.With(uint32(id), tree)}
}

// Override returns a Store where each of the given rule lines replaces (or
// adds) the rule it defines.
func (s Store) Override(lines ...string) (Store, error) {
	for _, line := range lines {
		id, tree, err := ParseRule(line)
		if err != nil {
			return Store{}, err
		}
		s = s.With(id, tree)
	}
	return s, nil
}

func (s Store) Get(id RuleID) (Tree, bool) {
	return s.rules.Get(uint32(id))
}

func (s Store) MustGet(id RuleID) Tree {
	tree, err := s.Lookup(id)
	if err != nil {
		panic(err)
	}
	return tree
}

// Lookup is Get returning an *UnknownRuleError for a missing rule.
func (s Store) Lookup(id RuleID, from ...RuleID) (Tree, error) {
	if tree, has := s.Get(id); has {
		return tree, nil
	}
	return nil, &UnknownRuleError{ID: id, From: append([]RuleID(nil), from...)}
}

func (s Store) Has(id RuleID) bool {
	return s.rules.Has(uint32(id))
}

func (s Store) Count() int {
	return s.rules.Count()
}

// IDs returns every defined rule id in ascending order.
func (s Store) IDs() []RuleID {
	keys := s.rules.Keys().Elements()
	ids := make([]RuleID, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, RuleID(k))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// String renders the store as grammar text, one rule per line in id order.
func (s Store) String() string {
	var sb strings.Builder
	for _, id := range s.IDs() {
		tree, _ := s.Get(id)
		sb.WriteString(id.String())
		sb.WriteString(": ")
		sb.WriteString(tree.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
