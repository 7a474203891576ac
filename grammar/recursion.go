package grammar

import (
	"github.com/arr-ai/frozen"
)

/*
A rule is cyclic if it can reach itself through the references of its body.
Cycles walks the reference graph depth first from a start rule, keeping the
rules on the current path in a set. Reaching a rule that is already on the
path closes a cycle. Rules whose subtrees were fully explored are not walked
again, so each edge is followed once however many paths lead to it.
*/

// Cycles returns one path for every back reference found while walking the
// rules reachable from start. Each path begins and ends with the same rule.
// References to undefined rules are ignored here; see Validate.
func (s Store) Cycles(start RuleID) [][]RuleID {
	w := cycleWalker{store: s, done: map[RuleID]struct{}{}}
	w.walk(start, frozen.NewSet[uint32](), nil)
	return w.cycles
}

// IsCyclic reports whether any rule reachable from start refers back to
// itself.
func (s Store) IsCyclic(start RuleID) bool {
	return len(s.Cycles(start)) > 0
}

type cycleWalker struct {
	store  Store
	done   map[RuleID]struct{}
	cycles [][]RuleID
}

func (w *cycleWalker) walk(id RuleID, seen frozen.Set[uint32], current []RuleID) {
	if _, done := w.done[id]; done {
		return
	}
	tree, has := w.store.Get(id)
	if !has {
		return
	}
	current = append(current[:len(current):len(current)], id)
	seen = seen.With(uint32(id))
	for _, next := range Refs(tree) {
		if seen.Has(uint32(next)) {
			w.cycles = append(w.cycles, NewCycleError(current, next).Path)
			continue
		}
		w.walk(next, seen, current)
	}
	w.done[id] = struct{}{}
}
