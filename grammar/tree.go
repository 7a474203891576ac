package grammar

import (
	"sort"
	"strconv"
	"strings"
)

// RuleID identifies a rule within a Store.
type RuleID uint32

func (id RuleID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Tree is the body of a rule. The set of variants is closed: Literal, Alt and
// Seq.
type Tree interface {
	isTree()
	String() string
}

// Literal matches its text exactly.
type Literal string

// Alt matches if either side matches.
type Alt struct {
	Left, Right Tree
}

// Seq matches its rules one after the other. An empty Seq matches the empty
// string.
type Seq []RuleID

func (Literal) isTree() {}
func (Alt) isTree()     {}
func (Seq) isTree()     {}

func (t Literal) String() string {
	return strconv.Quote(string(t))
}

func (t Alt) String() string {
	return t.Left.String() + " | " + t.Right.String()
}

func (t Seq) String() string {
	ids := make([]string, 0, len(t))
	for _, id := range t {
		ids = append(ids, id.String())
	}
	return strings.Join(ids, " ")
}

// Alternatives flattens nested Alts into their non-Alt branches, left to
// right.
func Alternatives(t Tree) []Tree {
	if alt, ok := t.(Alt); ok {
		return append(Alternatives(alt.Left), Alternatives(alt.Right)...)
	}
	return []Tree{t}
}

// Refs returns the distinct rules t refers to, in ascending order.
func Refs(t Tree) []RuleID {
	seen := map[RuleID]struct{}{}
	var walk func(Tree)
	walk = func(t Tree) {
		switch t := t.(type) {
		case Alt:
			walk(t.Left)
			walk(t.Right)
		case Seq:
			for _, id := range t {
				seen[id] = struct{}{}
			}
		}
	}
	walk(t)

	refs := make([]RuleID, 0, len(seen))
	for id := range seen {
		refs = append(refs, id)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}
