package matcher

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arr-ai/frozen"
)

// Offsets is a set of consumption lengths. The empty set means no match and
// is distinct from {0}, which matches the empty string. The zero Offsets is
// empty.
type Offsets struct {
	set frozen.Set[int]
}

func NewOffsets(ns ...int) Offsets {
	o := Offsets{}
	for _, n := range ns {
		o = o.With(n)
	}
	return o
}

func (o Offsets) With(n int) Offsets {
	return Offsets{set: o.set.With(n)}
}

func (o Offsets) Has(n int) bool {
	return o.set.Has(n)
}

func (o Offsets) Len() int {
	return o.set.Count()
}

func (o Offsets) IsEmpty() bool {
	return o.set.IsEmpty()
}

func (o Offsets) Union(p Offsets) Offsets {
	return Offsets{set: o.set.Union(p.set)}
}

// Shift adds n to every element.
func (o Offsets) Shift(n int) Offsets {
	if n == 0 {
		return o
	}
	shifted := Offsets{}
	for _, e := range o.set.Elements() {
		shifted = shifted.With(e + n)
	}
	return shifted
}

// Sorted returns the elements in ascending order.
func (o Offsets) Sorted() []int {
	out := o.set.Elements()
	sort.Ints(out)
	return out
}

func (o Offsets) Equal(p Offsets) bool {
	return o.set.Equal(p.set)
}

func (o Offsets) String() string {
	elems := o.Sorted()
	parts := make([]string, 0, len(elems))
	for _, n := range elems {
		parts = append(parts, strconv.Itoa(n))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
