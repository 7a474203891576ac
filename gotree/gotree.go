// Package gotree builds and prints text trees.
package gotree

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	newLine      = "\n"
	emptySpace   = "    "
	middleItem   = "├── "
	continueItem = "│   "
	lastItem     = "└── "
)

// Tree is a node of a printable tree.
type Tree interface {
	Add(text string) Tree
	AddTree(tree Tree)
	Items() []Tree
	SortItems()
	Rank() int
	Text() string
	Print() string
}

type tree struct {
	text  string
	items []Tree
}

// New returns a tree whose root holds text.
func New(text string) Tree {
	return &tree{text: text}
}

// Add adds a leaf with text and returns it.
func (t *tree) Add(text string) Tree {
	n := New(text)
	t.items = append(t.items, n)
	return n
}

func (t *tree) AddTree(tree Tree) {
	t.items = append(t.items, tree)
}

func (t *tree) Text() string {
	return t.text
}

func (t *tree) Items() []Tree {
	return t.items
}

// SortItems orders the direct children by Rank. Equal ranks keep their order.
func (t *tree) SortItems() {
	sort.SliceStable(t.items, func(i, j int) bool {
		return t.items[i].Rank() < t.items[j].Rank()
	})
}

var leadingNumber = regexp.MustCompile(`^\d+`)

// Rank is the number the text starts with. A tree whose text has no leading
// number ranks as its lowest ranked child, or -1 when it has none.
func (t *tree) Rank() int {
	if num := leadingNumber.FindString(t.text); num != "" {
		if r, err := strconv.Atoi(num); err == nil {
			return r
		}
	}
	if len(t.items) == 0 {
		return -1
	}
	r := math.MaxInt
	for _, i := range t.items {
		if rank := i.Rank(); rank < r {
			r = rank
		}
	}
	return r
}

func (t *tree) Print() string {
	var sb strings.Builder
	sb.WriteString(t.text)
	sb.WriteString(newLine)
	printItems(&sb, t.items, nil)
	return sb.String()
}

func printItems(sb *strings.Builder, items []Tree, spaces []bool) {
	for i, item := range items {
		last := i == len(items)-1
		printText(sb, item.Text(), spaces, last)
		if len(item.Items()) > 0 {
			printItems(sb, item.Items(), append(spaces[:len(spaces):len(spaces)], last))
		}
	}
}

func printText(sb *strings.Builder, text string, spaces []bool, last bool) {
	var prefix strings.Builder
	for _, space := range spaces {
		if space {
			prefix.WriteString(emptySpace)
		} else {
			prefix.WriteString(continueItem)
		}
	}
	indicator := middleItem
	if last {
		indicator = lastItem
	}

	lines := strings.Split(text, newLine)
	for i, line := range lines {
		sb.WriteString(prefix.String())
		switch {
		case i == 0:
			sb.WriteString(indicator)
		case last:
			sb.WriteString(emptySpace)
		default:
			sb.WriteString(continueItem)
		}
		sb.WriteString(line)
		sb.WriteString(newLine)
	}
}
