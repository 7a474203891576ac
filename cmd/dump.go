package cmd

import (
	"fmt"
	"strings"

	"github.com/arr-ai/frozen"
	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/gotree"
	"github.com/arr-ai/rulecheck/grammar"
	"github.com/arr-ai/rulecheck/input"
)

var dumpRule uint
var sortMode bool

var dumpCommand = cli.Command{
	Name:   "dump",
	Usage:  "Print the rules as a tree",
	Action: dump,
	Flags: []cli.Flag{
		inputFlag,
		overrideFlag,
		cli.UintFlag{
			Name:        "rule",
			Usage:       "print the rules that rule derives through instead of every rule",
			Destination: &dumpRule,
		},
		cli.BoolFlag{
			Name:        "sort",
			Usage:       "order rules by id rather than as they appear in the input",
			Destination: &sortMode,
		},
	},
}

func dump(c *cli.Context) error {
	doc, store, err := loadDocument()
	if err != nil {
		return err
	}
	store, err = applyOverrides(store, c.StringSlice("override"))
	if err != nil {
		return err
	}

	var tree gotree.Tree
	if c.IsSet("rule") {
		tree, err = derivationTree(store, grammar.RuleID(dumpRule))
		if err != nil {
			return err
		}
	} else {
		tree = rulesTree(doc, store)
		if sortMode {
			tree.SortItems()
		}
	}
	fmt.Fprint(c.App.Writer, tree.Print())
	return nil
}

func ruleText(id grammar.RuleID, tree grammar.Tree) string {
	return id.String() + ": " + tree.String()
}

// rulesTree lists every rule in document order, with rules added by
// overrides last. Alternatives are listed under their rule.
func rulesTree(doc input.Document, store grammar.Store) gotree.Tree {
	root := gotree.New(fmt.Sprintf("%d rules", store.Count()))
	listed := map[grammar.RuleID]bool{}
	add := func(id grammar.RuleID) {
		if listed[id] {
			return
		}
		listed[id] = true
		body, _ := store.Get(id)
		node := root.Add(ruleText(id, body))
		if alts := grammar.Alternatives(body); len(alts) > 1 {
			for _, alt := range alts {
				node.Add(alt.String())
			}
		}
	}
	for _, line := range strings.Split(doc.Grammar, "\n") {
		if id, _, err := grammar.ParseRule(line); err == nil && store.Has(id) {
			add(id)
		}
	}
	for _, id := range store.IDs() {
		add(id)
	}
	return root
}

// derivationTree shows id and, below it, every rule it refers to. A rule is
// expanded only the first time it appears.
func derivationTree(store grammar.Store, id grammar.RuleID) (gotree.Tree, error) {
	body, err := store.Lookup(id)
	if err != nil {
		return nil, err
	}
	root := gotree.New(ruleText(id, body))
	expanded := frozen.NewSet(uint32(id))

	var expand func(node gotree.Tree, body grammar.Tree, path []grammar.RuleID) error
	expand = func(node gotree.Tree, body grammar.Tree, path []grammar.RuleID) error {
		for _, ref := range grammar.Refs(body) {
			child, err := store.Lookup(ref, path...)
			if err != nil {
				return err
			}
			text := ruleText(ref, child)
			if expanded.Has(uint32(ref)) {
				node.Add(text + " ...")
				continue
			}
			expanded = expanded.With(uint32(ref))
			if err := expand(node.Add(text), child, append(path, ref)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := expand(root, body, []grammar.RuleID{id}); err != nil {
		return nil, err
	}
	return root, nil
}
