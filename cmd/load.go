package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/grammar"
	"github.com/arr-ai/rulecheck/input"
)

var inFile string
var startRule uint
var verboseMode bool

var inputFlag = cli.StringFlag{
	Name:        "input",
	Usage:       "document with grammar rules, a blank line, then messages (- for stdin)",
	Required:    false,
	TakesFile:   true,
	Destination: &inFile,
}

var startFlag = cli.UintFlag{
	Name:        "start",
	Usage:       "rule that whole messages must match",
	Value:       0,
	Destination: &startRule,
}

var overrideFlag = cli.StringSliceFlag{
	Name:  "override",
	Usage: "replacement rule line, e.g. \"8: 42 | 42 8\" (repeatable)",
}

var verboseFlag = cli.BoolFlag{
	Name:        "v",
	Usage:       "verbose logging",
	Destination: &verboseMode,
}

func start() grammar.RuleID {
	return grammar.RuleID(startRule)
}

// loadDocument reads --input and parses its grammar block.
func loadDocument() (input.Document, grammar.Store, error) {
	if verboseMode {
		logrus.SetLevel(logrus.TraceLevel)
	}
	doc, err := input.ReadFile(inFile)
	if err != nil {
		return input.Document{}, grammar.Store{}, err
	}
	store, err := doc.Store()
	if err != nil {
		return input.Document{}, grammar.Store{}, err
	}
	logrus.WithFields(logrus.Fields{
		"file":     doc.Filename,
		"rules":    store.Count(),
		"messages": len(doc.Messages),
	}).Debug("input loaded")
	return doc, store, nil
}

func applyOverrides(store grammar.Store, lines []string) (grammar.Store, error) {
	if len(lines) == 0 {
		return store, nil
	}
	logrus.WithField("rules", lines).Debug("overriding rules")
	return store.Override(lines...)
}
