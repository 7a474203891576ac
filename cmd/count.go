package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/matcher"
)

var backendName string
var workers int

var backendFlag = cli.StringFlag{
	Name:        "backend",
	Usage:       "auto, finite or recursive",
	Value:       "auto",
	Destination: &backendName,
}

var workersFlag = cli.IntFlag{
	Name:        "workers",
	Usage:       "number of messages to check concurrently",
	Value:       1,
	Destination: &workers,
}

var countCommand = cli.Command{
	Name:    "count",
	Aliases: []string{"c"},
	Usage:   "Count the messages that match the start rule",
	Action:  count,
	Flags: []cli.Flag{
		inputFlag,
		startFlag,
		backendFlag,
		overrideFlag,
		workersFlag,
		verboseFlag,
	},
}

func count(c *cli.Context) error {
	kind, err := matcher.ParseKind(backendName)
	if err != nil {
		return err
	}
	doc, store, err := loadDocument()
	if err != nil {
		return err
	}
	store, err = applyOverrides(store, c.StringSlice("override"))
	if err != nil {
		return err
	}
	backend, err := matcher.Select(store, start(), kind)
	if err != nil {
		return err
	}
	n, err := matcher.Validator{Backend: backend, Workers: workers}.Count(doc.Messages)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, n)
	return nil
}
