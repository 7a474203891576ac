package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/matcher"
)

var patternCommand = cli.Command{
	Name:    "pattern",
	Aliases: []string{"p"},
	Usage:   "Print the regular expression the rules compile to",
	Action:  pattern,
	Flags: []cli.Flag{
		inputFlag,
		startFlag,
		overrideFlag,
	},
}

func pattern(c *cli.Context) error {
	_, store, err := loadDocument()
	if err != nil {
		return err
	}
	store, err = applyOverrides(store, c.StringSlice("override"))
	if err != nil {
		return err
	}
	p, err := matcher.Compile(store, start())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, p)
	return nil
}
