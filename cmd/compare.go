package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/grammar"
	"github.com/arr-ai/rulecheck/matcher"
)

var checkMode bool

var compareCommand = cli.Command{
	Name:  "compare",
	Usage: "Count with the compiled pattern, then again with overridden rules and the recursive matcher",
	Description: "Without --override the rules are overridden with\n" +
		"   8: 42 | 42 8\n" +
		"   11: 42 31 | 42 11 31",
	Action: compare,
	Flags: []cli.Flag{
		inputFlag,
		startFlag,
		overrideFlag,
		workersFlag,
		cli.BoolFlag{
			Name:        "check",
			Usage:       "also run the recursive matcher on the unmodified rules and fail if it disagrees with the pattern",
			Destination: &checkMode,
		},
		verboseFlag,
	},
}

func compare(c *cli.Context) error {
	doc, base, err := loadDocument()
	if err != nil {
		return err
	}
	lines := c.StringSlice("override")
	if len(lines) == 0 {
		lines = grammar.LoopOverrides
	}
	looped, err := applyOverrides(base, lines)
	if err != nil {
		return err
	}

	pattern, err := matcher.Select(base, start(), matcher.Finite)
	if err != nil {
		return err
	}
	recursive, err := matcher.Select(looped, start(), matcher.Recursive)
	if err != nil {
		return err
	}

	if checkMode {
		diffs, err := matcher.CrossCheck(pattern, matcher.New(base, start()), doc.Messages)
		if err != nil {
			return err
		}
		if len(diffs) > 0 {
			for _, i := range diffs {
				logrus.WithField("line", i+1).Errorf("backends disagree on %q", doc.Messages[i])
			}
			return fmt.Errorf("backends disagree on %d of %d messages", len(diffs), len(doc.Messages))
		}
		logrus.WithField("messages", len(doc.Messages)).Info("backends agree")
	}

	before, err := matcher.Validator{Backend: pattern, Workers: workers}.Count(doc.Messages)
	if err != nil {
		return err
	}
	after, err := matcher.Validator{Backend: recursive, Workers: workers}.Count(doc.Messages)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, before)
	fmt.Fprintln(c.App.Writer, after)
	return nil
}
