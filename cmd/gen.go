package cmd

import (
	"bytes"
	"go/format"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/arr-ai/rulecheck/cmd/codegen"
	"github.com/arr-ai/rulecheck/matcher"
)

var pkgName string
var patternName string
var outFile string
var genCommand = cli.Command{
	Name:    "gen",
	Aliases: []string{"g"},
	Usage:   "Generate a Go file that validates messages with the compiled pattern",
	Action:  gen,
	Flags: []cli.Flag{
		inputFlag,
		startFlag,
		overrideFlag,
		cli.StringFlag{
			Name:        "pkg",
			Usage:       "name of the generated package",
			Required:    true,
			Destination: &pkgName,
		},
		cli.StringFlag{
			Name:        "name",
			Usage:       "name of the generated validator",
			Value:       "message",
			Destination: &patternName,
		},
		cli.StringFlag{
			Name:        "output",
			Usage:       "filename to write the output to",
			Required:    false,
			TakesFile:   true,
			Destination: &outFile,
		},
	},
}

func gen(c *cli.Context) error {
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

	tmpldata := codegen.TemplateData{
		CommandLine: strings.Join(os.Args[1:], " "),
		PackageName: pkgName,
		Name:        patternName,
		StartRule:   start().String(),
		Grammar:     store.String(),
		Pattern:     p.String(),
	}
	var buf bytes.Buffer
	if err := codegen.Write(&buf, tmpldata); err != nil {
		return err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return err
	}

	switch outFile {
	case "", "-":
		_, err = c.App.Writer.Write(out)
		return err
	default:
		return os.WriteFile(outFile, out, 0o644)
	}
}
