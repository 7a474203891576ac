// Package input reads rulecheck documents: a block of grammar rules, a blank
// line, then one message per line.
package input

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/arr-ai/rulecheck/grammar"
)

const sniffLen = 1024

type Document struct {
	Filename    string
	Grammar     string
	GrammarLine int
	Messages    []string
}

// Store parses the grammar block. Syntax errors carry line numbers in the
// original document.
func (d Document) Store() (grammar.Store, error) {
	return grammar.ParseRulesAt(d.Grammar, d.Filename, d.GrammarLine)
}

// ReadFile loads the document at path. An empty path or "-" reads stdin.
func ReadFile(path string) (Document, error) {
	switch path {
	case "", "-":
		doc, err := Load(os.Stdin)
		doc.Filename = "<stdin>"
		return doc, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	doc, err := Load(f)
	doc.Filename = path
	return doc, err
}

// Load decodes r to UTF-8 and splits it into grammar and messages. Leading
// blank lines are skipped; the grammar ends at the next blank line. Line
// breaks at the end of the document do not make empty messages. A
// document with no blank line after the grammar has no messages.
func Load(r io.Reader) (Document, error) {
	text, err := decode(r)
	if err != nil {
		return Document{}, err
	}
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return Document{GrammarLine: 1}, nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	first := 0
	for first < len(lines) && isBlank(lines[first]) {
		first++
	}
	end := first
	for end < len(lines) && !isBlank(lines[end]) {
		end++
	}

	doc := Document{
		Grammar:     strings.Join(lines[first:end], "\n"),
		GrammarLine: first + 1,
	}
	if end < len(lines) {
		doc.Messages = lines[end+1:]
	}
	logrus.WithFields(logrus.Fields{
		"rules":    end - first,
		"messages": len(doc.Messages),
	}).Debug("document loaded")
	return doc, nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func decode(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	enc := determineEncoding(br)
	buf, err := io.ReadAll(transform.NewReader(br, unicode.BOMOverride(enc.NewDecoder())))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// determineEncoding sniffs the first bytes of r without consuming them.
func determineEncoding(r *bufio.Reader) encoding.Encoding {
	head, err := r.Peek(sniffLen)
	if err != nil && len(head) == 0 {
		return unicode.UTF8
	}
	enc, name, _ := charset.DetermineEncoding(head, "text/plain")
	logrus.WithField("encoding", name).Trace("input encoding")
	return enc
}
