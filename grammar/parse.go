package grammar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arr-ai/rulecheck/parse"
)

var (
	headRE    = regexp.MustCompile(`\A(\d+)`)
	colonRE   = regexp.MustCompile(`\A:`)
	literalRE = regexp.MustCompile(`\A"(?:\\.|[^\\"])*"`)
	refRE     = regexp.MustCompile(`\A\d+`)
	altRE     = regexp.MustCompile(`\A\|`)
	boundRE   = regexp.MustCompile(`\A(?:[ \t\r]|\||$)`)
)

type tokenKind int

const (
	literalToken tokenKind = iota
	refToken
	altToken
)

type token struct {
	kind tokenKind
	text parse.Scanner
	lit  string
	id   RuleID
}

// ParseRule parses a single `<id>: <body>` line.
func ParseRule(line string) (RuleID, Tree, error) {
	return parseRule(parse.NewScanner(line))
}

func parseRule(input *parse.Scanner) (RuleID, Tree, error) {
	line := input.String()
	fail := func(at *parse.Scanner, reason string) error {
		row, col := at.Position()
		return &SyntaxError{
			Filename: at.Filename(),
			Line:     row,
			Column:   col,
			Text:     line,
			Reason:   reason,
		}
	}

	input.EatSpace()
	var head parse.Scanner
	if _, ok := input.EatRegexp(headRE, &head, nil); !ok {
		return 0, nil, fail(input, "expected rule id")
	}
	id, err := parseID(head.String())
	if err != nil {
		return 0, nil, fail(&head, "invalid rule id")
	}
	input.EatSpace()
	if _, ok := input.EatRegexp(colonRE, nil, nil); !ok {
		return 0, nil, fail(input, "expected ':'")
	}

	tokens, err := tokenize(input, fail)
	if err != nil {
		return 0, nil, err
	}
	tree, err := fold(tokens, fail)
	if err != nil {
		return 0, nil, err
	}
	return id, tree, nil
}

func parseID(s string) (RuleID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return RuleID(n), nil
}

func tokenize(input *parse.Scanner, fail func(*parse.Scanner, string) error) ([]token, error) {
	var tokens []token
	for {
		input.EatSpace()
		if input.IsEmpty() {
			return tokens, nil
		}
		var tok token
		switch {
		case eat(input, literalRE, &tok.text):
			lit, err := strconv.Unquote(tok.text.String())
			if err != nil {
				return nil, fail(&tok.text, "malformed literal")
			}
			if lit == "" {
				return nil, fail(&tok.text, "empty literal")
			}
			tok.kind, tok.lit = literalToken, lit
		case eat(input, refRE, &tok.text):
			id, err := parseID(tok.text.String())
			if err != nil {
				return nil, fail(&tok.text, "invalid rule id")
			}
			tok.kind, tok.id = refToken, id
		case eat(input, altRE, &tok.text):
			tok.kind = altToken
		case strings.HasPrefix(input.String(), `"`):
			return nil, fail(input, "unterminated literal")
		default:
			return nil, fail(input, "unexpected character")
		}
		if tok.kind != altToken {
			if _, ok := input.Skip(0).EatRegexp(boundRE, nil, nil); !ok {
				return nil, fail(input, "unexpected character")
			}
		}
		tokens = append(tokens, tok)
	}
}

func eat(input *parse.Scanner, re *regexp.Regexp, match *parse.Scanner) bool {
	_, ok := input.EatRegexp(re, match, nil)
	return ok
}

// fold turns a token stream into a tree. A leading literal is the whole body.
// Otherwise the stream is split on '|' into Seqs, which are folded left into
// Alts.
func fold(tokens []token, fail func(*parse.Scanner, string) error) (Tree, error) {
	if len(tokens) > 0 && tokens[0].kind == literalToken {
		if len(tokens) > 1 {
			return nil, fail(&tokens[1].text, "literal rule has more than one term")
		}
		return Literal(tokens[0].lit), nil
	}

	var tree Tree
	group := Seq{}
	flush := func(at *parse.Scanner) error {
		if len(group) == 0 {
			return fail(at, "empty alternative")
		}
		if tree == nil {
			tree = group
		} else {
			tree = Alt{Left: tree, Right: group}
		}
		group = Seq{}
		return nil
	}
	for i := range tokens {
		tok := &tokens[i]
		switch tok.kind {
		case literalToken:
			return nil, fail(&tok.text, "literal mixed with rule references")
		case refToken:
			group = append(group, tok.id)
		case altToken:
			if err := flush(&tok.text); err != nil {
				return nil, err
			}
		}
	}
	if tree == nil {
		// No '|' at all; an empty body is the empty Seq.
		return group, nil
	}
	if err := flush(&tokens[len(tokens)-1].text); err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseRules parses one rule per line into a Store. Blank lines are skipped.
func ParseRules(text string) (Store, error) {
	return ParseRulesAt(text, "", 1)
}

// ParseRulesAt is ParseRules for text that starts at line firstLine of the
// named file; error positions are reported relative to that file.
func ParseRulesAt(text, filename string, firstLine int) (Store, error) {
	store := Store{}
	defined := map[RuleID]int{}
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineno := firstLine + i
		id, tree, err := parseRule(parse.NewScannerAt(line, filename, lineno))
		if err != nil {
			return Store{}, err
		}
		if prev, has := defined[id]; has {
			return Store{}, &SyntaxError{
				Filename: filename,
				Line:     lineno,
				Column:   1,
				Text:     line,
				Reason:   "rule " + id.String() + " already defined on line " + strconv.Itoa(prev),
			}
		}
		defined[id] = lineno
		store = store.With(id, tree)
	}
	return store, nil
}
