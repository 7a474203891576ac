package parse

import (
	"regexp"
	"strings"
)

// Scanner is a window onto a source string. Eating from the front of a
// scanner advances the window; the eaten part keeps its original position.
type Scanner struct {
	src         *source
	sliceStart  int // start of the window within src
	sliceLength int // length of the window
}

type source struct {
	origin   string // the entire source string
	filename string // the name of the file the source came from, if any
	line     int    // the 1-indexed line of origin within that file
}

func NewScanner(str string) *Scanner {
	return &Scanner{&source{origin: str, line: 1}, 0, len(str)}
}

// NewScannerAt returns a scanner for str, which is line number line of the
// named file. Positions reported by the scanner are relative to that file.
func NewScannerAt(str, filename string, line int) *Scanner {
	return &Scanner{&source{origin: str, filename: filename, line: line}, 0, len(str)}
}

// - Scanner

func (s Scanner) Filename() string {
	if s.src == nil {
		return ""
	}
	return s.src.filename
}

func (s Scanner) String() string {
	if s.src == nil {
		return ""
	}
	return s.slice()
}

// Position is the 1-indexed line and column of the start of the window.
func (s Scanner) Position() (int, int) {
	line, col := lineColumn(s.src.origin, s.sliceStart)
	return line + s.src.line - 1, col
}

func (s Scanner) IsEmpty() bool {
	return s.sliceLength == 0
}

func (s Scanner) slice() string {
	return s.src.origin[s.sliceStart : s.sliceStart+s.sliceLength]
}

func (s Scanner) Slice(a, b int) *Scanner {
	return &Scanner{s.src, s.sliceStart + a, b - a}
}

func (s Scanner) Skip(i int) *Scanner {
	return &Scanner{s.src, s.sliceStart + i, s.sliceLength - i}
}

// Eat moves the next i bytes into eaten and advances s past them.
func (s *Scanner) Eat(i int, eaten *Scanner) *Scanner {
	eaten.src = s.src
	eaten.sliceStart = s.sliceStart
	eaten.sliceLength = i
	*s = *s.Skip(i)
	return s
}

func (s *Scanner) EatString(str string, eaten *Scanner) bool {
	if strings.HasPrefix(s.slice(), str) {
		s.Eat(len(str), eaten)
		return true
	}
	return false
}

var spaceRE = regexp.MustCompile(`\A[ \t\r]+`)

// EatSpace skips leading blanks and reports whether any were found.
func (s *Scanner) EatSpace() bool {
	_, ok := s.EatRegexp(spaceRE, nil, nil)
	return ok
}

// EatRegexp eats the text matching a regexp, populating match (if != nil) with
// the whole match and captures (if != nil) with any captured groups. Returns
// n as the number of captures set and ok iff a match was found.
func (s *Scanner) EatRegexp(re *regexp.Regexp, match *Scanner, captures []Scanner) (n int, ok bool) {
	if loc := re.FindStringSubmatchIndex(s.slice()); loc != nil {
		if loc[0] != 0 {
			panic(`re not \A-anchored`)
		}
		if match != nil {
			*match = *s.Slice(loc[0], loc[1])
		}
		skip := loc[1]
		loc = loc[2:]
		n = len(loc) / 2
		if len(captures) > n {
			captures = captures[:n]
		}
		for i := range captures {
			captures[i] = *s.Slice(loc[2*i], loc[2*i+1])
		}
		*s = *s.Skip(skip)
		return n, true
	}
	return 0, false
}

// The 1-indexed line and column number of the given position within the given string.
func lineColumn(str string, pos int) (line, col int) {
	prefix := str[:pos]
	line = strings.Count(prefix, "\n") + 1
	col = pos - strings.LastIndex(prefix, "\n")
	return
}
