package matcher

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arr-ai/rulecheck/grammar"
)

const (
	workedExample = `0: 4 1 5
1: 2 3 | 3 2
2: 4 4 | 5 5
3: 4 5 | 5 4
4: "a"
5: "b"
`
	loopBase = `0: 8 11
8: 42
11: 42 31
42: "a"
31: "b"
`
)

func mustParse(t *testing.T, text string) grammar.Store {
	t.Helper()
	store, err := grammar.ParseRules(text)
	require.NoError(t, err)
	return store
}

func mustOverride(t *testing.T, store grammar.Store, lines ...string) grammar.Store {
	t.Helper()
	store, err := store.Override(lines...)
	require.NoError(t, err)
	return store
}

// loadMessages reads testdata/messages.txt: rules, a blank line, then one
// message per line.
func loadMessages(t *testing.T) (grammar.Store, []string) {
	t.Helper()
	buf, err := os.ReadFile("testdata/messages.txt")
	require.NoError(t, err)
	rules, messages, found := strings.Cut(string(buf), "\n\n")
	require.True(t, found)
	return mustParse(t, rules), strings.Fields(messages)
}

// allStrings returns every string over alphabet of length up to n.
func allStrings(alphabet string, n int) []string {
	out := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, prefix := range level {
			for _, c := range alphabet {
				next = append(next, prefix+string(c))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}
