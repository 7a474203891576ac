package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/arr-ai/rulecheck/grammar"
)

const example = "0: 1 2\n1: \"a\"\n2: \"b\"\n\nab\nba\na\n"

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(example))
	require.NoError(t, err)
	assert.Equal(t, "0: 1 2\n1: \"a\"\n2: \"b\"", doc.Grammar)
	assert.Equal(t, 1, doc.GrammarLine)
	assert.Equal(t, []string{"ab", "ba", "a"}, doc.Messages)

	store, err := doc.Store()
	require.NoError(t, err)
	assert.Equal(t, 3, store.Count())
}

func TestLoadLayout(t *testing.T) {
	for _, test := range []struct {
		name     string
		text     string
		grammar  string
		line     int
		messages []string
	}{
		{name: "crlf", text: "0: \"a\"\r\n\r\na\r\nb\r\n", grammar: `0: "a"`, line: 1, messages: []string{"a", "b"}},
		{name: "leading blank lines", text: "\n  \n0: \"a\"\n\na", grammar: `0: "a"`, line: 3, messages: []string{"a"}},
		{name: "no messages", text: "0: \"a\"\n1: \"b\"\n", grammar: "0: \"a\"\n1: \"b\"", line: 1},
		{name: "blank message", text: "0: \"a\"\n\na\n\nb\n", grammar: `0: "a"`, line: 1, messages: []string{"a", "", "b"}},
		{name: "trailing blank lines", text: "0:\n\na\n\n\r\n", grammar: "0:", line: 1, messages: []string{"a"}},
		{name: "empty", text: "", line: 1},
		{name: "utf-8 bom", text: "\xef\xbb\xbf0: \"a\"\n\na", grammar: `0: "a"`, line: 1, messages: []string{"a"}},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			doc, err := Load(strings.NewReader(test.text))
			require.NoError(t, err)
			assert.Equal(t, test.grammar, doc.Grammar)
			assert.Equal(t, test.line, doc.GrammarLine)
			assert.Equal(t, test.messages, doc.Messages)
		})
	}
}

func TestLoadUTF16(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(example)
	require.NoError(t, err)

	doc, err := Load(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "0: 1 2\n1: \"a\"\n2: \"b\"", doc.Grammar)
	assert.Equal(t, []string{"ab", "ba", "a"}, doc.Messages)
}

func TestStoreReportsDocumentLine(t *testing.T) {
	doc, err := Load(strings.NewReader("\n\n0: 1\n1: x\n\nab"))
	require.NoError(t, err)
	doc.Filename = "rules.txt"

	_, err = doc.Store()
	var syntax *grammar.SyntaxError
	require.True(t, errors.As(err, &syntax), "%v", err)
	assert.Equal(t, 4, syntax.Line)
	assert.Equal(t, "rules.txt", syntax.Filename)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o600))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Filename)
	assert.Len(t, doc.Messages, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
