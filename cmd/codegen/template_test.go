package codegen

import (
	"bytes"
	"go/format"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, TemplateData{
		CommandLine: "gen --pkg rules",
		PackageName: "rules",
		Name:        "message-rules",
		StartRule:   "0",
		Grammar:     "0: 1 2\n1: \"a\"\n2: \"`\"\n",
		Pattern:     "^(?:a`)$",
	}))
	out, err := format.Source(buf.Bytes())
	require.NoError(t, err, buf.String())

	src := string(out)
	assert.Contains(t, src, `// Code generated by "rulecheck gen --pkg rules"; DO NOT EDIT.`)
	assert.Contains(t, src, "package rules\n")
	assert.Contains(t, src, "//\t1: \"a\"\n")
	assert.Contains(t, src, "var messageRulesPattern = regexp.MustCompile(`^(?:a` + \"`\" + `)$`)")
	assert.Contains(t, src, "func ValidMessageRules(message string) bool {")
}

func TestGoName(t *testing.T) {
	for name, want := range map[string]string{
		"message":       "Message",
		"message-rules": "MessageRules",
		"HTTP rules":    "HttpRules",
		"rule_0":        "Rule0",
	} {
		assert.Equal(t, want, GoName(name), name)
	}
	assert.Equal(t, "messagePattern", VarName("Message"))
}

func TestDropCaps(t *testing.T) {
	assert.Equal(t, "Http rules", DropCaps("HTTP rules"))
	assert.Equal(t, "rule Id", DropCaps("rule ID"))
	assert.Equal(t, "A b", DropCaps("A b"))
}

func TestRawString(t *testing.T) {
	assert.Equal(t, "`^a$`", rawString("^a$"))
	assert.Equal(t, "`a`+\"`\"+`b`", rawString("a`b"))
}
