package codegen

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

// GoName turns a name such as "message-rules" or "HTTP rules" into an
// exported Go identifier ("MessageRules", "HttpRules").
func GoName(name string) string {
	return strcase.ToCamel(DropCaps(name))
}

// VarName is the unexported package variable holding the pattern for name.
func VarName(name string) string {
	return strcase.ToLowerCamel(DropCaps(name)) + "Pattern"
}

var capsRunRE = regexp.MustCompile(`[A-Z]{2,}`)

// DropCaps lowercases all but the first letter of each run of capitals, so
// that strcase treats an acronym as one word.
func DropCaps(name string) string {
	return capsRunRE.ReplaceAllStringFunc(name, func(run string) string {
		return run[:1] + strings.ToLower(run[1:])
	})
}

// rawString quotes s as a Go raw string literal. Backquotes, which a raw
// string cannot hold, are spliced in as interpreted strings.
func rawString(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "`+\"`\"+`") + "`"
}
