package codegen

import (
	"io"
	"strings"
	"text/template"
)

type TemplateData struct {
	CommandLine string
	PackageName string
	Name        string
	StartRule   string
	Grammar     string
	Pattern     string
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"ident":   GoName,
	"varName": VarName,
	"raw":     rawString,
	"lines":   func(s string) []string { return strings.Split(strings.TrimRight(s, "\n"), "\n") },
}).Parse(`// Code generated by "rulecheck {{.CommandLine}}"; DO NOT EDIT.

package {{.PackageName}}

import "regexp"

// {{varName .Name}} matches whole messages derived from rule {{.StartRule}} of:
//
{{- range lines .Grammar}}
//	{{.}}
{{- end}}
var {{varName .Name}} = regexp.MustCompile({{raw .Pattern}})

// Valid{{ident .Name}} reports whether message is derived from rule {{.StartRule}}.
func Valid{{ident .Name}}(message string) bool {
	return {{varName .Name}}.MatchString(message)
}
`))

// Write renders a Go source file for data. The output is not gofmt'd.
func Write(w io.Writer, data TemplateData) error {
	return fileTemplate.Execute(w, data)
}
