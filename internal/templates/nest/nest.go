// Package nest provides templates for NestJS/TypeORM code generation.
package nest

import (
	"embed"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
)

//go:embed *.tmpl
var nestTemplates embed.FS

// GetTemplate returns the content of a template by base name
// (e.g. "entity", "service").
func GetTemplate(name string) (string, error) {
	content, err := nestTemplates.ReadFile(name + ".ts.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the template function map for nest templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"toLower":   strings.ToLower,
		"toUpper":   strings.ToUpper,
		"pascal":    inflect.Camelize,
		"camel":     inflect.CamelizeDownFirst,
		"plural":    inflect.Pluralize,
		"kebab":     func(s string) string { return inflect.Dasherize(inflect.Underscore(s)) },
		"snake":     inflect.Underscore,
		"tableName": func(s string) string { return inflect.Pluralize(inflect.Underscore(s)) },
	}
}
