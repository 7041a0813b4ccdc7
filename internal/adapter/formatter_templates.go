package adapter

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var formatterTemplateFS embed.FS

var formatterTemplates = template.Must(
	template.New("formatter").
		Funcs(template.FuncMap{
			"add": func(a, b int) int { return a + b },
		}).
		ParseFS(formatterTemplateFS, "templates/*.tmpl"),
)

func executeFormatterTemplate(name string, data any) (string, error) {
	var builder strings.Builder
	if err := formatterTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}
