// Package views renders the notes page. All escaping happens here, through
// html/template.
package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notes/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const IndexTemplate = "index"

var funcs = template.FuncMap{
	"messageClass": messageClass,
}

func messageClass(kind types.MessageKind) string {
	switch kind {
	case types.MessageSuccess:
		return "message message-success"
	case types.MessageWarning:
		return "message message-warning"
	default:
		return "message message-error"
	}
}

type Template struct {
	tmpl *template.Template
}

func New() *Template {
	return &Template{
		tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.tmpl.ExecuteTemplate(w, name, data)
}
