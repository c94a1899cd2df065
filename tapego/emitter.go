package tapego

import (
	"embed"
	"io"
	"text/template"
)

// Unit is what an Emitter renders into a complete source file.
type Unit struct {
	// Name is the source path, may be empty.
	Name        string
	Fingerprint string
	Resumable   bool
	Sandboxed   bool
	// Unit holds the tape declarations and the execute function.
	Unit string
}

type Emitter interface {
	Emit(w io.Writer, unit Unit) error
}

//go:embed templates/*.tmpl
var templateFiles embed.FS

var defaultTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// TemplateEmitter executes the named template of a set.
type TemplateEmitter struct {
	Templates *template.Template
	Name      string
}

var _ Emitter = TemplateEmitter{}

// DefaultEmitter renders the embedded program template.
var DefaultEmitter = TemplateEmitter{
	Templates: defaultTemplates,
	Name:      "program",
}

func (t TemplateEmitter) Emit(w io.Writer, unit Unit) error {
	return t.Templates.ExecuteTemplate(w, t.Name, unit)
}
