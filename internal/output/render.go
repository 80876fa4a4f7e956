package output

import (
	"encoding/json"
	"io"
	"strings"
	"text/template"

	apperrors "github.com/repopack/repopack/internal/pkg/errors"
)

const xmlTemplate = `<repopack root="{{attr .Doc.RootName}}" generated="{{.Doc.Summary.GeneratedAt.Format "2006-01-02T15:04:05Z07:00"}}">
{{- if .Doc.HeaderText}}
<instructions>
{{.Doc.HeaderText}}
</instructions>
{{- end}}
{{- if .IncludeSummary}}
<summary files="{{.Doc.Summary.TotalFiles}}" lines="{{.Doc.Summary.TotalLines}}" truncated_files="{{.Doc.Summary.TruncatedFiles}}"/>
{{- end}}
{{- if .Doc.Tree}}
<directory_structure>
{{.Doc.Tree}}
</directory_structure>
{{- end}}
<files>
{{- range .Doc.Files}}
<file path="{{attr .Path}}"{{with note .Truncation}} note="{{attr .}}"{{end}}>
{{body .Content}}
</file>
{{- end}}
</files>
</repopack>
`

const markdownTemplate = `# Repository: {{.Doc.RootName}}
{{- if .Doc.HeaderText}}

{{.Doc.HeaderText}}
{{- end}}
{{- if .IncludeSummary}}

Files: {{.Doc.Summary.TotalFiles}}, lines: {{.Doc.Summary.TotalLines}}, truncated: {{.Doc.Summary.TruncatedFiles}}
{{- end}}
{{- if .Doc.Tree}}

## Directory Structure

` + "```" + `
{{.Doc.Tree}}
` + "```" + `
{{- end}}

## Files
{{range .Doc.Files}}
### {{.Path}}
{{- with note .Truncation}}

_{{.}}_
{{- end}}

` + "```{{.Language}}" + `
{{body .Content}}
` + "```" + `
{{end -}}
`

const plainTemplate = `{{- if .Doc.HeaderText}}{{.Doc.HeaderText}}

{{end -}}
================================================================
Repository: {{.Doc.RootName}}
================================================================
{{- if .Doc.Tree}}

{{.Doc.Tree}}
{{- end}}
{{range .Doc.Files}}
================
File: {{.Path}}{{with note .Truncation}} ({{.}}){{end}}
================
{{body .Content}}
{{end -}}
`

// templateData wraps a document with per-render options so templates
// stay free of renderer state.
type templateData struct {
	Doc            *Document
	IncludeSummary bool
}

func renderFuncs(opts Options) template.FuncMap {
	return template.FuncMap{
		"attr": escapeAttr,
		"note": truncationNote,
		"body": func(content string) string {
			if opts.ShowLineNumbers {
				return numberLines(content)
			}
			return content
		},
	}
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func renderTemplate(w io.Writer, name, text string, opts Options, doc *Document) error {
	tmpl, err := template.New(name).Funcs(renderFuncs(opts)).Parse(text)
	if err != nil {
		return apperrors.InternalError("parsing output template", err).
			WithDetail("style", name)
	}
	data := templateData{Doc: doc, IncludeSummary: opts.IncludeSummary}
	if err := tmpl.Execute(w, data); err != nil {
		return apperrors.RenderError("rendering document", err).
			WithDetail("style", name)
	}
	return nil
}

type xmlRenderer struct{ opts Options }

func (r *xmlRenderer) Style() string { return StyleXML }

func (r *xmlRenderer) Render(w io.Writer, doc *Document) error {
	return renderTemplate(w, StyleXML, xmlTemplate, r.opts, doc)
}

type markdownRenderer struct{ opts Options }

func (r *markdownRenderer) Style() string { return StyleMarkdown }

func (r *markdownRenderer) Render(w io.Writer, doc *Document) error {
	return renderTemplate(w, StyleMarkdown, markdownTemplate, r.opts, doc)
}

type plainRenderer struct{ opts Options }

func (r *plainRenderer) Style() string { return StylePlain }

func (r *plainRenderer) Render(w io.Writer, doc *Document) error {
	return renderTemplate(w, StylePlain, plainTemplate, r.opts, doc)
}

type jsonRenderer struct{ opts Options }

func (r *jsonRenderer) Style() string { return StyleJSON }

func (r *jsonRenderer) Render(w io.Writer, doc *Document) error {
	out := *doc
	if r.opts.ShowLineNumbers {
		files := make([]FileEntry, len(doc.Files))
		copy(files, doc.Files)
		for i := range files {
			files[i].Content = numberLines(files[i].Content)
		}
		out.Files = files
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return apperrors.RenderError("encoding json document", err).
			WithDetail("style", StyleJSON)
	}
	return nil
}
