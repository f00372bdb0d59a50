package rendering

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	"sync"
	"text/template"

	"github.com/charmbracelet/glamour"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	htmlTemplateFile     = "templates/summary.html.tmpl"
	markdownTemplateFile = "templates/summary.md.tmpl"
)

var (
	htmlOnce sync.Once
	htmlTmpl *htmltemplate.Template
	htmlErr  error

	mdOnce sync.Once
	mdTmpl *template.Template
	mdErr  error
)

func htmlTemplate() (*htmltemplate.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = htmltemplate.ParseFS(templateFS, htmlTemplateFile)
		if htmlErr != nil {
			htmlErr = &TemplateError{Message: "failed to parse HTML template", Cause: htmlErr}
		}
	})
	return htmlTmpl, htmlErr
}

func markdownTemplate() (*template.Template, error) {
	mdOnce.Do(func() {
		mdTmpl, mdErr = template.New("summary.md.tmpl").
			Funcs(template.FuncMap{"md": escapeMarkdown}).
			ParseFS(templateFS, markdownTemplateFile)
		if mdErr != nil {
			mdErr = &TemplateError{Message: "failed to parse Markdown template", Cause: mdErr}
		}
	})
	return mdTmpl, mdErr
}

// HTML renders s as a standalone document with inline styles, ready for printing.
func HTML(s Summary) ([]byte, error) {
	tmpl, err := htmlTemplate()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return nil, &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.Bytes(), nil
}

// Markdown renders s as a Markdown document.
func Markdown(s Summary) (string, error) {
	tmpl, err := markdownTemplate()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, s); err != nil {
		return "", &TemplateError{Message: "failed to execute Markdown template", Cause: err}
	}
	return buf.String(), nil
}

// Terminal renders s for a terminal of the given width. An empty style picks one
// from the terminal's background.
func Terminal(s Summary, width int, style string) (string, error) {
	md, err := Markdown(s)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", &RenderError{Message: "failed to create terminal renderer", Cause: err}
	}
	out, err := r.Render(md)
	if err != nil {
		return "", &RenderError{Message: "failed to render markdown", Cause: err}
	}
	return out, nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", `\<`,
	">", `\>`,
)

// escapeMarkdown keeps user text from being read as Markdown syntax.
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
