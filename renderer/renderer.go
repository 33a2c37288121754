// Package renderer turns snapshots, progress and leads into markdown, and
// markdown into HTML pages.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	ttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed *.md
var templates embed.FS

// RenderDashboard renders the investor dashboard to markdown.
func RenderDashboard(d *Dashboard) string {
	partials := map[string]string{
		"dashboard_stats":   "dashboard_stats.md",
		"dashboard_bars":    "dashboard_bars.md",
		"dashboard_summary": "dashboard_summary.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderLanding renders the landing page to markdown, lead form included.
func RenderLanding(l *Landing) string {
	partials := map[string]string{
		"progress":     "progress.md",
		"landing_kpis": "landing_kpis.md",
		"landing_form": "landing_form.md",
	}
	return renderTemplate("landing", "landing.md", partials, l)
}

// RenderProgress renders the campaign progress bar alone.
func RenderProgress(p *Progress) string {
	return renderTemplate("progress", "progress.md", nil, p)
}

// RenderLeadReceipt renders the acknowledgement shown after a lead is recorded.
func RenderLeadReceipt(r *Receipt) string {
	return renderTemplate("lead_receipt", "lead_receipt.md", nil, r)
}

// funcs are available to every template.
var funcs = ttemplate.FuncMap{
	"escape": Escape,
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := ttemplate.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// the landing page embeds its lead form as raw HTML.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTML converts markdown produced by this package to an HTML fragment.
func HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return buf.String(), nil
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0 auto; max-width: 60rem; padding: 2rem 1.5rem; font-family: system-ui, sans-serif; background: #020617; color: #e2e8f0; line-height: 1.5; }
a { color: #34d399; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid rgba(255,255,255,.1); padding: .5rem; text-align: left; }
code { color: #10b981; }
blockquote { margin: 1.5rem 0; padding: .75rem 1rem; border: 1px solid rgba(245,158,11,.3); background: rgba(245,158,11,.1); color: #fde68a; }
form label { display: block; margin: .75rem 0; }
form input[type=text], form input[type=email] { display: block; width: 100%; padding: .6rem; border-radius: .5rem; border: 1px solid rgba(255,255,255,.1); background: #020617; color: inherit; }
form button { width: 100%; padding: .75rem; border: 0; border-radius: 1rem; background: #10b981; color: white; font-weight: 600; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps an HTML fragment, as returned by HTML, in a complete document.
func Page(title, body string) (string, error) {
	var b strings.Builder
	err := page.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
	if err != nil {
		return "", fmt.Errorf("cannot render page %q: %w", title, err)
	}
	return b.String(), nil
}
