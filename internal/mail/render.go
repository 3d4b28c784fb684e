package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	TemplateNewsletterWelcome = "newsletter_welcome"
	TemplateContact           = "contact"
	TemplateUnsubscribePage   = "unsubscribe_page"
)

// Renderer executes the embedded templates. Every template file defines a
// "subject" and a "body" block.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	r := &Renderer{templates: make(map[string]*template.Template, len(entries))}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".html")
		t, err := template.ParseFS(templateFS, "templates/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render returns the subject line and the HTML body of template name.
func (r *Renderer) Render(name string, data any) (subject, body string, err error) {
	t, ok := r.templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", name)
	}

	var sb, bb bytes.Buffer
	if err := t.ExecuteTemplate(&sb, "subject", data); err != nil {
		return "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := t.ExecuteTemplate(&bb, "body", data); err != nil {
		return "", "", fmt.Errorf("render %s body: %w", name, err)
	}
	return strings.TrimSpace(html.UnescapeString(sb.String())), bb.String(), nil
}
