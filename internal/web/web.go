// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fashion-digest/pkg/gravatar"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap returns the helpers available to every page
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"gravatar":   avatar,
		"paragraphs": Paragraphs,
		"richText":   richText,
		"year":       func() int { return time.Now().Year() },
	}
}

// Templates parses every embedded page together with the shared partials
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is like Templates but panics on a parse error
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Paragraphs splits an article body into its non-blank lines
func Paragraphs(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func avatar(identifier string) string {
	return gravatar.URL(identifier, gravatar.DefaultOptions)
}

// richText marks stored comment HTML as safe. Comment text is sanitized
// before it is written, so it only contains allowlisted markup.
func richText(s string) template.HTML {
	return template.HTML(s)
}
