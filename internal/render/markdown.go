// Package render converts catalog description text to safe HTML. Remote
// descriptions may carry markdown or stray markup, so everything passes
// through a sanitizer before reaching a template.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var descriptionPolicy = newDescriptionPolicy()

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Description renders markdown description text to sanitized HTML. Empty or
// whitespace-only input yields an empty string.
func Description(raw string) (template.HTML, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(trimmed), &buf); err != nil {
		return "", err
	}
	sanitized := strings.TrimSpace(descriptionPolicy.Sanitize(buf.String()))
	return template.HTML(sanitized), nil
}

// DescriptionOrPlain renders the description, degrading to escaped plain
// text when conversion fails.
func DescriptionOrPlain(raw string) template.HTML {
	out, err := Description(raw)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(strings.TrimSpace(raw)))
	}
	return out
}
