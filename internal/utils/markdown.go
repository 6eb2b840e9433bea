package utils

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithXHTML(),
		),
	)
	commentPolicy = newCommentPolicy()
	textPolicy    = bluemonday.UGCPolicy()
)

// Comments get a narrower policy than content descriptions: no images and
// no headings, links are forced to open elsewhere.
func newCommentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("p", "br", "em", "strong", "del", "code", "pre", "blockquote", "ul", "ol", "li")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// RenderComment turns comment markdown into sanitised HTML.
func RenderComment(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return "<p>" + html.EscapeString(source) + "</p>" // Fallback
	}
	return strings.TrimSpace(commentPolicy.Sanitize(buf.String()))
}

// SanitizeHTML cleans author-supplied HTML such as content descriptions and
// then applies EnhanceHTMLContent.
func SanitizeHTML(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	return EnhanceHTMLContent(textPolicy.Sanitize(source))
}
