// Package markdown renders blog post bodies to sanitized HTML and derives
// plain-text excerpts.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const DefaultExcerptLength = 200

var allowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr", "strong", "b", "em", "i", "u",
	"a", "img", "ul", "ol", "li", "blockquote", "code", "pre",
	"table", "thead", "tbody", "tr", "th", "td",
}

var allowedAttrs = []string{
	"href", "src", "alt", "title", "class", "id", "target", "rel", "width", "height",
}

// Renderer converts markdown into HTML restricted to a fixed allow-list.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a GFM renderer with hard line breaks and heading ids.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
	)

	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs(allowedAttrs...).Globally()
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)

	return &Renderer{md: md, policy: p}
}

// Render returns sanitized HTML for content. Empty input renders to "".
func (r *Renderer) Render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}

var (
	headingRx   = regexp.MustCompile(`#{1,6}\s+`)
	emphasisRx  = regexp.MustCompile("[*_~`]")
	imageRx     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRx      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	paragraphRx = regexp.MustCompile(`\n{2,}`)
)

// ExtractExcerpt strips markdown formatting from content and truncates the
// result to maxLength characters followed by "...".
func ExtractExcerpt(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	plain := headingRx.ReplaceAllString(content, "")
	plain = emphasisRx.ReplaceAllString(plain, "")
	plain = imageRx.ReplaceAllString(plain, "")
	plain = linkRx.ReplaceAllString(plain, "$1")
	plain = paragraphRx.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
