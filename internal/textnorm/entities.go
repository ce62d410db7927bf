package textnorm

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// numericEntityRegex matches decimal and hexadecimal character references.
var numericEntityRegex = regexp.MustCompile(`&#(x[0-9a-fA-F]+|[0-9]+);`)

// namedEntities is the ordered replacement table for named references seen
// in provider payloads. "&amp;" is deliberately absent: it must always be
// decoded last, or "&amp;#10;" would double-unescape into a newline.
var namedEntities = []struct{ entity, text string }{
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&lsquo;", "‘"},
	{"&rsquo;", "’"},
	{"&ldquo;", "“"},
	{"&rdquo;", "”"},
	{"&ndash;", "–"},
	{"&mdash;", "—"},
	{"&hellip;", "…"},
	{"&nbsp;", " "},
	{"&trade;", "™"},
	{"&copy;", "©"},
	{"&reg;", "®"},
	{"&lt;", "<"},
	{"&gt;", ">"},
}

// DecodeEntities resolves character references in loosely structured
// provider payloads. Decode order is significant: numeric references first,
// named references second, and the ampersand reference strictly last.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	s = numericEntityRegex.ReplaceAllStringFunc(s, func(m string) string {
		body := m[2 : len(m)-1]
		var (
			code int64
			err  error
		)
		if body[0] == 'x' {
			code, err = strconv.ParseInt(body[1:], 16, 32)
		} else {
			code, err = strconv.ParseInt(body, 10, 32)
		}
		if err != nil || code <= 0 {
			return m
		}
		return string(rune(code))
	})

	for _, e := range namedEntities {
		s = strings.ReplaceAll(s, e.entity, e.text)
	}

	return strings.ReplaceAll(s, "&amp;", "&")
}

// StripMarkup removes HTML tags from a description and returns plain text.
// Handles character references and collapses whitespace.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// If parsing fails, fall back to regex stripping.
		return stripMarkupFallback(s)
	}

	var buf strings.Builder
	extractText(doc, &buf)

	return strings.TrimSpace(collapseWhitespace(buf.String()))
}

// extractText recursively extracts text content from HTML nodes.
func extractText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}

	// Block elements separate words.
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

func stripMarkupFallback(s string) string {
	s = htmlTagRegex.ReplaceAllString(s, " ")
	s = DecodeEntities(s)
	return strings.TrimSpace(collapseWhitespace(s))
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// collapseWhitespace replaces runs of whitespace with a single space.
func collapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// CleanDescription strips markup and decodes leftover character references
// from a provider-supplied description.
func CleanDescription(s string) string {
	return strings.TrimSpace(DecodeEntities(StripMarkup(s)))
}
