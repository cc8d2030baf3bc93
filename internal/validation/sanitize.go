package validation

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags are the elements the comment editor may produce
var allowedTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Br:         true,
	atom.Strong:     true,
	atom.B:          true,
	atom.Em:         true,
	atom.I:          true,
	atom.U:          true,
	atom.S:          true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.A:          true,
}

var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// textEscaper escapes only what a text node needs; quotes stay literal so
// stored comments keep the characters the user typed.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Sanitize reduces submitted rich text to an allowlist of formatting tags.
// Attributes are dropped except a safe href on links, script and style
// content is removed, and every open tag is closed.
func Sanitize(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))

	var b strings.Builder
	var open []atom.Atom
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return ""
			}
			for i := len(open) - 1; i >= 0; i-- {
				b.WriteString("</" + open[i].String() + ">")
			}
			return strings.TrimSpace(b.String())

		case html.TextToken:
			if skip == 0 {
				b.WriteString(textEscaper.Replace(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Script || tok.DataAtom == atom.Style {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if skip > 0 || !allowedTags[tok.DataAtom] {
				continue
			}
			b.WriteString(openTag(tok))
			switch {
			case tok.DataAtom == atom.Br:
			case tt == html.SelfClosingTagToken:
				b.WriteString("</" + tok.DataAtom.String() + ">")
			default:
				open = append(open, tok.DataAtom)
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Script || tok.DataAtom == atom.Style {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 || !allowedTags[tok.DataAtom] {
				continue
			}
			// close back to the matching open tag; stray end tags are dropped
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] != tok.DataAtom {
					continue
				}
				for j := len(open) - 1; j >= i; j-- {
					b.WriteString("</" + open[j].String() + ">")
				}
				open = open[:i]
				break
			}
		}
	}
}

func openTag(tok html.Token) string {
	if tok.DataAtom != atom.A {
		return "<" + tok.DataAtom.String() + ">"
	}
	for _, attr := range tok.Attr {
		if attr.Key == "href" && safeHref(attr.Val) {
			return `<a href="` + html.EscapeString(attr.Val) + `" rel="nofollow noopener">`
		}
	}
	return "<a>"
}

func safeHref(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}
