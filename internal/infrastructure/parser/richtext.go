package parser

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeKind is the closed set of markup shapes the formatter understands.
type nodeKind int

const (
	kindIgnored nodeKind = iota
	kindText
	kindLink
	kindBold
	kindList
	kindListItem
	kindParagraph
	kindHeading
	kindContainer
)

func classify(n *html.Node) nodeKind {
	if n == nil {
		return kindIgnored
	}
	switch n.Type {
	case html.TextNode:
		return kindText
	case html.ElementNode:
	default:
		return kindIgnored
	}

	switch n.DataAtom {
	case atom.A:
		return kindLink
	case atom.B, atom.Strong:
		return kindBold
	case atom.Ol, atom.Ul:
		return kindList
	case atom.Li:
		return kindListItem
	case atom.P:
		return kindParagraph
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return kindHeading
	case atom.Script, atom.Style, atom.Template, atom.Noscript, atom.Iframe:
		return kindIgnored
	default:
		return kindContainer
	}
}

// formatter renders inline content keeping links and bold emphasis; every
// other piece of text is escaped.
type formatter struct {
	base *url.URL
}

func (f formatter) inline(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.writeNode(&sb, c)
	}
	return sb.String()
}

func (f formatter) writeNode(sb *strings.Builder, n *html.Node) {
	switch classify(n) {
	case kindIgnored:
	case kindText:
		sb.WriteString(html.EscapeString(n.Data))
	case kindLink:
		inner := f.inline(n)
		href, ok := f.resolve(attr(n, "href"))
		if !ok {
			sb.WriteString(inner)
			return
		}
		sb.WriteString(`<a href="`)
		sb.WriteString(html.EscapeString(href))
		sb.WriteString(`" target="_blank" rel="noopener">`)
		sb.WriteString(inner)
		sb.WriteString("</a>")
	case kindBold:
		sb.WriteString("<b>")
		sb.WriteString(f.inline(n))
		sb.WriteString("</b>")
	case kindList:
		f.writeList(sb, n)
	default:
		sb.WriteString(f.inline(n))
	}
}

// writeList emits one item per direct <li> child, keeping the list kind.
func (f formatter) writeList(sb *strings.Builder, n *html.Node) {
	tag := "ul"
	if n.DataAtom == atom.Ol {
		tag = "ol"
	}
	sb.WriteString("<" + tag + ">")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if classify(c) != kindListItem {
			continue
		}
		sb.WriteString("<li>")
		sb.WriteString(f.inline(c))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
}

// resolve makes href absolute against the site origin. Only web and mail
// targets survive.
func (f formatter) resolve(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if !ref.IsAbs() && f.base != nil {
		ref = f.base.ResolveReference(ref)
	}
	switch strings.ToLower(ref.Scheme) {
	case "http", "https", "mailto":
		return ref.String(), true
	case "":
		return ref.String(), f.base == nil
	default:
		return "", false
	}
}

// flattenText joins the trimmed text nodes under n with sep, skipping blanks.
func flattenText(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch classify(c) {
			case kindIgnored:
			case kindText:
				if s := strings.TrimSpace(c.Data); s != "" {
					parts = append(parts, s)
				}
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
