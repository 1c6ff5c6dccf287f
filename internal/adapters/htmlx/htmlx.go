// Package htmlx holds small helpers over golang.org/x/net/html node trees
package htmlx

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr returns the value of key on n, "" when absent
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n's class attribute contains the token cls
func HasClass(n *html.Node, cls string) bool {
	for c := range strings.FieldsSeq(Attr(n, "class")) {
		if c == cls {
			return true
		}
	}
	return false
}

// Text returns the visible text under n with whitespace runs collapsed to one space
func Text(n *html.Node) string {
	var b strings.Builder
	collect(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collect(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, b)
	}
}

// Find calls fn for every node under root in document order; returning false skips the node's children
func Find(root *html.Node, fn func(*html.Node) bool) {
	if !fn(root) {
		return
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Find(c, fn)
	}
}

// First returns the first element under root matching fn, or nil
func First(root *html.Node, fn func(*html.Node) bool) *html.Node {
	var out *html.Node
	Find(root, func(n *html.Node) bool {
		if out != nil {
			return false
		}
		if n.Type == html.ElementNode && fn(n) {
			out = n
			return false
		}
		return true
	})
	return out
}
