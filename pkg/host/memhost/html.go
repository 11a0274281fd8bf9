package memhost

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// InnerHTML serializes the children of n.
func (h *Host) InnerHTML(n *Node) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var b strings.Builder
	writeChildren(&b, n)
	return b.String()
}

// OuterHTML serializes n itself.
func (h *Host) OuterHTML(n *Node) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeChildren(b *strings.Builder, n *Node) {
	if len(n.Children) == 0 && n.Text != "" {
		b.WriteString(html.EscapeString(n.Text))
		return
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
}

func writeNode(b *strings.Builder, n *Node) {
	if n.Kind == TextNode {
		b.WriteString(html.EscapeString(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	writeAttrs(b, n.Attrs)
	b.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	writeChildren(b, n)
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func writeAttrs(b *strings.Builder, attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case nil:
		case bool:
			if v {
				b.WriteByte(' ')
				b.WriteString(k)
			}
		default:
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(fmt.Sprint(v)))
			b.WriteByte('"')
		}
	}
}
