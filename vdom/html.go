package vdom

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes the HTML serialization of n to w. Fragments contribute
// only their children; OnMount hooks and click handlers are ignored.
func RenderHTML(w io.Writer, n *VNode) error {
	for _, node := range toNodes(n) {
		if err := html.Render(w, node); err != nil {
			return err
		}
	}
	return nil
}

// RenderString returns the HTML serialization of n.
func RenderString(n *VNode) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes "<!DOCTYPE html>" followed by the serialization of root.
func RenderDocument(w io.Writer, root *VNode) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	for _, node := range toNodes(root) {
		doc.AppendChild(node)
	}
	return html.Render(w, doc)
}

func toNodes(n *VNode) []*html.Node {
	if n == nil {
		return nil
	}

	switch n.Tag {
	case FragmentTag:
		var nodes []*html.Node
		for _, child := range n.Children {
			nodes = append(nodes, toNodes(child)...)
		}
		return nodes
	case TextTag:
		if n.Content == "" {
			return nil
		}
		return []*html.Node{{Type: html.TextNode, Data: n.Content}}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     toAttrs(n.Attributes),
	}
	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		for _, node := range toNodes(child) {
			el.AppendChild(node)
		}
	}
	return []*html.Node{el}
}

// toAttrs converts VNode attributes to sorted HTML attributes, following the
// same rules as the DOM renderer: true booleans render bare, false booleans
// and function values are dropped.
func toAttrs(attributes map[string]any) []html.Attribute {
	if len(attributes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		if v, ok := attrValue(attributes[k]); ok {
			attrs = append(attrs, html.Attribute{Key: k, Val: v})
		}
	}
	return attrs
}

// attrValue renders an attribute value, reporting false when the attribute
// is absent.
func attrValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return "", v
	case string:
		return v, true
	case func():
		return "", false
	default:
		if isFunc(v) {
			return "", false
		}
		return fmt.Sprint(v), true
	}
}

func isFunc(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Func
}
