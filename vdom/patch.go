package vdom

import (
	"strconv"
	"strings"
)

// Node is the part of a DOM node the patcher uses.
type Node interface {
	// Same reports whether other is the same DOM node.
	Same(other Node) bool
	FirstChild() Node
	NextSibling() Node
	// InsertBefore inserts or moves child before ref; a nil ref appends.
	InsertBefore(child, ref Node)
	RemoveChild(child Node)
	SetAttribute(key, value string)
	RemoveAttribute(key string)
	// SetText sets the data of a text node.
	SetText(text string)
	SetProperty(key, value string)
	// AddListener attaches handler for event and returns a func detaching it.
	AddListener(event string, handler any) (remove func())
}

// Document creates DOM nodes.
type Document interface {
	CreateElement(tag string) Node
	CreateTextNode(text string) Node
}

// Patcher keeps a run of sibling DOM nodes in sync with a VNode tree,
// applying only the differences between consecutive trees.
//
// Nodes are matched by identity: the keys of the fragments enclosing a node
// plus its position among the nodes sharing those keys. Matched nodes with
// the same tag are updated in place; others are created or removed. A node
// is moved only when its position among its siblings changed.
type Patcher struct {
	doc    Document
	parent Node
	start  Node
	end    Node

	mounted []*mounted
	claimed bool
}

type mounted struct {
	id        string
	tag       string
	dom       Node
	text      string
	value     string
	attrs     map[string]string
	listeners []func()
	children  []*mounted
}

type item struct {
	id   string
	node *VNode
}

// NewPatcher creates a patcher owning the children of parent that lie after
// start and before end. A nil start or end extends the run to the first or
// last child.
func NewPatcher(doc Document, parent, start, end Node) *Patcher {
	return &Patcher{doc: doc, parent: parent, start: start, end: end}
}

// Patch updates the owned nodes to match root. The first call replaces
// whatever the run held, such as server rendered markup.
func (p *Patcher) Patch(root *VNode) {
	if !p.claimed {
		p.clear()
		p.claimed = true
	}

	var items []item
	if root != nil {
		items = flatten([]*VNode{root}, "", nil, map[string]int{})
	}
	p.mounted = p.reconcile(p.parent, p.mounted, items, p.first, p.end)
}

// Unmount removes every owned node and detaches their listeners.
func (p *Patcher) Unmount() {
	p.mounted = p.reconcile(p.parent, p.mounted, nil, p.first, p.end)
}

func (p *Patcher) first() Node {
	if p.start == nil {
		return p.parent.FirstChild()
	}
	return p.start.NextSibling()
}

func (p *Patcher) clear() {
	for n := p.first(); n != nil && (p.end == nil || !n.Same(p.end)); n = p.first() {
		p.parent.RemoveChild(n)
	}
}

func (p *Patcher) reconcile(parent Node, old []*mounted, items []item, first func() Node, end Node) []*mounted {
	byID := make(map[string]*mounted, len(old))
	for _, m := range old {
		byID[m.id] = m
	}

	next := make([]*mounted, len(items))
	for i, it := range items {
		if m, ok := byID[it.id]; ok && m.tag == it.node.Tag {
			delete(byID, it.id)
			p.update(m, it.node)
			next[i] = m
			continue
		}
		next[i] = p.create(it)
	}

	for _, m := range old {
		if _, stale := byID[m.id]; stale {
			release(m)
			parent.RemoveChild(m.dom)
		}
	}

	cursor := first()
	for _, m := range next {
		if cursor != nil && cursor.Same(m.dom) {
			cursor = cursor.NextSibling()
			continue
		}
		ref := cursor
		if ref == nil {
			ref = end
		}
		parent.InsertBefore(m.dom, ref)
	}
	return next
}

func (p *Patcher) create(it item) *mounted {
	n := it.node
	m := &mounted{id: it.id, tag: n.Tag}

	if n.Tag == TextTag {
		m.text = n.Content
		m.dom = p.doc.CreateTextNode(n.Content)
		return m
	}

	m.dom = p.doc.CreateElement(n.Tag)
	m.attrs = renderAttrs(n.Attributes)
	for k, v := range m.attrs {
		m.dom.SetAttribute(k, v)
	}
	if hasValue(n.Tag) && n.Content != "" {
		m.value = n.Content
		m.dom.SetProperty("value", n.Content)
	}
	m.listeners = listen(m.dom, n)

	for _, child := range childItems(n) {
		cm := p.create(child)
		m.dom.InsertBefore(cm.dom, nil)
		m.children = append(m.children, cm)
	}
	return m
}

func (p *Patcher) update(m *mounted, n *VNode) {
	if n.Tag == TextTag {
		if m.text != n.Content {
			m.dom.SetText(n.Content)
			m.text = n.Content
		}
		return
	}

	attrs := renderAttrs(n.Attributes)
	for k := range m.attrs {
		if _, ok := attrs[k]; !ok {
			m.dom.RemoveAttribute(k)
		}
	}
	for k, v := range attrs {
		if old, ok := m.attrs[k]; !ok || old != v {
			m.dom.SetAttribute(k, v)
		}
	}
	m.attrs = attrs

	if hasValue(n.Tag) && m.value != n.Content {
		m.dom.SetProperty("value", n.Content)
		m.value = n.Content
	}

	// Handlers are funcs and can't be compared, so they are always replaced.
	for _, remove := range m.listeners {
		remove()
	}
	m.listeners = listen(m.dom, n)

	dom := m.dom
	m.children = p.reconcile(dom, m.children, childItems(n), dom.FirstChild, nil)
}

func release(m *mounted) {
	for _, remove := range m.listeners {
		remove()
	}
	m.listeners = nil
	for _, child := range m.children {
		release(child)
	}
}

// flatten lists the DOM nodes of vnodes: fragments contribute their children
// and empty text nodes contribute nothing.
func flatten(vnodes []*VNode, path string, out []item, counts map[string]int) []item {
	for _, v := range vnodes {
		if v == nil {
			continue
		}
		switch {
		case v.Tag == FragmentTag:
			childPath := path
			if v.Key != "" {
				childPath = path + "/" + v.Key
			}
			out = flatten(v.Children, childPath, out, counts)
		case v.Tag == TextTag && v.Content == "":
		default:
			n := counts[path]
			counts[path] = n + 1
			out = append(out, item{id: path + "#" + strconv.Itoa(n), node: v})
		}
	}
	return out
}

// childItems lists the DOM children of an element. Content renders as a
// leading text node, except for form fields where it is the value.
func childItems(n *VNode) []item {
	var out []item
	if n.Content != "" && !hasValue(n.Tag) {
		out = append(out, item{id: "content", node: Text(n.Content)})
	}
	return flatten(n.Children, "", out, map[string]int{})
}

func hasValue(tag string) bool {
	return tag == "input" || tag == "textarea"
}

// listen attaches the node's "on<Event>" attributes and OnClick.
func listen(dom Node, n *VNode) []func() {
	var removers []func()
	for key, value := range n.Attributes {
		if !isHandler(key, value) {
			continue
		}
		removers = append(removers, dom.AddListener(strings.ToLower(key[2:]), value))
	}
	if n.OnClick != nil {
		removers = append(removers, dom.AddListener("click", n.OnClick))
	}
	return removers
}

func isHandler(key string, value any) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && isFunc(value)
}

// renderAttrs returns the attributes as they appear in the DOM: true
// booleans are present and empty, false booleans, nil and func values are
// absent.
func renderAttrs(attributes map[string]any) map[string]string {
	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		if s, ok := attrValue(v); ok {
			attrs[k] = s
		}
	}
	return attrs
}
