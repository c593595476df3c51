package vdom

// FragmentTag marks a VNode that renders only its children.
const FragmentTag = "#fragment"

// TextTag marks a pure text node.
const TextTag = "#text"

// VNode represents a virtual DOM node.
//
// VNodes are compared by pointer identity wherever the runtime needs to track
// "the same content" across renders (see head.Manager), so callers should
// build a node once and reuse the pointer rather than rebuilding equal trees.
type VNode struct {
	Tag        string         // The HTML tag name, FragmentTag or TextTag
	Key        string         // Reconciliation key, set on keyed fragments
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // Text content (raw for script and style)
	OnClick    func()         // Optional click event handler

	// OnMount runs after the node and all of its children have been mounted
	// by a renderer. Hooks run children first.
	OnMount func()
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// Element creates an element VNode with the given children.
func Element(tag string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode(tag, attrs, children, "")
}

// Fragment groups children without a wrapping element. The key identifies the
// fragment among its siblings.
func Fragment(key string, children ...*VNode) *VNode {
	return &VNode{Tag: FragmentTag, Key: key, Children: children}
}

// Text creates a pure text node.
func Text(content string) *VNode {
	return &VNode{Tag: TextTag, Content: content}
}

// Title creates a <title> VNode.
func Title(text string) *VNode {
	return NewVNode("title", nil, nil, text)
}

// Meta creates a <meta> VNode.
func Meta(attrs map[string]any) *VNode {
	return NewVNode("meta", attrs, nil, "")
}

// Link creates a <link> VNode.
func Link(attrs map[string]any) *VNode {
	return NewVNode("link", attrs, nil, "")
}

// Script creates a <script> VNode. The source is written verbatim, so any
// embedded data must already be escaped for a script context.
func Script(attrs map[string]any, source string) *VNode {
	return NewVNode("script", attrs, nil, source)
}

// Anchor creates an <a> VNode.
func Anchor(href, text string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["href"] = href
	return NewVNode("a", attrs, nil, text)
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}

// MountHooks collects the OnMount hooks of the tree in post-order, so a
// parent's hook runs after every hook beneath it.
func MountHooks(n *VNode) []func() {
	var hooks []func()
	var walk func(*VNode)
	walk = func(v *VNode) {
		if v == nil {
			return
		}
		for _, child := range v.Children {
			walk(child)
		}
		if v.OnMount != nil {
			hooks = append(hooks, v.OnMount)
		}
	}
	walk(n)
	return hooks
}

// RunMountHooks runs the tree's OnMount hooks in post-order.
func RunMountHooks(n *VNode) {
	for _, hook := range MountHooks(n) {
		hook()
	}
}
