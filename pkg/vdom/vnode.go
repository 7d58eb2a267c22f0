package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Pre-sanitised HTML
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is one node of a projected markup tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes.
type Props map[string]any

// ActionAttr marks an element the client delegates clicks and changes for.
const ActionAttr = "data-action"

// Action returns the action marker of an element, or "".
func (v *VNode) Action() string {
	if v == nil || v.Kind != KindElement {
		return ""
	}
	s, _ := v.Props[ActionAttr].(string)
	return s
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Find returns the first node in depth-first order with the given id.
func (v *VNode) Find(id string) *VNode {
	if v == nil {
		return nil
	}
	if v.Kind == KindElement && v.Props["id"] == id {
		return v
	}
	for _, c := range v.Children {
		if n := c.Find(id); n != nil {
			return n
		}
	}
	return nil
}

// Walk calls fn for v and every descendant in depth-first order.
func (v *VNode) Walk(fn func(*VNode)) {
	if v == nil {
		return
	}
	fn(v)
	for _, c := range v.Children {
		c.Walk(fn)
	}
}

// TextContent concatenates the text of every text descendant.
func (v *VNode) TextContent() string {
	var out []byte
	v.Walk(func(n *VNode) {
		if n.Kind == KindText {
			out = append(out, n.Text...)
		}
	})
	return string(out)
}
