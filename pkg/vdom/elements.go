package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element. Arguments can be: nil, Attr, []Attr, *VNode,
// []*VNode, string. Strings become text children; nil is skipped so
// conditional attributes and children can be passed inline.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Props[a.Key] = a.Value
				}
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Sectioning

func Header(args ...any) *VNode  { return El("header", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }

// Text content

func H1(args ...any) *VNode     { return El("h1", args...) }
func H2(args ...any) *VNode     { return El("h2", args...) }
func H3(args ...any) *VNode     { return El("h3", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func A(args ...any) *VNode      { return El("a", args...) }
func Img(args ...any) *VNode    { return El("img", args...) }

// Forms

func Form(args ...any) *VNode     { return El("form", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
