package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/electa-dev/electa/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables newline-separated block elements.
	// Should only be used in development as it increases output size.
	Pretty bool
}

// Renderer renders VNode trees to HTML. A Renderer holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node)
	return ew.err
}

// RenderFragments renders each target's node, keyed by target id.
// A nil node renders as the empty string.
func (r *Renderer) RenderFragments(nodes map[string]*vdom.VNode) (map[string]string, error) {
	out := make(map[string]string, len(nodes))
	for id, node := range nodes {
		html, err := r.RenderToString(node)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		out[id] = html
	}
	return out, nil
}

// errWriter latches the first write error so rendering code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *errWriter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w *errWriter, node *vdom.VNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child)
		}
	case vdom.KindRaw:
		w.WriteString(node.Text)
	default:
		w.fail(fmt.Errorf("unknown node kind: %d", node.Kind))
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *errWriter, node *vdom.VNode) {
	if node.Tag == "" {
		w.fail(fmt.Errorf("element without tag"))
		return
	}

	w.WriteString("<")
	w.WriteString(node.Tag)
	r.renderAttributes(w, node.Props)
	w.WriteString(">")

	if vdom.IsVoidElement(node.Tag) {
		if len(node.Children) > 0 {
			w.fail(fmt.Errorf("void element <%s> has children", node.Tag))
		}
		return
	}

	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(node.Tag)
	if block {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		r.renderNode(w, child)
	}
	if block {
		w.WriteString("\n")
	}

	w.WriteString("</")
	w.WriteString(node.Tag)
	w.WriteString(">")
}

// renderAttributes renders attributes in sorted key order for
// deterministic output.
func (r *Renderer) renderAttributes(w *errWriter, props vdom.Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteString(" ")
					w.WriteString(key)
				}
				continue
			}
		}

		w.WriteString(" ")
		w.WriteString(key)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(attrToString(value)))
		w.WriteString(`"`)
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"button": true,
	"em":     true,
	"img":    true,
	"label":  true,
	"option": true,
	"span":   true,
	"strong": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as the bare attribute name when true.
var booleanAttrs = map[string]bool{
	"async":    true,
	"checked":  true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
	"required": true,
	"selected": true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
