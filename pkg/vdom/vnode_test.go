package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElSkipsNilAndEmpty(t *testing.T) {
	var missing *VNode
	node := Div(nil, Attr{}, Class("a", "", "b"), missing, "hello", []*VNode{nil, Span("x")})

	if node.Props["class"] != "a b" {
		t.Errorf("class = %v, want %q", node.Props["class"], "a b")
	}
	if len(node.Props) != 1 {
		t.Errorf("Props = %v, want only class", node.Props)
	}
	if len(node.Children) != 2 {
		t.Fatalf("Children = %d, want 2", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "hello" {
		t.Errorf("first child = %+v", node.Children[0])
	}
}

func TestVNodeAction(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want string
	}{
		{"nil", nil, ""},
		{"text", Text("save-vote"), ""},
		{"plain element", Button("Save"), ""},
		{"action element", Button(Action("save-vote"), "Save"), "save-vote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Action(); got != tt.want {
				t.Errorf("Action() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAndTextContent(t *testing.T) {
	tree := Div(
		Section(ID("cart"), H2("Cart"), P("Empty")),
		Section(ID("votes"), P(Strong("No"), " votes")),
	)

	votes := tree.Find("votes")
	if votes == nil {
		t.Fatal("Find(votes) = nil")
	}
	if got := votes.TextContent(); got != "No votes" {
		t.Errorf("TextContent() = %q", got)
	}
	if tree.Find("missing") != nil {
		t.Error("Find(missing) should be nil")
	}
}

func TestConditionalHelpers(t *testing.T) {
	n := Text("x")
	if If(false, n) != nil || If(true, n) != n {
		t.Error("If misbehaves")
	}
	if IfElse(false, n, nil) != nil {
		t.Error("IfElse misbehaves")
	}

	items := Range([]string{"a", "b", "skip"}, func(s string, _ int) *VNode {
		if s == "skip" {
			return nil
		}
		return Li(s)
	})
	if len(items) != 2 {
		t.Errorf("Range() = %d nodes, want 2", len(items))
	}

	frag := Fragment(nil, Text("a"), nil)
	if frag.Kind != KindFragment || len(frag.Children) != 1 {
		t.Errorf("Fragment() = %+v", frag)
	}
}

func TestOptionalAttrs(t *testing.T) {
	if !Selected(false).IsEmpty() || Selected(true).Key != "selected" {
		t.Error("Selected")
	}
	if !Hidden(false).IsEmpty() || Hidden(true).Key != "hidden" {
		t.Error("Hidden")
	}
	if AriaPressed(true).Value != "true" || AriaPressed(false).Value != "false" {
		t.Error("AriaPressed")
	}
	if IsVoidElement("div") || !IsVoidElement("img") {
		t.Error("IsVoidElement")
	}
}
