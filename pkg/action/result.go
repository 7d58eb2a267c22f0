package action

import (
	"fmt"

	"github.com/electa-dev/electa/pkg/consent"
	"github.com/electa-dev/electa/pkg/render"
	"github.com/electa-dev/electa/pkg/vdom"
)

// Event is a client event returned with a result, such as a toast.
type Event struct {
	Name   string `json:"name"`
	Detail any    `json:"detail,omitempty"`
}

// Result is the outcome of one dispatched action.
type Result struct {
	Kind Kind

	// Patches maps target element ids to their re-projected markup.
	Patches map[string]*vdom.VNode

	// Events are dispatched on the client after the patches are applied.
	Events []Event

	// Consent holds the resolved preferences when the action changed them.
	Consent *consent.Preferences

	// Revoked is set when the visitor withdrew consent.
	Revoked bool
}

// Emit implements toast.Emitter.
func (r *Result) Emit(name string, detail any) {
	r.Events = append(r.Events, Event{Name: name, Detail: detail})
}

func (r *Result) patch(target string, node *vdom.VNode) {
	if r.Patches == nil {
		r.Patches = make(map[string]*vdom.VNode)
	}
	r.Patches[target] = node
}

// Empty reports whether the result changes nothing on the client.
func (r *Result) Empty() bool {
	return len(r.Patches) == 0 && len(r.Events) == 0
}

// Response is the wire form of a Result.
type Response struct {
	Patches map[string]string `json:"patches"`
	Events  []Event           `json:"events,omitempty"`
}

// Render renders the patches to HTML fragments.
func (r *Result) Render(renderer *render.Renderer) (Response, error) {
	html, err := renderer.RenderFragments(r.Patches)
	if err != nil {
		return Response{}, fmt.Errorf("action: render %s: %w", r.Kind, err)
	}
	return Response{Patches: html, Events: r.Events}, nil
}
