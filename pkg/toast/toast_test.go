package toast_test

import (
	"testing"

	"github.com/electa-dev/electa/pkg/toast"
)

type emittedEvent struct {
	name string
	data any
}

type recorder struct {
	events []emittedEvent
}

func (r *recorder) Emit(name string, data any) {
	r.events = append(r.events, emittedEvent{name, data})
}

func TestLevels(t *testing.T) {
	tests := []struct {
		emit func(toast.Emitter, string)
		want toast.Type
	}{
		{toast.Success, toast.TypeSuccess},
		{toast.Error, toast.TypeError},
		{toast.Warning, toast.TypeWarning},
		{toast.Info, toast.TypeInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			r := &recorder{}
			tt.emit(r, "Cookie preferences saved")

			if len(r.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(r.events))
			}
			event := r.events[0]
			if event.name != toast.EventName {
				t.Errorf("expected event name %q, got %q", toast.EventName, event.name)
			}
			detail := event.data.(toast.Detail)
			if detail.Level != tt.want || detail.Message != "Cookie preferences saved" {
				t.Errorf("detail = %+v", detail)
			}
		})
	}
}

func TestWithTitle(t *testing.T) {
	r := &recorder{}
	toast.WithTitle(r, toast.TypeInfo, "Cart", "Tote bag added.")

	detail := r.events[0].data.(toast.Detail)
	if detail.Title != "Cart" || detail.Message != "Tote bag added." || detail.Level != toast.TypeInfo {
		t.Errorf("detail = %+v", detail)
	}
}
