package toast

// EventName is the event name dispatched for toasts.
// The thin client listens for it and shows the message.
const EventName = "electa:toast"

// Emitter receives client events. An action result is the usual emitter.
type Emitter interface {
	Emit(name string, detail any)
}

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Detail is the payload of a toast event.
type Detail struct {
	Level   Type   `json:"level"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// Show emits a toast notification.
func Show(e Emitter, level Type, message string) {
	e.Emit(EventName, Detail{Level: level, Message: message})
}

// Success shows a success toast.
//
//	toast.Success(res, "All cookies accepted")
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Error shows an error toast.
//
//	toast.Error(res, "Please enter a message.")
func Error(e Emitter, message string) {
	Show(e, TypeError, message)
}

// Warning shows a warning toast.
func Warning(e Emitter, message string) {
	Show(e, TypeWarning, message)
}

// Info shows an info toast.
func Info(e Emitter, message string) {
	Show(e, TypeInfo, message)
}

// WithTitle shows a toast with a title and message.
//
//	toast.WithTitle(res, toast.TypeSuccess, "Cart", "Tote bag added.")
func WithTitle(e Emitter, level Type, title, message string) {
	e.Emit(EventName, Detail{Level: level, Title: title, Message: message})
}
