package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "load error",
			code:    "E101",
			wantMsg: "Data file could not be fetched",
			wantCat: CategoryLoad,
		},
		{
			name:    "persistence error",
			code:    "E202",
			wantMsg: "Stored value could not be written",
			wantCat: CategoryPersistence,
		},
		{
			name:    "validation error",
			code:    "E301",
			wantMsg: "Required field is empty",
			wantCat: CategoryValidation,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E101").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); got != "E101: Data file could not be fetched: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E101") != nil {
		t.Fatal("FromError(nil) should be nil")
	}

	original := New("E203")
	if FromError(original, "E101") != original {
		t.Error("FromError should return an existing ElectaError unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E202")
	if wrapped.Code != "E202" {
		t.Errorf("Code = %q, want E202", wrapped.Code)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	t.Cleanup(EnableColors)

	out := New("E403").WithSuggestion("set storage.driver to bolt").Format()
	for _, want := range []string{"ERROR E403: Unknown storage driver", "Supported drivers", "hint: set storage.driver to bolt"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("E104"); !ok {
		t.Error("E104 should be registered")
	}
}
