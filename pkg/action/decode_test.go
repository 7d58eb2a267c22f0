package action

import (
	"errors"
	"testing"

	"github.com/electa-dev/electa/pkg/consent"
	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		data   map[string]string
		want   Action
	}{
		{
			name:   "save vote",
			marker: "save-vote",
			data:   map[string]string{"name": "Sam Lee", "party": "Group A", "electorate": "Warringah"},
			want:   Action{Kind: SaveVote, Name: "Sam Lee", Party: "Group A", Electorate: "Warringah"},
		},
		{
			name:   "save vote without party",
			marker: "save-vote",
			data:   map[string]string{"name": "Sam Lee", "electorate": "Warringah"},
			want:   Action{Kind: SaveVote, Name: "Sam Lee", Electorate: "Warringah"},
		},
		{
			name:   "remove vote ignores party",
			marker: "remove-vote",
			data:   map[string]string{"name": "Sam Lee", "party": "Group A", "electorate": "Warringah"},
			want:   Action{Kind: RemoveVote, Name: "Sam Lee", Electorate: "Warringah"},
		},
		{
			name:   "filter all parties",
			marker: "filter-party",
			data:   map[string]string{"electorate": "Warringah", "value": ""},
			want:   Action{Kind: FilterParty, Electorate: "Warringah"},
		},
		{
			name:   "add to cart",
			marker: "add-to-cart",
			data:   map[string]string{"item-id": "tote-bag", "item-price": "12.5"},
			want:   Action{Kind: AddToCart, ItemID: "tote-bag", Price: 12.5},
		},
		{
			name:   "remove cart item",
			marker: "remove-cart-item",
			data:   map[string]string{"item-id": " tote-bag "},
			want:   Action{Kind: RemoveCartItem, ItemID: "tote-bag"},
		},
		{
			name:   "accept needs no data",
			marker: "accept-cookies",
			want:   Action{Kind: AcceptCookies},
		},
		{
			name:   "toggle carries pending",
			marker: "toggle-cookie",
			data:   map[string]string{"preference": "analytics", "analytics": "false", "advertising": "true"},
			want: Action{
				Kind:       ToggleCookie,
				Preference: consent.Analytics,
				Pending:    consent.Preferences{Necessary: true, Advertising: true},
			},
		},
		{
			name:   "save without pending flags",
			marker: "save-cookies",
			data:   map[string]string{},
			want:   Action{Kind: SaveCookies, Pending: consent.Defaults()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.marker, tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		marker  string
		data    map[string]string
		wantErr error
		field   string
	}{
		{"unknown marker", "view-profile", nil, ErrUnknownAction, ""},
		{"empty marker", "", nil, ErrUnknownAction, ""},
		{"missing name", "save-vote", map[string]string{"electorate": "Warringah"}, ErrMissingField, "name"},
		{"blank electorate", "remove-vote", map[string]string{"name": "A", "electorate": "  "}, ErrMissingField, "electorate"},
		{"filter without electorate", "filter-party", map[string]string{"value": "Labor"}, ErrMissingField, "electorate"},
		{"missing item id", "remove-cart-item", nil, ErrMissingField, "item-id"},
		{"missing price", "add-to-cart", map[string]string{"item-id": "mug"}, ErrMissingField, "item-price"},
		{"bad price", "add-to-cart", map[string]string{"item-id": "mug", "item-price": "free"}, ErrInvalidField, "item-price"},
		{"negative price", "add-to-cart", map[string]string{"item-id": "mug", "item-price": "-1"}, ErrInvalidField, "item-price"},
		{"NaN price", "add-to-cart", map[string]string{"item-id": "mug", "item-price": "NaN"}, ErrInvalidField, "item-price"},
		{"missing preference", "toggle-cookie", map[string]string{"analytics": "true"}, ErrMissingField, "preference"},
		{"bad flag", "save-cookies", map[string]string{"analytics": "maybe"}, ErrInvalidField, "analytics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.marker, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if tt.field == "" {
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not a *FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestDecode_FirstMissingFieldWins(t *testing.T) {
	_, err := Decode("save-vote", nil)
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "name" || fe.Kind != SaveVote {
		t.Errorf("err = %v, want missing name on SaveVote", err)
	}
}

func TestKind_MarkerRoundTrip(t *testing.T) {
	for k := SaveVote; k <= RevokeCookies; k++ {
		marker := k.Marker()
		if marker == "" {
			t.Errorf("%v has no marker", k)
			continue
		}
		if got, ok := ParseKind(marker); !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", marker, got, ok, k)
		}
		if k.String() == "Unknown" {
			t.Errorf("Kind(%d).String() = Unknown", k)
		}
	}
	if KindUnknown.Marker() != "" {
		t.Error("KindUnknown must have no marker")
	}
}

func TestKind_IsConsent(t *testing.T) {
	for _, k := range []Kind{AcceptCookies, RejectCookies, ToggleCookie, SaveCookies, RevokeCookies} {
		if !k.IsConsent() {
			t.Errorf("%v.IsConsent() = false", k)
		}
	}
	for _, k := range []Kind{KindUnknown, SaveVote, AddToCart, FilterParty} {
		if k.IsConsent() {
			t.Errorf("%v.IsConsent() = true", k)
		}
	}
}
