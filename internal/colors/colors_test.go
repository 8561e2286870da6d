package colors

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"canonical order preserved", "WUB", "WUB"},
		{"reordered to wubrg", "GUW", "WUG"},
		{"lowercase", "ru", "UR"},
		{"comma separated", "W,U,B", "WUB"},
		{"space separated", "b r g", "BRG"},
		{"colorless letter", "C", ""},
		{"colorless word", "colorless", ""},
		{"empty", "", ""},
		{"duplicates collapse", "GGUU", "UG"},
		{"unknown letters ignored", "WXZ", "W"},
		{"five color", "grbuw", "WUBRG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.spec); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"UG", "Simic (Blue-Green)"},
		{"GU", "Simic (Blue-Green)"},
		{"", "Colorless"},
		{"C", "Colorless"},
		{"WUBRG", "Five-Color"},
		{"BRG", "Jund"},
	}
	for _, tt := range tests {
		if got := FullName(tt.identity); got != tt.want {
			t.Errorf("FullName(%q) = %q, want %q", tt.identity, got, tt.want)
		}
	}
}

func TestSubsetClause(t *testing.T) {
	t.Run("colorless only", func(t *testing.T) {
		clause, params := SubsetClause("")
		if clause != "(color_identity IS NULL OR color_identity = '')" {
			t.Errorf("clause = %q", clause)
		}
		if len(params) != 0 {
			t.Errorf("params = %v, want none", params)
		}
	})

	t.Run("five color is unconstrained", func(t *testing.T) {
		clause, params := SubsetClause("WUBRG")
		if clause != "1=1" {
			t.Errorf("clause = %q", clause)
		}
		if len(params) != 0 {
			t.Errorf("params = %v, want none", params)
		}
	})

	t.Run("excludes complement colors", func(t *testing.T) {
		clause, params := SubsetClause("UG")
		want := "(color_identity IS NULL OR color_identity = '' OR (color_identity NOT LIKE ? AND color_identity NOT LIKE ? AND color_identity NOT LIKE ?))"
		if clause != want {
			t.Errorf("clause = %q, want %q", clause, want)
		}
		wantParams := []any{"%W%", "%B%", "%R%"}
		if !reflect.DeepEqual(params, wantParams) {
			t.Errorf("params = %v, want %v", params, wantParams)
		}
	})
}

func TestContains(t *testing.T) {
	tests := []struct {
		super, sub string
		want       bool
	}{
		{"WUG", "UG", true},
		{"WUG", "", true},
		{"", "", true},
		{"", "W", false},
		{"UG", "UGB", false},
		{"WUBRG", "BRG", true},
		{"gu", "UG", true},
	}
	for _, tt := range tests {
		if got := Contains(tt.super, tt.sub); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.super, tt.sub, got, tt.want)
		}
	}
}
