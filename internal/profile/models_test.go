package profile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"array", `["111","222"]`, StringList{"111", "222"}},
		{"single string", `"111"`, StringList{"111"}},
		{"comma separated", `"111, 222 ,333"`, StringList{"111", "222", "333"}},
		{"comma separated with empty parts", `"111,,222"`, StringList{"111", "222"}},
		{"empty string", `""`, nil},
		{"empty array", `[]`, StringList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("number is rejected", func(t *testing.T) {
		var got StringList
		if err := json.Unmarshal([]byte(`42`), &got); err == nil {
			t.Fatal("want error for non-string input")
		}
	})

	t.Run("round-trips as an array", func(t *testing.T) {
		var got StringList
		if err := json.Unmarshal([]byte(`"111,222"`), &got); err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(got)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != `["111","222"]` {
			t.Fatalf("marshaled as %s", b)
		}
	})
}

func TestNamedValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want NamedValue
	}{
		{"bare string", `"Red Eagle"`, "Red Eagle"},
		{"object with name", `{"name":"Red Eagle"}`, "Red Eagle"},
		{"object without name", `{"id":7}`, ""},
		{"empty string", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got NamedValue
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("array is rejected", func(t *testing.T) {
		var got NamedValue
		if err := json.Unmarshal([]byte(`["x"]`), &got); err == nil {
			t.Fatal("want error for array input")
		}
	})
}

func TestProfileDecodeLooseShapes(t *testing.T) {
	raw := `{
		"id": "subject-1",
		"name": "Ali Hassan",
		"imei": "352099001761481",
		"hideouts": ["Warehouse X", "Safe House 7"],
		"organization": {"name": "Red Eagle"},
		"advocate": "J. Smith",
		"cases": "case-1,case-2",
		"associates": [{"name": "Omar K", "phone": "555"}]
	}`

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Ali Hassan" {
		t.Fatalf("Name = %q", p.Name)
	}
	if diff := cmp.Diff(StringList{"352099001761481"}, p.IMEIs); diff != "" {
		t.Fatalf("IMEIs mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(StringList{"case-1", "case-2"}, p.Cases); diff != "" {
		t.Fatalf("Cases mismatch:\n%s", diff)
	}
	if p.Org != "Red Eagle" || p.Advocate != "J. Smith" {
		t.Fatalf("Org = %q, Advocate = %q", p.Org, p.Advocate)
	}
	if len(p.Associates) != 1 || p.Associates[0].Name != "Omar K" {
		t.Fatalf("Associates = %+v", p.Associates)
	}
}
