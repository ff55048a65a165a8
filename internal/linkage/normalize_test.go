package linkage

import (
	"testing"

	"crosslink/internal/profile"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and folds case", "  Red Eagle Group  ", "red eagle group"},
		{"collapses internal whitespace", "Red   Eagle\tGroup", "red eagle group"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", "   \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Fatalf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips separators", "35-209900-176148-1", "352099001761481"},
		{"strips letters and spaces", "IMEI: 123 456", "123456"},
		{"no digits becomes absent", "unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDigits(tt.in); got != tt.want {
				t.Fatalf("normalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *Coordinate
		wantNil bool
	}{
		{"valid pair", "52.52,13.405", &Coordinate{Lat: 52.52, Lon: 13.405}, false},
		{"valid with spaces", " 52.52 , 13.405 ", &Coordinate{Lat: 52.52, Lon: 13.405}, false},
		{"missing part", "52.52", nil, true},
		{"not numbers", "north,east", nil, true},
		{"latitude out of range", "91.0,0.0", nil, true},
		{"longitude out of range", "0.0,180.5", nil, true},
		{"boundary latitude allowed", "90.0,0.0", &Coordinate{Lat: 90, Lon: 0}, false},
		{"empty", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCoordinate(tt.in)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("parseCoordinate(%q) = %+v, want nil", tt.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseCoordinate(%q) = nil, want %+v", tt.in, tt.want)
			}
			if got.Lat != tt.want.Lat || got.Lon != tt.want.Lon {
				t.Fatalf("parseCoordinate(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeProfile(t *testing.T) {
	p := profile.Profile{
		ID:       "p1",
		Name:     "  Ali  HASSAN ",
		IMEIs:    profile.StringList{"35-209900-1", "", "abc"},
		Hideouts: profile.StringList{" Warehouse  X ", ""},
		Org:      "Red Eagle  Group",
		Cases:    profile.StringList{" CASE-42 "},
		Advocate: " J.  Smith ",
		GPS:      "10.0,20.0",
		Associates: []profile.Associate{
			{Name: " Omar  K "},
			{Name: ""},
		},
	}

	attrs := Normalize(p)

	if attrs.Name != "ali hassan" {
		t.Fatalf("Name = %q", attrs.Name)
	}
	if _, ok := attrs.IMEIs["352099001"]; !ok {
		t.Fatalf("IMEIs = %v, want 352099001", attrs.IMEIs)
	}
	if len(attrs.IMEIs) != 1 {
		t.Fatalf("IMEIs has %d entries, want 1 (empty and non-digit dropped)", len(attrs.IMEIs))
	}
	if _, ok := attrs.Hideouts["warehouse x"]; !ok {
		t.Fatalf("Hideouts = %v", attrs.Hideouts)
	}
	if attrs.Org != "red eagle group" {
		t.Fatalf("Org = %q", attrs.Org)
	}
	if _, ok := attrs.Cases["case-42"]; !ok {
		t.Fatalf("Cases = %v", attrs.Cases)
	}
	if attrs.Advocate != "j. smith" {
		t.Fatalf("Advocate = %q", attrs.Advocate)
	}
	if attrs.Coord == nil || attrs.Coord.Lat != 10 || attrs.Coord.Lon != 20 {
		t.Fatalf("Coord = %+v", attrs.Coord)
	}
	if _, ok := attrs.Associates["omar k"]; !ok || len(attrs.Associates) != 1 {
		t.Fatalf("Associates = %v", attrs.Associates)
	}
}

func TestNormalizeAbsentFields(t *testing.T) {
	attrs := Normalize(profile.Profile{ID: "p1", Name: "X", GPS: "garbage"})
	if attrs.Coord != nil {
		t.Fatalf("malformed GPS should be absent, got %+v", attrs.Coord)
	}
	if len(attrs.IMEIs) != 0 || len(attrs.Hideouts) != 0 || len(attrs.Cases) != 0 {
		t.Fatal("empty fields should normalize to empty sets")
	}
	if attrs.Org != "" || attrs.Advocate != "" {
		t.Fatal("empty strings should stay absent")
	}
}
