package linkage

import (
	"strconv"
	"strings"

	"crosslink/internal/profile"
)

// Coordinate is a parsed GPS position.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Attributes is the canonical comparable form of a profile. Absent fields are
// empty; absence is the only error signal, never a panic or an error value,
// because a malformed field simply disqualifies the rules that need it.
type Attributes struct {
	Name     string
	IMEIs    map[string]struct{}
	Hideouts map[string]struct{}
	Org      string
	Cases    map[string]struct{}
	Advocate string
	// Associates holds normalized associate names for membership checks.
	Associates map[string]struct{}
	// Coord is nil when the GPS string is missing, malformed, or out of range.
	Coord *Coordinate
}

// Normalize canonicalizes the raw profile fields into comparable atoms. Pure
// and deterministic; the detector is the only consumer.
func Normalize(p profile.Profile) Attributes {
	attrs := Attributes{
		Name:       normalizeText(p.Name),
		IMEIs:      make(map[string]struct{}),
		Hideouts:   make(map[string]struct{}),
		Cases:      make(map[string]struct{}),
		Associates: make(map[string]struct{}),
		Org:        normalizeText(p.Org.String()),
		Advocate:   normalizeText(string(p.Advocate)),
		Coord:      parseCoordinate(p.GPS),
	}
	for _, raw := range p.IMEIs {
		if v := normalizeDigits(raw); v != "" {
			attrs.IMEIs[v] = struct{}{}
		}
	}
	for _, raw := range p.Hideouts {
		if v := normalizeText(raw); v != "" {
			attrs.Hideouts[v] = struct{}{}
		}
	}
	for _, raw := range p.Cases {
		if v := normalizeText(raw); v != "" {
			attrs.Cases[v] = struct{}{}
		}
	}
	for _, a := range p.Associates {
		if v := normalizeText(a.Name); v != "" {
			attrs.Associates[v] = struct{}{}
		}
	}
	return attrs
}

// normalizeDigits strips everything but digits. Empty means absent.
func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeText trims, case-folds, and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// parseCoordinate parses "lat,lon". Malformed or out-of-range input yields
// nil, which disqualifies the proximity rule for that profile.
func parseCoordinate(s string) *Coordinate {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return &Coordinate{Lat: lat, Lon: lon}
}
