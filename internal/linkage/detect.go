package linkage

import (
	"fmt"
	"math"
	"sort"

	"crosslink/internal/profile"
)

// Rule strengths. GPS proximity is distance-scaled with a floor.
const (
	strengthSharedIMEI         = 90
	strengthSharedCase         = 75
	strengthSharedHideout      = 70
	strengthSharedOrganization = 60
	strengthSharedAdvocate     = 50
	strengthAssociateOneWay    = 40
	strengthGPSFloor           = 30

	// proximityThresholdKm is inclusive: exactly 1.0 km still links.
	proximityThresholdKm = 1.0

	earthRadiusKm = 6371.0
)

// Subject pairs a profile with its normalized attributes so the corpus is
// normalized once, not once per pair.
type Subject struct {
	Profile profile.Profile
	Attrs   Attributes
}

// NewSubject normalizes a profile for detection.
func NewSubject(p profile.Profile) Subject {
	return Subject{Profile: p, Attrs: Normalize(p)}
}

// Detect applies every linkage rule to one unordered pair and returns the
// linkages that fire. All rules are independent; a pair can accumulate several
// types. Field mismatches and absent fields are not errors, they just mean no
// linkage. The returned pair is canonically ordered (SourceID < TargetID) so
// Detect(a,b) and Detect(b,a) are identical.
func Detect(a, b Subject) []Linkage {
	if a.Profile.ID == b.Profile.ID {
		return nil
	}
	if a.Profile.ID > b.Profile.ID {
		a, b = b, a
	}

	var out []Linkage
	add := func(t Type, strength int, evidence string) {
		out = append(out, Linkage{
			SourceID: a.Profile.ID,
			TargetID: b.Profile.ID,
			Type:     t,
			Strength: strength,
			Evidence: evidence,
		})
	}

	if v, ok := sharedValue(a.Attrs.IMEIs, b.Attrs.IMEIs); ok {
		add(TypeSharedIMEI, strengthSharedIMEI, v)
	}
	if v, ok := sharedValue(a.Attrs.Hideouts, b.Attrs.Hideouts); ok {
		add(TypeSharedHideout, strengthSharedHideout, v)
	}
	if a.Attrs.Org != "" && a.Attrs.Org == b.Attrs.Org {
		add(TypeSharedOrganization, strengthSharedOrganization, a.Attrs.Org)
	}
	if v, ok := sharedValue(a.Attrs.Cases, b.Attrs.Cases); ok {
		add(TypeSharedCase, strengthSharedCase, v)
	}
	if a.Attrs.Advocate != "" && a.Attrs.Advocate == b.Attrs.Advocate {
		add(TypeSharedAdvocate, strengthSharedAdvocate, a.Attrs.Advocate)
	}
	if strength, evidence, ok := associateLink(a, b); ok {
		add(TypeMutualAssociate, strength, evidence)
	}
	if strength, evidence, ok := proximityLink(a, b); ok {
		add(TypeGPSProximity, strength, evidence)
	}
	return out
}

// sharedValue returns the lexicographically smallest common member so reruns
// produce identical evidence regardless of map iteration order.
func sharedValue(x, y map[string]struct{}) (string, bool) {
	var shared []string
	small, large := x, y
	if len(y) < len(x) {
		small, large = y, x
	}
	for v := range small {
		if _, ok := large[v]; ok {
			shared = append(shared, v)
		}
	}
	if len(shared) == 0 {
		return "", false
	}
	sort.Strings(shared)
	return shared[0], true
}

// associateLink fires when either profile lists the other by normalized name.
// A mutual reference doubles the strength.
func associateLink(a, b Subject) (int, string, bool) {
	aListsB := b.Attrs.Name != "" && contains(a.Attrs.Associates, b.Attrs.Name)
	bListsA := a.Attrs.Name != "" && contains(b.Attrs.Associates, a.Attrs.Name)
	switch {
	case aListsB && bListsA:
		strength := strengthAssociateOneWay * 2
		if strength > 100 {
			strength = 100
		}
		return strength, a.Attrs.Name + ", " + b.Attrs.Name, true
	case aListsB:
		return strengthAssociateOneWay, b.Attrs.Name, true
	case bListsA:
		return strengthAssociateOneWay, a.Attrs.Name, true
	default:
		return 0, "", false
	}
}

// proximityLink fires when both profiles carry a valid coordinate within the
// threshold (inclusive). Strength decays linearly with distance down to the
// floor.
func proximityLink(a, b Subject) (int, string, bool) {
	if a.Attrs.Coord == nil || b.Attrs.Coord == nil {
		return 0, "", false
	}
	dist := haversineKm(*a.Attrs.Coord, *b.Attrs.Coord)
	if !withinProximity(dist) {
		return 0, "", false
	}
	strength := int(math.Round(100 - dist*100))
	if strength < strengthGPSFloor {
		strength = strengthGPSFloor
	}
	evidence := fmt.Sprintf("%.6f,%.6f <-> %.6f,%.6f (%.3f km)",
		a.Attrs.Coord.Lat, a.Attrs.Coord.Lon,
		b.Attrs.Coord.Lat, b.Attrs.Coord.Lon,
		dist)
	return strength, evidence, true
}

// withinProximity applies the inclusive distance threshold: exactly 1.0 km
// still links.
func withinProximity(distKm float64) bool {
	return distKm <= proximityThresholdKm
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(p, q Coordinate) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := q.Lat * math.Pi / 180
	dLat := (q.Lat - p.Lat) * math.Pi / 180
	dLon := (q.Lon - p.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func contains(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
