// Package linkage is the analysis engine: it detects pairwise evidentiary
// connections between subject profiles, folds them into per-profile suspicion
// summaries, and answers bounded-depth network queries against an atomically
// swapped snapshot of the last committed scan.
package linkage

import "time"

// Type identifies one linkage rule.
type Type string

const (
	TypeSharedIMEI         Type = "SHARED_IMEI"
	TypeSharedHideout      Type = "SHARED_HIDEOUT"
	TypeSharedOrganization Type = "SHARED_ORGANIZATION"
	TypeSharedCase         Type = "SHARED_CASE"
	TypeMutualAssociate    Type = "MUTUAL_ASSOCIATE"
	TypeGPSProximity       Type = "GPS_PROXIMITY"
	TypeSharedAdvocate     Type = "SHARED_ADVOCATE"
)

// Linkage is one typed piece of evidence connecting two profiles. The pair is
// undirected; SourceID < TargetID by construction so each pair is stored once.
// At most one linkage exists per (source, target, type) triple.
type Linkage struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Type     Type   `json:"type"`
	Strength int    `json:"strength"`
	Evidence string `json:"evidence"`
}

// Touches reports whether the linkage involves the given profile.
func (l Linkage) Touches(profileID string) bool {
	return l.SourceID == profileID || l.TargetID == profileID
}

// Other returns the counterpart of profileID in the pair.
func (l Linkage) Other(profileID string) string {
	if l.SourceID == profileID {
		return l.TargetID
	}
	return l.SourceID
}

// Node is the profile summary carried in a network graph.
type Node struct {
	ProfileID           string   `json:"profile_id"`
	Name                string   `json:"name"`
	SuspicionScore      int      `json:"suspicion_score"`
	LinkageCount        int      `json:"linkage_count"`
	RadicalizationLevel string   `json:"radicalization_level,omitempty"`
	SuspicionReasons    []string `json:"suspicion_reasons,omitempty"`
}

// NetworkGraph is the ego-network around a seed profile. Nodes are ordered
// seed first, then BFS discovery order; Links holds every persisted linkage
// whose endpoints are both in Nodes.
type NetworkGraph struct {
	Nodes []Node    `json:"nodes"`
	Links []Linkage `json:"links"`
}

// ScanResult reports a committed full scan.
type ScanResult struct {
	RunID            string    `json:"run_id"`
	TotalLinkages    int       `json:"total_linkages"`
	ProfilesAnalyzed int       `json:"profiles_analyzed"`
	RanAt            time.Time `json:"ran_at"`
}

// Stats projects the last committed snapshot for dashboards.
type Stats struct {
	TotalLinkages    int        `json:"total_linkages"`
	ProfilesAnalyzed int        `json:"profiles_analyzed"`
	LastRunID        string     `json:"last_run_id,omitempty"`
	LastRunAt        *time.Time `json:"last_run_at,omitempty"`
}
