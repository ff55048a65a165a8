package handler

import (
	"time"

	"crosslink/internal/linkage"
)

// DetectResponse is the HTTP response for POST /linkages/detect.
type DetectResponse struct {
	RunID            string    `json:"run_id"`
	TotalLinkages    int       `json:"total_linkages"`
	ProfilesAnalyzed int       `json:"profiles_analyzed"`
	RanAt            time.Time `json:"ran_at"`
}

// FromScanResult converts a domain ScanResult to an HTTP response.
func FromScanResult(result linkage.ScanResult) DetectResponse {
	return DetectResponse{
		RunID:            result.RunID,
		TotalLinkages:    result.TotalLinkages,
		ProfilesAnalyzed: result.ProfilesAnalyzed,
		RanAt:            result.RanAt,
	}
}

// SuspiciousResponse is the HTTP response for GET /linkages/suspicious.
type SuspiciousResponse struct {
	Profiles []linkage.Node `json:"profiles"`
	Count    int            `json:"count"`
}

// FromNodes wraps the suspicious profile list.
func FromNodes(nodes []linkage.Node) SuspiciousResponse {
	return SuspiciousResponse{Profiles: nodes, Count: len(nodes)}
}
