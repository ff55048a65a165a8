package linkage

import (
	"time"

	"crosslink/internal/profile"
)

// Snapshot is the immutable result of one committed scan: every linkage, every
// summary, and a precomputed adjacency list. Readers get the whole snapshot or
// the previous one, never a mix; the service swaps an atomic pointer at commit.
type Snapshot struct {
	RunID     string
	RunAt     time.Time
	Linkages  []Linkage
	Summaries map[string]profile.Summary

	nodes map[string]Node
	adj   map[string][]string
}

// NewSnapshot builds a snapshot from a committed run. The profiles slice is
// the corpus the run analyzed; linkages referencing unknown profiles are
// dropped rather than crashing queries later.
func NewSnapshot(runID string, runAt time.Time, profiles []profile.Profile, linkages []Linkage, summaries map[string]profile.Summary) *Snapshot {
	nodes := make(map[string]Node, len(profiles))
	adj := make(map[string][]string, len(profiles))
	for _, p := range profiles {
		n := Node{
			ProfileID:           p.ID,
			Name:                p.Name,
			RadicalizationLevel: p.RadicalizationLevel,
		}
		if sum, ok := summaries[p.ID]; ok {
			n.SuspicionScore = sum.SuspicionScore
			n.LinkageCount = sum.LinkageCount
			n.SuspicionReasons = sum.SuspicionReasons
		}
		nodes[p.ID] = n
		adj[p.ID] = nil
	}

	kept := make([]Linkage, 0, len(linkages))
	seen := make(map[string]struct{}, len(linkages))
	for _, l := range linkages {
		if _, ok := nodes[l.SourceID]; !ok {
			continue
		}
		if _, ok := nodes[l.TargetID]; !ok {
			continue
		}
		kept = append(kept, l)
		key := l.SourceID + "\x00" + l.TargetID
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			adj[l.SourceID] = append(adj[l.SourceID], l.TargetID)
			adj[l.TargetID] = append(adj[l.TargetID], l.SourceID)
		}
	}

	return &Snapshot{
		RunID:     runID,
		RunAt:     runAt,
		Linkages:  kept,
		Summaries: summaries,
		nodes:     nodes,
		adj:       adj,
	}
}

// EmptySnapshot is the pre-first-run state.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Summaries: map[string]profile.Summary{},
		nodes:     map[string]Node{},
		adj:       map[string][]string{},
	}
}

// Node returns the node view of a profile and whether it was analyzed.
func (s *Snapshot) Node(profileID string) (Node, bool) {
	n, ok := s.nodes[profileID]
	return n, ok
}

// Stats projects the snapshot for the dashboard endpoint.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		TotalLinkages:    len(s.Linkages),
		ProfilesAnalyzed: len(s.nodes),
	}
	if s.RunID != "" {
		st.LastRunID = s.RunID
		runAt := s.RunAt
		st.LastRunAt = &runAt
	}
	return st
}
