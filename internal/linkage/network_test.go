package linkage

import (
	"testing"
	"time"

	"crosslink/internal/profile"
)

func chainSnapshot() *Snapshot {
	// a -- b (shared IMEI), b -- c (shared hideout): a and c are two hops apart.
	profiles := []profile.Profile{
		{ID: "a", Name: "Ali"},
		{ID: "b", Name: "Bekir"},
		{ID: "c", Name: "Cem"},
	}
	linkages := []Linkage{
		{SourceID: "a", TargetID: "b", Type: TypeSharedIMEI, Strength: 90, Evidence: "111"},
		{SourceID: "b", TargetID: "c", Type: TypeSharedHideout, Strength: 70, Evidence: "warehouse x"},
	}
	summaries := map[string]profile.Summary{
		"a": {ProfileID: "a", SuspicionScore: 90, LinkageCount: 1},
		"b": {ProfileID: "b", SuspicionScore: 100, LinkageCount: 2},
		"c": {ProfileID: "c", SuspicionScore: 70, LinkageCount: 1},
	}
	return NewSnapshot("run-1", time.Now(), profiles, linkages, summaries)
}

func nodeIDs(g *NetworkGraph) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ProfileID
	}
	return ids
}

func TestNetworkDepthBounds(t *testing.T) {
	snap := chainSnapshot()

	tests := []struct {
		name  string
		seed  string
		depth int
		want  []string
	}{
		{"depth zero is seed only", "a", 0, []string{"a"}},
		{"depth one reaches neighbors", "a", 1, []string{"a", "b"}},
		{"depth two reaches the chain end", "a", 2, []string{"a", "b", "c"}},
		{"depth beyond the graph is harmless", "a", 10, []string{"a", "b", "c"}},
		{"middle seed sees both ends at depth one", "b", 1, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := snap.Network(tt.seed, tt.depth)
			if !ok {
				t.Fatal("seed should be in the snapshot")
			}
			got := nodeIDs(g)
			if len(got) != len(tt.want) {
				t.Fatalf("nodes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("nodes = %v, want %v (seed first, then discovery order)", got, tt.want)
				}
			}
		})
	}
}

func TestNetworkLinksCoverDiscoveredPairs(t *testing.T) {
	snap := chainSnapshot()

	g, ok := snap.Network("a", 1)
	if !ok {
		t.Fatal("seed should be in the snapshot")
	}
	// Only a and b are discovered, so the b--c linkage must be excluded.
	if len(g.Links) != 1 || g.Links[0].Type != TypeSharedIMEI {
		t.Fatalf("links = %+v, want only the a-b linkage", g.Links)
	}

	g, _ = snap.Network("a", 2)
	if len(g.Links) != 2 {
		t.Fatalf("links = %+v, want both linkages", g.Links)
	}
}

func TestNetworkIncludesCrossConnections(t *testing.T) {
	// Triangle: a-b, b-c, a-c. From a at depth 1 all three are discovered and
	// the b-c cross edge must appear even though BFS never traverses it.
	profiles := []profile.Profile{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	linkages := []Linkage{
		{SourceID: "a", TargetID: "b", Type: TypeSharedIMEI, Strength: 90},
		{SourceID: "a", TargetID: "c", Type: TypeSharedCase, Strength: 75},
		{SourceID: "b", TargetID: "c", Type: TypeSharedHideout, Strength: 70},
	}
	snap := NewSnapshot("run-1", time.Now(), profiles, linkages, map[string]profile.Summary{})

	g, ok := snap.Network("a", 1)
	if !ok {
		t.Fatal("seed should be in the snapshot")
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %v", nodeIDs(g))
	}
	if len(g.Links) != 3 {
		t.Fatalf("links = %+v, want all three including the b-c cross edge", g.Links)
	}
}

func TestNetworkUnknownSeed(t *testing.T) {
	snap := chainSnapshot()
	if _, ok := snap.Network("ghost", 2); ok {
		t.Fatal("unknown seed should report ok=false")
	}
}

func TestNetworkNodesCarrySummaries(t *testing.T) {
	snap := chainSnapshot()
	g, _ := snap.Network("b", 0)
	if g.Nodes[0].SuspicionScore != 100 || g.Nodes[0].LinkageCount != 2 {
		t.Fatalf("seed node missing summary fields: %+v", g.Nodes[0])
	}
}

func TestSnapshotDropsDanglingLinkages(t *testing.T) {
	profiles := []profile.Profile{{ID: "a", Name: "A"}}
	linkages := []Linkage{
		{SourceID: "a", TargetID: "gone", Type: TypeSharedIMEI, Strength: 90},
	}
	snap := NewSnapshot("run-1", time.Now(), profiles, linkages, map[string]profile.Summary{})
	if len(snap.Linkages) != 0 {
		t.Fatalf("dangling linkage kept: %+v", snap.Linkages)
	}
}

func TestSnapshotStats(t *testing.T) {
	snap := chainSnapshot()
	st := snap.Stats()
	if st.TotalLinkages != 2 || st.ProfilesAnalyzed != 3 || st.LastRunID != "run-1" || st.LastRunAt == nil {
		t.Fatalf("stats = %+v", st)
	}

	empty := EmptySnapshot().Stats()
	if empty.TotalLinkages != 0 || empty.LastRunID != "" || empty.LastRunAt != nil {
		t.Fatalf("empty stats = %+v", empty)
	}
}
