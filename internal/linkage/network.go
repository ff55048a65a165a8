package linkage

// Network performs a bounded breadth-first traversal from the seed and
// returns the reachable subgraph. Node order is seed first, then FIFO
// discovery order; consumers rely on the seed being first. Links carries
// every linkage whose endpoints are both discovered, not just BFS tree edges,
// so cross-connections inside the neighborhood stay visible.
//
// Returns ok=false when the seed was not part of the analyzed corpus.
func (s *Snapshot) Network(seedID string, depth int) (*NetworkGraph, bool) {
	seed, ok := s.nodes[seedID]
	if !ok {
		return nil, false
	}

	graph := &NetworkGraph{
		Nodes: []Node{seed},
		Links: []Linkage{},
	}

	visited := map[string]struct{}{seedID: {}}
	type hop struct {
		id    string
		depth int
	}
	queue := []hop{{id: seedID, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= depth {
			continue
		}
		for _, next := range s.adj[cur.id] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			graph.Nodes = append(graph.Nodes, s.nodes[next])
			queue = append(queue, hop{id: next, depth: cur.depth + 1})
		}
	}

	for _, l := range s.Linkages {
		if _, okA := visited[l.SourceID]; !okA {
			continue
		}
		if _, okB := visited[l.TargetID]; !okB {
			continue
		}
		graph.Links = append(graph.Links, l)
	}
	return graph, true
}
