// Package skillgraph implements BFS expansion over a static skill ontology
// with distance-decayed confidence and an LRU+TTL result cache.
package skillgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Market demand tags carried on skill nodes.
const (
	DemandCritical = "critical"
	DemandHigh     = "high"
	DemandModerate = "moderate"
)

// SkillNode is one skill in the ontology with directed relatedness edges.
// The ontology is static and loaded once at process start.
type SkillNode struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MarketDemand string   `json:"market_demand,omitempty"`
	RelatedIDs   []string `json:"related_ids,omitempty"`
}

// Graph is the in-memory ontology with a reverse-edge index built at load
// time, so traversal is bidirectional: if A lists B as related, B also
// reaches A. Read-only after construction and safe for concurrent reads.
type Graph struct {
	nodes     map[string]SkillNode
	nameIndex map[string]string   // normalized name -> id
	edges     map[string][]string // id -> neighbor ids, forward + reverse
}

// NewGraph builds a graph from ontology nodes. Edges referencing unknown
// node ids are dropped.
func NewGraph(nodes []SkillNode) *Graph {
	g := &Graph{
		nodes:     make(map[string]SkillNode, len(nodes)),
		nameIndex: make(map[string]string, len(nodes)),
		edges:     make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		g.nodes[n.ID] = n
		g.nameIndex[normalizeName(n.Name)] = n.ID
	}
	for _, n := range nodes {
		for _, related := range n.RelatedIDs {
			if _, ok := g.nodes[related]; !ok {
				continue
			}
			g.addEdge(n.ID, related)
			g.addEdge(related, n.ID)
		}
	}
	return g
}

// LoadGraph reads an ontology JSON file (an array of skill nodes) and
// builds the graph.
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology file %s: %w", path, err)
	}
	var nodes []SkillNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse ontology JSON: %w", err)
	}
	return NewGraph(nodes), nil
}

// addEdge appends a neighbor, skipping duplicates so reciprocal listings
// don't double an edge.
func (g *Graph) addEdge(from, to string) {
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// Lookup resolves a skill name to its node.
func (g *Graph) Lookup(name string) (SkillNode, bool) {
	id, ok := g.nameIndex[normalizeName(name)]
	if !ok {
		return SkillNode{}, false
	}
	return g.nodes[id], true
}

// Size returns the number of nodes in the ontology.
func (g *Graph) Size() int {
	return len(g.nodes)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
