// internal/graph/graph.go
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a weighted undirected graph with string-named nodes, stored as an
// adjacency map. Node iteration is always in lexicographic order so every
// derived metric is deterministic.
type Graph struct {
	adj map[string]map[string]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: map[string]map[string]int{}}
}

// FromMemberships builds a co-membership graph: nodes are the map keys and an
// edge joins two distinct keys for every item they share, with edge weight
// equal to the count of distinct shared items. Self-edges are never created.
func FromMemberships(members map[string][]string) *Graph {
	g := New()
	for name := range members {
		g.AddNode(name)
	}

	names := g.Nodes()
	sets := make(map[string]map[string]bool, len(names))
	for name, items := range members {
		set := make(map[string]bool, len(items))
		for _, it := range items {
			set[it] = true
		}
		sets[name] = set
	}

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			shared := 0
			for it := range sets[names[i]] {
				if sets[names[j]][it] {
					shared++
				}
			}
			if shared > 0 {
				g.AddEdge(names[i], names[j], shared)
			}
		}
	}
	return g
}

// AddNode ensures a node exists, with no edges.
func (g *Graph) AddNode(name string) {
	if _, ok := g.adj[name]; !ok {
		g.adj[name] = map[string]int{}
	}
}

// AddEdge adds weight to the undirected edge between a and b. Self-edges are
// ignored.
func (g *Graph) AddEdge(a, b string, weight int) {
	if a == b || weight <= 0 {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] += weight
	g.adj[b][a] += weight
}

// Weight returns the weight of the edge between a and b, 0 if absent.
func (g *Graph) Weight(a, b string) int {
	return g.adj[a][b]
}

// Nodes returns all node names in lexicographic order.
func (g *Graph) Nodes() []string {
	names := make([]string, 0, len(g.adj))
	for name := range g.adj {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Order returns the number of nodes.
func (g *Graph) Order() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}

// Degree returns the number of neighbors of a node.
func (g *Graph) Degree(name string) int {
	return len(g.adj[name])
}

// WeightedDegree returns the sum of edge weights incident to a node.
func (g *Graph) WeightedDegree(name string) int {
	total := 0
	for _, w := range g.adj[name] {
		total += w
	}
	return total
}

// AverageDegree returns 2|E|/|V|. The caller is responsible for checking
// Order() > 0 first.
func (g *Graph) AverageDegree() float64 {
	return 2 * float64(g.EdgeCount()) / float64(g.Order())
}

// IsolatedNodes returns all nodes with degree 0, sorted.
func (g *Graph) IsolatedNodes() []string {
	var isolated []string
	for _, name := range g.Nodes() {
		if len(g.adj[name]) == 0 {
			isolated = append(isolated, name)
		}
	}
	return isolated
}

// MostConnected returns the node with the highest weighted degree. Ties go to
// the lexicographically first node. Empty string on an empty graph.
func (g *Graph) MostConnected() string {
	best := ""
	bestDegree := -1
	for _, name := range g.Nodes() {
		if d := g.WeightedDegree(name); d > bestDegree {
			best = name
			bestDegree = d
		}
	}
	return best
}

// ConnectedComponents returns the connected components as sorted node slices,
// ordered by their first member.
func (g *Graph) ConnectedComponents() [][]string {
	seen := map[string]bool{}
	var components [][]string

	for _, start := range g.Nodes() {
		if seen[start] {
			continue
		}
		var comp []string
		queue := []string{start}
		seen[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			nbrs := make([]string, 0, len(g.adj[cur]))
			for nbr := range g.adj[cur] {
				nbrs = append(nbrs, nbr)
			}
			sort.Strings(nbrs)
			for _, nbr := range nbrs {
				if !seen[nbr] {
					seen[nbr] = true
					queue = append(queue, nbr)
				}
			}
		}
		sort.Strings(comp)
		components = append(components, comp)
	}
	return components
}

// Betweenness computes shortest-path betweenness centrality for every node.
// Edge weight is interpreted as connection strength, so it enters the
// shortest-path computation as distance 1/weight: strongly connected pairs
// are "closer" and paths prefer to run through strong ties.
func (g *Graph) Betweenness() map[string]float64 {
	names := g.Nodes()
	result := make(map[string]float64, len(names))
	for _, name := range names {
		result[name] = 0
	}
	if len(names) == 0 {
		return result
	}

	ids := make(map[string]int64, len(names))
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for i, name := range names {
		ids[name] = int64(i)
		wg.AddNode(simple.Node(int64(i)))
	}
	for _, a := range names {
		for b, w := range g.adj[a] {
			if a < b {
				wg.SetWeightedEdge(simple.WeightedEdge{
					F: simple.Node(ids[a]),
					T: simple.Node(ids[b]),
					W: 1 / float64(w),
				})
			}
		}
	}

	paths := path.DijkstraAllPaths(wg)
	for id, score := range network.BetweennessWeighted(wg, paths) {
		result[names[id]] = score
	}
	return result
}
