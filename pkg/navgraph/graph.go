package navgraph

import (
	"sort"

	"github.com/matzehuels/planbook/pkg/document"
)

// Options configures graph construction and diagram generation.
type Options struct {
	// Detailed includes the page type and params in node labels.
	// When false, only the page number and key are shown.
	Detailed bool

	// Types restricts the graph to pages of these types. Empty keeps all.
	Types []string

	// Clusters draws each navigation group as a cluster. A page in several
	// groups is drawn in the first one.
	Clusters bool
}

// Node is a page.
type Node struct {
	Key    string
	Page   int
	Type   string
	Params document.Params
}

// Edge is a set of links from one page to another.
type Edge struct {
	From, To string
	Count    int // number of links drawn on From pointing at To
}

// Cluster is a navigation group restricted to the graph's nodes.
type Cluster struct {
	Name  string
	Cycle bool
	Keys  []string
}

// Graph is the navigation graph of a build.
type Graph struct {
	Nodes    []Node
	Edges    []Edge
	Clusters []Cluster

	opts  Options
	index map[string]int
	in    map[string]int
}

// New builds the graph from the registry of a build and its rendered pages.
// Links to unknown destinations and links of a page to itself are ignored.
func New(reg *document.Registry, pages []*document.RenderedPage, opts Options) *Graph {
	keep := func(string) bool { return true }
	if len(opts.Types) > 0 {
		types := make(map[string]bool, len(opts.Types))
		for _, t := range opts.Types {
			types[t] = true
		}
		keep = func(t string) bool { return types[t] }
	}

	g := &Graph{opts: opts, index: make(map[string]int), in: make(map[string]int)}
	for _, d := range reg.Destinations() {
		if !keep(d.Type) {
			continue
		}
		g.index[d.Key] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Key: d.Key, Page: d.Page, Type: d.Type, Params: d.Params})
	}

	edges := make(map[[2]string]int)
	for _, p := range pages {
		if _, ok := g.index[p.Key]; !ok {
			continue
		}
		for _, l := range p.Links {
			if _, ok := g.index[l.Dest]; !ok || l.Dest == p.Key {
				continue
			}
			edges[[2]string{p.Key, l.Dest}]++
		}
	}
	for e, n := range edges {
		g.Edges = append(g.Edges, Edge{From: e[0], To: e[1], Count: n})
		g.in[e[1]]++
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if pa, pb := g.page(a.From), g.page(b.From); pa != pb {
			return pa < pb
		}
		return g.page(a.To) < g.page(b.To)
	})

	if opts.Clusters {
		placed := make(map[string]bool)
		for _, name := range reg.GroupNames() {
			keys, cycle, _ := reg.GroupKeys(name)
			c := Cluster{Name: name, Cycle: cycle}
			for _, k := range keys {
				if _, ok := g.index[k]; ok && !placed[k] {
					placed[k] = true
					c.Keys = append(c.Keys, k)
				}
			}
			if len(c.Keys) > 0 {
				g.Clusters = append(g.Clusters, c)
			}
		}
	}
	return g
}

// Node returns the node for key.
func (g *Graph) Node(key string) (Node, bool) {
	i, ok := g.index[key]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// InDegree returns the number of distinct pages linking to key.
func (g *Graph) InDegree(key string) int { return g.in[key] }

// Unreachable returns the pages after the first one that no other page links
// to, in page order.
func (g *Graph) Unreachable() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Page > 1 && g.in[n.Key] == 0 {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) page(key string) int {
	if i, ok := g.index[key]; ok {
		return g.Nodes[i].Page
	}
	return 0
}
