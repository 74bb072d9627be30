package scenedef

import "fmt"

// Graph is the top-level immutable data structure produced by scene
// script evaluation. It is never mutated in place; each evaluation
// produces a new graph. Roots are view nodes in declaration order.
type Graph struct {
	Nodes     map[NodeID]*Node
	Roots     []NodeID
	NameIndex map[string]NodeID

	// Duplicates records IDs that were added more than once. A
	// duplicate silently replaces the earlier node here, so existing
	// references keep resolving; Validate reports each entry as an
	// error so the collision fails the run instead of rendering the
	// wrong geometry.
	Duplicates []NodeID
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// AddNode adds a node to the graph. A node with an ID already present
// replaces the earlier one and the collision is recorded for Validate.
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.Nodes[n.ID]; exists {
		g.Duplicates = append(g.Duplicates, n.ID)
	}
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root (view) of the graph.
func (g *Graph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *Graph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *Graph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scenedef: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *Graph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Children returns the child nodes of the given node, skipping
// dangling references (validation reports those separately).
func (g *Graph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Views returns all root view nodes in declaration order.
func (g *Graph) Views() []*Node {
	var views []*Node
	for _, id := range g.Roots {
		if n := g.Nodes[id]; n != nil && n.Kind == NodeView {
			views = append(views, n)
		}
	}
	return views
}

// NodeCount returns the total number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}
