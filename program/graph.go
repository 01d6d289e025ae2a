package program

import (
	"fmt"
	"sort"
)

// Node is one statement in a Graph.
type Node struct {
	Line int
	Stmt Stmt
}

// Graph is an arena of statement nodes. Nodes are never copied or removed;
// links between them are mutated in place.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes []Node
	Entry NodeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Entry: NoNode}
}

// Add appends a statement and returns its id. The caller owns the links
// stored in s.
func (g *Graph) Add(line int, s Stmt) NodeID {
	if s == nil {
		panic("program: Add with nil statement")
	}
	g.nodes = append(g.nodes, Node{Line: line, Stmt: s})
	return NodeID(len(g.nodes) - 1)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id. It panics for an invalid id.
func (g *Graph) Node(id NodeID) *Node {
	if !g.valid(id) {
		panic(fmt.Sprintf("program: invalid node id %d", id))
	}
	return &g.nodes[id]
}

// Line returns the source line of a node.
func (g *Graph) Line(id NodeID) int {
	return g.Node(id).Line
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Validate checks that the entry and every link address a node.
func (g *Graph) Validate() error {
	if g.Entry != NoNode && !g.valid(g.Entry) {
		return fmt.Errorf("entry %d out of range", g.Entry)
	}
	for _, n := range g.nodes {
		l := linksOf(n.Stmt)
		for _, target := range []NodeID{l.Next, l.Body} {
			if target != NoNode && !g.valid(target) {
				return fmt.Errorf("line %d: link to %d out of range", n.Line, target)
			}
		}
		if w, ok := n.Stmt.(*While); ok && w.Body == NoNode {
			return fmt.Errorf("line %d: while loop without body", n.Line)
		}
	}
	return nil
}

// Lines returns every source line reachable from the entry, including the
// bodies of nested loops, in ascending order.
func (g *Graph) Lines() []int {
	seen := make(map[NodeID]bool)
	lines := make(map[int]bool)

	stack := []NodeID{g.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == NoNode || seen[id] {
			continue
		}
		seen[id] = true
		n := g.Node(id)
		lines[n.Line] = true
		l := linksOf(n.Stmt)
		stack = append(stack, l.Next, l.Body)
	}

	result := make([]int, 0, len(lines))
	for line := range lines {
		result = append(result, line)
	}
	sort.Ints(result)
	return result
}
