package program

import "fmt"

// ---------------------------------------------------------------------------
// Link isolation
//
// Sever detaches a node from its successors in place and Restore re-joins
// it. Between the two, any traversal of the graph sees the node as the last
// statement, which is how a single statement or a breakpoint-bounded
// segment is executed without copying the graph.
// ---------------------------------------------------------------------------

// Branch selects one of a node's successor links.
type Branch int

const (
	// BranchNext is the plain successor, or the after-loop link of a while.
	BranchNext Branch = iota
	// BranchBody is the body-entry link of a while.
	BranchBody
)

func (b Branch) String() string {
	switch b {
	case BranchNext:
		return "next"
	case BranchBody:
		return "body"
	default:
		return fmt.Sprintf("Branch(%d)", int(b))
	}
}

// Links holds the successor links of a node. Body is NoNode for every kind
// other than While.
type Links struct {
	Next NodeID
	Body NodeID
}

// Absent reports whether no successor is linked.
func (l Links) Absent() bool {
	return l.Next == NoNode && l.Body == NoNode
}

func linksOf(s Stmt) Links {
	switch s := s.(type) {
	case *Assignment:
		return Links{Next: s.Next, Body: NoNode}
	case *Call:
		return Links{Next: s.Next, Body: NoNode}
	case *Pass:
		return Links{Next: s.Next, Body: NoNode}
	case *While:
		return Links{Next: s.Next, Body: s.Body}
	default:
		panic(fmt.Sprintf("program: unexpected statement type %T", s))
	}
}

func setLinks(s Stmt, l Links) {
	switch s := s.(type) {
	case *Assignment:
		s.Next = l.Next
	case *Call:
		s.Next = l.Next
	case *Pass:
		s.Next = l.Next
	case *While:
		s.Next = l.Next
		s.Body = l.Body
	default:
		panic(fmt.Sprintf("program: unexpected statement type %T", s))
	}
}

// Links returns the current successor links of a node.
func (g *Graph) Links(id NodeID) Links {
	return linksOf(g.Node(id).Stmt)
}

// SetLinks overwrites the successor links of a node.
func (g *Graph) SetLinks(id NodeID, l Links) {
	setLinks(g.Node(id).Stmt, l)
}

// Sever overwrites the successor links of a node with NoNode and returns the
// saved links. While nodes lose both links.
func (g *Graph) Sever(id NodeID) Links {
	s := g.Node(id).Stmt
	saved := linksOf(s)
	setLinks(s, Links{Next: NoNode, Body: NoNode})
	return saved
}

// Restore writes links saved by Sever back onto the node.
func (g *Graph) Restore(id NodeID, saved Links) {
	setLinks(g.Node(id).Stmt, saved)
}

// Follow returns the link currently stored for branch b. Non-loop nodes only
// have BranchNext.
func (g *Graph) Follow(id NodeID, b Branch) NodeID {
	l := g.Links(id)
	if b == BranchBody {
		if _, ok := g.Node(id).Stmt.(*While); !ok {
			panic(fmt.Sprintf("program: body branch on non-loop node at line %d", g.Line(id)))
		}
		return l.Body
	}
	return l.Next
}
