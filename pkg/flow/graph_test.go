package flow

import (
	"errors"
	"testing"
)

func mustAdd(t *testing.T, g *Graph, n Node) NodeID {
	t.Helper()
	id, err := g.AddNode(n)
	if err != nil {
		t.Fatalf("AddNode(%+v): %v", n, err)
	}
	return id
}

func TestAddNode(t *testing.T) {
	g := New(nil)

	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b"})
	if a != 1 || b != 2 {
		t.Fatalf("assigned IDs = %d, %d, want 1, 2", a, b)
	}

	c := mustAdd(t, g, Node{ID: 10, Name: "c"})
	if c != 10 {
		t.Errorf("explicit ID = %d, want 10", c)
	}
	if d := mustAdd(t, g, Node{Name: "d"}); d != 11 {
		t.Errorf("ID after explicit = %d, want 11", d)
	}

	tests := []struct {
		name string
		node Node
		want error
	}{
		{"negative", Node{ID: -1}, ErrInvalidNodeID},
		{"duplicate", Node{ID: 1}, ErrDuplicateNodeID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.AddNode(tt.node); !errors.Is(err, tt.want) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New(nil)
	for _, name := range []string{"z", "a", "m"} {
		mustAdd(t, g, Node{Name: name})
	}
	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.Name)
	}
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() = %v, want %v", got, want)
		}
	}
}

func TestConnect(t *testing.T) {
	g := New(nil)
	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b", Level: 1})
	c := mustAdd(t, g, Node{Name: "c", Level: 1})

	if err := g.Connect(a, b, 3); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect(a, c, 5); err != nil {
		t.Fatal(err)
	}

	if in := g.Incoming(b); len(in) != 1 || in[0] != (Link{Node: a, Weight: 3}) {
		t.Errorf("Incoming(b) = %v, want [{a 3}]", in)
	}

	// Replacing keeps the position.
	if err := g.Connect(a, b, 7); err != nil {
		t.Fatal(err)
	}
	out := g.Outgoing(a)
	if len(out) != 2 || out[0] != (Link{Node: b, Weight: 7}) || out[1] != (Link{Node: c, Weight: 5}) {
		t.Errorf("Outgoing(a) = %v, want [{b 7} {c 5}]", out)
	}
	if w, _ := g.Weight(a, b); w != 7 {
		t.Errorf("Weight(a, b) = %v, want 7", w)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestConnectErrors(t *testing.T) {
	g := New(nil)
	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b"})

	tests := []struct {
		name     string
		from, to NodeID
		weight   float64
		want     error
	}{
		{"unknown source", 99, b, 1, ErrUnknownNode},
		{"unknown target", a, 99, 1, ErrUnknownNode},
		{"self loop", a, a, 1, ErrSelfLoop},
		{"negative", a, b, -1, ErrInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Connect(tt.from, tt.to, tt.weight); !errors.Is(err, tt.want) {
				t.Errorf("Connect() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSums(t *testing.T) {
	g := New(nil)
	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b", Level: 1})
	c := mustAdd(t, g, Node{Name: "c", Level: 2})
	_ = g.Connect(a, b, 4)
	_ = g.Connect(b, c, 10)

	tests := []struct {
		id                NodeID
		out, in, maxTotal float64
	}{
		{a, 4, 0, 4},
		{b, 10, 4, 10},
		{c, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := g.OutSum(tt.id); got != tt.out {
			t.Errorf("OutSum(%d) = %v, want %v", tt.id, got, tt.out)
		}
		if got := g.InSum(tt.id); got != tt.in {
			t.Errorf("InSum(%d) = %v, want %v", tt.id, got, tt.in)
		}
		if got := g.MaxSum(tt.id); got != tt.maxTotal {
			t.Errorf("MaxSum(%d) = %v, want %v", tt.id, got, tt.maxTotal)
		}
	}
}

func TestDisconnectAndRemove(t *testing.T) {
	g := New(nil)
	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b", Level: 1})
	c := mustAdd(t, g, Node{Name: "c", Level: 2})
	_ = g.Connect(a, b, 1)
	_ = g.Connect(b, c, 1)

	if !g.Disconnect(a, b) {
		t.Error("Disconnect(a, b) = false, want true")
	}
	if g.Disconnect(a, b) {
		t.Error("second Disconnect(a, b) = true, want false")
	}
	if len(g.Incoming(b)) != 0 {
		t.Errorf("Incoming(b) = %v, want empty", g.Incoming(b))
	}

	if err := g.RemoveNode(b); err != nil {
		t.Fatal(err)
	}
	if len(g.Incoming(c)) != 0 {
		t.Errorf("Incoming(c) after removal = %v, want empty", g.Incoming(c))
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if err := g.RemoveNode(b); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("RemoveNode(missing) = %v, want ErrUnknownNode", err)
	}
}

func TestPartitionsByRole(t *testing.T) {
	g := New(nil)
	src := mustAdd(t, g, Node{Name: "src"})
	mid := mustAdd(t, g, Node{Name: "mid", Level: 1})
	dst := mustAdd(t, g, Node{Name: "dst", Level: 2})
	mustAdd(t, g, Node{Name: "lonely"})
	_ = g.Connect(src, mid, 1)
	_ = g.Connect(mid, dst, 1)

	check := func(name string, nodes []*Node, want NodeID) {
		t.Helper()
		if len(nodes) != 1 || nodes[0].ID != want {
			t.Errorf("%s() = %v, want [%d]", name, nodes, want)
		}
	}
	check("Sources", g.Sources(), src)
	check("Intermediates", g.Intermediates(), mid)
	check("Sinks", g.Sinks(), dst)
}

func TestLevels(t *testing.T) {
	g := New(nil)
	for _, lvl := range []int{3, 0, 3, -1} {
		mustAdd(t, g, Node{Level: lvl})
	}
	got := g.Levels()
	want := []int{-1, 0, 3}
	if len(got) != len(want) {
		t.Fatalf("Levels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Levels() = %v, want %v", got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(Metadata{"title": "energy"})
	a := mustAdd(t, g, Node{Name: "a"})
	b := mustAdd(t, g, Node{Name: "b", Level: 1})
	_ = g.Connect(a, b, 2)

	c := g.Clone()
	_ = c.Connect(a, b, 9)
	n, _ := c.Node(a)
	n.Name = "changed"

	if w, _ := g.Weight(a, b); w != 2 {
		t.Errorf("original weight = %v, want 2", w)
	}
	if n, _ := g.Node(a); n.Name != "a" {
		t.Errorf("original name = %q, want %q", n.Name, "a")
	}
	if c.Meta()["title"] != "energy" {
		t.Errorf("clone metadata = %v", c.Meta())
	}
	if id, _ := c.AddNode(Node{}); id != 3 {
		t.Errorf("clone next ID = %d, want 3", id)
	}
}

func TestClear(t *testing.T) {
	g := New(nil)
	a := mustAdd(t, g, Node{})
	b := mustAdd(t, g, Node{Level: 1})
	_ = g.Connect(a, b, 1)
	g.Clear()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 || len(g.Nodes()) != 0 {
		t.Errorf("Clear() left %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
