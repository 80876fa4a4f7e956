package ast

import "testing"

func testTree() *Node {
	return &Node{
		Type: "source_file",
		Children: []*Node{
			{Type: "package_clause", StartLine: 0, EndLine: 0},
			{
				Type: "function_declaration", Name: "main",
				StartLine: 2, EndLine: 5,
				Children: []*Node{
					{Type: "identifier", StartLine: 2, EndLine: 2},
					{Type: "block", StartLine: 2, EndLine: 5, Children: []*Node{
						{Type: "if_statement", StartLine: 3, EndLine: 4},
					}},
				},
			},
		},
	}
}

func TestWalkPreOrder(t *testing.T) {
	var visited []string
	testTree().Walk(func(n *Node) bool {
		visited = append(visited, n.Type)
		return true
	})

	want := []string{"source_file", "package_clause", "function_declaration", "identifier", "block", "if_statement"}
	if len(visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	var visited []string
	testTree().Walk(func(n *Node) bool {
		visited = append(visited, n.Type)
		return n.Type != "function_declaration"
	})

	for _, typ := range visited {
		if typ == "block" || typ == "if_statement" {
			t.Errorf("visited %s under a skipped node", typ)
		}
	}
}

func TestWalkNil(t *testing.T) {
	var n *Node
	n.Walk(func(*Node) bool { t.Fatal("visitor called on nil node"); return true })
}

func TestCount(t *testing.T) {
	if got := testTree().Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
}
