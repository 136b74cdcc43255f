package datastructure

// ConnectedComponents labels every node with the index of its connected component.
// components are numbered in the order their first node was added to the graph.
// two nodes in different components have no route between them.
func (g *Graph) ConnectedComponents() (map[string]int, int) {
	component := make(map[string]int, len(g.nodes))
	count := 0

	stack := make([]string, 0, 16)
	for _, root := range g.nodes {
		if _, seen := component[root]; seen {
			continue
		}

		component[root] = count
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, v := range g.adj[u] {
				if _, seen := component[v]; !seen {
					component[v] = count
					stack = append(stack, v)
				}
			}
		}
		count++
	}
	return component, count
}
