package project

// graph tracks the import dependency edges between documents by path,
// plus their reverse (who-depends-on-me) for invalidation.
type graph struct {
	edges   map[string]map[string]bool // path -> set of paths it imports
	reverse map[string]map[string]bool // path -> set of paths that import it
}

func newGraph() *graph {
	return &graph{
		edges:   map[string]map[string]bool{},
		reverse: map[string]map[string]bool{},
	}
}

// setEdges replaces path's outgoing import edges with imports, updating
// the reverse index accordingly.
func (g *graph) setEdges(path string, imports []string) {
	g.removeEdgesFrom(path)
	set := make(map[string]bool, len(imports))
	for _, dep := range imports {
		set[dep] = true
		if g.reverse[dep] == nil {
			g.reverse[dep] = map[string]bool{}
		}
		g.reverse[dep][path] = true
	}
	g.edges[path] = set
}

func (g *graph) removeEdgesFrom(path string) {
	for dep := range g.edges[path] {
		if rev := g.reverse[dep]; rev != nil {
			delete(rev, path)
		}
	}
	delete(g.edges, path)
}

// remove drops path from the graph entirely, both as a source and as a
// target of other documents' import edges.
func (g *graph) remove(path string) {
	g.removeEdgesFrom(path)
	delete(g.reverse, path)
	for _, rev := range g.reverse {
		delete(rev, path)
	}
}

// dependents returns every path that (transitively) imports path,
// path itself excluded, via a breadth-first walk of the reverse graph.
func (g *graph) dependents(path string) []string {
	seen := map[string]bool{}
	var order []string
	queue := []string{path}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range g.reverse[cur] {
			if !seen[dep] {
				seen[dep] = true
				order = append(order, dep)
				queue = append(queue, dep)
			}
		}
	}
	return order
}
