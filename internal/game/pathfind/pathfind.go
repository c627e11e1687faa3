// Package pathfind computes unweighted shortest paths over a board graph.
//
// Each query marks vertices with their breadth-first layer (source = 0) in a
// slice local to the query, expanding whole layers until every requested target
// is marked or the frontier is exhausted. Paths are rebuilt by walking back from
// the target through the first neighbour, in adjacency order, whose mark is one
// less than the current vertex.
package pathfind

import (
	"fmt"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

const unmarked = -1

// marks holds the BFS layer of every vertex for one query.
type marks []int

func newMarks(n int) marks {
	m := make(marks, n)
	for i := range m {
		m[i] = unmarked
	}
	return m
}

func (m marks) isMarked(v core.VertexID) bool { return m[v] != unmarked }

// mark expands layer by layer from source until done reports true or no
// unmarked vertex is reachable.
func mark(g *core.Graph, source core.VertexID, done func(marks) bool) marks {
	m := newMarks(g.VertexCount())
	m[source] = 0
	frontier := []core.VertexID{source}

	for layer := 0; len(frontier) > 0 && !done(m); layer++ {
		var next []core.VertexID
		for _, v := range frontier {
			for _, n := range g.Neighbors(v) {
				if !m.isMarked(n) {
					m[n] = layer + 1
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return m
}

// walkBack rebuilds the source-to-target path from a completed marking.
func walkBack(g *core.Graph, m marks, target core.VertexID) []core.VertexID {
	path := make([]core.VertexID, m[target]+1)
	cur := target
	for i := m[target]; i > 0; i-- {
		path[i] = cur
		for _, n := range g.Neighbors(cur) {
			if m[n] == m[cur]-1 {
				cur = n
				break
			}
		}
	}
	path[0] = cur
	return path
}

// ShortestPath returns the shortest path from source to target, or an error
// wrapping core.ErrUnreachable when no path exists.
func ShortestPath(g *core.Graph, source, target core.VertexID) (core.Distance, error) {
	if !g.Contains(source) || !g.Contains(target) {
		return core.Distance{}, core.ErrUnknownVertex
	}
	m := mark(g, source, func(m marks) bool { return m.isMarked(target) })
	if !m.isMarked(target) {
		return core.Distance{}, fmt.Errorf("%v -> %v: %w", g.Coord(source), g.Coord(target), core.ErrUnreachable)
	}
	return core.NewDistance(walkBack(g, m, target)), nil
}

// Result maps each reachable target to its shortest path. Targets with no
// path are listed in Unreachable, in the order they were requested.
type Result struct {
	Distances   map[core.VertexID]core.Distance
	Unreachable []core.VertexID
}

// Lookup returns the distance to target and whether it was reachable
func (r Result) Lookup(target core.VertexID) (core.Distance, bool) {
	d, ok := r.Distances[target]
	return d, ok
}

// ShortestPaths computes the shortest path from source to every target with a
// single marking pass. Targets that are not on the board count as unreachable.
func ShortestPaths(g *core.Graph, source core.VertexID, targets []core.VertexID) Result {
	res := Result{Distances: make(map[core.VertexID]core.Distance, len(targets))}
	if !g.Contains(source) {
		res.Unreachable = append(res.Unreachable, targets...)
		return res
	}

	m := mark(g, source, func(m marks) bool {
		for _, t := range targets {
			if g.Contains(t) && !m.isMarked(t) {
				return false
			}
		}
		return true
	})

	for _, t := range targets {
		if !g.Contains(t) || !m.isMarked(t) {
			res.Unreachable = append(res.Unreachable, t)
			continue
		}
		if _, seen := res.Distances[t]; !seen {
			res.Distances[t] = core.NewDistance(walkBack(g, m, t))
		}
	}
	return res
}

// Connected reports whether every vertex in vs can reach every other.
func Connected(g *core.Graph, vs []core.VertexID) bool {
	if len(vs) < 2 {
		return true
	}
	res := ShortestPaths(g, vs[0], vs[1:])
	return len(res.Unreachable) == 0
}
