package core

// Distance is a shortest path from a source vertex to a target vertex.
// Length counts vertices on the path, both endpoints included, so a unit
// adjacent to its target has Length 2. The zero value means "no path".
type Distance struct {
	Length int
	Path   []VertexID
}

// NewDistance builds a Distance from a source-to-target vertex sequence
func NewDistance(path []VertexID) Distance {
	return Distance{Length: len(path), Path: path}
}

// Reachable is false for the zero Distance
func (d Distance) Reachable() bool { return len(d.Path) > 0 }

// Hops is the number of edges on the path, -1 if unreachable
func (d Distance) Hops() int { return d.Length - 1 }

func (d Distance) From() VertexID {
	if !d.Reachable() {
		return NoVertex
	}
	return d.Path[0]
}

func (d Distance) To() VertexID {
	if !d.Reachable() {
		return NoVertex
	}
	return d.Path[len(d.Path)-1]
}

// At returns the i-th vertex of the path; At(1) is the first step.
func (d Distance) At(i int) VertexID {
	if i < 0 || i >= len(d.Path) {
		return NoVertex
	}
	return d.Path[i]
}

// NextStep is the vertex one hop toward the target, or the target itself
// when source and target coincide.
func (d Distance) NextStep() VertexID {
	if d.Length > 1 {
		return d.Path[1]
	}
	return d.To()
}
