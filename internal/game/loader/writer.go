package loader

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
)

func vertexName(id core.VertexID) string {
	return "v" + strconv.Itoa(int(id))
}

// Encode writes g as a board description that Load reads back into an
// equivalent board. Vertex ids are generated from vertex indexes.
func Encode(g *core.Graph, format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		return encodeXML(g)
	case FormatYAML:
		return encodeYAML(g)
	default:
		return nil, fmt.Errorf("%v: %w", format, ErrUnknownFormat)
	}
}

func encodeXML(g *core.Graph) ([]byte, error) {
	doc := xmlGraph{
		VertexCount: strconv.Itoa(g.VertexCount()),
		EdgeCount:   strconv.Itoa(g.EdgeCount()),
		Size:        xmlSize{X: strconv.Itoa(g.W), Y: strconv.Itoa(g.H)},
	}
	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertex(core.VertexID(i))
		doc.Vertices = append(doc.Vertices, xmlVertex{
			ID: vertexName(v.ID),
			X:  strconv.Itoa(v.Coord.X),
			Y:  strconv.Itoa(v.Coord.Y),
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, xmlEdge{From: vertexName(e.From), To: vertexName(e.To)})
	}
	for _, u := range g.Units() {
		doc.Units = append(doc.Units, xmlUnit{Vertex: vertexName(u.Vertex), IsPlayer: strconv.FormatBool(u.IsPlayer())})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode xml board: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func encodeYAML(g *core.Graph) ([]byte, error) {
	doc := yamlGraph{
		VertexCount: g.VertexCount(),
		EdgeCount:   g.EdgeCount(),
		Size:        yamlSize{Width: g.W, Height: g.H},
	}
	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertex(core.VertexID(i))
		doc.Vertices = append(doc.Vertices, yamlVertex{ID: vertexName(v.ID), X: v.Coord.X, Y: v.Coord.Y})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, yamlEdge{From: vertexName(e.From), To: vertexName(e.To)})
	}
	for _, u := range g.Units() {
		doc.Units = append(doc.Units, yamlUnit{Vertex: vertexName(u.Vertex), Player: u.IsPlayer()})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode yaml board: %w", err)
	}
	return out, nil
}
