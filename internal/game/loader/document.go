package loader

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the format-neutral board description
type document struct {
	VertexCount int
	EdgeCount   int
	Width       int
	Height      int
	Vertices    []vertexEntry
	Edges       []edgeEntry
	Units       []unitEntry
}

type vertexEntry struct {
	ID   string
	X, Y int
}

type edgeEntry struct {
	From, To string
}

type unitEntry struct {
	Vertex string
	Player bool
}

// xmlGraph mirrors the original board files:
//
//	<Graph>
//	  <VertexCount>3</VertexCount>
//	  <EdgeCount>2</EdgeCount>
//	  <GraphSize x="3" y="1"/>
//	  <Vertices><Vertex id="a" x="0" y="0"/></Vertices>
//	  <Edges><Edge from="a" to="b"/></Edges>
//	  <Units><Unit vertex="a" isPlayer="true"/></Units>
//	</Graph>
type xmlGraph struct {
	XMLName     xml.Name    `xml:"Graph"`
	VertexCount string      `xml:"VertexCount"`
	EdgeCount   string      `xml:"EdgeCount"`
	Size        xmlSize     `xml:"GraphSize"`
	Vertices    []xmlVertex `xml:"Vertices>Vertex"`
	Edges       []xmlEdge   `xml:"Edges>Edge"`
	Units       []xmlUnit   `xml:"Units>Unit"`
}

type xmlSize struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

type xmlVertex struct {
	ID string `xml:"id,attr"`
	X  string `xml:"x,attr"`
	Y  string `xml:"y,attr"`
}

type xmlEdge struct {
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
}

type xmlUnit struct {
	Vertex   string `xml:"vertex,attr"`
	IsPlayer string `xml:"isPlayer,attr"`
}

// yamlGraph is the YAML board layout
type yamlGraph struct {
	VertexCount int          `yaml:"vertex_count"`
	EdgeCount   int          `yaml:"edge_count"`
	Size        yamlSize     `yaml:"size"`
	Vertices    []yamlVertex `yaml:"vertices"`
	Edges       []yamlEdge   `yaml:"edges"`
	Units       []yamlUnit   `yaml:"units"`
}

type yamlSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type yamlVertex struct {
	ID string `yaml:"id"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
}

type yamlEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type yamlUnit struct {
	Vertex string `yaml:"vertex"`
	Player bool   `yaml:"player"`
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// decodeXML parses an XML board. Entries with malformed numbers or flags are
// reported and dropped.
func decodeXML(data []byte) (document, []Issue, error) {
	var raw xmlGraph
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return document{}, nil, fmt.Errorf("decode xml board: %w", err)
	}

	var doc document
	var issues []Issue
	header := func(name, value string) int {
		if strings.TrimSpace(value) == "" {
			return 0
		}
		n, err := atoi(value)
		if err != nil {
			issues = append(issues, newIssue(IssueBadValue, name, "not a number: %q", value))
			return 0
		}
		return n
	}
	doc.VertexCount = header("VertexCount", raw.VertexCount)
	doc.EdgeCount = header("EdgeCount", raw.EdgeCount)
	doc.Width = header("GraphSize.x", raw.Size.X)
	doc.Height = header("GraphSize.y", raw.Size.Y)

	for i, v := range raw.Vertices {
		x, errX := atoi(v.X)
		y, errY := atoi(v.Y)
		if errX != nil || errY != nil {
			issues = append(issues, newIssue(IssueBadValue, entryName("vertex", i, v.ID),
				"bad coordinates x=%q y=%q", v.X, v.Y))
			continue
		}
		doc.Vertices = append(doc.Vertices, vertexEntry{ID: v.ID, X: x, Y: y})
	}
	for _, e := range raw.Edges {
		doc.Edges = append(doc.Edges, edgeEntry{From: e.From, To: e.To})
	}
	for i, u := range raw.Units {
		isPlayer, err := strconv.ParseBool(strings.TrimSpace(u.IsPlayer))
		if err != nil {
			issues = append(issues, newIssue(IssueBadValue, entryName("unit", i, u.Vertex),
				"bad isPlayer flag %q", u.IsPlayer))
			continue
		}
		doc.Units = append(doc.Units, unitEntry{Vertex: u.Vertex, Player: isPlayer})
	}
	return doc, issues, nil
}

// decodeYAML parses a YAML board
func decodeYAML(data []byte) (document, []Issue, error) {
	var raw yamlGraph
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return document{}, nil, fmt.Errorf("decode yaml board: %w", err)
	}

	doc := document{
		VertexCount: raw.VertexCount,
		EdgeCount:   raw.EdgeCount,
		Width:       raw.Size.Width,
		Height:      raw.Size.Height,
	}
	for _, v := range raw.Vertices {
		doc.Vertices = append(doc.Vertices, vertexEntry{ID: v.ID, X: v.X, Y: v.Y})
	}
	for _, e := range raw.Edges {
		doc.Edges = append(doc.Edges, edgeEntry{From: e.From, To: e.To})
	}
	for _, u := range raw.Units {
		doc.Units = append(doc.Units, unitEntry{Vertex: u.Vertex, Player: u.Player})
	}
	return doc, nil, nil
}

func entryName(kind string, index int, id string) string {
	if id == "" {
		return fmt.Sprintf("%s[%d]", kind, index)
	}
	return fmt.Sprintf("%s[%d] %q", kind, index, id)
}
