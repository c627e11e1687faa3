// Package loader builds a board graph from an XML or YAML board description.
//
// Malformed entries never abort a load: they are skipped and returned as
// Issues, which the loader also logs. Only a missing player, an unreadable
// document, and the optional strict checks fail the load.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GraphChase/internal/game/core"
	"github.com/mitchelldurbincs/GraphChase/internal/game/pathfind"
)

var (
	ErrUnknownFormat = errors.New("unknown board format")
	ErrCountMismatch = errors.New("declared count does not match entries")
	ErrDisconnected  = errors.New("units are not mutually reachable")
)

// Format identifies a board description encoding
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// IssueKind classifies a skipped or suspicious board entry
type IssueKind string

const (
	IssueBadValue        IssueKind = "bad_value"
	IssueUnknownVertex   IssueKind = "unknown_vertex"
	IssueDuplicateVertex IssueKind = "duplicate_vertex"
	IssueOutOfBounds     IssueKind = "out_of_bounds"
	IssueDuplicateEdge   IssueKind = "duplicate_edge"
	IssueOccupiedVertex  IssueKind = "occupied_vertex"
	IssueMultiplePlayers IssueKind = "multiple_players"
	IssueCountMismatch   IssueKind = "count_mismatch"
)

// Issue is one problem found while loading. The entry it refers to was skipped
// unless the kind is IssueCountMismatch.
type Issue struct {
	Kind    IssueKind
	Entry   string
	Message string
}

func newIssue(kind IssueKind, entry, format string, args ...interface{}) Issue {
	return Issue{Kind: kind, Entry: entry, Message: fmt.Sprintf(format, args...)}
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Entry, i.Message)
}

// Options controls the optional load-time checks
type Options struct {
	// StrictCounts turns a VertexCount/EdgeCount mismatch into an error
	StrictCounts bool
	// RequireConnected rejects boards where some unit cannot reach another
	RequireConnected bool
}

// Result is a loaded board plus everything that was skipped on the way
type Result struct {
	Graph  *core.Graph
	Issues []Issue
}

// Loader reads board descriptions
type Loader struct {
	logger zerolog.Logger
	opts   Options
}

// NewLoader creates a new board loader
func NewLoader(logger zerolog.Logger, opts Options) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "BoardLoader").Logger(),
		opts:   opts,
	}
}

// LoadFile reads and builds the board at path
func (l *Loader) LoadFile(path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	l.logger.Info().Str("path", path).Stringer("format", format).Msg("Loading board file")
	return l.Load(data, format)
}

// Load builds a board from data in the given format
func (l *Loader) Load(data []byte, format Format) (*Result, error) {
	var (
		doc    document
		issues []Issue
		err    error
	)
	switch format {
	case FormatXML:
		doc, issues, err = decodeXML(data)
	case FormatYAML:
		doc, issues, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%v: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	res, err := l.build(doc, issues)
	for _, issue := range res.Issues {
		l.logger.Warn().
			Str("kind", string(issue.Kind)).
			Str("entry", issue.Entry).
			Msg(issue.Message)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Int("vertices", res.Graph.VertexCount()).
		Int("edges", res.Graph.EdgeCount()).
		Int("units", res.Graph.UnitCount()).
		Int("issues", len(res.Issues)).
		Msg("Board loaded")
	return res, nil
}

func (l *Loader) build(doc document, issues []Issue) (*Result, error) {
	res := &Result{Issues: issues}
	report := func(kind IssueKind, entry, format string, args ...interface{}) {
		res.Issues = append(res.Issues, newIssue(kind, entry, format, args...))
	}

	// The declared size only scales drawing, so it grows to fit every vertex.
	// Without a usable size it comes from the vertices alone.
	w, h := 0, 0
	if doc.Width > 0 && doc.Height > 0 {
		w, h = doc.Width, doc.Height
	}
	for _, v := range doc.Vertices {
		if v.ID != "" && v.X >= 0 && v.Y >= 0 {
			w = max(w, v.X+1)
			h = max(h, v.Y+1)
		}
	}
	if doc.Width > 0 && doc.Height > 0 && (w > doc.Width || h > doc.Height) {
		l.logger.Warn().
			Int("declared_width", doc.Width).
			Int("declared_height", doc.Height).
			Int("width", w).
			Int("height", h).
			Msg("Vertices lie outside the declared size, board enlarged")
	}
	g := core.NewGraph(w, h)
	res.Graph = g

	ids := make(map[string]core.VertexID, len(doc.Vertices))
	for i, v := range doc.Vertices {
		name := entryName("vertex", i, v.ID)
		c := core.NewCoordinate(v.X, v.Y)
		switch {
		case v.ID == "":
			report(IssueBadValue, name, "missing id")
			continue
		case !c.IsValid(w, h):
			report(IssueOutOfBounds, name, "%v has a negative coordinate", c)
			continue
		}
		if _, dup := ids[v.ID]; dup {
			report(IssueDuplicateVertex, name, "id already used")
			continue
		}
		if _, taken := g.Lookup(c); taken {
			report(IssueDuplicateVertex, name, "another vertex already sits at %v", c)
			continue
		}
		ids[v.ID] = g.AddVertex(c)
	}

	for i, e := range doc.Edges {
		name := entryName("edge", i, e.From+"-"+e.To)
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			report(IssueUnknownVertex, name, "cannot find vertex by id")
			continue
		}
		if from == to {
			report(IssueBadValue, name, "self loop")
			continue
		}
		if !g.AddEdge(core.NewEdge(from, to)) {
			report(IssueDuplicateEdge, name, "edge already present")
		}
	}

	for i, u := range doc.Units {
		name := entryName("unit", i, u.Vertex)
		v, ok := ids[u.Vertex]
		if !ok {
			report(IssueUnknownVertex, name, "cannot find vertex by id")
			continue
		}
		role := core.RoleEnemy
		if u.Player {
			role = core.RolePlayer
		}
		if _, err := g.AddUnit(core.NewUnit(role, v)); err != nil {
			switch {
			case errors.Is(err, core.ErrMultiplePlayers):
				report(IssueMultiplePlayers, name, "board already has a player")
			case errors.Is(err, core.ErrVertexOccupied):
				report(IssueOccupiedVertex, name, "vertex already holds a unit")
			default:
				report(IssueBadValue, name, "%v", err)
			}
		}
	}

	var errs []error
	if doc.VertexCount != 0 && doc.VertexCount != len(doc.Vertices) {
		report(IssueCountMismatch, "VertexCount", "declared %d, found %d", doc.VertexCount, len(doc.Vertices))
		if l.opts.StrictCounts {
			errs = append(errs, fmt.Errorf("vertices: %w", ErrCountMismatch))
		}
	}
	if doc.EdgeCount != 0 && doc.EdgeCount != len(doc.Edges) {
		report(IssueCountMismatch, "EdgeCount", "declared %d, found %d", doc.EdgeCount, len(doc.Edges))
		if l.opts.StrictCounts {
			errs = append(errs, fmt.Errorf("edges: %w", ErrCountMismatch))
		}
	}

	if g.Player() == nil {
		errs = append(errs, core.ErrNoPlayer)
	} else if l.opts.RequireConnected {
		var vs []core.VertexID
		for _, u := range g.Units() {
			vs = append(vs, u.Vertex)
		}
		if !pathfind.Connected(g, vs) {
			errs = append(errs, ErrDisconnected)
		}
	}

	if len(errs) > 0 {
		return res, fmt.Errorf("load board: %w", errors.Join(errs...))
	}
	return res, nil
}
