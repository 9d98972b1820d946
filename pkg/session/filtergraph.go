package session

import (
	"context"
	"fmt"
	"io"

	"github.com/chicogong/media-graph/pkg/graph"
	"github.com/chicogong/media-graph/pkg/schemas"
	"github.com/chicogong/media-graph/pkg/script"
)

// FilterGraph is one filter chain of the session: the graph instance
// under construction plus the endpoints tying it to streams. A graph
// with an empty Description is "simple" (synthesized from its sole
// output's implicit filter string, exactly one input and one output);
// anything else is "complex" and may declare several named endpoints.
type FilterGraph struct {
	Index       int
	Description string

	// Graph is the current constructed instance, nil before the first
	// configuration pass. Each pass replaces it wholesale.
	Graph *graph.Graph

	Inputs  []*InputFilter
	Outputs []*OutputFilter

	session *Session
}

// InputFilter ties one bound decoded stream to the source node feeding
// a graph input.
type InputFilter struct {
	Graph  *FilterGraph
	Stream *schemas.InputStream

	// Filter is the source node, nil until the input chain is built.
	Filter *graph.Node

	// Name is the display name of the graph link this endpoint feeds.
	Name string
}

// OutputFilter ties a graph output to the output stream consuming it.
// An output is either bound to a stream or pending: parsed from a
// complex description but not yet assigned a stream by the session's
// mapping logic.
type OutputFilter struct {
	Graph *FilterGraph

	// Name is the display name of the graph link this endpoint drains.
	Name string

	binding outputBinding
}

type outputBinding interface {
	isOutputBinding()
}

// boundOutput is an output endpoint with a concrete stream; the sink
// node appears once the output chain is built.
type boundOutput struct {
	stream *schemas.OutputStream
	sink   *graph.Node
}

// pendingOutput is a parsed-but-unbound output awaiting stream
// mapping.
type pendingOutput struct {
	endpoint *graph.Endpoint
}

func (boundOutput) isOutputBinding()   {}
func (pendingOutput) isOutputBinding() {}

// Pending reports whether the output still awaits stream mapping.
func (of *OutputFilter) Pending() bool {
	_, ok := of.binding.(pendingOutput)
	return ok
}

// Stream returns the bound output stream, nil while pending.
func (of *OutputFilter) Stream() *schemas.OutputStream {
	if b, ok := of.binding.(boundOutput); ok {
		return b.stream
	}
	return nil
}

// Sink returns the constructed sink node, nil until the output chain
// is built.
func (of *OutputFilter) Sink() *graph.Node {
	if b, ok := of.binding.(boundOutput); ok {
		return b.sink
	}
	return nil
}

// Label returns the link label of a pending output ("" for unlabeled
// or bound outputs), for use by stream-mapping logic.
func (of *OutputFilter) Label() string {
	if p, ok := of.binding.(pendingOutput); ok {
		return p.endpoint.Label
	}
	return ""
}

// MediaType returns the media type the output carries.
func (of *OutputFilter) MediaType() schemas.MediaType {
	switch b := of.binding.(type) {
	case boundOutput:
		return b.stream.Type
	case pendingOutput:
		return b.endpoint.Type
	}
	return schemas.MediaTypeUnknown
}

// Bind assigns a stream to a pending output. The next configuration
// pass of the owning graph builds its output chain.
func (of *OutputFilter) Bind(ost *schemas.OutputStream) error {
	if !of.Pending() {
		return fmt.Errorf("%w: output %q of graph %d", ErrAlreadyBound, of.Name, of.Graph.Index)
	}
	of.binding = boundOutput{stream: ost}
	of.Graph.session.outputFilters[ost] = of
	return nil
}

func (of *OutputFilter) setSink(sink *graph.Node) {
	if b, ok := of.binding.(boundOutput); ok {
		b.sink = sink
		of.binding = b
	}
}

// NewSimpleGraph creates the trivial one-input/one-output graph for a
// decoded-input/encoded-output stream pair, bypassing description
// parsing. The output stream's implicit filter-chain pointer is wired
// to the new endpoint and the input endpoint is registered against the
// bound stream.
func (s *Session) NewSimpleGraph(ist *schemas.InputStream, ost *schemas.OutputStream) *FilterGraph {
	fg := &FilterGraph{
		Index:   len(s.Graphs),
		session: s,
	}

	of := &OutputFilter{Graph: fg, binding: boundOutput{stream: ost}}
	fg.Outputs = append(fg.Outputs, of)
	s.outputFilters[ost] = of

	s.registerInputFilter(fg, ist)

	s.Graphs = append(s.Graphs, fg)
	return fg
}

// NewComplexGraph creates a graph from an explicit textual
// description. Inputs bind and outputs resolve during configuration.
func (s *Session) NewComplexGraph(desc string) *FilterGraph {
	fg := &FilterGraph{
		Index:       len(s.Graphs),
		Description: desc,
		session:     s,
	}
	s.Graphs = append(s.Graphs, fg)
	return fg
}

// NewGraphFromScript creates a complex graph whose description is
// fetched from a script URI (local file, HTTP or S3).
func (s *Session) NewGraphFromScript(ctx context.Context, resolver *script.Resolver, uri string) (*FilterGraph, error) {
	rc, err := resolver.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch graph script: %w", err)
	}
	defer rc.Close()

	desc, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph script: %w", err)
	}

	s.logger.Debug("loaded graph description from script", "uri", uri, "bytes", len(desc))
	return s.NewComplexGraph(string(desc)), nil
}

// UsesStream reports whether any of the graph's input endpoints is
// bound to the stream.
func (fg *FilterGraph) UsesStream(ist *schemas.InputStream) bool {
	for _, ifil := range fg.Inputs {
		if ifil.Stream == ist {
			return true
		}
	}
	return false
}

// PendingOutputs counts the output endpoints still awaiting stream
// mapping.
func (fg *FilterGraph) PendingOutputs() int {
	n := 0
	for _, of := range fg.Outputs {
		if of.Pending() {
			n++
		}
	}
	return n
}
