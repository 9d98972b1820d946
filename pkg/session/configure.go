package session

import (
	"fmt"

	"github.com/chicogong/media-graph/pkg/graph"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// Configure runs one configuration pass over a filter graph. Any
// previously built graph instance is discarded and rebuilt from the
// description, so a pass after trim or mapping changes reconfigures
// everything.
//
// Simple graphs (and complex graphs whose outputs are already bound)
// complete in one pass: inputs bound, source and sink chains built,
// structure validated. The first pass over a complex graph stops after
// the input chains: each parsed output is recorded as a pending
// endpoint for stream-mapping logic to Bind, and the call returns
// success with PendingOutputs() > 0.
func (s *Session) Configure(fg *FilterGraph) error {
	firstParse := fg.Graph == nil
	simple := fg.Description == ""

	desc := fg.Description
	if simple {
		if len(fg.Outputs) != 1 || fg.Outputs[0].Stream() == nil {
			return fmt.Errorf("%w: graph %d has no bound output to synthesize from",
				ErrSimpleGraphShape, fg.Index)
		}
		desc = simpleDescription(fg.Outputs[0].Stream())
	}

	fg.Graph = graph.New(s.registry)

	if simple {
		ost := fg.Outputs[0].Stream()
		fg.Graph.ScaleOpts = fmt.Sprintf("flags=0x%X", ost.ScaleFlags)
		fg.Graph.ResampleOpts = joinResampleOpts(ost.ResampleOpts)
	}

	inputs, outputs, err := fg.Graph.Parse(desc)
	if err != nil {
		return fmt.Errorf("failed to parse graph description %q: %w", desc, err)
	}

	if simple && (len(inputs) != 1 || len(outputs) != 1) {
		return fmt.Errorf("%w: description %q yields %d inputs and %d outputs",
			ErrSimpleGraphShape, desc, len(inputs), len(outputs))
	}

	if !simple && firstParse {
		for _, ep := range inputs {
			if err := s.bindInput(fg, ep); err != nil {
				return err
			}
		}
	}

	if len(inputs) != len(fg.Inputs) {
		return fmt.Errorf("%w: %d parsed inputs for %d bound endpoints",
			ErrEndpointMismatch, len(inputs), len(fg.Inputs))
	}
	for i, ep := range inputs {
		if err := s.configureInput(fg, fg.Inputs[i], ep); err != nil {
			return err
		}
	}

	if !firstParse || simple {
		// Output mappings are known, finish the whole structure.
		if len(outputs) != len(fg.Outputs) {
			return fmt.Errorf("%w: %d parsed outputs for %d bound endpoints",
				ErrEndpointMismatch, len(outputs), len(fg.Outputs))
		}
		for i, ep := range outputs {
			if err := s.configureOutput(fg, fg.Outputs[i], ep); err != nil {
				return err
			}
		}
		return fg.Graph.Validate()
	}

	// First parse of a complex graph: park the outputs until stream
	// mapping assigns them.
	for _, ep := range outputs {
		fg.Outputs = append(fg.Outputs, &OutputFilter{
			Graph:   fg,
			binding: pendingOutput{endpoint: ep},
		})
	}
	s.logger.Debug("deferred output resolution",
		"graph", fg.Index, "outputs", len(outputs))
	return nil
}

// simpleDescription synthesizes the description of a simple graph from
// its output stream's implicit filter chain.
func simpleDescription(ost *schemas.OutputStream) string {
	if ost.FilterSpec != "" {
		return ost.FilterSpec
	}
	if ost.Type == schemas.MediaTypeAudio {
		return "anull"
	}
	return "null"
}
