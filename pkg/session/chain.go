package session

import (
	"github.com/chicogong/media-graph/pkg/filters"
	"github.com/chicogong/media-graph/pkg/graph"
)

// chain tracks the tail of a filter chain while adaptation nodes are
// appended: the last node and the output pad the next link leaves
// from.
type chain struct {
	fg   *FilterGraph
	last *graph.Node
	pad  int
}

// append instantiates a filter, links the current tail into its first
// input pad and advances the tail.
func (c *chain) append(filterName, instanceName, args string) error {
	node, err := c.fg.Graph.CreateFilter(filterName, instanceName, args)
	if err != nil {
		return err
	}
	if err := c.fg.Graph.Link(c.last, c.pad, node, 0); err != nil {
		return err
	}
	c.last = node
	c.pad = 0
	return nil
}

// chainLinkName derives the display name of a graph endpoint: the
// filter type name, qualified by the pad name when the node has more
// than one pad on that side.
func chainLinkName(ep *graph.Endpoint, input bool) string {
	var pads []filters.Pad
	if input {
		pads = ep.Node.Filter.Inputs
	} else {
		pads = ep.Node.Filter.Outputs
	}
	if len(pads) > 1 {
		return ep.Node.Filter.Name + ":" + pads[ep.Pad].Name
	}
	return ep.Node.Filter.Name
}
