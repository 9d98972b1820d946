package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chicogong/media-graph/pkg/filters"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// ErrInvalidGraph is the base error for structural problems: malformed
// descriptions, bad links, unconnected pads, cycles.
var ErrInvalidGraph = errors.New("invalid graph")

// Graph is one processing graph under construction: a set of filter
// node instances plus the links between their pads.
type Graph struct {
	registry *filters.Registry

	nodes     []*Node
	nodeIndex map[string]*Node

	// Option strings applied to filters the graph inserts on its own
	// during negotiation (simple graphs only).
	ScaleOpts    string
	ResampleOpts string
}

// Node is one filter instance inside a graph.
type Node struct {
	Name   string
	Filter *filters.Descriptor
	Args   string

	// links per pad; nil entries are unconnected pads
	inputs  []*Link
	outputs []*Link
}

// Link connects an output pad of one node to an input pad of another.
type Link struct {
	Src    *Node
	SrcPad int
	Dst    *Node
	DstPad int
}

// Endpoint is a dangling pad left open by parsing a description: an
// input the caller must feed, or an output the caller must consume.
type Endpoint struct {
	// Label is the link name from the description, "" for unlabeled
	// pads.
	Label string
	Node  *Node
	Pad   int
	Type  schemas.MediaType
}

// New creates an empty graph drawing filter types from reg.
func New(reg *filters.Registry) *Graph {
	return &Graph{
		registry:  reg,
		nodeIndex: make(map[string]*Node),
	}
}

// Registry returns the filter registry the graph was created with.
func (g *Graph) Registry() *filters.Registry {
	return g.registry
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Node retrieves a node by instance name.
func (g *Graph) Node(name string) *Node {
	return g.nodeIndex[name]
}

// CreateFilter instantiates a filter type as a new node. The instance
// name must be unique within the graph.
func (g *Graph) CreateFilter(filterName, instanceName, args string) (*Node, error) {
	desc, err := g.registry.Get(filterName)
	if err != nil {
		return nil, err
	}

	if _, exists := g.nodeIndex[instanceName]; exists {
		return nil, fmt.Errorf("%w: duplicate node name '%s'", ErrInvalidGraph, instanceName)
	}

	node := &Node{
		Name:    instanceName,
		Filter:  desc,
		Args:    args,
		inputs:  make([]*Link, len(desc.Inputs)),
		outputs: make([]*Link, len(desc.Outputs)),
	}
	g.nodes = append(g.nodes, node)
	g.nodeIndex[instanceName] = node
	return node, nil
}

// Link connects src's output pad to dst's input pad. Both pads must
// exist, be unconnected, and carry the same media type.
func (g *Graph) Link(src *Node, srcPad int, dst *Node, dstPad int) error {
	if srcPad < 0 || srcPad >= len(src.outputs) {
		return fmt.Errorf("%w: node '%s' has no output pad %d", ErrInvalidGraph, src.Name, srcPad)
	}
	if dstPad < 0 || dstPad >= len(dst.inputs) {
		return fmt.Errorf("%w: node '%s' has no input pad %d", ErrInvalidGraph, dst.Name, dstPad)
	}
	if src.outputs[srcPad] != nil {
		return fmt.Errorf("%w: output pad %d of '%s' already connected", ErrInvalidGraph, srcPad, src.Name)
	}
	if dst.inputs[dstPad] != nil {
		return fmt.Errorf("%w: input pad %d of '%s' already connected", ErrInvalidGraph, dstPad, dst.Name)
	}

	srcType := src.Filter.OutputType(srcPad)
	dstType := dst.Filter.InputType(dstPad)
	if srcType != dstType {
		return fmt.Errorf("%w: media type mismatch linking '%s' (%s) to '%s' (%s)",
			ErrInvalidGraph, src.Name, srcType, dst.Name, dstType)
	}

	link := &Link{Src: src, SrcPad: srcPad, Dst: dst, DstPad: dstPad}
	src.outputs[srcPad] = link
	dst.inputs[dstPad] = link
	return nil
}

// Input returns the link feeding an input pad, nil when unconnected.
func (n *Node) Input(pad int) *Link {
	if pad < 0 || pad >= len(n.inputs) {
		return nil
	}
	return n.inputs[pad]
}

// Output returns the link leaving an output pad, nil when unconnected.
func (n *Node) Output(pad int) *Link {
	if pad < 0 || pad >= len(n.outputs) {
		return nil
	}
	return n.outputs[pad]
}

// freeInput returns the index of the first unconnected input pad, -1
// when all pads are taken.
func (n *Node) freeInput() int {
	for i, l := range n.inputs {
		if l == nil {
			return i
		}
	}
	return -1
}

// freeOutput returns the index of the first unconnected output pad.
func (n *Node) freeOutput() int {
	for i, l := range n.outputs {
		if l == nil {
			return i
		}
	}
	return -1
}

// Dump renders the graph for diagnostics, one node per line with its
// outgoing links.
func (g *Graph) Dump() string {
	var b strings.Builder
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "%s (%s", n.Name, n.Filter.Name)
		if n.Args != "" {
			fmt.Fprintf(&b, "=%s", n.Args)
		}
		b.WriteString(")")
		for pad, l := range n.outputs {
			if l != nil {
				fmt.Fprintf(&b, " [%d -> %s:%d]", pad, l.Dst.Name, l.DstPad)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
