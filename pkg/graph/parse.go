package graph

import (
	"fmt"
	"strings"
)

// Parse reads a textual graph description into the graph and returns
// the endpoints left open: inputs the session must bind to decoded
// streams and outputs it must route to output streams, both in
// encounter order.
//
// Description syntax (chains separated by ';', filters within a chain
// separated by ','):
//
//	[label] ... filter=args [label] ... , filter , ... ; ...
//
// A label in front of a filter names one of its input pads, a label
// after it names an output pad. An output label consumed by an input
// label elsewhere in the description becomes an internal link; all
// other labeled or unlabeled dangling pads are returned as endpoints.
func (g *Graph) Parse(desc string) (inputs, outputs []*Endpoint, err error) {
	p := &parser{graph: g, src: desc}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	return p.resolve()
}

type parser struct {
	graph *Graph
	src   string
	pos   int
	count int // parsed filter instances, for unique node names

	// dangling pads in encounter order
	openInputs  []*Endpoint
	openOutputs []*Endpoint
}

func (p *parser) run() error {
	for {
		if err := p.parseChain(); err != nil {
			return err
		}
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if !p.consume(';') {
			return fmt.Errorf("%w: unexpected character '%c' at position %d",
				ErrInvalidGraph, p.src[p.pos], p.pos)
		}
	}
}

// parseChain parses one ','-separated run of filters.
func (p *parser) parseChain() error {
	var prev *Node
	var chain []*Node

	for {
		inLabels, err := p.parseLabels()
		if err != nil {
			return err
		}

		node, err := p.parseFilter()
		if err != nil {
			return err
		}
		chain = append(chain, node)

		outLabels, err := p.parseLabels()
		if err != nil {
			return err
		}

		// Input pads fill up in order: explicit labels first, then the
		// implicit link from the previous filter in the chain, and
		// whatever remains dangles.
		for _, label := range inLabels {
			pad := node.freeInput()
			if pad < 0 {
				return fmt.Errorf("%w: too many input labels for filter '%s'",
					ErrInvalidGraph, node.Filter.Name)
			}
			p.openInputs = append(p.openInputs, &Endpoint{
				Label: label,
				Node:  node,
				Pad:   pad,
				Type:  node.Filter.InputType(pad),
			})
			// reserve the pad so the next label takes the following one
			node.inputs[pad] = &Link{Dst: node, DstPad: pad}
		}

		if prev != nil {
			srcPad := prev.freeOutput()
			dstPad := node.freeInput()
			if srcPad < 0 || dstPad < 0 {
				return fmt.Errorf("%w: cannot chain '%s' into '%s'",
					ErrInvalidGraph, prev.Filter.Name, node.Filter.Name)
			}
			// clear label reservations before linking for real
			if err := p.graph.Link(prev, srcPad, node, dstPad); err != nil {
				return err
			}
		}

		for i, l := range node.inputs {
			if l == nil {
				p.openInputs = append(p.openInputs, &Endpoint{
					Node: node,
					Pad:  i,
					Type: node.Filter.InputType(i),
				})
				node.inputs[i] = &Link{Dst: node, DstPad: i}
			}
		}

		// Output pads: explicit labels in order, then either the chain
		// continues from the first free pad or everything left dangles.
		for _, label := range outLabels {
			pad := node.freeOutput()
			if pad < 0 {
				return fmt.Errorf("%w: too many output labels for filter '%s'",
					ErrInvalidGraph, node.Filter.Name)
			}
			p.openOutputs = append(p.openOutputs, &Endpoint{
				Label: label,
				Node:  node,
				Pad:   pad,
				Type:  node.Filter.OutputType(pad),
			})
			node.outputs[pad] = &Link{Src: node, SrcPad: pad}
		}

		p.skipSpace()
		if p.consume(',') {
			prev = node
			continue
		}

		// Chain over: every still-free output pad in it dangles.
		for _, n := range chain {
			for i, l := range n.outputs {
				if l == nil {
					p.openOutputs = append(p.openOutputs, &Endpoint{
						Node: n,
						Pad:  i,
						Type: n.Filter.OutputType(i),
					})
					n.outputs[i] = &Link{Src: n, SrcPad: i}
				}
			}
		}
		return nil
	}
}

// parseFilter reads "name" or "name=args" and instantiates the node.
func (p *parser) parseFilter() (*Node, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && !strings.ContainsRune("=,;[ \t\n", rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return nil, fmt.Errorf("%w: missing filter name at position %d", ErrInvalidGraph, start)
	}

	args := ""
	if p.consume('=') {
		argStart := p.pos
		for !p.eof() && !strings.ContainsRune(",;[", rune(p.src[p.pos])) {
			p.pos++
		}
		args = strings.TrimSpace(p.src[argStart:p.pos])
	}

	instance := fmt.Sprintf("Parsed_%s_%d", name, p.count)
	p.count++
	return p.graph.CreateFilter(name, instance, args)
}

// parseLabels reads zero or more "[label]" tokens.
func (p *parser) parseLabels() ([]string, error) {
	var labels []string
	for {
		p.skipSpace()
		if !p.consume('[') {
			return labels, nil
		}
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated link label", ErrInvalidGraph)
		}
		label := strings.TrimSpace(p.src[p.pos : p.pos+end])
		if label == "" {
			return nil, fmt.Errorf("%w: empty link label", ErrInvalidGraph)
		}
		labels = append(labels, label)
		p.pos += end + 1
	}
}

// resolve pairs matching input/output labels into real links and
// returns the endpoints that stay open. Pads reserved with placeholder
// links during parsing are released first.
func (p *parser) resolve() (inputs, outputs []*Endpoint, err error) {
	for _, ep := range p.openInputs {
		ep.Node.inputs[ep.Pad] = nil
	}
	for _, ep := range p.openOutputs {
		ep.Node.outputs[ep.Pad] = nil
	}

	outByLabel := make(map[string]*Endpoint)
	for _, ep := range p.openOutputs {
		if ep.Label == "" {
			continue
		}
		if _, dup := outByLabel[ep.Label]; dup {
			return nil, nil, fmt.Errorf("%w: output label '%s' used twice", ErrInvalidGraph, ep.Label)
		}
		outByLabel[ep.Label] = ep
	}

	matched := make(map[string]bool)
	for _, in := range p.openInputs {
		if in.Label != "" {
			if out, ok := outByLabel[in.Label]; ok {
				if matched[in.Label] {
					return nil, nil, fmt.Errorf("%w: input label '%s' used twice", ErrInvalidGraph, in.Label)
				}
				if err := p.graph.Link(out.Node, out.Pad, in.Node, in.Pad); err != nil {
					return nil, nil, err
				}
				matched[in.Label] = true
				continue
			}
		}
		inputs = append(inputs, in)
	}

	for _, out := range p.openOutputs {
		if out.Label != "" && matched[out.Label] {
			continue
		}
		outputs = append(outputs, out)
	}

	return inputs, outputs, nil
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}
