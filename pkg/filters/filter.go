package filters

import (
	"github.com/chicogong/media-graph/pkg/schemas"
)

// Pad is one connection point on a filter, through which it accepts
// or emits frames of a single media type.
type Pad struct {
	Name string
	Type schemas.MediaType
}

// Descriptor describes a filter type: its name and the pads instances
// of it expose. A filter with no input pads is a source; one with no
// output pads is a sink.
type Descriptor struct {
	Name        string
	Description string
	Inputs      []Pad
	Outputs     []Pad
}

// IsSource reports whether the filter injects frames into a graph.
func (d *Descriptor) IsSource() bool {
	return len(d.Inputs) == 0
}

// IsSink reports whether the filter consumes frames out of a graph.
func (d *Descriptor) IsSink() bool {
	return len(d.Outputs) == 0
}

// InputType returns the media type of an input pad, or unknown when
// the pad index is out of range.
func (d *Descriptor) InputType(pad int) schemas.MediaType {
	if pad < 0 || pad >= len(d.Inputs) {
		return schemas.MediaTypeUnknown
	}
	return d.Inputs[pad].Type
}

// OutputType returns the media type of an output pad.
func (d *Descriptor) OutputType(pad int) schemas.MediaType {
	if pad < 0 || pad >= len(d.Outputs) {
		return schemas.MediaTypeUnknown
	}
	return d.Outputs[pad].Type
}
