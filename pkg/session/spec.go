package session

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chicogong/media-graph/pkg/schemas"
	"github.com/chicogong/media-graph/pkg/script"
)

// Spec is a declarative session description: the decoded input
// streams the demux collaborator would report, the output streams with
// their codec constraints, and the complex graphs to build. Simple
// graphs for unclaimed outputs are the mapping driver's business.
type Spec struct {
	Options Options         `yaml:"options"`
	Inputs  []InputFileSpec `yaml:"inputs"`
	Outputs []OutputSpec    `yaml:"outputs"`
	Graphs  []GraphSpec     `yaml:"graphs"`
}

// InputFileSpec describes one input file's streams.
type InputFileSpec struct {
	Streams []StreamSpec `yaml:"streams"`
}

// StreamSpec describes one decoded stream.
type StreamSpec struct {
	Type          string           `yaml:"type"`
	Width         int              `yaml:"width"`
	Height        int              `yaml:"height"`
	PixelFormat   string           `yaml:"pixel_format"`
	SampleRate    int              `yaml:"sample_rate"`
	SampleFormat  string           `yaml:"sample_format"`
	Channels      int              `yaml:"channels"`
	ChannelLayout string           `yaml:"channel_layout"`
	TimeBase      schemas.Rational `yaml:"time_base"`
	FrameRate     schemas.Rational `yaml:"frame_rate"`
}

// OutputSpec describes one output stream and its constraints.
type OutputSpec struct {
	Type          string           `yaml:"type"`
	Width         int              `yaml:"width"`
	Height        int              `yaml:"height"`
	PixelFormat   string           `yaml:"pixel_format"`
	SampleRate    int              `yaml:"sample_rate"`
	SampleFormat  string           `yaml:"sample_format"`
	Channels      int              `yaml:"channels"`
	ChannelLayout string           `yaml:"channel_layout"`
	FrameRate     schemas.Rational `yaml:"frame_rate"`
	ScaleFlags    uint             `yaml:"scale_flags"`

	// Filter is the implicit chain for a simple graph feeding this
	// output.
	Filter string `yaml:"filter"`

	Start    *schemas.Duration `yaml:"start"`
	Duration *schemas.Duration `yaml:"duration"`
}

// GraphSpec describes one complex graph, either inline or behind a
// script URI.
type GraphSpec struct {
	Description string `yaml:"description"`
	Script      string `yaml:"script"`
}

// LoadSpec reads a YAML session description from a file.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session spec: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse session spec: %w", err)
	}
	return &spec, nil
}

// Build materializes the spec: a session with its input streams
// registered and complex graphs created, plus the output streams for
// the mapping driver to route.
func (spec *Spec) Build(ctx context.Context, resolver *script.Resolver) (*Session, []*schemas.OutputStream, error) {
	s := NewSession(spec.Options)

	for _, file := range spec.Inputs {
		streams := make([]*schemas.InputStream, len(file.Streams))
		for i, ss := range file.Streams {
			mediaType, err := parseMediaType(ss.Type)
			if err != nil {
				return nil, nil, err
			}
			streams[i] = &schemas.InputStream{
				Type:          mediaType,
				Width:         ss.Width,
				Height:        ss.Height,
				PixelFormat:   ss.PixelFormat,
				SampleRate:    ss.SampleRate,
				SampleFormat:  ss.SampleFormat,
				Channels:      ss.Channels,
				ChannelLayout: ss.ChannelLayout,
				TimeBase:      ss.TimeBase,
				FrameRate:     ss.FrameRate,
			}
		}
		s.AddFile(streams...)
	}

	outputs := make([]*schemas.OutputStream, len(spec.Outputs))
	for i, out := range spec.Outputs {
		mediaType, err := parseMediaType(out.Type)
		if err != nil {
			return nil, nil, err
		}

		ost := &schemas.OutputStream{
			StreamIndex:   i,
			Type:          mediaType,
			Width:         out.Width,
			Height:        out.Height,
			PixelFormat:   out.PixelFormat,
			SampleRate:    out.SampleRate,
			SampleFormat:  out.SampleFormat,
			Channels:      out.Channels,
			ChannelLayout: out.ChannelLayout,
			FrameRate:     out.FrameRate,
			ScaleFlags:    out.ScaleFlags,
			FilterSpec:    out.Filter,
			RecordingTime: schemas.UnboundedTime,
		}
		if out.Start != nil {
			ost.StartTime = out.Start.Microseconds()
		}
		if out.Duration != nil {
			ost.RecordingTime = out.Duration.Microseconds()
		}
		outputs[i] = ost
	}

	for _, gs := range spec.Graphs {
		switch {
		case gs.Description != "":
			s.NewComplexGraph(gs.Description)
		case gs.Script != "":
			if resolver == nil {
				return nil, nil, fmt.Errorf("graph references script %q but no resolver is configured", gs.Script)
			}
			if _, err := s.NewGraphFromScript(ctx, resolver, gs.Script); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, fmt.Errorf("graph spec needs a description or a script URI")
		}
	}

	return s, outputs, nil
}

func parseMediaType(t string) (schemas.MediaType, error) {
	switch t {
	case "video", "v":
		return schemas.MediaTypeVideo, nil
	case "audio", "a":
		return schemas.MediaTypeAudio, nil
	default:
		return schemas.MediaTypeUnknown, fmt.Errorf("unknown media type %q", t)
	}
}
