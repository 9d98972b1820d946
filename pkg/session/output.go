package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chicogong/media-graph/pkg/graph"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// configureOutput builds the sink chain for one bound output endpoint:
// adaptation filters matching the output stream's constraints, the
// trim window, then the sink itself. The derived chain-link display
// name is cached on both the endpoint and the stream.
func (s *Session) configureOutput(fg *FilterGraph, of *OutputFilter, ep *graph.Endpoint) error {
	if of.Pending() {
		return fmt.Errorf("%w: graph %d output %d", ErrOutputNotBound, fg.Index, ep.Pad)
	}

	of.Name = chainLinkName(ep, false)
	of.Stream().FilterName = of.Name

	switch ep.Type {
	case schemas.MediaTypeVideo:
		return s.configureOutputVideo(fg, of, ep)
	case schemas.MediaTypeAudio:
		return s.configureOutputAudio(fg, of, ep)
	default:
		return fmt.Errorf("%w: output pad %d on filter '%s'",
			ErrUnsupportedMediaType, ep.Pad, ep.Node.Name)
	}
}

// configureOutputVideo inserts, in order: a scaler when the output has
// explicit dimensions, a pixel-format constraint when the encoder
// restricts formats, a frame-rate converter when an output rate is
// forced, and the trim window.
func (s *Session) configureOutputVideo(fg *FilterGraph, of *OutputFilter, ep *graph.Endpoint) error {
	ost := of.Stream()

	name := fmt.Sprintf("output stream %d:%d", ost.FileIndex, ost.StreamIndex)
	sink, err := fg.Graph.CreateFilter("buffersink", name, "")
	if err != nil {
		return err
	}

	c := &chain{fg: fg, last: ep.Node, pad: ep.Pad}

	if ost.Width != 0 || ost.Height != 0 {
		args := fmt.Sprintf("%d:%d:flags=0x%X", ost.Width, ost.Height, ost.ScaleFlags)
		name = fmt.Sprintf("scaler for output stream %d:%d", ost.FileIndex, ost.StreamIndex)
		if err := c.append("scale", name, args); err != nil {
			return err
		}
	}

	if pixFmts := choosePixelFormats(ost); pixFmts != "" {
		name = fmt.Sprintf("pixel format for output stream %d:%d", ost.FileIndex, ost.StreamIndex)
		if err := c.append("format", name, pixFmts); err != nil {
			return err
		}
	}

	if !ost.FrameRate.IsZero() {
		args := fmt.Sprintf("fps=%d/%d", ost.FrameRate.Num, ost.FrameRate.Den)
		name = fmt.Sprintf("fps for output stream %d:%d", ost.FileIndex, ost.StreamIndex)
		if err := c.append("fps", name, args); err != nil {
			return err
		}
	}

	if err := s.insertTrim(ost, c); err != nil {
		return err
	}

	if err := fg.Graph.Link(c.last, c.pad, sink, 0); err != nil {
		return err
	}
	of.setSink(sink)
	return nil
}

// configureOutputAudio inserts a single combined format/rate/layout
// constraint when the encoder restricts any of the three, then the
// trim window. A fixed channel count with no layout picks the default
// layout for that count.
func (s *Session) configureOutputAudio(fg *FilterGraph, of *OutputFilter, ep *graph.Endpoint) error {
	ost := of.Stream()

	name := fmt.Sprintf("output stream %d:%d", ost.FileIndex, ost.StreamIndex)
	sink, err := fg.Graph.CreateFilter("abuffersink", name, "")
	if err != nil {
		return err
	}

	c := &chain{fg: fg, last: ep.Node, pad: ep.Pad}

	layout := ost.ChannelLayout
	if layout == "" && ost.Channels > 0 {
		layout = schemas.DefaultChannelLayout(ost.Channels)
	}

	sampleFmts := chooseSampleFormats(ost)
	sampleRates := chooseSampleRates(ost)
	channelLayouts := chooseChannelLayouts(ost, layout)

	if sampleFmts != "" || sampleRates != "" || channelLayouts != "" {
		var args strings.Builder
		if sampleFmts != "" {
			fmt.Fprintf(&args, "sample_fmts=%s:", sampleFmts)
		}
		if sampleRates != "" {
			fmt.Fprintf(&args, "sample_rates=%s:", sampleRates)
		}
		if channelLayouts != "" {
			fmt.Fprintf(&args, "channel_layouts=%s:", channelLayouts)
		}

		name = fmt.Sprintf("audio format for output stream %d:%d", ost.FileIndex, ost.StreamIndex)
		if err := c.append("aformat", name, strings.TrimSuffix(args.String(), ":")); err != nil {
			return err
		}
	}

	if err := s.insertTrim(ost, c); err != nil {
		return err
	}

	if err := fg.Graph.Link(c.last, c.pad, sink, 0); err != nil {
		return err
	}
	of.setSink(sink)
	return nil
}

// joinResampleOpts renders resampling options as "key=value" pairs
// joined by ':', in stable key order.
func joinResampleOpts(opts map[string]string) string {
	if len(opts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + opts[k]
	}
	return strings.Join(parts, ":")
}
