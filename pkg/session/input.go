package session

import (
	"fmt"
	"strings"

	"github.com/chicogong/media-graph/pkg/graph"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// bindInput resolves a parsed graph input endpoint to a decoded
// stream. A labeled endpoint names an explicit "file[:specifier]"
// reference; an unlabeled one takes the first still-discardable stream
// of the matching type, in discovery order. The chosen stream stops
// being discardable and is flagged as needing decoding.
//
// The discard flag is not restored if the graph is discarded before
// configuration completes; a partially bound session is expected to be
// torn down as a whole.
func (s *Session) bindInput(fg *FilterGraph, ep *graph.Endpoint) error {
	if ep.Type != schemas.MediaTypeVideo && ep.Type != schemas.MediaTypeAudio {
		return fmt.Errorf("%w: input pad %d on filter '%s'",
			ErrUnsupportedMediaType, ep.Pad, ep.Node.Name)
	}

	var ist *schemas.InputStream

	if ep.Label != "" {
		fileIdx, spec := parseStreamLabel(ep.Label)
		if fileIdx < 0 || fileIdx >= len(s.Files) {
			return fmt.Errorf("%w: %d in graph description %q",
				ErrInvalidFileIndex, fileIdx, fg.Description)
		}

		for _, candidate := range s.Files[fileIdx].Streams {
			if candidate.Type != ep.Type {
				continue
			}
			ok, err := schemas.MatchStreamSpecifier(candidate, spec)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrNoMatchingStream, err)
			}
			if ok {
				ist = candidate
				break
			}
		}
		if ist == nil {
			return fmt.Errorf("%w: '%s' in graph description %q",
				ErrNoMatchingStream, spec, fg.Description)
		}
	} else {
		for _, candidate := range s.Streams {
			if candidate.Type == ep.Type && candidate.Discard {
				ist = candidate
				break
			}
		}
		if ist == nil {
			return fmt.Errorf("%w: unlabeled %s input pad %d on filter '%s'",
				ErrNoUnusedStream, ep.Type, ep.Pad, ep.Node.Name)
		}
	}

	ist.Discard = false
	ist.DecodingNeeded = true
	s.registerInputFilter(fg, ist)

	s.logger.Debug("bound graph input",
		"graph", fg.Index, "file", ist.FileIndex, "stream", ist.StreamIndex, "type", ist.Type)
	return nil
}

// parseStreamLabel splits a stream-reference label into its leading
// file index and the trailing stream specifier. A label with no
// leading digits refers to file 0 with the whole label as specifier.
func parseStreamLabel(label string) (int, string) {
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}

	fileIdx := 0
	for _, c := range label[:i] {
		fileIdx = fileIdx*10 + int(c-'0')
	}

	spec := label[i:]
	spec = strings.TrimPrefix(spec, ":")
	return fileIdx, spec
}

// configureInput builds the source chain for one bound input endpoint
// and links it into the parsed graph.
func (s *Session) configureInput(fg *FilterGraph, ifil *InputFilter, ep *graph.Endpoint) error {
	ifil.Name = chainLinkName(ep, true)

	switch ep.Type {
	case schemas.MediaTypeVideo:
		return s.configureInputVideo(fg, ifil, ep)
	case schemas.MediaTypeAudio:
		return s.configureInputAudio(fg, ifil, ep)
	default:
		return fmt.Errorf("%w: input pad %d on filter '%s'",
			ErrUnsupportedMediaType, ep.Pad, ep.Node.Name)
	}
}

// configureInputVideo builds the video source node. When a constant
// frame rate is forced on the stream, the source time base becomes the
// inverse frame rate and a timestamp-renumbering node goes in front of
// the user graph.
func (s *Session) configureInputVideo(fg *FilterGraph, ifil *InputFilter, ep *graph.Endpoint) error {
	ist := ifil.Stream

	tb := ist.TimeBase
	if !ist.FrameRate.IsZero() {
		tb = ist.FrameRate.Inverse()
	}

	sar := ist.SampleAspect()
	if sar.Den == 0 {
		sar.Den = 1
	}

	args := fmt.Sprintf("video_size=%dx%d:pix_fmt=%s:time_base=%d/%d:pixel_aspect=%d/%d",
		ist.Width, ist.Height, ist.PixelFormat, tb.Num, tb.Den, sar.Num, sar.Den)
	name := fmt.Sprintf("graph %d input from stream %d:%d",
		fg.Index, ist.FileIndex, ist.StreamIndex)

	source, err := fg.Graph.CreateFilter("buffer", name, args)
	if err != nil {
		return err
	}
	ifil.Filter = source

	first, pad := ep.Node, ep.Pad

	if !ist.FrameRate.IsZero() {
		name = fmt.Sprintf("force CFR for input from stream %d:%d",
			ist.FileIndex, ist.StreamIndex)
		setpts, err := fg.Graph.CreateFilter("setpts", name, "N")
		if err != nil {
			return err
		}
		if err := fg.Graph.Link(setpts, 0, first, pad); err != nil {
			return err
		}
		first, pad = setpts, 0
	}

	return fg.Graph.Link(source, 0, first, pad)
}

// configureInputAudio builds the audio source node. The deprecated
// session-wide sync compensation and volume settings insert their
// filters ahead of the user graph, sync first.
func (s *Session) configureInputAudio(fg *FilterGraph, ifil *InputFilter, ep *graph.Endpoint) error {
	ist := ifil.Stream

	args := fmt.Sprintf("time_base=%d/%d:sample_rate=%d:sample_fmt=%s:channel_layout=%s",
		1, ist.SampleRate, ist.SampleRate, ist.SampleFormat, ist.ChannelLayout)
	name := fmt.Sprintf("graph %d input from stream %d:%d",
		fg.Index, ist.FileIndex, ist.StreamIndex)

	source, err := fg.Graph.CreateFilter("abuffer", name, args)
	if err != nil {
		return err
	}
	ifil.Filter = source

	first, pad := ep.Node, ep.Pad

	if s.opts.AudioSyncMethod > 0 {
		s.logger.Warn("audio sync compensation is deprecated, use the asyncts audio filter instead")

		args = ""
		if s.opts.AudioSyncMethod > 1 {
			args = fmt.Sprintf("compensate=1:max_comp=%d:", s.opts.AudioSyncMethod)
		}
		args += fmt.Sprintf("min_delta=%f", s.opts.AudioDriftThreshold)

		name = fmt.Sprintf("graph %d audio sync for input stream %d:%d",
			fg.Index, ist.FileIndex, ist.StreamIndex)
		async, err := fg.Graph.CreateFilter("asyncts", name, args)
		if err != nil {
			return err
		}
		if err := fg.Graph.Link(async, 0, first, pad); err != nil {
			return err
		}
		first, pad = async, 0
	}

	if s.opts.AudioVolume != 256 {
		s.logger.Warn("session-wide volume is deprecated, use the volume audio filter instead")

		args = fmt.Sprintf("volume=%f", float64(s.opts.AudioVolume)/256.0)
		name = fmt.Sprintf("graph %d volume for input stream %d:%d",
			fg.Index, ist.FileIndex, ist.StreamIndex)
		volume, err := fg.Graph.CreateFilter("volume", name, args)
		if err != nil {
			return err
		}
		if err := fg.Graph.Link(volume, 0, first, pad); err != nil {
			return err
		}
		first, pad = volume, 0
	}

	return fg.Graph.Link(source, 0, first, pad)
}
