// Package session builds and negotiates per-session media processing
// graphs. It binds the input/output endpoints of parsed graph
// descriptions to concrete streams, inserts the adaptation filters
// needed between what decoders produce and what encoders accept, and
// drives the two-phase configuration of graphs whose outputs are
// mapped to streams only after the first parse.
package session

import (
	"github.com/hashicorp/go-hclog"

	"github.com/chicogong/media-graph/pkg/filters"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// Options carries the session-wide knobs the adaptation builders
// consult. The audio sync and volume settings are deprecated globals
// kept for compatibility; using them inserts compensation filters and
// logs a warning.
type Options struct {
	// AudioSyncMethod enables timestamp drift compensation on audio
	// inputs when positive; values above 1 also bound the maximum
	// compensation. Deprecated in favor of an explicit asyncts filter.
	AudioSyncMethod int `yaml:"audio_sync_method"`

	// AudioDriftThreshold is the minimum drift, in seconds, before
	// the sync filter compensates.
	AudioDriftThreshold float64 `yaml:"audio_drift_threshold"`

	// AudioVolume applies a global gain on audio inputs, in 1/256
	// units; 256 is neutral. Deprecated in favor of an explicit
	// volume filter.
	AudioVolume int `yaml:"audio_volume"`

	Logger hclog.Logger `yaml:"-"`
}

// Session owns the filter graphs of one processing run together with
// the decoded input streams they may bind.
type Session struct {
	Files   []*schemas.InputFile
	Streams []*schemas.InputStream
	Graphs  []*FilterGraph

	opts     Options
	registry *filters.Registry
	logger   hclog.Logger

	// outputFilters is the implicit filter-chain pointer from an
	// output stream to the endpoint feeding it.
	outputFilters map[*schemas.OutputStream]*OutputFilter

	// streamFilters is the side index from a decoded stream to every
	// endpoint referencing it.
	streamFilters map[*schemas.InputStream][]*InputFilter
}

// NewSession creates a session using the builtin filter set.
func NewSession(opts Options) *Session {
	return NewSessionWithRegistry(opts, filters.Default())
}

// NewSessionWithRegistry creates a session drawing filter types from a
// custom registry, e.g. one modeling a runtime with optional filters
// removed.
func NewSessionWithRegistry(opts Options, reg *filters.Registry) *Session {
	if opts.AudioVolume == 0 {
		opts.AudioVolume = 256
	}
	if opts.AudioDriftThreshold == 0 {
		opts.AudioDriftThreshold = 0.1
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Session{
		opts:          opts,
		registry:      reg,
		logger:        logger,
		outputFilters: make(map[*schemas.OutputStream]*OutputFilter),
		streamFilters: make(map[*schemas.InputStream][]*InputFilter),
	}
}

// AddFile registers the decoded streams of one input file, assigning
// file/stream indices and marking every stream discardable until a
// graph claims it.
func (s *Session) AddFile(streams ...*schemas.InputStream) *schemas.InputFile {
	file := &schemas.InputFile{
		Index:   len(s.Files),
		Streams: streams,
	}
	for i, ist := range streams {
		ist.FileIndex = file.Index
		ist.StreamIndex = i
		ist.Discard = true
		s.Streams = append(s.Streams, ist)
	}
	s.Files = append(s.Files, file)
	return file
}

// OutputFilter returns the endpoint feeding an output stream, nil when
// no graph routes to it yet.
func (s *Session) OutputFilter(ost *schemas.OutputStream) *OutputFilter {
	return s.outputFilters[ost]
}

// StreamFilters returns every input endpoint bound to a stream, across
// all graphs.
func (s *Session) StreamFilters(ist *schemas.InputStream) []*InputFilter {
	return s.streamFilters[ist]
}

func (s *Session) registerInputFilter(fg *FilterGraph, ist *schemas.InputStream) *InputFilter {
	ifil := &InputFilter{Graph: fg, Stream: ist}
	fg.Inputs = append(fg.Inputs, ifil)
	s.streamFilters[ist] = append(s.streamFilters[ist], ifil)
	return ifil
}
