package schemas

import "math"

// MediaType identifies the kind of frames a stream or filter pad carries
type MediaType string

const (
	MediaTypeVideo   MediaType = "video"
	MediaTypeAudio   MediaType = "audio"
	MediaTypeUnknown MediaType = "unknown"
)

// UnboundedTime is the sentinel recording time meaning "no limit" (microseconds)
const UnboundedTime int64 = math.MaxInt64

// InputFile groups the decoded streams discovered in one input
type InputFile struct {
	Index   int
	Streams []*InputStream
}

// InputStream describes one decoded stream as reported by the
// demux/decode collaborator. The graph configurator reads everything
// here and mutates only Discard and DecodingNeeded as a side effect
// of binding.
type InputStream struct {
	FileIndex   int
	StreamIndex int
	Type        MediaType

	// Video properties
	Width       int
	Height      int
	PixelFormat string

	// Audio properties
	SampleRate    int
	SampleFormat  string
	Channels      int
	ChannelLayout string

	TimeBase Rational

	// FrameRate, when set, forces constant-frame-rate handling of this
	// input (source timestamps are re-derived from it).
	FrameRate Rational

	// SampleAspectRatio is the stream-level override; the codec-level
	// default applies when it is unset.
	SampleAspectRatio      Rational
	CodecSampleAspectRatio Rational

	// Discard is true while no consumer has claimed the stream.
	// DecodingNeeded is set once a filter graph binds the stream.
	Discard        bool
	DecodingNeeded bool
}

// EncoderCaps is the candidate list of values an encoder accepts for
// each negotiable property. Empty slices mean "anything".
type EncoderCaps struct {
	PixelFormats   []string
	SampleFormats  []string
	SampleRates    []int
	ChannelLayouts []string
}

// OutputStream describes one encoded output stream as reported by the
// encode/mux collaborator. The configurator reads the constraints and
// writes back only FilterName, the derived chain-link display name.
type OutputStream struct {
	FileIndex   int
	StreamIndex int
	Type        MediaType

	// Fixed codec settings; zero values mean "not fixed" and the
	// encoder candidate list (if any) decides.
	Width         int
	Height        int
	PixelFormat   string
	SampleRate    int
	SampleFormat  string
	Channels      int
	ChannelLayout string

	// Encoder holds the target encoder's capability lists, nil when
	// no encoder is attached (stream copy).
	Encoder *EncoderCaps

	// FrameRate, when set, forces the output frame rate.
	FrameRate Rational

	// ScaleFlags is the scaling-algorithm bitmask passed to inserted
	// scalers. ResampleOpts are key/value options for inserted
	// resamplers.
	ScaleFlags   uint
	ResampleOpts map[string]string

	// FilterSpec is the implicit filter chain for simple graphs
	// ("null"/"anull" when empty).
	FilterSpec string

	// Requested output time window, microseconds. RecordingTime uses
	// UnboundedTime to mean "until the input ends".
	StartTime     int64
	RecordingTime int64

	// FilterName caches the display name of the graph link feeding
	// this stream, set during output configuration.
	FilterName string
}

// SampleAspect returns the effective sample aspect ratio: the
// stream-level value when set, else the codec-level default.
func (ist *InputStream) SampleAspect() Rational {
	if !ist.SampleAspectRatio.IsZero() {
		return ist.SampleAspectRatio
	}
	return ist.CodecSampleAspectRatio
}

// defaultLayouts maps channel counts to canonical layout names.
var defaultLayouts = map[int]string{
	1: "mono",
	2: "stereo",
	3: "2.1",
	4: "quad",
	5: "4.1",
	6: "5.1",
	7: "6.1",
	8: "7.1",
}

// DefaultChannelLayout returns the canonical layout name for a channel
// count, or "" when no default exists.
func DefaultChannelLayout(channels int) string {
	return defaultLayouts[channels]
}
