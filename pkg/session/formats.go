package session

import (
	"strconv"
	"strings"

	"github.com/chicogong/media-graph/pkg/schemas"
)

// chooseFormat resolves one negotiable property into the constraint
// string a format filter consumes: the fixed codec value when set,
// else every encoder candidate joined by '|', else "" for no
// constraint. One generic body serves all four properties.
func chooseFormat[T comparable](fixed, none T, candidates []T, name func(T) string) string {
	if fixed != none {
		return name(fixed)
	}
	if len(candidates) > 0 {
		parts := make([]string, len(candidates))
		for i, c := range candidates {
			parts[i] = name(c)
		}
		return strings.Join(parts, "|")
	}
	return ""
}

func identity(s string) string { return s }

func choosePixelFormats(ost *schemas.OutputStream) string {
	var candidates []string
	if ost.Encoder != nil {
		candidates = ost.Encoder.PixelFormats
	}
	return chooseFormat(ost.PixelFormat, "", candidates, identity)
}

func chooseSampleFormats(ost *schemas.OutputStream) string {
	var candidates []string
	if ost.Encoder != nil {
		candidates = ost.Encoder.SampleFormats
	}
	return chooseFormat(ost.SampleFormat, "", candidates, identity)
}

func chooseSampleRates(ost *schemas.OutputStream) string {
	var candidates []int
	if ost.Encoder != nil {
		candidates = ost.Encoder.SampleRates
	}
	return chooseFormat(ost.SampleRate, 0, candidates, strconv.Itoa)
}

// chooseChannelLayouts takes the effective fixed layout explicitly so
// a layout derived from a channel count can participate without
// writing it back to the stream.
func chooseChannelLayouts(ost *schemas.OutputStream, fixed string) string {
	var candidates []string
	if ost.Encoder != nil {
		candidates = ost.Encoder.ChannelLayouts
	}
	return chooseFormat(fixed, "", candidates, identity)
}
