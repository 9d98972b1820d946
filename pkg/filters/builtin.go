package filters

import (
	"github.com/chicogong/media-graph/pkg/schemas"
)

func videoPad(name string) Pad { return Pad{Name: name, Type: schemas.MediaTypeVideo} }
func audioPad(name string) Pad { return Pad{Name: name, Type: schemas.MediaTypeAudio} }

// builtins is the filter set available by default. Sources and sinks
// come first, then the adaptation filters the configurator inserts,
// then general-purpose filters usable in graph descriptions.
var builtins = []*Descriptor{
	{
		Name:        "buffer",
		Description: "Inject decoded video frames into the graph",
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "abuffer",
		Description: "Inject decoded audio frames into the graph",
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "buffersink",
		Description: "Hand filtered video frames to the output stream",
		Inputs:      []Pad{videoPad("default")},
	},
	{
		Name:        "abuffersink",
		Description: "Hand filtered audio frames to the output stream",
		Inputs:      []Pad{audioPad("default")},
	},
	{
		Name:        "scale",
		Description: "Resize video and convert pixel format",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "format",
		Description: "Restrict acceptable pixel formats",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "aformat",
		Description: "Restrict acceptable sample formats, rates and layouts",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "fps",
		Description: "Convert video to a constant frame rate",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "setpts",
		Description: "Rewrite video presentation timestamps",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "trim",
		Description: "Pass a time window of video frames",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "atrim",
		Description: "Pass a time window of audio samples",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "asyncts",
		Description: "Compensate audio timestamp drift",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "volume",
		Description: "Apply a gain to audio samples",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "null",
		Description: "Pass video frames through unchanged",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "anull",
		Description: "Pass audio samples through unchanged",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("default")},
	},
	{
		Name:        "crop",
		Description: "Crop video to a region",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "hflip",
		Description: "Mirror video horizontally",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "split",
		Description: "Duplicate a video stream",
		Inputs:      []Pad{videoPad("default")},
		Outputs:     []Pad{videoPad("output0"), videoPad("output1")},
	},
	{
		Name:        "asplit",
		Description: "Duplicate an audio stream",
		Inputs:      []Pad{audioPad("default")},
		Outputs:     []Pad{audioPad("output0"), audioPad("output1")},
	},
	{
		Name:        "overlay",
		Description: "Overlay one video on another",
		Inputs:      []Pad{videoPad("main"), videoPad("overlay")},
		Outputs:     []Pad{videoPad("default")},
	},
	{
		Name:        "amix",
		Description: "Mix two audio streams",
		Inputs:      []Pad{audioPad("input0"), audioPad("input1")},
		Outputs:     []Pad{audioPad("default")},
	},
}
