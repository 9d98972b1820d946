package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicogong/media-graph/pkg/filters"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// usedFilters collects the filter type names instantiated in a graph.
func usedFilters(fg *FilterGraph) map[string]int {
	used := make(map[string]int)
	for _, n := range fg.Graph.Nodes() {
		used[n.Filter.Name]++
	}
	return used
}

func TestConfigure_SimpleVideo(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.Width = 320
	ost.Height = 240

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	used := usedFilters(fg)
	assert.Equal(t, 1, used["buffer"])
	assert.Equal(t, 1, used["null"])
	assert.Equal(t, 1, used["scale"])
	assert.Equal(t, 1, used["buffersink"])
	assert.Zero(t, used["format"])
	assert.Zero(t, used["fps"])
	assert.Zero(t, used["trim"])

	source := fg.Graph.Node("graph 0 input from stream 0:0")
	require.NotNil(t, source)
	assert.Equal(t,
		"video_size=640x480:pix_fmt=yuv420p:time_base=1/25:pixel_aspect=0/1",
		source.Args)

	scaler := fg.Graph.Node("scaler for output stream 0:0")
	require.NotNil(t, scaler)
	assert.Equal(t, "320:240:flags=0x0", scaler.Args)

	assert.Equal(t, "null", ost.FilterName)
	assert.NotNil(t, fg.Outputs[0].Sink())
	assert.Same(t, fg.Outputs[0], s.OutputFilter(ost))
}

func TestConfigure_SimpleVideoPassthrough(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	fg := s.NewSimpleGraph(ist, videoOutput())
	require.NoError(t, s.Configure(fg))

	// nothing to adapt: source, synthesized null, sink
	assert.Len(t, fg.Graph.Nodes(), 3)
}

func TestConfigure_SimpleVideoEncoderConstraints(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.Encoder = &schemas.EncoderCaps{PixelFormats: []string{"yuv420p", "nv12"}}
	ost.FrameRate = schemas.Rational{Num: 30, Den: 1}

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	format := fg.Graph.Node("pixel format for output stream 0:0")
	require.NotNil(t, format)
	assert.Equal(t, "yuv420p|nv12", format.Args)

	fps := fg.Graph.Node("fps for output stream 0:0")
	require.NotNil(t, fps)
	assert.Equal(t, "fps=30/1", fps.Args)
}

func TestConfigure_SimpleUserChain(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.FilterSpec = "hflip,crop=100:100"

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	used := usedFilters(fg)
	assert.Equal(t, 1, used["hflip"])
	assert.Equal(t, 1, used["crop"])
	assert.Zero(t, used["null"])
	assert.Equal(t, "crop", ost.FilterName)
}

func TestConfigure_SimpleScaleOpts(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.ScaleFlags = 0x4
	ost.ResampleOpts = map[string]string{"filter_size": "16"}

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	assert.Equal(t, "flags=0x4", fg.Graph.ScaleOpts)
	assert.Equal(t, "filter_size=16", fg.Graph.ResampleOpts)
}

func TestConfigure_SimpleBadShape(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.FilterSpec = "split"

	fg := s.NewSimpleGraph(ist, ost)
	err := s.Configure(fg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSimpleGraphShape)
	assert.False(t, IsFatal(err))
}

func TestConfigure_CFRInput(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	ist.FrameRate = schemas.Rational{Num: 30, Den: 1}
	s.AddFile(ist)

	fg := s.NewSimpleGraph(ist, videoOutput())
	require.NoError(t, s.Configure(fg))

	source := fg.Graph.Node("graph 0 input from stream 0:0")
	require.NotNil(t, source)
	assert.Contains(t, source.Args, "time_base=1/30")

	// timestamps are renumbered right after the source
	setpts := fg.Graph.Node("force CFR for input from stream 0:0")
	require.NotNil(t, setpts)
	assert.Equal(t, "N", setpts.Args)
	require.NotNil(t, source.Output(0))
	assert.Same(t, setpts, source.Output(0).Dst)
}

func TestConfigure_AudioTrim(t *testing.T) {
	s := NewSession(Options{})
	ist := audioStream()
	s.AddFile(ist)

	ost := audioOutput()
	ost.RecordingTime = 5_000_000
	ost.StartTime = 2_000_000

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	atrim := fg.Graph.Node("atrim for output stream 0:0")
	require.NotNil(t, atrim)
	assert.Equal(t, "duration=5:start=2", atrim.Args)
}

func TestConfigure_TrimStartOnly(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	ost := videoOutput()
	ost.StartTime = 1_500_000

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	trim := fg.Graph.Node("trim for output stream 0:0")
	require.NotNil(t, trim)
	assert.Equal(t, "start=1.5", trim.Args)
}

func TestConfigure_NoTrimWhenUnbounded(t *testing.T) {
	s := NewSession(Options{})
	ist := audioStream()
	s.AddFile(ist)

	fg := s.NewSimpleGraph(ist, audioOutput())
	require.NoError(t, s.Configure(fg))

	assert.Zero(t, usedFilters(fg)["atrim"])
}

func TestConfigure_TrimFilterMissing(t *testing.T) {
	reg := filters.Default()
	reg.Deregister("atrim")
	s := NewSessionWithRegistry(Options{}, reg)

	ist := audioStream()
	s.AddFile(ist)

	ost := audioOutput()
	ost.RecordingTime = 5_000_000

	fg := s.NewSimpleGraph(ist, ost)
	err := s.Configure(fg)
	require.Error(t, err)
	assert.ErrorIs(t, err, filters.ErrFilterNotFound)
	assert.False(t, IsFatal(err))
}

func TestConfigure_AudioFormatConstraints(t *testing.T) {
	s := NewSession(Options{})
	ist := audioStream()
	s.AddFile(ist)

	ost := audioOutput()
	ost.SampleFormat = "fltp"
	ost.Channels = 6
	ost.Encoder = &schemas.EncoderCaps{SampleRates: []int{44100, 48000}}

	fg := s.NewSimpleGraph(ist, ost)
	require.NoError(t, s.Configure(fg))

	aformat := fg.Graph.Node("audio format for output stream 0:0")
	require.NotNil(t, aformat)
	assert.Equal(t,
		"sample_fmts=fltp:sample_rates=44100|48000:channel_layouts=5.1",
		aformat.Args)
}

func TestConfigure_DeprecatedAudioOptions(t *testing.T) {
	s := NewSession(Options{
		AudioSyncMethod: 2,
		AudioVolume:     512,
	})
	ist := audioStream()
	s.AddFile(ist)

	fg := s.NewSimpleGraph(ist, audioOutput())
	require.NoError(t, s.Configure(fg))

	async := fg.Graph.Node("graph 0 audio sync for input stream 0:0")
	require.NotNil(t, async)
	assert.Equal(t, "compensate=1:max_comp=2:min_delta=0.100000", async.Args)

	volume := fg.Graph.Node("graph 0 volume for input stream 0:0")
	require.NotNil(t, volume)
	assert.Equal(t, "volume=2.000000", volume.Args)

	// the gain applies before drift compensation, right after the source
	source := fg.Graph.Node("graph 0 input from stream 0:0")
	require.NotNil(t, source.Output(0))
	assert.Same(t, volume, source.Output(0).Dst)
	assert.Same(t, async, volume.Output(0).Dst)
}

func TestConfigure_ComplexDeferredOutputs(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	fg := s.NewComplexGraph("split[a][b]")
	require.NoError(t, s.Configure(fg))

	// first pass stops after the inputs; outputs await mapping
	require.Len(t, fg.Outputs, 2)
	assert.Equal(t, 2, fg.PendingOutputs())
	assert.Equal(t, "a", fg.Outputs[0].Label())
	assert.Equal(t, "b", fg.Outputs[1].Label())
	assert.Equal(t, schemas.MediaTypeVideo, fg.Outputs[0].MediaType())
	assert.Nil(t, fg.Outputs[0].Stream())
	assert.True(t, fg.UsesStream(ist))

	ost1 := videoOutput()
	ost2 := videoOutput()
	require.NoError(t, fg.Outputs[0].Bind(ost1))
	require.NoError(t, fg.Outputs[1].Bind(ost2))
	assert.Zero(t, fg.PendingOutputs())
	assert.Same(t, fg.Outputs[0], s.OutputFilter(ost1))

	// second pass completes the structure
	require.NoError(t, s.Configure(fg))
	assert.NotNil(t, fg.Outputs[0].Sink())
	assert.NotNil(t, fg.Outputs[1].Sink())
	assert.Equal(t, "split:output0", ost1.FilterName)
	assert.Equal(t, "split:output1", ost2.FilterName)
}

func TestConfigure_BindTwice(t *testing.T) {
	s := NewSession(Options{})
	s.AddFile(videoStream())

	fg := s.NewComplexGraph("null")
	require.NoError(t, s.Configure(fg))
	require.Len(t, fg.Outputs, 1)

	require.NoError(t, fg.Outputs[0].Bind(videoOutput()))
	err := fg.Outputs[0].Bind(videoOutput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyBound)
}

func TestConfigure_ReconfigureIsStable(t *testing.T) {
	s := NewSession(Options{})
	ist := videoStream()
	s.AddFile(ist)

	fg := s.NewComplexGraph("hflip")
	require.NoError(t, s.Configure(fg))
	require.NoError(t, fg.Outputs[0].Bind(videoOutput()))
	require.NoError(t, s.Configure(fg))

	firstNodes := len(fg.Graph.Nodes())

	// a later pass rebuilds the same structure from scratch
	require.NoError(t, s.Configure(fg))
	assert.Len(t, fg.Graph.Nodes(), firstNodes)
	require.Len(t, fg.Inputs, 1)
	assert.Same(t, ist, fg.Inputs[0].Stream)
	assert.Len(t, s.StreamFilters(ist), 1)
}

func TestConfigure_MultiInputComplex(t *testing.T) {
	s := NewSession(Options{})
	v0 := videoStream()
	v1 := videoStream()
	s.AddFile(v0, v1)

	fg := s.NewComplexGraph("overlay")
	require.NoError(t, s.Configure(fg))

	require.Len(t, fg.Inputs, 2)
	assert.Same(t, v0, fg.Inputs[0].Stream)
	assert.Same(t, v1, fg.Inputs[1].Stream)
	assert.Equal(t, "overlay:main", fg.Inputs[0].Name)
	assert.Equal(t, "overlay:overlay", fg.Inputs[1].Name)

	require.NoError(t, fg.Outputs[0].Bind(videoOutput()))
	require.NoError(t, s.Configure(fg))
	assert.NotNil(t, fg.Outputs[0].Sink())
}
