package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicogong/media-graph/pkg/schemas"
	"github.com/chicogong/media-graph/pkg/script"
)

const sampleSpec = `
options:
  audio_volume: 256
inputs:
  - streams:
      - type: video
        width: 1920
        height: 1080
        pixel_format: yuv420p
        time_base:
          num: 1
          den: 25
      - type: audio
        sample_rate: 48000
        sample_format: s16
        channels: 2
        channel_layout: stereo
outputs:
  - type: video
    width: 1280
    height: 720
    duration: 5s
    start: 1s
  - type: audio
    filter: volume=0.5
graphs:
  - description: "[0:v]hflip[flipped]"
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(writeSpec(t, sampleSpec))
	require.NoError(t, err)

	require.Len(t, spec.Inputs, 1)
	require.Len(t, spec.Inputs[0].Streams, 2)
	assert.Equal(t, "video", spec.Inputs[0].Streams[0].Type)
	assert.Equal(t, schemas.Rational{Num: 1, Den: 25}, spec.Inputs[0].Streams[0].TimeBase)

	require.Len(t, spec.Outputs, 2)
	require.NotNil(t, spec.Outputs[0].Duration)
	assert.Equal(t, "volume=0.5", spec.Outputs[1].Filter)

	require.Len(t, spec.Graphs, 1)
	assert.Equal(t, "[0:v]hflip[flipped]", spec.Graphs[0].Description)
}

func TestLoadSpec_Missing(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSpecBuild(t *testing.T) {
	spec, err := LoadSpec(writeSpec(t, sampleSpec))
	require.NoError(t, err)

	s, outputs, err := spec.Build(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, s.Files, 1)
	require.Len(t, s.Streams, 2)
	assert.Equal(t, schemas.MediaTypeVideo, s.Streams[0].Type)
	assert.True(t, s.Streams[0].Discard)

	require.Len(t, outputs, 2)
	assert.Equal(t, int64(5_000_000), outputs[0].RecordingTime)
	assert.Equal(t, int64(1_000_000), outputs[0].StartTime)
	assert.Equal(t, schemas.UnboundedTime, outputs[1].RecordingTime)
	assert.Equal(t, "volume=0.5", outputs[1].FilterSpec)

	require.Len(t, s.Graphs, 1)
	assert.Equal(t, "[0:v]hflip[flipped]", s.Graphs[0].Description)
}

func TestSpecBuild_UnknownMediaType(t *testing.T) {
	spec := &Spec{
		Inputs: []InputFileSpec{{Streams: []StreamSpec{{Type: "subtitle"}}}},
	}
	_, _, err := spec.Build(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown media type")
}

func TestSpecBuild_EmptyGraphSpec(t *testing.T) {
	spec := &Spec{Graphs: []GraphSpec{{}}}
	_, _, err := spec.Build(context.Background(), nil)
	require.Error(t, err)
}

func TestSpecBuild_ScriptGraph(t *testing.T) {
	scriptFile := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(scriptFile, []byte("[0:a]volume=0.5[quiet]"), 0644))

	spec := &Spec{
		Graphs: []GraphSpec{{Script: "file://" + scriptFile}},
	}

	s, _, err := spec.Build(context.Background(), script.DefaultResolver())
	require.NoError(t, err)
	require.Len(t, s.Graphs, 1)
	assert.Equal(t, "[0:a]volume=0.5[quiet]", s.Graphs[0].Description)
}

func TestSpecBuild_ScriptWithoutResolver(t *testing.T) {
	spec := &Spec{Graphs: []GraphSpec{{Script: "file:///tmp/graph.txt"}}}
	_, _, err := spec.Build(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resolver")
}
