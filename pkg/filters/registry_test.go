package filters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicogong/media-graph/pkg/schemas"
)

func TestRegistry_Get(t *testing.T) {
	r := Default()

	d, err := r.Get("scale")
	require.NoError(t, err)
	assert.Equal(t, "scale", d.Name)
	assert.Len(t, d.Inputs, 1)
	assert.Len(t, d.Outputs, 1)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := Default()

	_, err := r.Get("does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFilterNotFound))
}

func TestRegistry_Deregister(t *testing.T) {
	r := Default()

	_, err := r.Get("trim")
	require.NoError(t, err)

	r.Deregister("trim")
	_, err = r.Get("trim")
	assert.True(t, errors.Is(err, ErrFilterNotFound))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register(&Descriptor{
		Name:    "custom",
		Inputs:  []Pad{{Name: "default", Type: schemas.MediaTypeVideo}},
		Outputs: []Pad{{Name: "default", Type: schemas.MediaTypeVideo}},
	})

	d, err := r.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", d.Name)
}

func TestRegistry_List(t *testing.T) {
	r := Default()

	list := r.List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}

func TestDescriptor_SourceSink(t *testing.T) {
	r := Default()

	buffer, err := r.Get("buffer")
	require.NoError(t, err)
	assert.True(t, buffer.IsSource())
	assert.False(t, buffer.IsSink())
	assert.Equal(t, schemas.MediaTypeVideo, buffer.OutputType(0))

	sink, err := r.Get("abuffersink")
	require.NoError(t, err)
	assert.True(t, sink.IsSink())
	assert.Equal(t, schemas.MediaTypeAudio, sink.InputType(0))
	assert.Equal(t, schemas.MediaTypeUnknown, sink.InputType(5))
}
