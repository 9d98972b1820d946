package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchStreamSpecifier(t *testing.T) {
	video := &InputStream{Type: MediaTypeVideo, StreamIndex: 0}
	audio := &InputStream{Type: MediaTypeAudio, StreamIndex: 1}

	tests := []struct {
		name   string
		stream *InputStream
		spec   string
		want   bool
	}{
		{"empty matches anything", video, "", true},
		{"index match", video, "0", true},
		{"index mismatch", video, "1", false},
		{"type match video", video, "v", true},
		{"type mismatch", video, "a", false},
		{"type match audio", audio, "a", true},
		{"type and index match", audio, "a:1", true},
		{"type and index mismatch", audio, "a:0", false},
		{"type matches wrong index", video, "v:3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchStreamSpecifier(tt.stream, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchStreamSpecifier_Invalid(t *testing.T) {
	video := &InputStream{Type: MediaTypeVideo}

	for _, spec := range []string{"x", "v:abc", "v:-1", "subtitle"} {
		t.Run(spec, func(t *testing.T) {
			_, err := MatchStreamSpecifier(video, spec)
			assert.Error(t, err)
		})
	}
}

func TestDefaultChannelLayout(t *testing.T) {
	assert.Equal(t, "mono", DefaultChannelLayout(1))
	assert.Equal(t, "stereo", DefaultChannelLayout(2))
	assert.Equal(t, "5.1", DefaultChannelLayout(6))
	assert.Equal(t, "", DefaultChannelLayout(0))
	assert.Equal(t, "", DefaultChannelLayout(99))
}

func TestSampleAspect(t *testing.T) {
	ist := &InputStream{
		CodecSampleAspectRatio: Rational{Num: 4, Den: 3},
	}
	assert.Equal(t, Rational{Num: 4, Den: 3}, ist.SampleAspect())

	// stream-level override wins
	ist.SampleAspectRatio = Rational{Num: 16, Den: 9}
	assert.Equal(t, Rational{Num: 16, Den: 9}, ist.SampleAspect())
}

func TestRational(t *testing.T) {
	r := Rational{Num: 25, Den: 1}
	assert.False(t, r.IsZero())
	assert.Equal(t, Rational{Num: 1, Den: 25}, r.Inverse())
	assert.Equal(t, "25/1", r.String())
	assert.True(t, Rational{}.IsZero())
}
