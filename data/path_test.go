package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{".", "."},
		{"..", ".."},
		{"...", "..."},
		{"my", ".my."},
		{"a", ".a."},
		{"my.path", ".my.path."},
		{".my.path", ".my.path."},
		{"my.path.", ".my.path."},
		{".my.path.", ".my.path."},
		{".x", ".x."},
		{"x.", ".x."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.input))
		})
	}
}

func TestNormalizePath_Idempotent(t *testing.T) {
	inputs := []string{
		"", ".", "..", "...", "my", "my.path", ".my.path", "my.path.", ".my.path.",
		"a", ".a", "a.", "with..runs", ".已.编.", "已",
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		assert.Equal(t, once, NormalizePath(once), "input %q", in)
	}
}

func TestNewDataPath(t *testing.T) {
	assert.Equal(t, ".my.path.", NewDataPath("my.path").String())
	assert.Equal(t, ".", NewDataPath("").String())
	assert.True(t, NewDataPath("my.path").Equal(NewDataPath(".my.path.")))
	assert.False(t, NewDataPath("my.path").Equal(NewDataPath("other")))
}

func TestDataPath_JSONRoundTrip(t *testing.T) {
	p := NewDataPath("my.path")

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `".my.path."`, string(b))

	var back DataPath
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, p.Equal(back))
}

func TestDataPath_UnmarshalNormalizes(t *testing.T) {
	var p DataPath
	require.NoError(t, json.Unmarshal([]byte(`"my.path"`), &p))
	assert.Equal(t, ".my.path.", p.String())
}

func TestDataPath_UnmarshalInvalid(t *testing.T) {
	var p DataPath
	assert.Error(t, json.Unmarshal([]byte(`42`), &p))
}
