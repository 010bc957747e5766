package export

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	got, err := MarshalCanonical(Object{
		"b": 1,
		"a": Object{"z": true, "y": false},
		"c": Array{"x", int64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"y":false,"z":true},"b":1,"c":["x",2]}`, string(got))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+FF61 sorts before U+1F600 in UTF-8 but after it in UTF-16,
	// where U+1F600 starts with the surrogate 0xD83D.
	got, err := MarshalCanonical(map[string]any{"\uFF61": 2, "\U0001F600": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":1,\"\uFF61\":2}", string(got))
}

func TestMarshalCanonical_Numbers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-1000, "-1000"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1e-7, "1e-7"},
		{1.5e21, "1.5e+21"},
		{123456789012, "123456789012"},
	}
	for _, tt := range tests {
		got, err := MarshalCanonical(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got), "input %v", tt.in)
	}
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	_, err := MarshalCanonical(math.NaN())
	assert.Error(t, err)

	_, err = MarshalCanonical(math.Inf(1))
	assert.Error(t, err)

	_, err = MarshalCanonical(Object{"charge": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"charge"`)

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestMarshalCanonical_Strings(t *testing.T) {
	got, err := MarshalCanonical("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(got))

	// Decomposed e + combining acute becomes the composed form.
	got, err = MarshalCanonical("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"caf\u00e9\"", string(got))

	got, err = MarshalCanonical("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(got))

	// A literal backslash followed by u2028 stays escaped.
	got, err = MarshalCanonical(`\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(got))

	got, err = MarshalCanonical("tab\there")
	require.NoError(t, err)
	assert.Equal(t, `"tab\there"`, string(got))
}
