package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"total":  3,
		"suite":  "CHISEL",
		"failed": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"failed":1,"suite":"CHISEL","total":3}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscape(t *testing.T) {
	data, err := MarshalCanonical("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(data))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" precomposed (U+00E9) and decomposed (e + U+0301) serialize
	// identically.
	composed, err := MarshalCanonical("café")
	require.NoError(t, err)
	decomposed, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonical_FloatsForbidden(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"ratio": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestMarshalCanonical_Nested(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"results": []any{
			map[string]any{"name": "a.sc", "outcome": "PASS"},
		},
		"ok": true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"results":[{"name":"a.sc","outcome":"PASS"}]}`, string(data))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	input := map[string]any{"b": 2, "a": 1, "c": 3}
	first, err := MarshalCanonical(input)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompareUTF16_SupplementaryPlane(t *testing.T) {
	// U+FF61 (halfwidth ideographic full stop) is a single code unit
	// 0xFF61; U+10000 encodes as surrogates starting 0xD800. UTF-16
	// order puts the surrogate pair first, UTF-8 byte order does not.
	assert.Equal(t, 1, compareUTF16("｡", "\U00010000"))
	assert.Equal(t, -1, compareUTF16("\U00010000", "｡"))
	assert.Equal(t, 0, compareUTF16("abc", "abc"))
	assert.Equal(t, -1, compareUTF16("ab", "abc"))
}
