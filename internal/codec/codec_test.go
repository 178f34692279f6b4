package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want Format
	}{
		{name: "json extension", path: "api.json", want: FormatJSON},
		{name: "yaml extension", path: "api.yaml", want: FormatYAML},
		{name: "yml extension", path: "api.yml", want: FormatYAML},
		{name: "extension wins over content", path: "api.yaml", data: `{"a": 1}`, want: FormatYAML},
		{name: "json sniff", path: "https://example.com/spec", data: `  {"openapi": "3.0.3"}`, want: FormatJSON},
		{name: "yaml sniff", path: "spec", data: "openapi: 3.0.3\n", want: FormatYAML},
		{name: "empty defaults to yaml", path: "spec", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectFormat(tt.path, []byte(tt.data)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": "", "yaml": FormatYAML, "yml": FormatYAML, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format")
}

func TestDecodeError(t *testing.T) {
	_, err := Decode([]byte("a: [unclosed"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding document")
}

func TestYAMLRoundTripPreservesKeyOrder(t *testing.T) {
	src := "zebra: 1\napple: 2\nnested:\n  second: b\n  first: a\n"

	root, err := Decode([]byte(src))
	require.NoError(t, err)

	out, err := Encode(root, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, src, string(out))
}

func TestDecodeJSONInput(t *testing.T) {
	root, err := Decode([]byte(`{"openapi": "3.0.3", "info": {"title": "t"}}`))
	require.NoError(t, err)

	out, err := Encode(root, FormatYAML)
	require.NoError(t, err)
	require.Contains(t, string(out), "openapi:")
	require.Contains(t, string(out), "title: t")
}

func TestEncodeJSONPreservesKeyOrder(t *testing.T) {
	root, err := Decode([]byte("zebra: 1\napple: 2\n"))
	require.NoError(t, err)

	out, err := Encode(root, FormatJSON)
	require.NoError(t, err)
	require.Less(t, strings.Index(string(out), `"zebra"`), strings.Index(string(out), `"apple"`))
}

func TestEncodeJSONScalars(t *testing.T) {
	src := `text: hello "quoted"
count: 42
hex: 0x1A
octal: 0o17
grouped: 1_000
negative: -7
ratio: 0.5
enabled: true
shouting: TRUE
nothing: null
list: []
empty: {}
`
	root, err := Decode([]byte(src))
	require.NoError(t, err)

	out, err := Encode(root, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, `hello "quoted"`, decoded["text"])
	require.Equal(t, float64(42), decoded["count"])
	require.Equal(t, float64(26), decoded["hex"])
	require.Equal(t, float64(15), decoded["octal"])
	require.Equal(t, float64(1000), decoded["grouped"])
	require.Equal(t, float64(-7), decoded["negative"])
	require.Equal(t, 0.5, decoded["ratio"])
	require.Equal(t, true, decoded["enabled"])
	require.Equal(t, true, decoded["shouting"])
	require.Nil(t, decoded["nothing"])
	require.Equal(t, []any{}, decoded["list"])
	require.Equal(t, map[string]any{}, decoded["empty"])
}
