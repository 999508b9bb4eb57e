package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdvault/internal/domain"
)

func TestEncodeDecodeDocument(t *testing.T) {
	trees := []*domain.Root{
		doc(),
		doc(heading(1, text("A"))),
		doc(heading(3, bold("b"), italic("i")), para(text("plain"), text(""))),
		doc(para()),
	}

	for _, tree := range trees {
		data, err := EncodeDocument(tree)
		require.NoError(t, err)

		got, err := DecodeDocument(data)
		require.NoError(t, err)
		assert.Equal(t, tree, got, "payload %s", data)
	}
}

func TestEncodeDocument_Shape(t *testing.T) {
	data, err := EncodeDocument(doc(heading(2, bold("Hi"))))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	root := raw["root"].(map[string]any)
	assert.Equal(t, "root", root["type"])
	assert.Equal(t, "ltr", root["direction"])
	assert.EqualValues(t, domain.SchemaVersion, root["version"])

	h := root["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "heading", h["type"])
	assert.Equal(t, "h2", h["tag"])

	txt := h["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "text", txt["type"])
	assert.Equal(t, "Hi", txt["text"])
	assert.EqualValues(t, 1, txt["format"])
	assert.Equal(t, "normal", txt["mode"])
}

func TestEncodeDocument_NilRoot(t *testing.T) {
	data, err := EncodeDocument(nil)
	require.NoError(t, err)

	got, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Empty(t, got.Children)
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"root":`},
		{name: "missing root", payload: `{}`},
		{name: "wrong root type", payload: `{"root":{"type":"paragraph","version":1}}`},
		{name: "unknown block", payload: `{"root":{"type":"root","version":1,"children":[{"type":"list","version":1}]}}`},
		{name: "newer version", payload: `{"root":{"type":"root","version":2}}`},
		{name: "bad heading tag", payload: `{"root":{"type":"root","version":1,"children":[{"type":"heading","tag":"h9","version":1}]}}`},
		{name: "missing heading tag", payload: `{"root":{"type":"root","version":1,"children":[{"type":"heading","version":1}]}}`},
		{name: "non text leaf", payload: `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"children":[{"type":"link","version":1}]}]}}`},
		{name: "null block", payload: `{"root":{"type":"root","version":1,"children":[null]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDocument_UnsupportedNodeIsWrapped(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"root":{"type":"root","version":1,"children":[{"type":"quote","version":1}]}}`))
	assert.ErrorIs(t, err, ErrUnsupportedNode)
}

func TestDecodeDocument_FormatMask(t *testing.T) {
	payload := `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"children":[
		{"type":"text","version":1,"text":"both","format":3},
		{"type":"text","version":1,"text":"it","format":2},
		{"type":"text","version":1,"text":"under","format":8}
	]}]}}`

	got, err := DecodeDocument([]byte(payload))
	require.NoError(t, err)

	want := doc(para(bold("both"), italic("it"), text("under")))
	assert.Equal(t, want, got)
}

func TestDecodeThenMarkdown(t *testing.T) {
	payload := `{"root":{"type":"root","direction":"ltr","format":"","indent":0,"version":1,"children":[
		{"type":"heading","tag":"h1","format":"","indent":0,"direction":"ltr","version":1,"children":[
			{"type":"text","text":"Title","format":0,"detail":0,"mode":"normal","style":"","version":1}]},
		{"type":"paragraph","format":"","indent":0,"direction":"ltr","version":1,"children":[
			{"type":"text","text":"hello","format":0,"version":1},
			{"type":"text","text":"world","format":1,"version":1}]}
	]}}`

	root, err := DecodeDocument([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nhello **world**\n", TreeToMarkdown(root))
}
