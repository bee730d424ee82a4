package inspect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind BodyKind
		want string
	}{
		{BodyNone, "none"},
		{BodyJSON, "json"},
		{BodyForm, "form"},
		{BodyMultipart, "multipart"},
		{BodyKind(99), "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestBodyMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body Body
		want string
	}{
		{"None", Body{}, `null`},
		{"JSONNull", Body{Kind: BodyJSON}, `null`},
		{"JSON", Body{Kind: BodyJSON, JSON: map[string]any{"n": json.Number("1.50")}}, `{"n":1.50}`},
		{"Form", Body{Kind: BodyForm, Form: map[string]string{"a": "1"}}, `{"a":"1"}`},
		{
			"Multipart",
			Body{Kind: BodyMultipart, Parts: map[string]Part{"f": {Name: "f", Filename: "a.txt", Content: "hi", Size: 2}}},
			`{"f":{"name":"f","filename":"a.txt","content":"hi","size":2}}`,
		},
		{"MarkupUnescaped", Body{Kind: BodyForm, Form: map[string]string{"html": "<b>&</b>"}}, `{"html":"<b>&</b>"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bs, err := tt.body.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(bs))
		})
	}

	t.Run("InvalidKind", func(t *testing.T) {
		t.Parallel()
		_, err := json.Marshal(Body{Kind: BodyKind(42)})
		assert.Error(t, err)
	})
}
