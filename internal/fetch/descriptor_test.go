package fetch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		want Descriptor
	}{
		{
			name: "bare url string",
			doc:  `"https://share.example/abc123"`,
			want: Descriptor{URL: "https://share.example/abc123"},
		},
		{
			name: "object with metadata",
			doc:  `{"url": "https://share.example/abc123", "size": 42, "md5": "feedface"}`,
			want: Descriptor{URL: "https://share.example/abc123", Size: 42, MD5: "feedface"},
		},
		{
			name: "object without metadata",
			doc:  `{"url": "https://share.example/abc123"}`,
			want: Descriptor{URL: "https://share.example/abc123"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var d Descriptor
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &d))
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestDescriptor_UnmarshalJSON_Invalid(t *testing.T) {
	t.Parallel()

	var d Descriptor
	err := json.Unmarshal([]byte(`42`), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "descriptor must be a string or an object")
}
