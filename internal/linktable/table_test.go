package linktable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmbkit/simfetch/internal/assets"
	"github.com/cmbkit/simfetch/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		split  string
		simNum int
		want   string
	}{
		{"train", 7, "train_sim0007"},
		{"test", 0, "test_sim0000"},
		{"valid", 1234, "valid_sim1234"},
		{"train", 99999, "train_sim99999"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Key(tc.split, tc.simNum))
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	table := Table{
		"train_sim0007": {URL: "token-A"},
	}

	link, err := table.Lookup("train", 7)
	require.NoError(t, err)
	assert.Equal(t, "token-A", link.URL)

	_, err = table.Lookup("train", 8)
	require.Error(t, err)

	var unknown *UnknownSimulationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "train_sim0008", unknown.Key)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	doc := `{
		"train_sim0007": "https://share.example/token-A",
		"test_sim0001": {"url": "https://share.example/token-B", "size": 42, "md5": "feedface"}
	}`
	path := filepath.Join(t.TempDir(), "shared_links.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := Load(&assets.JSONHandler{}, path)
	require.NoError(t, err)

	link, err := table.Lookup("train", 7)
	require.NoError(t, err)
	assert.Equal(t, fetch.Descriptor{URL: "https://share.example/token-A"}, link)

	link, err = table.Lookup("test", 1)
	require.NoError(t, err)
	assert.Equal(t, fetch.Descriptor{URL: "https://share.example/token-B", Size: 42, MD5: "feedface"}, link)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(&assets.JSONHandler{}, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load link table")
}
