package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("config_json", &JSONHandler{})

	h, err := r.Handler("config_json")
	require.NoError(t, err)
	assert.IsType(t, &JSONHandler{}, h)
}

func TestRegistry_UnknownHandler(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	_, err := r.Handler("does_not_exist")
	require.Error(t, err)

	var unknown *UnknownHandlerError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "does_not_exist", unknown.Name)
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("config_json", &JSONHandler{})

	assert.Panics(t, func() {
		r.Register("config_json", &JSONHandler{})
	})
}

func TestBuiltin_RegistersCompiledHandlers(t *testing.T) {
	t.Parallel()

	r := Builtin()
	for _, name := range []string{"config_json", "text_ps"} {
		_, err := r.Handler(name)
		require.NoError(t, err, "builtin handler %q must be registered", name)
	}
}

func TestJSONHandler_RoundTrip(t *testing.T) {
	t.Parallel()

	h := &JSONHandler{}
	path := filepath.Join(t.TempDir(), "nested", "doc.json")

	require.NoError(t, h.Write(path, map[string]string{"train_sim0007": "token-A"}))

	var table map[string]string
	require.NoError(t, h.ReadInto(path, &table))
	assert.Equal(t, "token-A", table["train_sim0007"])
}

func TestJSONHandler_ReadErrors(t *testing.T) {
	t.Parallel()

	h := &JSONHandler{}

	_, err := h.Read(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestTextPowerSpectrumHandler_RoundTrip(t *testing.T) {
	t.Parallel()

	h := &TextPowerSpectrumHandler{}
	path := filepath.Join(t.TempDir(), "ps", "cmb_ps.txt")
	spectrum := []float64{1048.9, 3.0027, -0.0762}

	require.NoError(t, h.Write(path, spectrum))

	got, err := h.Read(path)
	require.NoError(t, err)
	assert.Equal(t, spectrum, got)
}

func TestTextPowerSpectrumHandler_RejectsWrongType(t *testing.T) {
	t.Parallel()

	h := &TextPowerSpectrumHandler{}
	err := h.Write(filepath.Join(t.TempDir(), "ps.txt"), "not a spectrum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects []float64")
}

func TestTextPowerSpectrumHandler_BadValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ps.txt")
	require.NoError(t, os.WriteFile(path, []byte("1.0\nnope\n"), 0o644))

	h := &TextPowerSpectrumHandler{}
	_, err := h.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad value at position 1")
}
