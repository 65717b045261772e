package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// JSONHandler reads and writes JSON configuration assets. It also backs the
// link-table loader through the Decoder capability.
type JSONHandler struct{}

// Read parses the JSON document at path into generic Go values.
func (h *JSONHandler) Read(path string) (any, error) {
	var out any
	if err := h.ReadInto(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInto decodes the JSON document at path into out.
func (h *JSONHandler) ReadInto(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON asset %q: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse JSON asset %q: %w", path, err)
	}
	return nil
}

// Write marshals data as indented JSON at path, creating parent directories
// as needed.
func (h *JSONHandler) Write(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON asset %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for JSON asset %q: %w", path, err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON asset %q: %w", path, err)
	}
	return nil
}

// TextPowerSpectrumHandler reads and writes power spectra as one float per
// line, the plain-text exchange format the pipeline's scientific stages use.
// It only moves bytes; no spectral math happens here.
type TextPowerSpectrumHandler struct{}

// Read parses the spectrum at path into a []float64.
func (h *TextPowerSpectrumHandler) Read(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read power spectrum %q: %w", path, err)
	}

	var values []float64
	for i, field := range strings.Fields(string(data)) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("power spectrum %q: bad value at position %d: %w", path, i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// Write stores a []float64 spectrum at path, one value per line.
func (h *TextPowerSpectrumHandler) Write(path string, data any) error {
	values, ok := data.([]float64)
	if !ok {
		return fmt.Errorf("power spectrum handler expects []float64, got %T", data)
	}

	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for power spectrum %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write power spectrum %q: %w", path, err)
	}
	return nil
}
