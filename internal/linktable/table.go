// Package linktable maps logical simulation keys to shared-link descriptors.
//
// A link table is a JSON document whose top-level keys follow the
// `{split}_sim{NNNN}` convention and whose values are shared-link
// descriptors (a bare URL string or an object with integrity metadata). The
// table is read-only; callers load it once and reuse it across lookups.
package linktable

import (
	"fmt"

	"github.com/cmbkit/simfetch/internal/assets"
	"github.com/cmbkit/simfetch/internal/fetch"
)

// UnknownSimulationError reports a lookup key with no entry in the table.
// It is surfaced to the caller and never retried.
type UnknownSimulationError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownSimulationError) Error() string {
	return fmt.Sprintf("no shared link registered for simulation %q", e.Key)
}

// Table maps composite simulation keys to shared-link descriptors.
type Table map[string]fetch.Descriptor

// Key builds the composite lookup key for one simulation instance,
// e.g. Key("train", 7) == "train_sim0007".
func Key(split string, simNum int) string {
	return fmt.Sprintf("%s_sim%04d", split, simNum)
}

// Lookup returns the descriptor for the given split and simulation number,
// or an *UnknownSimulationError.
func (t Table) Lookup(split string, simNum int) (fetch.Descriptor, error) {
	key := Key(split, simNum)
	link, ok := t[key]
	if !ok {
		return fetch.Descriptor{}, &UnknownSimulationError{Key: key}
	}
	return link, nil
}

// Load reads the link table document at path through the generic
// config-asset decoder.
func Load(dec assets.Decoder, path string) (Table, error) {
	var table Table
	if err := dec.ReadInto(path, &table); err != nil {
		return nil, fmt.Errorf("failed to load link table: %w", err)
	}
	return table, nil
}
