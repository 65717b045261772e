package fetch

import (
	"encoding/json"
	"fmt"
)

// Descriptor is an opaque reference to a remotely hosted archive: the share
// URL plus optional integrity metadata supplied by the link table.
type Descriptor struct {
	URL  string `json:"url"`
	Size int64  `json:"size,omitempty"`
	MD5  string `json:"md5,omitempty"`
}

// UnmarshalJSON accepts either a bare URL string or an object carrying the
// URL with size/checksum metadata, matching both shapes found in link-table
// documents.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*d = Descriptor{URL: url}
		return nil
	}

	type descriptorObject Descriptor // avoid recursing into this method
	var obj descriptorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("shared-link descriptor must be a string or an object: %w", err)
	}
	*d = Descriptor(obj)
	return nil
}
