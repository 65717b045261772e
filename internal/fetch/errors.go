package fetch

import "fmt"

// TransferError reports a network or HTTP transport failure while fetching
// an archive. It is transient: the whole retrieval call may be retried
// safely thanks to the Retriever's idempotence.
type TransferError struct {
	URL    string
	Status string
	Err    error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transfer failed for %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transfer failed for %q: server returned %s", e.URL, e.Status)
}

// Unwrap exposes the underlying transport error, if any.
func (e *TransferError) Unwrap() error { return e.Err }

// DownloadIntegrityError reports a downloaded archive that failed
// verification (empty, truncated, or checksum mismatch). It is not retried
// automatically and the destination is left untouched.
type DownloadIntegrityError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *DownloadIntegrityError) Error() string {
	return fmt.Sprintf("downloaded archive %q failed verification: %s", e.Path, e.Reason)
}

// ExtractionError reports a failure while unpacking a verified archive or
// publishing it to the destination. Extraction is all-or-nothing: on this
// error the destination is guaranteed to be in its pre-call state.
type ExtractionError struct {
	Dest string
	Err  error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction into %q failed: %v", e.Dest, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExtractionError) Unwrap() error { return e.Err }
