package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmbkit/simfetch/internal/ctxlog"
	"github.com/google/uuid"
	"resty.dev/v3"
)

// Retriever downloads and unpacks remote dataset archives.
type Retriever struct {
	client *resty.Client
}

// NewRetriever creates a Retriever that downloads through the given resty
// client. The caller owns the client's lifecycle.
func NewRetriever(client *resty.Client) *Retriever {
	return &Retriever{client: client}
}

// DownloadAndExtract fetches the archive identified by link and unpacks it
// so that the archive's embedded top-level directory becomes dest.
//
// When dest already exists the call is a no-op. The download lands in a
// private directory under tempDir, is verified against the descriptor's
// metadata, extracted into a process-unique staging directory next to dest,
// and finally renamed onto dest in one step. Failures map to *TransferError,
// *DownloadIntegrityError, or *ExtractionError; on any of them dest is left
// in its pre-call state.
func (r *Retriever) DownloadAndExtract(ctx context.Context, link Descriptor, tempDir, dest string) error {
	logger := ctxlog.FromContext(ctx).With("dest", dest)

	if _, err := os.Stat(dest); err == nil {
		logger.Debug("Destination already present, skipping retrieval.")
		return nil
	}

	workDir := filepath.Join(tempDir, "download-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("failed to create download work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Error("Failed to remove download work directory.", "path", workDir, "error", err)
		}
	}()

	archivePath := filepath.Join(workDir, "archive.tar")
	if err := r.download(ctx, link.URL, archivePath); err != nil {
		return err
	}
	logger.Debug("Archive downloaded.", "url", link.URL)

	if err := verifyDownload(archivePath, link); err != nil {
		return err
	}
	logger.Debug("Archive verified.")

	return publish(ctx, archivePath, dest)
}

// download streams the archive at url into the file at archivePath.
func (r *Retriever) download(ctx context.Context, url, archivePath string) error {
	res, err := r.client.R().
		SetContext(ctx).
		SetSaveResponse(true).
		SetOutputFileName(archivePath).
		Get(url)
	if err != nil {
		return &TransferError{URL: url, Err: err}
	}
	if res.IsError() {
		return &TransferError{URL: url, Status: res.Status()}
	}
	return nil
}

// verifyDownload checks the downloaded file against the descriptor's
// integrity metadata. A zero-byte download always fails; size and MD5 are
// only checked when the descriptor carries them.
func verifyDownload(archivePath string, link Descriptor) error {
	info, err := os.Stat(archivePath)
	if err != nil {
		return &DownloadIntegrityError{Path: archivePath, Reason: "download produced no file"}
	}
	if info.Size() == 0 {
		return &DownloadIntegrityError{Path: archivePath, Reason: "download is empty"}
	}
	if link.Size > 0 && info.Size() != link.Size {
		return &DownloadIntegrityError{
			Path:   archivePath,
			Reason: fmt.Sprintf("size mismatch: got %d bytes, descriptor declares %d", info.Size(), link.Size),
		}
	}

	if link.MD5 != "" {
		sum, err := fileMD5(archivePath)
		if err != nil {
			return &DownloadIntegrityError{Path: archivePath, Reason: fmt.Sprintf("cannot hash download: %v", err)}
		}
		if !strings.EqualFold(sum, link.MD5) {
			return &DownloadIntegrityError{
				Path:   archivePath,
				Reason: fmt.Sprintf("md5 mismatch: got %s, descriptor declares %s", sum, link.MD5),
			}
		}
	}

	return nil
}

// fileMD5 returns the lowercase hex MD5 digest of the file at path.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// publish extracts the verified archive into a staging directory next to
// dest and renames the archive's single top-level directory onto dest. If a
// concurrent process won the rename race, the staging output is discarded
// and the call succeeds.
func publish(ctx context.Context, archivePath, dest string) error {
	logger := ctxlog.FromContext(ctx).With("dest", dest)

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return &ExtractionError{Dest: dest, Err: err}
	}

	staging := filepath.Join(parent, ".staging-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return &ExtractionError{Dest: dest, Err: err}
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Error("Failed to remove staging directory.", "path", staging, "error", err)
		}
	}()

	if err := untar(archivePath, staging); err != nil {
		return &ExtractionError{Dest: dest, Err: err}
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		return &ExtractionError{Dest: dest, Err: err}
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return &ExtractionError{
			Dest: dest,
			Err:  fmt.Errorf("archive must contain exactly one top-level directory, found %d entries", len(entries)),
		}
	}

	if err := os.Rename(filepath.Join(staging, entries[0].Name()), dest); err != nil {
		if _, statErr := os.Stat(dest); statErr == nil {
			logger.Debug("Concurrent extraction already populated the destination, discarding staging output.")
			return nil
		}
		return &ExtractionError{Dest: dest, Err: err}
	}

	logger.Debug("Archive published to destination.")
	return nil
}
