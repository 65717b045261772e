package fetch

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// gzipMagic is the two-byte header that identifies a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// untar unpacks the tar (optionally gzip-compressed) archive at archivePath
// into targetDir, preserving the archive's internal directory structure.
// Entry paths are checked against directory traversal; entry types other
// than directories and regular files are skipped.
func untar(archivePath, targetDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var stream io.Reader = br
	if head, err := br.Peek(2); err == nil && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("gzip.NewReader failed: %w", err)
		}
		defer gz.Close()
		stream = gz
	}

	tarReader := tar.NewReader(stream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}
		if err := extractEntry(header, tarReader, targetDir); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes a single tar entry under targetDir.
func extractEntry(header *tar.Header, reader io.Reader, targetDir string) error {
	name := header.Name
	if strings.Contains(name, "pax_global_header") || strings.HasPrefix(filepath.Base(name), "._") {
		return nil
	}

	targetPath := filepath.Join(targetDir, filepath.FromSlash(name))
	cleanTarget := filepath.Clean(targetPath)
	cleanRoot := filepath.Clean(targetDir)
	if cleanTarget == cleanRoot {
		// Entries like "./" name the extraction root itself.
		return nil
	}
	if !strings.HasPrefix(cleanTarget, cleanRoot+string(os.PathSeparator)) {
		return fmt.Errorf("invalid entry path: %q", name)
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(targetPath, 0o755); err != nil {
			return err
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return err
		}
		outFile, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode).Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(outFile, reader); err != nil {
			outFile.Close()
			return err
		}
		if err := outFile.Close(); err != nil {
			return err
		}
	}
	return nil
}
