package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// TarEntry describes one entry for BuildTar. Dir entries have empty Body.
type TarEntry struct {
	Name string
	Body string
	Dir  bool
}

// BuildTar assembles an in-memory tar archive from the given entries, in
// order. Callers control entry names fully, including hostile ones, which
// makes this suitable for traversal-guard tests.
func BuildTar(t *testing.T, entries []TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: 0o644}
		if e.Dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Body))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.Dir {
			_, err := tw.Write([]byte(e.Body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

// BuildDatasetTar builds a tar archive with a single top-level directory
// topDir containing the given relative-path files, the shape a dataset
// archive is expected to have.
func BuildDatasetTar(t *testing.T, topDir string, files map[string]string) []byte {
	t.Helper()

	entries := []TarEntry{{Name: topDir + "/", Dir: true}}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entries = append(entries, TarEntry{Name: topDir + "/" + name, Body: files[name]})
	}
	return BuildTar(t, entries)
}

// GzipBytes gzip-compresses raw.
func GzipBytes(t *testing.T, raw []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// ArchiveServer serves a fixed archive body over HTTP and counts requests,
// letting tests assert that retrieval happened at most once.
type ArchiveServer struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits reports how many requests the server has answered.
func (s *ArchiveServer) Hits() int64 { return s.hits.Load() }

// ServeArchive starts an ArchiveServer for the given body. The server is
// shut down via t.Cleanup.
func ServeArchive(t *testing.T, body []byte) *ArchiveServer {
	t.Helper()

	s := &ArchiveServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/x-tar")
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

// ServeStatus starts a server that always answers with the given HTTP
// status code, for transfer-failure tests.
func ServeStatus(t *testing.T, code int) *httptest.Server {
	t.Helper()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(s.Close)
	return s
}
