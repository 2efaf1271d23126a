// Package testutil contains common utility functions for unit tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// FakeClient returns an HTTP client that replies to requests for each
// URL in docs with the corresponding body, and with 404 Not Found to
// any other request. Every request is recorded in the returned Log.
func FakeClient(docs map[string][]byte) (*http.Client, *Log) {
	log := new(Log)
	return &http.Client{
		Transport: mockRoundTrip{
			docs: docs,
			log:  log,
		},
	}, log
}

// A Log records the URLs requested from a FakeClient.
type Log struct {
	mu   sync.Mutex
	urls []string
}

// Requests returns the requested URLs, in order.
func (l *Log) Requests() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.urls...)
}

// Count returns how many times url was requested.
func (l *Log) Count(url string) int {
	n := 0
	for _, u := range l.Requests() {
		if u == url {
			n++
		}
	}
	return n
}

type mockRoundTrip struct {
	docs map[string][]byte
	log  *Log
}

func (r mockRoundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	var rsp http.Response
	rsp.Header = make(http.Header)
	rsp.Request = req

	url := req.URL.String()
	r.log.mu.Lock()
	r.log.urls = append(r.log.urls, url)
	r.log.mu.Unlock()

	if body, ok := r.docs[url]; ok {
		rsp.StatusCode = http.StatusOK
		rsp.Status = "200 OK"
		rsp.Body = io.NopCloser(bytes.NewReader(body))
	} else {
		rsp.StatusCode = http.StatusNotFound
		rsp.Status = "404 Not Found"
		rsp.Body = io.NopCloser(strings.NewReader("404 not found"))
	}
	return &rsp, nil
}

// WriteFiles writes each file in files, keyed by path relative to a
// new temporary directory, and returns the directory.
func WriteFiles(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
