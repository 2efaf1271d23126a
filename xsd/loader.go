package xsd

import (
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A Loader fetches the raw bytes of a schema document from a location,
// which is a file path or URL.
type Loader interface {
	Load(location string) ([]byte, error)
}

// The LoaderFunc type is an adapter to allow the use of ordinary
// functions as Loaders.
type LoaderFunc func(location string) ([]byte, error)

// Load calls f(location).
func (f LoaderFunc) Load(location string) ([]byte, error) {
	return f(location)
}

// A FileLoader reads documents from a file system. If FS is nil, the
// operating system's file system is used. Locations given as file://
// URLs are accepted.
type FileLoader struct {
	FS fs.FS
}

func (l FileLoader) Load(location string) ([]byte, error) {
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		location = u.Path
	}
	if l.FS == nil {
		data, err := os.ReadFile(location)
		return data, errors.Wrap(err, "xsd")
	}
	name := strings.TrimPrefix(path.Clean(filepath.ToSlash(location)), "/")
	data, err := fs.ReadFile(l.FS, name)
	return data, errors.Wrap(err, "xsd")
}

// An HTTPLoader fetches documents over HTTP. If Client is nil,
// http.DefaultClient is used.
type HTTPLoader struct {
	Client *http.Client
}

func (l HTTPLoader) Load(location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	rsp, err := client.Get(location)
	if err != nil {
		return nil, errors.Wrapf(err, "xsd: fetch %s", location)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("xsd: fetch %s: %s", location, rsp.Status)
	}
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "xsd: read %s", location)
	}
	return data, nil
}

// A SchemeLoader dispatches http and https URLs to HTTP and every
// other location to File.
type SchemeLoader struct {
	File Loader
	HTTP Loader
}

func (l SchemeLoader) Load(location string) ([]byte, error) {
	if isHTTP(location) {
		return l.HTTP.Load(location)
	}
	return l.File.Load(location)
}

// DefaultTimeout bounds HTTP requests made by DefaultLoader.
const DefaultTimeout = 30 * time.Second

// DefaultLoader returns a Loader that reads local files and fetches
// http and https URLs.
func DefaultLoader() Loader {
	return SchemeLoader{
		File: FileLoader{},
		HTTP: HTTPLoader{Client: &http.Client{Timeout: DefaultTimeout}},
	}
}

func isHTTP(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ResolveLocation resolves a schemaLocation hint against the location
// of the document that contains it. URLs are resolved as references
// relative to a base URL, and file paths relative to the directory of
// the base file. Absolute locations are returned unchanged.
func ResolveLocation(base, location string) string {
	if location == "" || base == "" {
		return location
	}
	if u, err := url.Parse(location); err == nil && u.IsAbs() && len(u.Scheme) > 1 {
		return location
	}
	if b, err := url.Parse(base); err == nil && b.IsAbs() && len(b.Scheme) > 1 {
		ref, err := url.Parse(location)
		if err != nil {
			return location
		}
		return b.ResolveReference(ref).String()
	}
	if filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(filepath.Dir(base), location)
}

// readerCache holds every document loaded for a root document and its
// imports, by location, so that each is parsed once and Nodes over it
// share a single tree. It also keeps one Node per <schema> element, so
// that schemas reached by different paths share their name index.
type readerCache struct {
	mu      sync.Mutex
	m       map[string]*Reader
	schemas map[*xmltree.Element]*Node
	group   singleflight.Group
}

func newReaderCache() *readerCache {
	return &readerCache{
		m:       make(map[string]*Reader),
		schemas: make(map[*xmltree.Element]*Node),
	}
}

// schemaNode returns the Node for the <schema> element el, creating it
// with cfg the first time el is seen.
func (c *readerCache) schemaNode(el *xmltree.Element, cfg *Config) *Node {
	if c == nil {
		return &Node{el: el, cfg: cfg, kind: SchemaKind}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.schemas[el]; ok {
		return s
	}
	s := &Node{el: el, cfg: cfg, kind: SchemaKind}
	c.schemas[el] = s
	return s
}

func (c *readerCache) get(location string) (*Reader, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[location]
	return r, ok
}

func (c *readerCache) add(location string, r *Reader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[location]; !ok {
		c.m[location] = r
	}
}

func (c *readerCache) open(location string, cfg *Config) (*Reader, error) {
	if r, ok := c.get(location); ok {
		return r, nil
	}
	v, err, _ := c.group.Do(location, func() (interface{}, error) {
		if r, ok := c.get(location); ok {
			return r, nil
		}
		if cfg.loader == nil {
			return nil, errors.Errorf("xsd: no loader configured for %s", location)
		}
		cfg.debugf("xsd: loading %s", location)
		data, err := cfg.loader.Load(location)
		if err != nil {
			return nil, err
		}
		r, err := newReader(data, cfg.forDocument(location))
		if err != nil {
			return nil, err
		}
		c.add(location, r)
		r, _ = c.get(location)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Reader), nil
}
