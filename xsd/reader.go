package xsd

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/IndependentIP/xsd-reader/internal/dependency"
	"github.com/IndependentIP/xsd-reader/internal/ordered"
	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A Reader holds one parsed schema document. Readers for imported
// documents are created on demand by the Reader method of <import>
// Nodes, and share the configuration of the document importing them.
type Reader struct {
	location string
	root     *xmltree.Element
	schema   *Node
	cfg      *Config
}

// Open loads and parses the schema document at location, which may be
// a file path or an http(s) URL.
func Open(location string, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts...)
	return cfg.readers.open(location, cfg)
}

// NewReader parses a schema document held in memory. Use the Location
// option to say where it came from, so that relative schemaLocation
// hints of its imports can be resolved.
func NewReader(data []byte, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts...)
	r, err := newReader(data, cfg.forDocument(cfg.location))
	if err != nil {
		return nil, err
	}
	if cfg.location != "" {
		cfg.readers.add(cfg.location, r)
	}
	return r, nil
}

// Parse parses a schema document and returns its <schema> Node.
func Parse(data []byte, opts ...Option) (*Node, error) {
	r, err := NewReader(data, opts...)
	if err != nil {
		return nil, err
	}
	return r.Schema(), nil
}

func newReader(data []byte, cfg *Config) (*Reader, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "xsd: parse %s", describe(cfg.location))
	}
	el := root
	if !isSchemaRoot(root) {
		found := root.SearchFunc(isSchema)
		if len(found) == 0 {
			return nil, errors.Wrapf(ErrNotSchema, "%s", describe(cfg.location))
		}
		el = found[0]
	}
	r := &Reader{location: cfg.location, root: root, cfg: cfg}
	r.schema = cfg.readers.schemaNode(el, cfg)
	return r, nil
}

func describe(location string) string {
	if location == "" {
		return "document"
	}
	return location
}

// Location returns where the document was loaded from.
func (r *Reader) Location() string { return r.location }

// Root returns the document element. For a schema embedded in
// another document, such as a WSDL file, this is not the <schema>.
func (r *Reader) Root() *xmltree.Element { return r.root }

// Schema returns the first <schema> of the document.
func (r *Reader) Schema() *Node { return r.schema }

// Imports returns the Readers of the documents imported by the
// schema, in declaration order. Imports that cannot be loaded are
// left out, and their errors are returned together.
func (r *Reader) Imports() ([]*Reader, error) {
	var (
		result []*Reader
		errs   *multierror.Error
	)
	for _, imp := range r.schema.Imports() {
		ir, err := imp.Reader()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		result = append(result, ir)
	}
	return result, errs.ErrorOrNil()
}

// Documents returns r and every document reachable from it through
// imports, each once, with imported documents before the documents
// importing them. Import cycles are tolerated. Documents that cannot be
// loaded are left out, and their errors are returned together.
func (r *Reader) Documents() ([]*Reader, error) {
	var (
		graph dependency.Graph
		seen  = make(map[string]*Reader)
		errs  *multierror.Error
		visit func(*Reader)
	)
	visit = func(doc *Reader) {
		if _, ok := seen[doc.location]; ok {
			return
		}
		seen[doc.location] = doc
		graph.AddTarget(doc.location)
		imports, err := doc.Imports()
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		for _, imp := range imports {
			graph.Add(doc.location, imp.location)
			visit(imp)
		}
	}
	visit(r)

	result := make([]*Reader, 0, graph.Len())
	graph.Flatten(func(location string) {
		result = append(result, seen[location])
	})
	return result, errs.ErrorOrNil()
}

// LoadAll loads every document reachable from r through imports,
// returning the errors of all imports that failed.
func (r *Reader) LoadAll() error {
	_, err := r.Documents()
	return err
}

// Loaded returns every document loaded so far by r and the documents
// sharing its configuration, ordered by location.
func (r *Reader) Loaded() []*Reader {
	c := r.cfg.readers
	c.mu.Lock()
	m := make(map[string]*Reader, len(c.m))
	for k, v := range c.m {
		m[k] = v
	}
	c.mu.Unlock()

	result := make([]*Reader, 0, len(m))
	ordered.RangeStrings(m, func(_ string, doc *Reader) {
		result = append(result, doc)
	})
	return result
}
