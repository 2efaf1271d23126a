package xsd

import "github.com/pkg/errors"

// TargetNamespace returns the targetNamespace attribute of a <schema>.
func (n *Node) TargetNamespace() string {
	return n.Attr("targetNamespace")
}

// TargetsNamespace reports whether the schema declares constructs in
// namespace ns.
func (n *Node) TargetsNamespace(ns string) bool {
	return n.TargetNamespace() == ns
}

// Namespace returns the namespace attribute of an <import>.
func (n *Node) Namespace() string {
	return n.Attr("namespace")
}

// SchemaLocation returns the schemaLocation hint of an <import>.
func (n *Node) SchemaLocation() string {
	return n.Attr("schemaLocation")
}

// ImportByNamespace returns the first <import> of the schema that
// imports namespace ns, or nil.
func (n *Node) ImportByNamespace(ns string) *Node {
	for _, imp := range n.Imports() {
		if imp.Namespace() == ns {
			return imp
		}
	}
	return nil
}

type readerResult struct {
	r   *Reader
	err error
}

// Reader returns the Reader for the document an <import> points to.
// The schemaLocation is resolved against the location of n's own
// document, and the document is loaded with the configured Loader the
// first time any Node sharing n's configuration asks for it.
func (n *Node) Reader() (*Reader, error) {
	res := n.memo.reader.get(func() readerResult {
		loc := n.SchemaLocation()
		if loc == "" {
			return readerResult{err: errors.Wrapf(ErrNoLocation, "import of namespace %q", n.Namespace())}
		}
		r, err := n.cfg.readers.open(ResolveLocation(n.cfg.location, loc), n.cfg)
		return readerResult{r: r, err: err}
	})
	return res.r, res.err
}

// SchemaForNamespace returns the schema document declaring namespace
// ns: n's own schema if it targets ns, otherwise the schema of the
// document imported for ns by n's schema. An <import> without a
// schemaLocation refers to another <schema> of the same document
// targeting ns, if there is one. Imports of imported documents are
// not followed. SchemaForNamespace returns nil if no such document is
// found or it cannot be loaded.
func (n *Node) SchemaForNamespace(ns string) *Node {
	n.cfg.debugf("xsd: schema for namespace %q from %s", ns, n)
	schema := n.Schema()
	if schema == nil {
		return nil
	}
	if schema.TargetsNamespace(ns) {
		return schema
	}
	imp := schema.ImportByNamespace(ns)
	if imp == nil {
		n.cfg.debugf("xsd: namespace %q is not imported", ns)
		return nil
	}
	if imp.SchemaLocation() == "" {
		if sibling := schema.siblingSchema(ns); sibling != nil {
			return sibling
		}
	}
	r, err := imp.Reader()
	if err != nil {
		n.cfg.warnf("xsd: %v", err)
		return nil
	}
	return r.Schema()
}
