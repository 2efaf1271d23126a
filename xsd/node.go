package xsd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A Node is a view of one construct in a schema document. Nodes are
// created on demand while navigating; two Nodes for the same element
// behave identically but do not share their cached values. A Node must
// not outlive the tree it was created from, and the tree must not be
// modified while Nodes over it are in use.
type Node struct {
	el   *xmltree.Element
	cfg  *Config
	kind Kind
	memo memo
}

type memo struct {
	prefix   slot[string]
	schema   slot[*Node]
	childCfg slot[*Config]
	name     slot[string]
	typ      slot[string]
	ref      slot[*Node]
	builtin  slot[builtinResult]
	children slotMap[string, []*Node]
	direct   slotMap[string, []*Node]
	ordered  slotMap[string, []*Node]
	all      slotMap[string, []*Node]

	linkedComplexType slot[*Node]
	complexType       slot[*Node]
	linkedSimpleType  slot[*Node]
	reader            slot[readerResult]
	index             slot[nameIndex]
}

// New returns the Node for el. The kind of the Node is determined by
// the tag of el and the prefix bound to the XML Schema namespace where
// el appears. New returns ErrNilElement if el is nil, and
// ErrUnknownConstruct if el is not a schema construct.
func New(el *xmltree.Element, opts ...Option) (*Node, error) {
	if el == nil {
		return nil, ErrNilElement
	}
	kind := KindFor(SchemaNamespacePrefix(el), el.QualifiedTag())
	if kind == Unknown {
		return nil, errors.Wrapf(ErrUnknownConstruct, "<%s>", el.QualifiedTag())
	}
	return &Node{el: el, cfg: newConfig(opts...), kind: kind}, nil
}

// Must is a helper that wraps a call to a function returning
// (*Node, error) and panics if the error is non-nil.
func Must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

// NewSchemas returns a Node for each <schema> element in els, for
// documents that embed several schemas, such as WSDL definitions. The
// Nodes share one configuration, so a document imported by more than
// one of them is loaded once. NewSchemas returns ErrNotSchema if an
// element of els is not a <schema>.
func NewSchemas(els []*xmltree.Element, opts ...Option) ([]*Node, error) {
	cfg := newConfig(opts...)
	result := make([]*Node, 0, len(els))
	for _, el := range els {
		if el == nil {
			return nil, ErrNilElement
		}
		if KindFor(SchemaNamespacePrefix(el), el.QualifiedTag()) != SchemaKind {
			return nil, errors.Wrapf(ErrNotSchema, "<%s>", el.QualifiedTag())
		}
		result = append(result, cfg.readers.schemaNode(el, cfg))
	}
	return result, nil
}

// Kind returns the kind of construct n represents.
func (n *Node) Kind() Kind { return n.kind }

// Element returns the element of the underlying tree.
func (n *Node) Element() *xmltree.Element { return n.el }

// Attr returns the value of the unqualified attribute name, or the
// empty string.
func (n *Node) Attr(name string) string {
	return n.el.Attr("", name)
}

// Location returns the location the document containing n was loaded
// from, if known.
func (n *Node) Location() string { return n.cfg.location }

// IsChoice reports whether n is a <choice>.
func (n *Node) IsChoice() bool { return n.kind == ChoiceKind }

// NamespacePrefix returns the prefix, with trailing colon, that the
// document binds to the XML Schema namespace where n appears. See
// SchemaNamespacePrefix.
func (n *Node) NamespacePrefix() string {
	return n.memo.prefix.get(func() string {
		prefix, ok := schemaNamespacePrefix(n.el)
		if !ok {
			n.cfg.debugf("xsd: no prefix bound to %s at <%s>, matching unprefixed tags", schemaNS, n.el.QualifiedTag())
		}
		return prefix
	})
}

// String returns a short description of n for diagnostics.
func (n *Node) String() string {
	if name := n.LocalName(); name != "" {
		return fmt.Sprintf("%s(%s)", n.kind, name)
	}
	if ref := n.Ref(); ref != "" {
		return fmt.Sprintf("%s(ref=%s)", n.kind, ref)
	}
	return n.kind.String()
}

func (n *Node) key() visitKey {
	return visitKey{doc: n.el.Root(), el: n.el}
}

// nodeToView wraps el in a new Node of the kind its tag maps to in
// this document, carrying over the configuration and the owning
// schema. It returns nil if el is not a schema construct.
func (n *Node) nodeToView(el *xmltree.Element) *Node {
	kind := KindFor(n.NamespacePrefix(), el.QualifiedTag())
	if kind == Unknown {
		return nil
	}
	cfg := n.memo.childCfg.get(func() *Config {
		return n.cfg.withSchema(n.Schema())
	})
	return &Node{el: el, cfg: cfg, kind: kind}
}

// Parent returns the construct enclosing n, or nil if n is the root
// of its document or its parent is not a schema construct.
func (n *Node) Parent() *Node {
	if p := n.el.Parent(); p != nil {
		return n.nodeToView(p)
	}
	return nil
}

// Schema returns the <schema> Node n belongs to. For a <schema> Node,
// Schema returns the Node itself. Schema returns nil if n is not part
// of a schema document.
func (n *Node) Schema() *Node {
	if n.cfg.schema != nil {
		return n.cfg.schema
	}
	if n.kind == SchemaKind {
		return n
	}
	return n.memo.schema.get(func() *Node {
		el := findSchema(n.el)
		if el == nil {
			return nil
		}
		return n.cfg.readers.schemaNode(el, n.cfg)
	})
}

// viewInDocument is like nodeToView, for an element found anywhere in
// n's document. The element belongs to the <schema> enclosing it,
// which is not n's own when the document holds several schemas.
func (n *Node) viewInDocument(el *xmltree.Element) *Node {
	own := findSchema(el)
	if s := n.Schema(); own == nil || s == nil || s.el == own {
		return n.nodeToView(el)
	}
	return n.schemaAt(own).nodeToView(el)
}

// schemaAt returns the Node for another <schema> element of n's
// document.
func (n *Node) schemaAt(el *xmltree.Element) *Node {
	return n.cfg.readers.schemaNode(el, n.cfg.withSchema(nil))
}

// siblingSchema returns the first other <schema> element of n's
// document that targets namespace ns, such as the schemas side by
// side in the <types> of a WSDL document.
func (n *Node) siblingSchema(ns string) *Node {
	self := n.Schema()
	if self == nil {
		return nil
	}
	for _, el := range self.el.Root().SearchFunc(isSchema) {
		if el != self.el && el.Attr("", "targetNamespace") == ns {
			return n.schemaAt(el)
		}
	}
	return nil
}

// findSchema returns the nearest <schema> element enclosing el, or
// failing that, the first one in its document.
func findSchema(el *xmltree.Element) *xmltree.Element {
	for p := el; p != nil; p = p.Parent() {
		if isSchema(p) {
			return p
		}
	}
	root := el.Root()
	if isSchemaRoot(root) {
		return root
	}
	if found := root.SearchFunc(isSchema); len(found) > 0 {
		return found[0]
	}
	return nil
}
