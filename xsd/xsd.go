// Package xsd provides a read-only, navigable view of XML Schema
// documents.
//
// A Node wraps a single element of a parsed schema document and
// exposes the schema construct it represents: its name, its type and
// base QNames, its children grouped by kind, and the flattened content
// model of sequences and choices. References made through the ref,
// type and base attributes are resolved lazily into other Nodes, both
// within a document and across <import> declarations.
//
// The xsd package does not validate XML documents against a schema,
// nor does it compile schema into Go types. Nodes never modify the
// underlying tree; every derived value is computed on first use and
// remembered for the lifetime of the Node.
//
// Lookups that cannot be resolved, such as a type in a namespace that
// is neither the document's own nor imported, yield nil rather than an
// error. Only misuse of the package, like constructing a Node without
// an element, is reported as an error.
package xsd // import "github.com/IndependentIP/xsd-reader/xsd"

import "errors"

const schemaNS = "http://www.w3.org/2001/XMLSchema"

// Namespace is the XML Schema namespace URI.
const Namespace = schemaNS

var (
	// ErrNilElement is returned when a Node is requested for a nil
	// element.
	ErrNilElement = errors.New("xsd: cannot construct a node without an element")
	// ErrUnknownConstruct is returned by New when the element is not
	// one of the schema constructs the package understands.
	ErrUnknownConstruct = errors.New("xsd: element is not a recognized schema construct")
	// ErrNotSchema is returned when a document contains no <schema>
	// element.
	ErrNotSchema = errors.New("xsd: document contains no schema element")
	// ErrNoLocation is returned when an <import> has no
	// schemaLocation to load the imported document from.
	ErrNoLocation = errors.New("xsd: import has no schemaLocation")
)
