// Package wsdl finds the schema embedded in Web Service Definition
// Language documents.
//
// The types of a WSDL document are declared by one or more <schema>
// elements inside its <types> section. The wsdl package exposes each
// of them as an xsd.Node, and resolves the parts of the document's
// messages to the elements and types they name.
package wsdl // import "github.com/IndependentIP/xsd-reader/wsdl"

import (
	"encoding/xml"

	"github.com/pkg/errors"

	"github.com/IndependentIP/xsd-reader/xmltree"
	"github.com/IndependentIP/xsd-reader/xsd"
)

const wsdlNS = "http://schemas.xmlsoap.org/wsdl/"

// ErrNotWSDL is returned by Parse when the document element is not a
// WSDL <definitions>.
var ErrNotWSDL = errors.New("wsdl: document is not a WSDL definition")

// A Definition holds the schema and messages of a WSDL document.
type Definition struct {
	Name     string
	TargetNS string
	// Every <schema> declared in the <types> section, in document
	// order.
	Types    []*xsd.Node
	Messages []Message
}

// A Message is a named list of parts, used as the input or output of
// an operation.
type Message struct {
	Name  string
	Parts []Part
}

// A Part names either the element or the type of its content. The
// unused field is the zero xml.Name.
type Part struct {
	Name    string
	Element xml.Name
	Type    xml.Name
}

// Parse reads a WSDL definition. The embedded schemas share the
// configuration given by opts; use xsd.Location to resolve relative
// schemaLocation hints of their imports. An <import> without a
// schemaLocation refers to another embedded schema.
func Parse(data []byte, opts ...xsd.Option) (*Definition, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "wsdl")
	}
	if root.Name.Space != wsdlNS || root.Name.Local != "definitions" {
		return nil, errors.Wrapf(ErrNotWSDL, "<%s>", root.QualifiedTag())
	}

	def := Definition{
		Name:     root.Attr("", "name"),
		TargetNS: root.Attr("", "targetNamespace"),
	}
	var schemas []*xmltree.Element
	for _, types := range root.Search(wsdlNS, "types") {
		schemas = append(schemas, types.Search(xsd.Namespace, "schema")...)
	}
	if def.Types, err = xsd.NewSchemas(schemas, opts...); err != nil {
		return nil, err
	}
	for _, el := range root.Search(wsdlNS, "message") {
		msg := Message{Name: el.Attr("", "name")}
		for _, p := range el.Search(wsdlNS, "part") {
			part := Part{Name: p.Attr("", "name")}
			if qname := p.Attr("", "element"); qname != "" {
				part.Element = p.Resolve(qname)
			}
			if qname := p.Attr("", "type"); qname != "" {
				part.Type = p.Resolve(qname)
			}
			msg.Parts = append(msg.Parts, part)
		}
		def.Messages = append(def.Messages, msg)
	}
	return &def, nil
}

// Message returns the message called name, or nil.
func (def *Definition) Message(name string) *Message {
	for i := range def.Messages {
		if def.Messages[i].Name == name {
			return &def.Messages[i]
		}
	}
	return nil
}

// Schema returns the first embedded schema targeting namespace ns,
// or nil.
func (def *Definition) Schema(ns string) *xsd.Node {
	for _, s := range def.Types {
		if s.TargetsNamespace(ns) {
			return s
		}
	}
	return nil
}

// Element returns the top-level element called name.
func (def *Definition) Element(name xml.Name) *xsd.Node {
	if s := def.Schema(name.Space); s != nil {
		return s.Lookup(name.Local)
	}
	return nil
}

// Type returns the complex or simple type called name.
func (def *Definition) Type(name xml.Name) *xsd.Node {
	s := def.Schema(name.Space)
	if s == nil {
		return nil
	}
	for _, ct := range s.ComplexTypes() {
		if ct.Name() == name.Local {
			return ct
		}
	}
	for _, st := range s.SimpleTypes() {
		if st.Name() == name.Local {
			return st
		}
	}
	return nil
}

// Content returns the construct describing the content of a message
// part: its element if it names one, and its type otherwise.
func (def *Definition) Content(p Part) *xsd.Node {
	if p.Element.Local != "" {
		return def.Element(p.Element)
	}
	return def.Type(p.Type)
}
