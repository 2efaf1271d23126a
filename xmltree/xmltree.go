// Package xmltree converts XML documents to a tree of Go structs.
//
// The xmltree package provides routines for accessing an XML document
// as a tree, along with functionality to resolve namespace-prefixed
// strings at any point in the tree. Unlike encoding/xml, an Element
// remembers the prefix its tag was written with, so callers can match
// tags the way they appear in the source document.
package xmltree // import "github.com/IndependentIP/xsd-reader/xmltree"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

// XMLNamespace is the namespace implicitly bound to the "xml" prefix.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

var errDeepXML = errors.New("xmltree: xml document too deeply nested")

// An Element represents a single element in an XML document. Elements
// may have zero or more children. An Element also captures xml
// namespace prefixes, so that arbitrary QNames in attribute values
// can be resolved.
//
// The Name field of the embedded StartElement holds the canonical
// namespace URI in Name.Space, as encoding/xml does. The prefix used
// in the source document is available through the TagPrefix method.
type Element struct {
	xml.StartElement
	// Character data directly inside the element.
	Content  []byte
	Children []Element
	// A list of defined XML namespace prefixes, from least specific to
	// most specific. The Space field is the canonical xml namespace,
	// and the Local field is the prefix.
	Scope []xml.Name

	prefix string
	parent *Element
}

// Attr gets the value of the first attribute whose name matches the
// space and local arguments. If space is the empty string, only
// attributes' local names are considered when looking for a match.
// If an attribute could not be found, the empty string is returned.
func (el *Element) Attr(space, local string) string {
	v, _ := el.LookupAttr(space, local)
	return v
}

// LookupAttr is like Attr, but reports whether the attribute was
// present at all.
func (el *Element) LookupAttr(space, local string) (string, bool) {
	for _, v := range el.StartElement.Attr {
		if v.Name.Local != local {
			continue
		}
		if space == "" || space == v.Name.Space {
			return v.Value, true
		}
	}
	return "", false
}

// Resolve translates an XML QName (namespace-prefixed string) to an
// xml.Name with a canonicalized namespace in its Space field.  This can
// be used when working with XSD documents, which put QNames in attribute
// values. If qname does not have a prefix, the default namespace is used.
// If a namespace prefix cannot be resolved, the returned value's Space
// field will be the unresolved prefix. Use the ResolveNS function to
// detect when a namespace prefix cannot be resolved.
func (el *Element) Resolve(qname string) xml.Name {
	name, _ := el.ResolveNS(qname)
	return name
}

// The ResolveNS method is like Resolve, but returns false for its second
// return value if a namespace prefix cannot be resolved.
func (el *Element) ResolveNS(qname string) (xml.Name, bool) {
	var prefix, local string
	parts := strings.SplitN(qname, ":", 2)
	if len(parts) == 2 {
		prefix, local = parts[0], parts[1]
	} else {
		prefix, local = "", parts[0]
	}
	if space, ok := el.lookupPrefix(prefix); ok {
		return xml.Name{Space: space, Local: local}, true
	}
	return xml.Name{Space: prefix, Local: local}, false
}

func (el *Element) lookupPrefix(prefix string) (string, bool) {
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Local == prefix {
			return el.Scope[i].Space, true
		}
	}
	if prefix == "xml" {
		return XMLNamespace, true
	}
	return "", false
}

// ResolveDefault is like Resolve, but allows for the default namespace to
// be overridden. The namespace of strings without a namespace prefix
// (known as an NCName in XML terminology) will be defaultns.
func (el *Element) ResolveDefault(qname, defaultns string) xml.Name {
	if defaultns == "" || strings.Contains(qname, ":") {
		return el.Resolve(qname)
	}
	return xml.Name{Space: defaultns, Local: qname}
}

// Prefix is the inverse of Resolve. It uses the closest prefix
// defined for a namespace to create a string of the form
// prefix:local. If the namespace cannot be found, an empty string
// is returned.
func (el *Element) Prefix(name xml.Name) (qname string) {
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Space == name.Space {
			if el.Scope[i].Local == "" {
				return name.Local
			}
			return el.Scope[i].Local + ":" + name.Local
		}
	}
	return ""
}

// TagPrefix returns the namespace prefix the element's tag was
// written with in the source document, or the empty string for an
// unprefixed tag.
func (el *Element) TagPrefix() string {
	return el.prefix
}

// QualifiedTag returns the element's tag as it appeared in the source
// document, in the form prefix:local or local.
func (el *Element) QualifiedTag() string {
	if el.prefix == "" {
		return el.Name.Local
	}
	return el.prefix + ":" + el.Name.Local
}

// Parent returns the element containing el, or nil if el is the root
// of its document.
func (el *Element) Parent() *Element {
	return el.parent
}

// Root returns the document element of the tree el belongs to.
func (el *Element) Root() *Element {
	root := el
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (el *Element) pushNS(tag xml.StartElement) {
	var scope []xml.Name
	for _, attr := range tag.Attr {
		if attr.Name.Space == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: attr.Name.Local})
		} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: ""})
		}
	}
	if len(scope) > 0 {
		el.Scope = append(el.Scope, scope...)
		// Ensure that future additions to the scope create
		// a new backing array. This prevents the scope from
		// being clobbered during parsing.
		el.Scope = el.Scope[:len(el.Scope):len(el.Scope)]
	}
}

// translate rewrites the raw prefixes of the start tag into namespace
// URIs, once the element's own declarations are in scope.
func (el *Element) translate() error {
	el.prefix = el.Name.Space
	space, ok := el.lookupPrefix(el.prefix)
	if !ok && el.prefix != "" {
		return fmt.Errorf("xmltree: undeclared namespace prefix %q on <%s>", el.prefix, el.QualifiedTag())
	}
	el.Name.Space = space
	for i, attr := range el.StartElement.Attr {
		if attr.Name.Space == "" || attr.Name.Space == "xmlns" {
			continue
		}
		if space, ok := el.lookupPrefix(attr.Name.Space); ok {
			el.StartElement.Attr[i].Name.Space = space
		}
	}
	return nil
}

// Save some typing when scanning xml
type scanner struct {
	*xml.Decoder
	tok xml.Token
	err error
}

func (s *scanner) scan() bool {
	if s.err != nil {
		return false
	}
	s.tok, s.err = s.RawToken()
	return s.err == nil
}

// Parse builds a tree of Elements by reading an XML document.  The
// byte slice passed to Parse is expected to be a valid XML document
// with a single root element. Documents declaring an encoding other
// than UTF-8 are converted before parsing.
func Parse(doc []byte) (*Element, error) {
	return ParseReader(bytes.NewReader(doc))
}

// ParseReader is like Parse, but reads the document from r.
func ParseReader(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	scanner := scanner{Decoder: d}
	root := new(Element)

	for scanner.scan() {
		if start, ok := scanner.tok.(xml.StartElement); ok {
			root.StartElement = start.Copy()
			break
		}
	}
	if scanner.err == io.EOF {
		return nil, errors.New("xmltree: document has no root element")
	}
	if scanner.err != nil {
		return nil, scanner.err
	}
	if err := root.parse(&scanner, 0); err != nil {
		return nil, err
	}
	root.link()
	return root, nil
}

func (el *Element) parse(scanner *scanner, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	el.pushNS(el.StartElement)
	raw := el.Name
	if err := el.translate(); err != nil {
		return err
	}

	var text bytes.Buffer
	for scanner.scan() {
		switch tok := scanner.tok.(type) {
		case xml.StartElement:
			child := Element{StartElement: tok.Copy(), Scope: el.Scope}
			if err := child.parse(scanner, depth+1); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			text.Write(tok)
		case xml.EndElement:
			if tok.Name != raw {
				return fmt.Errorf("Expecting </%s>, got </%s>", el.QualifiedTag(), qualify(tok.Name))
			}
			if text.Len() > 0 {
				el.Content = text.Bytes()
			}
			return nil
		}
	}
	if scanner.err == io.EOF {
		return fmt.Errorf("xmltree: unexpected EOF inside <%s>", el.QualifiedTag())
	}
	return scanner.err
}

// link sets parent pointers once the tree is complete; the Children
// slices no longer grow after parsing, so the addresses are stable.
func (el *Element) link() {
	for i := range el.Children {
		el.Children[i].parent = el
		el.Children[i].link()
	}
}

func qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// The walk method calls the walkFunc for each of the Element's children.
func (el *Element) walk(fn walkFunc) {
	for i := 0; i < len(el.Children); i++ {
		fn(&el.Children[i])
	}
}

// walkFunc is the type of the function called for each of an Element's
// children.
type walkFunc func(*Element)

// ChildrenFunc returns the direct children of el for which fn returns
// true, in document order.
func (el *Element) ChildrenFunc(fn func(*Element) bool) []*Element {
	var results []*Element
	el.walk(func(c *Element) {
		if fn(c) {
			results = append(results, c)
		}
	})
	return results
}

// ChildrenByTag returns the direct children of el whose qualified tag,
// as written in the source document, equals qtag.
func (el *Element) ChildrenByTag(qtag string) []*Element {
	return el.ChildrenFunc(func(c *Element) bool {
		return c.QualifiedTag() == qtag
	})
}

// SearchFunc traverses the Element tree in depth-first order and returns
// a slice of Elements for which the function fn returns true. The root
// element itself is not considered.
func (root *Element) SearchFunc(fn func(*Element) bool) []*Element {
	var results []*Element
	var search func(el *Element)

	search = func(el *Element) {
		if fn(el) {
			results = append(results, el)
		}
		el.walk(search)
	}
	root.walk(search)
	return results
}

// Search searches the Element tree for Elements with an xml tag
// matching the name and xml namespace. If space is the empty string,
// any namespace is matched.
func (root *Element) Search(space, local string) []*Element {
	return root.SearchFunc(func(el *Element) bool {
		if local != el.Name.Local {
			return false
		}
		return space == "" || space == el.Name.Space
	})
}

// Flatten returns every descendant of root in depth-first, document
// order.
func (root *Element) Flatten() []*Element {
	return root.SearchFunc(func(*Element) bool { return true })
}
