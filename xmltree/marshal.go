package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Marshal produces the XML encoding of an Element as a self-contained
// document. Namespace declarations inherited from ancestors of el are
// declared on the first tag, so the result can be parsed on its own.
func Marshal(el *Element) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, el); err != nil {
		// bytes.Buffer.Write should never return an error
		panic(err)
	}
	return buf.Bytes()
}

// Encode writes the XML encoding of the Element to w.
// Encode returns any errors encountered writing to w.
func Encode(w io.Writer, el *Element) error {
	enc := encoder{w: w}
	return enc.encode(el, nil, 0)
}

// String returns the XML encoding of an Element
// and its children as a string.
func (el *Element) String() string {
	return string(Marshal(el))
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(s string) {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *encoder) escape(s string) {
	if e.err == nil {
		e.err = xml.EscapeText(e.w, []byte(s))
	}
}

// diffScope returns the namespace bindings a child adds on top of
// its parent. Children share the leading part of their parent's
// Scope slice, so the difference is a suffix.
func diffScope(parent, child *Element) []xml.Name {
	if parent == nil { // root of the encoded fragment
		return child.Scope
	}
	if len(child.Scope) >= len(parent.Scope) {
		return child.Scope[len(parent.Scope):]
	}
	return child.Scope
}

func (e *encoder) encode(el, parent *Element, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	e.write("<" + el.QualifiedTag())
	for _, attr := range el.StartElement.Attr {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		e.write(" " + el.attrName(attr.Name) + `="`)
		e.escape(attr.Value)
		e.write(`"`)
	}
	for _, ns := range diffScope(parent, el) {
		if ns.Local == "" {
			e.write(` xmlns="`)
		} else {
			e.write(" xmlns:" + ns.Local + `="`)
		}
		e.escape(ns.Space)
		e.write(`"`)
	}
	if len(el.Children) == 0 && len(el.Content) == 0 {
		e.write("/>")
		return e.err
	}
	e.write(">")
	if len(el.Children) == 0 {
		e.escape(string(el.Content))
	}
	for i := range el.Children {
		if err := e.encode(&el.Children[i], el, depth+1); err != nil {
			return err
		}
	}
	e.write("</" + el.QualifiedTag() + ">")
	return e.err
}

func (el *Element) attrName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if name.Space == XMLNamespace {
		return "xml:" + name.Local
	}
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Space == name.Space && el.Scope[i].Local != "" {
			return el.Scope[i].Local + ":" + name.Local
		}
	}
	return name.Local
}
