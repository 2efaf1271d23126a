package xsd

import "strings"

// A QName is a namespace-prefixed name, as found in the ref, type and
// base attributes of schema constructs.
type QName struct {
	Prefix, Local string
}

// SplitQName splits s at its first colon. A string without a colon
// has an empty Prefix.
func SplitQName(s string) QName {
	if prefix, local, ok := strings.Cut(s, ":"); ok {
		return QName{Prefix: prefix, Local: local}
	}
	return QName{Local: s}
}

func (q QName) String() string {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

// LocalName returns the value of n's own name attribute.
func (n *Node) LocalName() string {
	return n.Attr("name")
}

// Name returns the name of n: its name attribute if it has one,
// otherwise the name of the element it references through its ref
// attribute. Name returns the empty string if neither is available.
func (n *Node) Name() string {
	return n.memo.name.get(func() string {
		return n.name(make(visitSet))
	})
}

func (n *Node) name(seen visitSet) string {
	if name := n.LocalName(); name != "" {
		return name
	}
	if ref := n.referencedElement(seen); ref != nil {
		return ref.name(seen)
	}
	return ""
}

// Ref returns the value of the ref attribute.
func (n *Node) Ref() string {
	return n.Attr("ref")
}

// ReferencedElement returns the top-level element of n's schema
// document whose name matches the local part of n's ref attribute.
// The namespace prefix of the ref is ignored.
func (n *Node) ReferencedElement() *Node {
	return n.memo.ref.get(func() *Node {
		return n.referencedElement(make(visitSet))
	})
}

func (n *Node) referencedElement(seen visitSet) *Node {
	ref := n.Ref()
	if ref == "" {
		return nil
	}
	schema := n.Schema()
	if schema == nil {
		return nil
	}
	if !seen.enter(n) {
		n.cfg.debugf("xsd: circular ref %q at %s", ref, n)
		return nil
	}
	defer seen.leave(n)

	local := SplitQName(ref).Local
	for _, el := range schema.Elements() {
		if el.name(seen) == local {
			return el
		}
	}
	return nil
}

// Type returns the value of n's type attribute or, if n has none, the
// type of the element it references.
func (n *Node) Type() string {
	return n.memo.typ.get(func() string {
		return n.typeOf(make(visitSet))
	})
}

func (n *Node) typeOf(seen visitSet) string {
	if typ, ok := n.el.LookupAttr("", "type"); ok {
		return typ
	}
	if !seen.enter(n) {
		return ""
	}
	defer seen.leave(n)
	if ref := n.ReferencedElement(); ref != nil {
		return ref.typeOf(seen)
	}
	return ""
}

// TypeName returns the local part of Type.
func (n *Node) TypeName() string {
	return SplitQName(n.Type()).Local
}

// TypeNamespace returns the namespace prefix of Type, or the empty
// string if the type is unqualified.
func (n *Node) TypeNamespace() string {
	return SplitQName(n.Type()).Prefix
}

// Base returns the value of the base attribute. Unlike Type, Base is
// never inherited through a ref.
func (n *Node) Base() string {
	return n.Attr("base")
}

// BaseName returns the local part of Base.
func (n *Node) BaseName() string {
	return SplitQName(n.Base()).Local
}

// BaseNamespace returns the namespace prefix of Base, or the empty
// string if the base is unqualified.
func (n *Node) BaseNamespace() string {
	return SplitQName(n.Base()).Prefix
}

// schemaForQName returns the schema document that declares the
// constructs named by qname. Unprefixed names belong to n's own
// document; prefixed names are looked up by the namespace the prefix
// is bound to where n appears.
func (n *Node) schemaForQName(qname string) *Node {
	q := SplitQName(qname)
	if q.Prefix == "" {
		return n.Schema()
	}
	name, ok := n.el.ResolveNS(qname)
	if !ok {
		n.cfg.debugf("xsd: prefix %q of %q is not bound at %s", q.Prefix, qname, n)
		return nil
	}
	return n.SchemaForNamespace(name.Space)
}

// LinkedComplexType returns the named <complexType> that n's Type
// refers to, searching the schema document that owns the type's
// namespace. It returns nil if n has no type, the namespace is
// neither n's own document nor imported by it, or no such type is
// declared there.
func (n *Node) LinkedComplexType() *Node {
	return n.memo.linkedComplexType.get(func() *Node {
		typ := n.Type()
		if typ == "" {
			return nil
		}
		doc := n.schemaForQName(typ)
		if doc == nil {
			return nil
		}
		local := SplitQName(typ).Local
		for _, ct := range doc.ComplexTypes() {
			if ct.Name() == local {
				return ct
			}
		}
		return nil
	})
}

// ComplexType returns n's anonymous <complexType> child if it has
// one, else its LinkedComplexType, else the ComplexType of the element
// it references.
func (n *Node) ComplexType() *Node {
	return n.memo.complexType.get(func() *Node {
		return n.complexType(make(visitSet))
	})
}

func (n *Node) complexType(seen visitSet) *Node {
	if ct := first(n.ComplexTypes()); ct != nil {
		return ct
	}
	if ct := n.LinkedComplexType(); ct != nil {
		return ct
	}
	if !seen.enter(n) {
		return nil
	}
	defer seen.leave(n)
	if ref := n.ReferencedElement(); ref != nil {
		return ref.complexType(seen)
	}
	return nil
}

// LinkedSimpleType returns the <simpleType> named by n's Type,
// searching the whole document and then its imports. Both the type
// as written and its local part are tried.
func (n *Node) LinkedSimpleType() *Node {
	return n.memo.linkedSimpleType.get(func() *Node {
		typ := n.Type()
		if typ == "" {
			return nil
		}
		if st := n.ObjectByName(SimpleTypeKind, typ); st != nil {
			return st
		}
		if local := n.TypeName(); local != typ {
			return n.ObjectByName(SimpleTypeKind, local)
		}
		return nil
	})
}
