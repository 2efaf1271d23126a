package xsd

import "strings"

// Children returns the direct children of n whose tag is tag, qualified
// with the document's schema namespace prefix. Children that are not
// schema constructs are skipped.
func (n *Node) Children(tag string) []*Node {
	qtag := qualify(n.NamespacePrefix(), tag)
	return n.memo.children.get(qtag, func() []*Node {
		var result []*Node
		for _, el := range n.el.ChildrenByTag(qtag) {
			if c := n.nodeToView(el); c != nil {
				result = append(result, c)
			}
		}
		return result
	})
}

func (n *Node) childrenOfKind(k Kind) []*Node {
	return n.Children(k.String())
}

// Elements returns the <element> children of n.
func (n *Node) Elements() []*Node { return n.childrenOfKind(ElementKind) }

// Attributes returns the <attribute> children of n.
func (n *Node) Attributes() []*Node { return n.childrenOfKind(AttributeKind) }

// Choices returns the <choice> children of n.
func (n *Node) Choices() []*Node { return n.childrenOfKind(ChoiceKind) }

// Sequences returns the <sequence> children of n.
func (n *Node) Sequences() []*Node { return n.childrenOfKind(SequenceKind) }

// ComplexTypes returns the <complexType> children of n.
func (n *Node) ComplexTypes() []*Node { return n.childrenOfKind(ComplexTypeKind) }

// SimpleTypes returns the <simpleType> children of n.
func (n *Node) SimpleTypes() []*Node { return n.childrenOfKind(SimpleTypeKind) }

// SimpleContents returns the <simpleContent> children of n.
func (n *Node) SimpleContents() []*Node { return n.childrenOfKind(SimpleContentKind) }

// ComplexContents returns the <complexContent> children of n.
func (n *Node) ComplexContents() []*Node { return n.childrenOfKind(ComplexContentKind) }

// Extensions returns the <extension> children of n.
func (n *Node) Extensions() []*Node { return n.childrenOfKind(ExtensionKind) }

// Imports returns the <import> children of n.
func (n *Node) Imports() []*Node { return n.childrenOfKind(ImportKind) }

// SimpleContent returns the first <simpleContent> child, or nil.
func (n *Node) SimpleContent() *Node { return first(n.SimpleContents()) }

// ComplexContent returns the first <complexContent> child, or nil.
func (n *Node) ComplexContent() *Node { return first(n.ComplexContents()) }

// Extension returns the first <extension> child, or nil.
func (n *Node) Extension() *Node { return first(n.Extensions()) }

func first(nodes []*Node) *Node {
	if len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func kindsKey(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, "|")
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

// DirectKinds returns the direct children of n of each of the given
// kinds, grouped by kind in the order the kinds are given. Within a
// group, children are in document order.
func (n *Node) DirectKinds(kinds ...Kind) []*Node {
	return n.memo.direct.get(kindsKey(kinds), func() []*Node {
		var result []*Node
		for _, k := range kinds {
			result = append(result, n.childrenOfKind(k)...)
		}
		return result
	})
}

// ElementsAndChoices returns the direct <element> children of n
// followed by its direct <choice> children. The two groups are not
// interleaved; see OrderedElementsAndChoices for document order.
func (n *Node) ElementsAndChoices() []*Node {
	return n.DirectKinds(ElementKind, ChoiceKind)
}

// OrderedKinds flattens the content model below n in document order.
// Every child construct of one of the given kinds is kept as is; any
// other child construct, such as a <sequence>, is replaced by its own
// flattened content.
func (n *Node) OrderedKinds(kinds ...Kind) []*Node {
	return n.memo.ordered.get(kindsKey(kinds), func() []*Node {
		return n.orderKinds(kinds)
	})
}

func (n *Node) orderKinds(kinds []Kind) []*Node {
	var result []*Node
	for i := range n.el.Children {
		c := n.nodeToView(&n.el.Children[i])
		if c == nil {
			continue
		}
		if hasKind(kinds, c.kind) {
			result = append(result, c)
		} else {
			result = append(result, c.orderKinds(kinds)...)
		}
	}
	return result
}

// OrderedElements returns every <element> in n's content model, with
// sequences and choices unwrapped, in document order.
func (n *Node) OrderedElements() []*Node {
	return n.OrderedKinds(ElementKind)
}

// OrderedElementsAndChoices is like OrderedElements, but keeps
// <choice> constructs in the result instead of unwrapping them.
func (n *Node) OrderedElementsAndChoices() []*Node {
	return n.OrderedKinds(ElementKind, ChoiceKind)
}

// AllKinds returns the OrderedKinds of n, followed by the AllKinds of
// the complex type n's own type attribute links to, followed by the
// AllKinds of the element n references. A type inherited through a ref
// is only expanded once, as part of the referenced element. A type or
// element that refers back to a construct already being expanded
// contributes nothing.
func (n *Node) AllKinds(kinds ...Kind) []*Node {
	return n.memo.all.get(kindsKey(kinds), func() []*Node {
		return n.allKinds(kinds, make(visitSet))
	})
}

func (n *Node) allKinds(kinds []Kind, seen visitSet) []*Node {
	if !seen.enter(n) {
		n.cfg.debugf("xsd: circular type or ref at %s", n)
		return nil
	}
	defer seen.leave(n)

	own := n.OrderedKinds(kinds...)
	result := make([]*Node, len(own))
	copy(result, own)
	if _, ok := n.el.LookupAttr("", "type"); ok {
		if ct := n.LinkedComplexType(); ct != nil {
			result = append(result, ct.allKinds(kinds, seen)...)
		}
	}
	if ref := n.ReferencedElement(); ref != nil {
		result = append(result, ref.allKinds(kinds, seen)...)
	}
	return result
}

// AllElements returns OrderedElements together with the elements of
// the linked complex type and of the referenced element.
func (n *Node) AllElements() []*Node {
	return n.AllKinds(ElementKind)
}

// AllElementsAndChoices is like AllElements, but keeps <choice>
// constructs.
func (n *Node) AllElementsAndChoices() []*Node {
	return n.AllKinds(ElementKind, ChoiceKind)
}

// HasChildElements reports whether n has direct <element> children.
func (n *Node) HasChildElements() bool {
	return len(n.Elements()) > 0
}

// HasChildElementsOrChoices reports whether n has direct <element> or
// <choice> children.
func (n *Node) HasChildElementsOrChoices() bool {
	return len(n.ElementsAndChoices()) > 0
}

// Lookup follows a path of names from n. A step beginning with "@"
// selects an attribute by name; any other step selects an element by
// name. From a <schema>, element steps select among the top-level
// elements; from any other construct they select among AllElements.
// Attribute steps consider n's own attributes, then those of its
// ComplexType. Lookup returns nil as soon as a step does not match.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, step := range path {
		if cur == nil {
			return nil
		}
		if attr := strings.TrimPrefix(step, "@"); attr != step {
			cur = cur.lookupAttribute(attr)
		} else {
			cur = cur.lookupElement(step)
		}
	}
	return cur
}

func (n *Node) lookupElement(name string) *Node {
	candidates := n.Elements()
	if n.kind != SchemaKind {
		candidates = n.AllElements()
	}
	return byName(candidates, name)
}

func (n *Node) lookupAttribute(name string) *Node {
	if a := byName(n.Attributes(), name); a != nil {
		return a
	}
	if ct := n.ComplexType(); ct != nil && ct != n {
		return byName(ct.Attributes(), name)
	}
	return nil
}

func byName(nodes []*Node, name string) *Node {
	for _, c := range nodes {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
