package xsd

import "github.com/IndependentIP/xsd-reader/xmltree"

// Search predicates for the xmltree.Element.SearchFunc method
type predicate func(el *xmltree.Element) bool

func and(fns ...predicate) predicate {
	return func(el *xmltree.Element) bool {
		for _, f := range fns {
			if !f(el) {
				return false
			}
		}
		return true
	}
}

func isElem(space, local string) predicate {
	return func(el *xmltree.Element) bool {
		if el.Name.Local != local {
			return false
		}
		return space == "" || el.Name.Space == space
	}
}

func hasTag(qtag string) predicate {
	return func(el *xmltree.Element) bool {
		return el.QualifiedTag() == qtag
	}
}

func hasAttrValue(space, local, value string) predicate {
	return func(el *xmltree.Element) bool {
		v, ok := el.LookupAttr(space, local)
		return ok && v == value
	}
}

var isSchema = isElem(schemaNS, "schema")

// isSchemaRoot also accepts a document element that only maps to a
// <schema> through the empty-prefix fallback of SchemaNamespacePrefix.
func isSchemaRoot(el *xmltree.Element) bool {
	return isSchema(el) || KindFor(SchemaNamespacePrefix(el), el.QualifiedTag()) == SchemaKind
}

// ObjectByName searches the whole document containing n, at any depth,
// for the first construct of the given kind whose name attribute is
// name. If the document has none, the documents imported by n's schema
// are searched in the order of their <import> declarations, and the
// first match is returned. Imported documents are searched the same
// way, so chains of imports are followed; a document is never searched
// twice.
func (n *Node) ObjectByName(kind Kind, name string) *Node {
	if name == "" || kind == Unknown {
		return nil
	}
	return n.objectByName(kind, name, make(map[*xmltree.Element]bool))
}

func (n *Node) objectByName(kind Kind, name string, searched map[*xmltree.Element]bool) *Node {
	root := n.el.Root()
	if searched[root] {
		return nil
	}
	searched[root] = true

	qtag := qualify(n.NamespacePrefix(), kind.String())
	if el := n.index().lookup(qtag, name); el != nil {
		return n.viewInDocument(el)
	}

	schema := n.Schema()
	if schema == nil {
		return nil
	}
	for _, imp := range schema.Imports() {
		if imp.SchemaLocation() == "" && schema.siblingSchema(imp.Namespace()) != nil {
			// already searched with the rest of the document
			continue
		}
		r, err := imp.Reader()
		if err != nil {
			n.cfg.warnf("xsd: %v", err)
			continue
		}
		if found := r.Schema().objectByName(kind, name, searched); found != nil {
			return found
		}
	}
	return nil
}

// searchByName is the unindexed form of a name lookup.
func searchByName(root *xmltree.Element, qtag, name string) *xmltree.Element {
	match := and(hasTag(qtag), hasAttrValue("", "name", name))
	if match(root) {
		return root
	}
	if found := root.SearchFunc(match); len(found) > 0 {
		return found[0]
	}
	return nil
}
