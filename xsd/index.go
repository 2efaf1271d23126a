package xsd

import "github.com/IndependentIP/xsd-reader/xmltree"

type nameKey struct {
	tag, name string
}

// A nameIndex maps the qualified tag and name attribute of every named
// element in a document to the first such element in document order.
// Different kinds of construct may share a name, so the tag is part
// of the key.
type nameIndex map[nameKey]*xmltree.Element

func (idx nameIndex) lookup(qtag, name string) *xmltree.Element {
	return idx[nameKey{qtag, name}]
}

func indexDocument(root *xmltree.Element) nameIndex {
	index := make(nameIndex)
	add := func(el *xmltree.Element) {
		name, ok := el.LookupAttr("", "name")
		if !ok {
			return
		}
		key := nameKey{el.QualifiedTag(), name}
		if _, ok := index[key]; !ok {
			index[key] = el
		}
	}
	add(root)
	for _, el := range root.Flatten() {
		add(el)
	}
	return index
}

type nameLookup interface {
	lookup(qtag, name string) *xmltree.Element
}

// treeSearch looks names up without an index, for trees that have no
// schema Node to keep one.
type treeSearch struct {
	root *xmltree.Element
}

func (t treeSearch) lookup(qtag, name string) *xmltree.Element {
	return searchByName(t.root, qtag, name)
}

// index returns the name lookup for n's document. The index is kept
// by the schema Node, so it is built once per schema Node.
func (n *Node) index() nameLookup {
	root := n.el.Root()
	if s := n.Schema(); s != nil && s.el.Root() == root {
		return s.memo.index.get(func() nameIndex {
			return indexDocument(root)
		})
	}
	return treeSearch{root}
}
