package xsd

import (
	"strings"
	"sync"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A Kind identifies which schema construct a Node represents. The set
// of kinds is closed; elements of a schema document that are not one
// of these constructs (annotations, restrictions, groups, ...) are
// skipped when navigating.
type Kind int

const (
	Unknown Kind = iota
	SchemaKind
	ElementKind
	AttributeKind
	ChoiceKind
	ComplexTypeKind
	SequenceKind
	SimpleContentKind
	ComplexContentKind
	ExtensionKind
	ImportKind
	SimpleTypeKind
)

var kindTags = [...]string{
	Unknown:            "",
	SchemaKind:         "schema",
	ElementKind:        "element",
	AttributeKind:      "attribute",
	ChoiceKind:         "choice",
	ComplexTypeKind:    "complexType",
	SequenceKind:       "sequence",
	SimpleContentKind:  "simpleContent",
	ComplexContentKind: "complexContent",
	ExtensionKind:      "extension",
	ImportKind:         "import",
	SimpleTypeKind:     "simpleType",
}

// String returns the local tag name of the construct in a schema
// document, such as "complexType".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

// ParseKind returns the Kind whose tag is the given local name, or
// Unknown.
func ParseKind(tag string) Kind {
	for k := SchemaKind; int(k) < len(kindTags); k++ {
		if kindTags[k] == tag {
			return k
		}
	}
	return Unknown
}

// A kindTable maps qualified tags, as written in a document, to kinds.
type kindTable map[string]Kind

var kindTables struct {
	sync.RWMutex
	byPrefix map[string]kindTable
}

// tableFor returns the dispatch table for documents that bind the
// schema namespace to prefix. Tables are built once per prefix.
func tableFor(prefix string) kindTable {
	kindTables.RLock()
	t, ok := kindTables.byPrefix[prefix]
	kindTables.RUnlock()
	if ok {
		return t
	}

	t = make(kindTable, len(kindTags)-1)
	for k := SchemaKind; int(k) < len(kindTags); k++ {
		t[prefix+kindTags[k]] = k
	}

	kindTables.Lock()
	defer kindTables.Unlock()
	if kindTables.byPrefix == nil {
		kindTables.byPrefix = make(map[string]kindTable)
	}
	if prev, ok := kindTables.byPrefix[prefix]; ok {
		return prev
	}
	kindTables.byPrefix[prefix] = t
	return t
}

// KindFor returns the kind of construct for the qualified tag qtag
// (such as "xs:element") in a document whose schema namespace prefix,
// including its trailing colon, is prefix. KindFor returns Unknown for
// any other tag.
func KindFor(prefix, qtag string) Kind {
	return tableFor(prefix)[qtag]
}

// SchemaNamespacePrefix returns the prefix bound to the XML Schema
// namespace in the scope of el, with a trailing colon, such as "xs:".
// If the schema namespace is the default namespace the empty string is
// returned.
//
// If no binding for the schema namespace is in scope the empty string
// is returned as well. In that case, unprefixed tags are treated as
// schema constructs, which may match elements that are not part of
// the schema namespace at all.
func SchemaNamespacePrefix(el *xmltree.Element) string {
	prefix, _ := schemaNamespacePrefix(el)
	return prefix
}

func schemaNamespacePrefix(el *xmltree.Element) (string, bool) {
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Space != schemaNS {
			continue
		}
		if el.Scope[i].Local == "" {
			return "", true
		}
		return el.Scope[i].Local + ":", true
	}
	return "", false
}

// qualify prepends the schema namespace prefix to tag, unless tag
// already carries it.
func qualify(prefix, tag string) string {
	if prefix != "" && strings.HasPrefix(tag, prefix) {
		return tag
	}
	return prefix + tag
}
