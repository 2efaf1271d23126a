package xsd

import (
	"encoding/xml"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A Builtin represents one of the built-in xml schema types, as
// defined in the W3C specification, "XML Schema Part 2: Datatypes".
//
// http://www.w3.org/TR/xmlschema-2/#built-in-datatypes
type Builtin int

const (
	AnyType Builtin = iota
	AnySimpleType
	ENTITIES
	ENTITY
	ID
	IDREF
	IDREFS
	NCName
	NMTOKEN
	NMTOKENS
	NOTATION
	Name
	QNameType
	AnyURI
	Base64Binary
	Boolean
	Byte
	Date
	DateTime
	Decimal
	Double
	Duration
	Float
	GDay
	GMonth
	GMonthDay // ISO 8601 format: --MM-DD
	GYear
	GYearMonth
	HexBinary
	Int
	Integer
	Language
	Long
	NegativeInteger
	NonNegativeInteger
	NonPositiveInteger
	NormalizedString
	PositiveInteger
	Short
	String
	Time
	Token
	UnsignedByte
	UnsignedInt
	UnsignedLong
	UnsignedShort
)

var builtinNames = [...]string{
	AnyType:            "anyType",
	AnySimpleType:      "anySimpleType",
	ENTITIES:           "ENTITIES",
	ENTITY:             "ENTITY",
	ID:                 "ID",
	IDREF:              "IDREF",
	IDREFS:             "IDREFS",
	NCName:             "NCName",
	NMTOKEN:            "NMTOKEN",
	NMTOKENS:           "NMTOKENS",
	NOTATION:           "NOTATION",
	Name:               "Name",
	QNameType:          "QName",
	AnyURI:             "anyURI",
	Base64Binary:       "base64Binary",
	Boolean:            "boolean",
	Byte:               "byte",
	Date:               "date",
	DateTime:           "dateTime",
	Decimal:            "decimal",
	Double:             "double",
	Duration:           "duration",
	Float:              "float",
	GDay:               "gDay",
	GMonth:             "gMonth",
	GMonthDay:          "gMonthDay",
	GYear:              "gYear",
	GYearMonth:         "gYearMonth",
	HexBinary:          "hexBinary",
	Int:                "int",
	Integer:            "integer",
	Language:           "language",
	Long:               "long",
	NegativeInteger:    "negativeInteger",
	NonNegativeInteger: "nonNegativeInteger",
	NonPositiveInteger: "nonPositiveInteger",
	NormalizedString:   "normalizedString",
	PositiveInteger:    "positiveInteger",
	Short:              "short",
	String:             "string",
	Time:               "time",
	Token:              "token",
	UnsignedByte:       "unsignedByte",
	UnsignedInt:        "unsignedInt",
	UnsignedLong:       "unsignedLong",
	UnsignedShort:      "unsignedShort",
}

// String returns the local name of the built-in type, such as
// "dateTime".
func (b Builtin) String() string {
	if b < 0 || int(b) >= len(builtinNames) {
		return ""
	}
	return builtinNames[b]
}

// Name returns the canonical name of the built-in type. All
// built-in types are in the standard XML schema namespace,
// http://www.w3.org/2001/XMLSchema.
func (b Builtin) Name() xml.Name {
	return xml.Name{Space: schemaNS, Local: b.String()}
}

// ParseBuiltin looks up a Builtin by its canonical name. The second
// return value is false if name does not name a built-in type.
func ParseBuiltin(name xml.Name) (Builtin, bool) {
	if name.Space != schemaNS {
		return -1, false
	}
	for i := range builtinNames {
		if builtinNames[i] == name.Local {
			return Builtin(i), true
		}
	}
	return -1, false
}

type builtinResult struct {
	b  Builtin
	ok bool
}

// BuiltinType reports which built-in type n's Type names, if any. The
// prefix of the type is resolved where n appears in the document.
func (n *Node) BuiltinType() (Builtin, bool) {
	res := n.memo.builtin.get(func() builtinResult {
		return resolveBuiltin(n.el, n.Type())
	})
	return res.b, res.ok
}

// BuiltinBase is like BuiltinType, but for n's Base.
func (n *Node) BuiltinBase() (Builtin, bool) {
	res := resolveBuiltin(n.el, n.Base())
	return res.b, res.ok
}

func resolveBuiltin(el *xmltree.Element, qname string) builtinResult {
	if qname == "" {
		return builtinResult{b: -1}
	}
	name, ok := el.ResolveNS(qname)
	if !ok {
		return builtinResult{b: -1}
	}
	b, ok := ParseBuiltin(name)
	return builtinResult{b: b, ok: ok}
}
