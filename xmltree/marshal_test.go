package xmltree_test

import (
	"strings"
	"testing"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

const schemaNS = "http://www.w3.org/2001/XMLSchema"

var nested = []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:tns="urn:t" targetNamespace="urn:t">
  <xs:complexType name="Note">
    <xs:sequence xmlns:extra="urn:extra">
      <xs:element name="body" type="xs:string" extra:hint="a &amp; b"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`)

func TestMarshalRoundTrip(t *testing.T) {
	root, err := xmltree.Parse(nested)
	if err != nil {
		t.Fatal(err)
	}
	again, err := xmltree.Parse(xmltree.Marshal(root))
	if err != nil {
		t.Fatalf("re-parse of %s: %v", xmltree.Marshal(root), err)
	}
	if !xmltree.Equal(root, again) {
		t.Errorf("round trip changed document:\n%s\n%s", root, again)
	}
}

// A fragment must carry the namespace declarations of its ancestors.
func TestMarshalFragment(t *testing.T) {
	root, err := xmltree.Parse(nested)
	if err != nil {
		t.Fatal(err)
	}
	el := root.Search(schemaNS, "element")[0]
	s := el.String()
	if !strings.Contains(s, `xmlns:xs="http://www.w3.org/2001/XMLSchema"`) {
		t.Errorf("fragment lost xs namespace declaration: %s", s)
	}
	if !strings.Contains(s, `extra:hint="a &amp; b"`) {
		t.Errorf("attribute not re-escaped with its prefix: %s", s)
	}
	frag, err := xmltree.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	if frag.QualifiedTag() != "xs:element" {
		t.Errorf("fragment root is %q", frag.QualifiedTag())
	}
	if name := frag.Resolve(frag.Attr("", "type")); name.Space != schemaNS {
		t.Errorf("QName in fragment resolved to %q", name.Space)
	}
}

func TestEqual(t *testing.T) {
	a, err := xmltree.Parse([]byte(`<r xmlns:p="urn:p"><p:a x="1"/><b>text</b></r>`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := xmltree.Parse([]byte(`<r xmlns:q="urn:p"><b> text </b><q:a x="1"/></r>`))
	if err != nil {
		t.Fatal(err)
	}
	if !xmltree.Equal(a, b) {
		t.Error("documents differing only in prefix, order and white space compare unequal")
	}
	if a.Children[0].Name.Local != "a" {
		t.Error("Equal reordered the children of its argument")
	}
	c, err := xmltree.Parse([]byte(`<r xmlns:p="urn:p"><p:a x="2"/><b>text</b></r>`))
	if err != nil {
		t.Fatal(err)
	}
	if xmltree.Equal(a, c) {
		t.Error("documents with different attribute values compare equal")
	}
}
