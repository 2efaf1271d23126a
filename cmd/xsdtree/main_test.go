package main

import (
	"bytes"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/IndependentIP/xsd-reader/internal/testutil"
	"github.com/IndependentIP/xsd-reader/xmltree"
)

var mainXSD = filepath.Join("..", "..", "xsd", "testdata", "main.xsd")

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestElements(t *testing.T) {
	out, _, err := run(t, "elements", mainXSD, "order")
	require.NoError(t, err)
	assert.Equal(t, `order
  a xs:string
  b tns:Code
  (choice)
    c xs:int
    d xs:int
`, out)

	out, _, err = run(t, "elements", mainXSD, "wrapper", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, `wrapper tns:Wrapper
  order
  shared Shared
  code tns:Code
  nested Nested
`, out)

	out, _, err = run(t, "elements", mainXSD)
	require.NoError(t, err)
	assert.Contains(t, out, "remote ns1:Foo\n  x xsd:string\n  y xsd:string\n")

	_, _, err = run(t, "elements", mainXSD, "order/zz")
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	out, _, err := run(t, "types", mainXSD)
	require.NoError(t, err)
	for _, want := range []string{"NAME", "Foo", "Wrapper", "Derived", "tns:Foo", "xs:decimal", "Shared", "Code", "http://example.com/ns2"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, bytes.Index([]byte(out), []byte("ns1.xsd")), bytes.Index([]byte(out), []byte("main.xsd")),
		"imported documents first")
}

func TestTypesRestriction(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"restricted.xsd": `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:r" xmlns:r="urn:r">
			<xs:complexType name="Wide">
				<xs:sequence>
					<xs:element name="a" type="xs:string" minOccurs="0"/>
				</xs:sequence>
			</xs:complexType>
			<xs:complexType name="Narrow">
				<xs:complexContent>
					<xs:restriction base="r:Wide">
						<xs:sequence>
							<xs:element name="a" type="xs:string"/>
						</xs:sequence>
					</xs:restriction>
				</xs:complexContent>
			</xs:complexType>
		</xs:schema>`,
	})
	out, _, err := run(t, "types", filepath.Join(dir, "restricted.xsd"))
	require.NoError(t, err)
	assert.Contains(t, out, "r:Wide")
}

func TestImports(t *testing.T) {
	out, _, err := run(t, "imports", mainXSD)
	require.NoError(t, err)
	assert.Contains(t, out, "urn:main")
	assert.Contains(t, out, "http://example.com/ns1 http://example.com/ns2")

	broken := testutil.WriteFiles(t, map[string]string{
		"broken.xsd": `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
			<xs:import namespace="urn:gone" schemaLocation="gone.xsd"/>
		</xs:schema>`,
	})
	out, _, err = run(t, "imports", filepath.Join(broken, "broken.xsd"))
	assert.Error(t, err)
	assert.Contains(t, out, "urn:gone", "loaded documents are still listed")
}

func TestFind(t *testing.T) {
	out, _, err := run(t, "find", mainXSD, "Shared")
	require.NoError(t, err)
	assert.Contains(t, out, "simpleType(Shared)\thttp://example.com/ns1\t")

	out, _, err = run(t, "find", mainXSD, "--kind", "element", "inner")
	require.NoError(t, err)
	assert.Contains(t, out, "element(inner)\thttp://example.com/ns2\t")

	_, _, err = run(t, "find", mainXSD, "--kind", "complexType", "Code")
	assert.Error(t, err)

	_, _, err = run(t, "find", mainXSD, "--kind", "restriction", "Code")
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	out, _, err := run(t, "dump", mainXSD, "order")
	require.NoError(t, err)

	var c construct
	require.NoError(t, yaml.Unmarshal([]byte(out), &c))
	assert.Equal(t, "element", c.Kind)
	assert.Equal(t, "order", c.Name)
	require.Len(t, c.Attributes, 1)
	assert.Equal(t, "ID", c.Attributes[0].Builtin)
	require.Len(t, c.Content, 3)
	assert.Equal(t, "string", c.Content[0].Builtin)
	assert.Equal(t, "choice", c.Content[2].Kind)
	assert.Len(t, c.Content[2].Content, 2)

	out, _, err = run(t, "dump", mainXSD, "--depth", "0")
	require.NoError(t, err)
	var s construct
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, "schema", s.Kind)
	assert.Equal(t, "urn:main", s.Namespace)
	require.NotEmpty(t, s.Content)
	assert.Equal(t, "order", s.Content[0].Name)
	assert.Empty(t, s.Content[0].Content)
}

func TestDumpXML(t *testing.T) {
	out, _, err := run(t, "dump", "--xml", mainXSD, "order/a")
	require.NoError(t, err)
	el, err := xmltree.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "element", el.Name.Local)
	assert.Equal(t, "a", el.Attr("", "name"))
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema", el.Name.Space)
}

func TestConfigFile(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"xsdtree.yaml": "debug: true\ndepth: 0\n",
	})
	out, stderr, err := run(t, "--config", filepath.Join(dir, "xsdtree.yaml"), "elements", mainXSD, "order")
	require.NoError(t, err)
	assert.Equal(t, "order\n", out)
	assert.Contains(t, stderr, "using config file")

	_, _, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "elements", mainXSD)
	assert.Error(t, err)
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("XSDTREE_DEPTH", "0")
	out, _, err := run(t, "elements", mainXSD, "order")
	require.NoError(t, err)
	assert.Equal(t, "order\n", out)
}

func TestHomeConfig(t *testing.T) {
	homedir.DisableCache = true
	home := testutil.WriteFiles(t, map[string]string{
		".xsdtree.yaml": "depth: 1\n",
	})
	t.Setenv("HOME", home)

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"elements", mainXSD, "wrapper"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, stdout.String(), "    a xs:string")
	assert.Contains(t, stdout.String(), "  order\n")
}
