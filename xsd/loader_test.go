package xsd_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndependentIP/xsd-reader/internal/testutil"
	"github.com/IndependentIP/xsd-reader/xsd"
)

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		base, location, want string
	}{
		{"schemas/main.xsd", "types.xsd", "schemas/types.xsd"},
		{"schemas/main.xsd", "../common/types.xsd", "common/types.xsd"},
		{"main.xsd", "sub/types.xsd", "sub/types.xsd"},
		{"/srv/xsd/main.xsd", "/opt/types.xsd", "/opt/types.xsd"},
		{"http://example.com/a/main.xsd", "types.xsd", "http://example.com/a/types.xsd"},
		{"http://example.com/a/main.xsd", "../b/types.xsd", "http://example.com/b/types.xsd"},
		{"http://example.com/a/main.xsd", "https://other.org/t.xsd", "https://other.org/t.xsd"},
		{"schemas/main.xsd", "http://example.com/t.xsd", "http://example.com/t.xsd"},
		{"", "types.xsd", "types.xsd"},
		{"schemas/main.xsd", "", ""},
	}
	for _, tt := range tests {
		got := xsd.ResolveLocation(tt.base, tt.location)
		assert.Equal(t, tt.want, got, "ResolveLocation(%q, %q)", tt.base, tt.location)
	}
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestFileLoaderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/main.xsd":    {Data: readTestdata(t, "main.xsd")},
		"schemas/ns1.xsd":     {Data: readTestdata(t, "ns1.xsd")},
		"schemas/sub/ns2.xsd": {Data: readTestdata(t, "sub/ns2.xsd")},
	}
	logger, _ := quietLogger()
	r, err := xsd.Open("schemas/main.xsd",
		xsd.WithLoader(xsd.FileLoader{FS: fsys}),
		xsd.LogOutput(logger))
	require.NoError(t, err)

	remote := topLevel(t, r.Schema(), "remote")
	assert.Equal(t, []string{"x", "y"}, names(remote.AllElements()))
	assert.Equal(t, "schemas/ns1.xsd", remote.LinkedComplexType().Location())

	data, err := xsd.FileLoader{FS: fsys}.Load("file:///schemas/ns1.xsd")
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://example.com/ns1")

	_, err = xsd.FileLoader{FS: fsys}.Load("schemas/missing.xsd")
	assert.Error(t, err)
}

func TestFileLoaderDisk(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"root.xsd": `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:l="urn:leaf" targetNamespace="urn:root">
			<xs:import namespace="urn:leaf" schemaLocation="leaf/leaf.xsd"/>
			<xs:element name="r" type="l:Leaf"/>
		</xs:schema>`,
		"leaf/leaf.xsd": `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:leaf">
			<xs:complexType name="Leaf"><xs:sequence><xs:element name="l"/></xs:sequence></xs:complexType>
		</xs:schema>`,
	})
	r, err := xsd.Open(filepath.Join(dir, "root.xsd"))
	require.NoError(t, err)
	assert.Equal(t, []string{"l"}, names(topLevel(t, r.Schema(), "r").AllElements()))
}

type countingLoader struct {
	mu     sync.Mutex
	next   xsd.Loader
	counts map[string]int
}

func (l *countingLoader) Load(location string) ([]byte, error) {
	l.mu.Lock()
	if l.counts == nil {
		l.counts = make(map[string]int)
	}
	l.counts[location]++
	l.mu.Unlock()
	return l.next.Load(location)
}

func TestDocumentsLoadedOnce(t *testing.T) {
	loader := &countingLoader{next: xsd.FileLoader{}}
	logger, _ := quietLogger()
	r, err := xsd.Open("testdata/main.xsd", xsd.WithLoader(loader), xsd.LogOutput(logger))
	require.NoError(t, err)
	schema := r.Schema()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if remote := schema.Lookup("remote"); remote != nil {
				remote.LinkedComplexType()
			}
			if nested := schema.Lookup("wrapper", "nested"); nested != nil {
				nested.LinkedSimpleType()
			}
		}()
	}
	wg.Wait()
	require.NoError(t, r.LoadAll())

	assert.Equal(t, map[string]int{
		"testdata/main.xsd":    1,
		"testdata/ns1.xsd":     1,
		"testdata/sub/ns2.xsd": 1,
	}, loader.counts)
}

func TestHTTPLoader(t *testing.T) {
	const base = "http://example.com/schemas/"
	client, log := testutil.FakeClient(map[string][]byte{
		base + "main.xsd":    readTestdata(t, "main.xsd"),
		base + "ns1.xsd":     readTestdata(t, "ns1.xsd"),
		base + "sub/ns2.xsd": readTestdata(t, "sub/ns2.xsd"),
	})
	logger, _ := quietLogger()
	r, err := xsd.Open(base+"main.xsd",
		xsd.WithLoader(xsd.HTTPLoader{Client: client}),
		xsd.LogOutput(logger))
	require.NoError(t, err)

	schema := r.Schema()
	assert.Equal(t, []string{"x", "y"}, names(topLevel(t, schema, "remote").AllElements()))
	nested := schema.ObjectByName(xsd.SimpleTypeKind, "Nested")
	require.NotNil(t, nested)
	assert.Equal(t, base+"sub/ns2.xsd", nested.Location())
	schema.ObjectByName(xsd.SimpleTypeKind, "Shared")
	require.NoError(t, r.LoadAll())

	for _, doc := range []string{"main.xsd", "ns1.xsd", "sub/ns2.xsd"} {
		assert.Equal(t, 1, log.Count(base+doc), doc)
	}
}

func TestHTTPLoaderNotFound(t *testing.T) {
	client, _ := testutil.FakeClient(nil)
	_, err := xsd.HTTPLoader{Client: client}.Load("http://example.com/missing.xsd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSchemeLoader(t *testing.T) {
	var got []string
	record := func(kind string) xsd.LoaderFunc {
		return func(location string) ([]byte, error) {
			got = append(got, kind+" "+location)
			return nil, nil
		}
	}
	l := xsd.SchemeLoader{File: record("file"), HTTP: record("http")}
	for _, loc := range []string{"a.xsd", "https://x.org/a.xsd", "file:///a.xsd", "http://x.org/b.xsd"} {
		_, err := l.Load(loc)
		require.NoError(t, err)
	}
	assert.Equal(t, "file a.xsd|http https://x.org/a.xsd|file file:///a.xsd|http http://x.org/b.xsd",
		strings.Join(got, "|"))
}

func TestUnloadableImports(t *testing.T) {
	logger, hook := quietLogger()
	r, err := xsd.NewReader([]byte(`
		<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:m="urn:missing" targetNamespace="urn:broken">
		  <xs:import namespace="urn:missing" schemaLocation="missing.xsd"/>
		  <xs:import namespace="urn:nowhere"/>
		  <xs:element name="e" type="m:T"/>
		</xs:schema>`),
		xsd.Location("testdata/broken.xsd"),
		xsd.LogOutput(logger))
	require.NoError(t, err)
	schema := r.Schema()

	assert.Nil(t, schema.SchemaForNamespace("urn:missing"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "warning", hook.LastEntry().Level.String())
	assert.Contains(t, hook.LastEntry().Message, "missing.xsd")

	assert.Nil(t, topLevel(t, schema, "e").LinkedComplexType())
	assert.Nil(t, schema.ObjectByName(xsd.ComplexTypeKind, "T"))

	_, err = schema.ImportByNamespace("urn:nowhere").Reader()
	assert.ErrorIs(t, err, xsd.ErrNoLocation)

	imports, err := r.Imports()
	assert.Empty(t, imports)
	assert.ErrorIs(t, err, xsd.ErrNoLocation)

	err = r.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestFailedImportNotLoaded(t *testing.T) {
	fsys := fstest.MapFS{
		"a.xsd": {Data: []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
			<xs:import namespace="urn:b" schemaLocation="b.xsd"/>
		</xs:schema>`)},
	}
	logger, _ := quietLogger()
	r, err := xsd.Open("a.xsd", xsd.WithLoader(xsd.FileLoader{FS: fsys}), xsd.LogOutput(logger))
	require.NoError(t, err)
	assert.Nil(t, r.Schema().SchemaForNamespace("urn:b"))
	assert.Len(t, r.Loaded(), 1)
}
