package xsd_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/IndependentIP/xsd-reader/xsd"
)

// quietLogger returns a logger that records entries instead of
// printing them.
func quietLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func openMain(t *testing.T) *xsd.Reader {
	t.Helper()
	logger, _ := quietLogger()
	r, err := xsd.Open("testdata/main.xsd", xsd.LogOutput(logger))
	require.NoError(t, err)
	return r
}

func parseSchema(t *testing.T, doc string, opts ...xsd.Option) *xsd.Node {
	t.Helper()
	logger, _ := quietLogger()
	opts = append([]xsd.Option{xsd.LogOutput(logger)}, opts...)
	s, err := xsd.Parse([]byte(doc), opts...)
	require.NoError(t, err)
	return s
}

// names lists the names of nodes, using the kind for unnamed ones.
func names(nodes []*xsd.Node) []string {
	result := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if name := n.Name(); name != "" {
			result = append(result, name)
		} else {
			result = append(result, n.Kind().String())
		}
	}
	return result
}

func topLevel(t *testing.T, schema *xsd.Node, name string) *xsd.Node {
	t.Helper()
	n := schema.Lookup(name)
	require.NotNil(t, n, "no top-level element %q", name)
	return n
}

func complexType(t *testing.T, schema *xsd.Node, name string) *xsd.Node {
	t.Helper()
	ct := schema.ObjectByName(xsd.ComplexTypeKind, name)
	require.NotNil(t, ct, "no complexType %q", name)
	return ct
}
