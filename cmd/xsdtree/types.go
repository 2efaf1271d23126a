package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/IndependentIP/xsd-reader/xmltree"
	"github.com/IndependentIP/xsd-reader/xsd"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types FILE",
		Short: "List the named types of a document and the documents it imports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.open(args[0])
			if err != nil {
				return err
			}
			docs, loadErr := r.Documents()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"name", "kind", "base", "namespace", "location"})
			table.SetAutoWrapText(false)
			for _, doc := range docs {
				schema := doc.Schema()
				for _, t := range schema.DirectKinds(xsd.ComplexTypeKind, xsd.SimpleTypeKind) {
					table.Append([]string{
						t.Name(),
						t.Kind().String(),
						baseOf(t),
						schema.TargetNamespace(),
						doc.Location(),
					})
				}
			}
			table.Render()
			return loadErr
		},
	}
}

// baseOf returns the type a named type is derived from, if any.
func baseOf(t *xsd.Node) string {
	if t.Kind() == xsd.SimpleTypeKind {
		return derivedFrom(t.Element(), "restriction", "list", "union")
	}
	for _, content := range []*xsd.Node{t.SimpleContent(), t.ComplexContent()} {
		if content == nil {
			continue
		}
		if ext := content.Extension(); ext != nil {
			return ext.Base()
		}
		return derivedFrom(content.Element(), "restriction")
	}
	return ""
}

// derivedFrom returns the base or item type of the first derivation
// found under el, trying the tags in order.
func derivedFrom(el *xmltree.Element, tags ...string) string {
	for _, tag := range tags {
		if found := el.Search(xsd.Namespace, tag); len(found) > 0 {
			if base := found[0].Attr("", "base"); base != "" {
				return base
			}
			return found[0].Attr("", "itemType")
		}
	}
	return ""
}
