package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/IndependentIP/xsd-reader/xmltree"
	"github.com/IndependentIP/xsd-reader/xsd"
)

// A construct is the YAML form of a schema construct.
type construct struct {
	Kind       string      `yaml:"kind"`
	Name       string      `yaml:"name,omitempty"`
	Namespace  string      `yaml:"namespace,omitempty"`
	Ref        string      `yaml:"ref,omitempty"`
	Type       string      `yaml:"type,omitempty"`
	Builtin    string      `yaml:"builtin,omitempty"`
	Location   string      `yaml:"location,omitempty"`
	Attributes []construct `yaml:"attributes,omitempty"`
	Content    []construct `yaml:"content,omitempty"`
}

func describe(n *xsd.Node, depth int) construct {
	c := construct{
		Kind: n.Kind().String(),
		Name: n.Name(),
		Ref:  n.Ref(),
		Type: n.Type(),
	}
	if b, ok := n.BuiltinType(); ok {
		c.Builtin = b.String()
	}
	if n.Kind() == xsd.SchemaKind {
		c.Namespace = n.TargetNamespace()
		c.Location = n.Location()
		for _, el := range n.Elements() {
			c.Content = append(c.Content, describe(el, depth-1))
		}
		return c
	}
	if depth <= 0 {
		return c
	}
	attrs := n.Attributes()
	if ct := n.ComplexType(); ct != nil {
		attrs = append(attrs[:len(attrs):len(attrs)], ct.Attributes()...)
	}
	for _, attr := range attrs {
		c.Attributes = append(c.Attributes, describe(attr, 0))
	}
	for _, child := range n.AllElementsAndChoices() {
		c.Content = append(c.Content, describe(child, depth-1))
	}
	return c
}

func newDumpCmd(a *app) *cobra.Command {
	var asXML bool
	cmd := &cobra.Command{
		Use:   "dump FILE [PATH]",
		Short: "Print a construct and its content as YAML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n, err := a.lookup(args[0], pathArg(args))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asXML {
				_, err := fmt.Fprintf(w, "%s\n", xmltree.Marshal(n.Element()))
				return err
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(describe(n, a.v.GetInt("depth"))); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&asXML, "xml", false, "print the construct as it appears in the document")
	return cmd
}
