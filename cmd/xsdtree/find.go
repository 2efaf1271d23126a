package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/IndependentIP/xsd-reader/internal/commandline"
	"github.com/IndependentIP/xsd-reader/xsd"
)

var findKinds = []xsd.Kind{
	xsd.ElementKind,
	xsd.ComplexTypeKind,
	xsd.SimpleTypeKind,
	xsd.AttributeKind,
}

func newFindCmd(a *app) *cobra.Command {
	var kinds commandline.Kinds
	cmd := &cobra.Command{
		Use:   "find FILE NAME",
		Short: "Find named constructs in a document or the documents it imports",
		Long: `Find the first construct of each kind with the given name, searching
the whole document before the documents it imports, in the order they
are imported.`,
		Example: `  xsdtree find po.xsd USAddress
  xsdtree find po.xsd --kind simpleType,complexType SKU`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.open(args[0])
			if err != nil {
				return err
			}
			found := 0
			for _, kind := range kinds.Or(findKinds...) {
				n := r.Schema().ObjectByName(kind, args[1])
				if n == nil {
					continue
				}
				found++
				location := n.Location()
				if location == "" {
					location = args[0]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n, n.Schema().TargetNamespace(), location)
			}
			if found == 0 {
				return errors.Errorf("%s: no construct named %q", args[0], args[1])
			}
			return nil
		},
	}
	cmd.Flags().Var(&kinds, "kind", "kinds of construct to search for (default element,complexType,simpleType,attribute)")
	return cmd
}
