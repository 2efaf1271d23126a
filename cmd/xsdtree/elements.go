package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IndependentIP/xsd-reader/xsd"
)

func newElementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements FILE [PATH]",
		Short: "Print the content model below a construct as a tree",
		Long: `Print the elements and choices below a construct, expanding named
types and referenced elements. Without a path, every top-level element
of the schema is printed.`,
		Example: `  xsdtree elements po.xsd
  xsdtree elements po.xsd purchaseOrder/items --depth 1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n, err := a.lookup(args[0], pathArg(args))
			if err != nil {
				return err
			}
			var roots []*xsd.Node
			if n.Kind() == xsd.SchemaKind {
				roots = n.Elements()
			} else {
				roots = []*xsd.Node{n}
			}
			depth := a.v.GetInt("depth")
			for _, root := range roots {
				printTree(cmd.OutOrStdout(), root, 0, depth)
			}
			return nil
		},
	}
	return cmd
}

// printTree writes n and, up to depth levels below it, its elements
// and choices.
func printTree(w io.Writer, n *xsd.Node, level, depth int) {
	indent := strings.Repeat("  ", level)
	switch {
	case n.IsChoice():
		fmt.Fprintf(w, "%s(choice)\n", indent)
	case n.Type() != "":
		fmt.Fprintf(w, "%s%s %s\n", indent, n.Name(), n.Type())
	default:
		fmt.Fprintf(w, "%s%s\n", indent, n.Name())
	}
	if level >= depth {
		return
	}
	for _, c := range n.AllElementsAndChoices() {
		printTree(w, c, level+1, depth)
	}
}
