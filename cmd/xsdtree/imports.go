package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newImportsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "imports FILE",
		Short: "List the documents reachable through imports, dependencies first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.open(args[0])
			if err != nil {
				return err
			}
			docs, loadErr := r.Documents()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"location", "target namespace", "imports"})
			table.SetAutoWrapText(false)
			for _, doc := range docs {
				schema := doc.Schema()
				var imported []string
				for _, imp := range schema.Imports() {
					imported = append(imported, imp.Namespace())
				}
				table.Append([]string{
					doc.Location(),
					schema.TargetNamespace(),
					strings.Join(imported, " "),
				})
			}
			table.Render()
			return loadErr
		},
	}
}
