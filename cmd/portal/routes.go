package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the compiled route table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATH\tNAME\tVIEW\tREDIRECT\tACCESS\tLAYOUTS")
		for _, e := range table.Entries() {
			access := "-"
			switch {
			case e.Meta.RequiresAuth && e.Meta.RequiresGuest:
				access = "auth,guest"
			case e.Meta.RequiresAuth:
				access = "auth"
			case e.Meta.RequiresGuest:
				access = "guest"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.FullPath,
				dash(e.Name),
				dash(e.View),
				dash(e.Redirect),
				access,
				dash(strings.Join(e.Layouts, " > ")),
			)
		}
		return tw.Flush()
	},
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
