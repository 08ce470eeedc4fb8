package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/romangod6/news-site/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the page route table in match order",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATTERN\tPAGE")
		for _, rt := range router.Default().Routes() {
			fmt.Fprintf(w, "%s\t%s\n", rt.Pattern, rt.Page)
		}
		fmt.Fprintf(w, "*\t%s\n", router.PageNotFound)
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
