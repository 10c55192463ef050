package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/storefront"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search products and blog posts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().String("kind", string(storefront.SearchAll), "what to search: all, products or posts")
	cmd.Flags().Int("page", 0, "page number (backend default when 0)")
	cmd.Flags().Int("limit", 0, "results per page (backend default when 0)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	kind, _ := cmd.Flags().GetString("kind")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	res, err := cc.Service.Search(cmd.Context(), strings.Join(args, " "), storefront.SearchKind(kind), page, limit)
	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), res)
	}

	if len(res.Products) > 0 {
		printProducts(cmd, res.Products)
	}

	if len(res.Posts) > 0 {
		if len(res.Products) > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}

		printPosts(cmd, res.Posts)
	}

	cc.Statusf("%d result(s) for %q\n", res.Total, res.Query)

	return nil
}
