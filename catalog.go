package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/storefront"
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage product categories",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesList,
	}

	get := &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoryGet,
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category (admin)",
		Args:  cobra.NoArgs,
		RunE:  runCategoryCreate,
	}
	addCategoryFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoryUpdate,
	}
	addCategoryFlags(update)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoryDelete,
	}

	cmd.AddCommand(ls, get, create, update, rm)

	return cmd
}

func addCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "category name")
	cmd.Flags().String("description", "", "category description")
	_ = cmd.MarkFlagRequired("name")
}

func categoryInput(cmd *cobra.Command) storefront.CategoryInput {
	name, _ := cmd.Flags().GetString("name")
	desc, _ := cmd.Flags().GetString("description")

	return storefront.CategoryInput{Name: name, Description: desc}
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	cats, err := cc.Service.Categories(cmd.Context())
	if err != nil {
		return err
	}

	return printCategories(cc, cmd, cats)
}

func runCategoryGet(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	cat, err := cc.Service.Category(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return printCategories(cc, cmd, []storefront.Category{*cat})
}

func runCategoryCreate(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	cat, err := cc.Service.CreateCategory(cmd.Context(), categoryInput(cmd))
	if err != nil {
		return err
	}

	cc.Statusf("Created category %s.\n", cat.ID)

	return printCategories(cc, cmd, []storefront.Category{*cat})
}

func runCategoryUpdate(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	cat, err := cc.Service.UpdateCategory(cmd.Context(), args[0], categoryInput(cmd))
	if err != nil {
		return err
	}

	return printCategories(cc, cmd, []storefront.Category{*cat})
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	if err := cc.Service.DeleteCategory(cmd.Context(), args[0]); err != nil {
		return err
	}

	cc.Statusf("Deleted category %s.\n", args[0])

	return nil
}

func printCategories(cc *CLIContext, cmd *cobra.Command, cats []storefront.Category) error {
	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), cats)
	}

	rows := make([][]string, 0, len(cats))
	for i := range cats {
		c := &cats[i]
		rows = append(rows, []string{c.ID, c.Slug, c.Name, truncate(c.Description, descriptionWidth)})
	}

	printTable(cmd.OutOrStdout(), []string{"ID", "SLUG", "NAME", "DESCRIPTION"}, rows)

	return nil
}

// descriptionWidth caps free-text columns in tables.
const descriptionWidth = 40

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List and manage products",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE:  runProductsList,
	}
	addListFlags(ls)
	ls.Flags().String("category", "", "only products in this category slug")

	featured := &cobra.Command{
		Use:   "featured",
		Short: "List featured products",
		Args:  cobra.NoArgs,
		RunE:  runProductsFeatured,
	}

	get := &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one product by slug",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductGet,
	}
	get.Flags().Bool("id", false, "treat the argument as a product ID")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product (admin)",
		Args:  cobra.NoArgs,
		RunE:  runProductCreate,
	}
	addProductFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductUpdate,
	}
	addProductFlags(update)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductDelete,
	}

	cmd.AddCommand(ls, featured, get, create, update, rm)

	return cmd
}

// addListFlags registers the paging flags shared by listing commands.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "page number (backend default when 0)")
	cmd.Flags().Int("limit", 0, "items per page (backend default when 0)")
	cmd.Flags().String("sort", "", "sort key, e.g. -createdAt")
}

func listOptions(cmd *cobra.Command) storefront.ListOptions {
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	sort, _ := cmd.Flags().GetString("sort")

	return storefront.ListOptions{Page: page, Limit: limit, Sort: sort}
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "product name")
	cmd.Flags().String("description", "", "product description")
	cmd.Flags().Float64("price", 0, "unit price")
	cmd.Flags().Int("stock", 0, "units in stock")
	cmd.Flags().String("category", "", "category ID")
	cmd.Flags().Bool("featured", false, "show on the home page")
	_ = cmd.MarkFlagRequired("name")
}

func productInput(cmd *cobra.Command) storefront.ProductInput {
	name, _ := cmd.Flags().GetString("name")
	desc, _ := cmd.Flags().GetString("description")
	price, _ := cmd.Flags().GetFloat64("price")
	stock, _ := cmd.Flags().GetInt("stock")
	category, _ := cmd.Flags().GetString("category")
	featured, _ := cmd.Flags().GetBool("featured")

	return storefront.ProductInput{
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Featured:    featured,
	}
}

func runProductsList(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	opts := listOptions(cmd)

	category, _ := cmd.Flags().GetString("category")

	var (
		page storefront.Page[storefront.Product]
		err  error
	)

	if category != "" {
		page, err = cc.Service.ProductsInCategory(cmd.Context(), category, opts)
	} else {
		page, err = cc.Service.Products(cmd.Context(), opts)
	}

	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), page)
	}

	printProducts(cmd, page.Items)
	printPageFooter(cc, page.Page, page.Limit, page.Total, page.HasMore())

	return nil
}

func runProductsFeatured(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	products, err := cc.Service.FeaturedProducts(cmd.Context())
	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), products)
	}

	printProducts(cmd, products)

	return nil
}

func runProductGet(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	byID, _ := cmd.Flags().GetBool("id")

	var (
		p   *storefront.Product
		err error
	)

	if byID {
		p, err = cc.Service.ProductByID(cmd.Context(), args[0])
	} else {
		p, err = cc.Service.Product(cmd.Context(), args[0])
	}

	if err != nil {
		return err
	}

	return showProduct(cc, cmd, p)
}

func runProductCreate(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	p, err := cc.Service.CreateProduct(cmd.Context(), productInput(cmd))
	if err != nil {
		return err
	}

	cc.Statusf("Created product %s.\n", p.ID)

	return showProduct(cc, cmd, p)
}

func runProductUpdate(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	p, err := cc.Service.UpdateProduct(cmd.Context(), args[0], productInput(cmd))
	if err != nil {
		return err
	}

	return showProduct(cc, cmd, p)
}

func runProductDelete(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	if err := cc.Service.DeleteProduct(cmd.Context(), args[0]); err != nil {
		return err
	}

	cc.Statusf("Deleted product %s.\n", args[0])

	return nil
}

func showProduct(cc *CLIContext, cmd *cobra.Command, p *storefront.Product) error {
	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), p)
	}

	printProducts(cmd, []storefront.Product{*p})

	return nil
}

func printProducts(cmd *cobra.Command, products []storefront.Product) {
	rows := make([][]string, 0, len(products))
	for i := range products {
		p := &products[i]

		featured := ""
		if p.Featured {
			featured = "*"
		}

		rows = append(rows, []string{
			p.ID, p.Slug, truncate(p.Name, descriptionWidth), formatPrice(p.Price), strconv.Itoa(p.Stock), featured,
		})
	}

	printTable(cmd.OutOrStdout(), []string{"ID", "SLUG", "NAME", "PRICE", "STOCK", "FEATURED"}, rows)
}

// printPageFooter reports paging state on stderr so stdout stays a table.
func printPageFooter(cc *CLIContext, page, limit, total int, more bool) {
	if limit == 0 {
		return
	}

	hint := ""
	if more {
		hint = fmt.Sprintf(", next: --page %d", page+1)
	}

	cc.Statusf("Page %d (%d per page) of %d items%s\n", page, limit, total, hint)
}
