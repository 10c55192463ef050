package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/storefront"
)

func newBlogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blog",
		Aliases: []string{"posts"},
		Short:   "List and manage blog posts",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE:  runPostsList,
	}
	addListFlags(ls)

	get := &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one post by slug",
		Args:  cobra.ExactArgs(1),
		RunE:  runPostGet,
	}
	get.Flags().Bool("id", false, "treat the argument as a post ID")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a post (admin)",
		Args:  cobra.NoArgs,
		RunE:  runPostCreate,
	}
	addPostFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a post (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runPostUpdate,
	}
	addPostFlags(update)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a post (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runPostDelete,
	}

	cmd.AddCommand(ls, get, create, update, rm)

	return cmd
}

func addPostFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "post title")
	cmd.Flags().String("excerpt", "", "short summary")
	cmd.Flags().String("content", "", "post body")
	cmd.Flags().String("content-file", "", "read the post body from a file (- for stdin)")
	cmd.Flags().StringSlice("tag", nil, "tag, repeatable")
	cmd.Flags().Bool("publish", false, "publish instead of saving a draft")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

func postInput(cmd *cobra.Command) (storefront.PostInput, error) {
	title, _ := cmd.Flags().GetString("title")
	excerpt, _ := cmd.Flags().GetString("excerpt")
	content, _ := cmd.Flags().GetString("content")
	contentFile, _ := cmd.Flags().GetString("content-file")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	publish, _ := cmd.Flags().GetBool("publish")

	if contentFile != "" {
		body, err := readContent(cmd, contentFile)
		if err != nil {
			return storefront.PostInput{}, err
		}

		content = body
	}

	return storefront.PostInput{
		Title:     title,
		Excerpt:   excerpt,
		Content:   content,
		Tags:      tags,
		Published: publish,
	}, nil
}

func readContent(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		var b bytes.Buffer
		if _, err := b.ReadFrom(cmd.InOrStdin()); err != nil {
			return "", fmt.Errorf("reading content from stdin: %w", err)
		}

		return b.String(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	return string(data), nil
}

func runPostsList(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	page, err := cc.Service.Posts(cmd.Context(), listOptions(cmd))
	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), page)
	}

	printPosts(cmd, page.Items)
	printPageFooter(cc, page.Page, page.Limit, page.Total, page.HasMore())

	return nil
}

func runPostGet(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	byID, _ := cmd.Flags().GetBool("id")

	var (
		p   *storefront.Post
		err error
	)

	if byID {
		p, err = cc.Service.PostByID(cmd.Context(), args[0])
	} else {
		p, err = cc.Service.Post(cmd.Context(), args[0])
	}

	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), p)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "%s  %s  %s\n", p.Slug, p.Author, formatTime(p.PublishedAt))

	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(p.Tags, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", p.Content)

	return nil
}

func runPostCreate(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	in, err := postInput(cmd)
	if err != nil {
		return err
	}

	p, err := cc.Service.CreatePost(cmd.Context(), in)
	if err != nil {
		return err
	}

	cc.Statusf("Created post %s.\n", p.ID)

	return showPost(cc, cmd, p)
}

func runPostUpdate(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	in, err := postInput(cmd)
	if err != nil {
		return err
	}

	p, err := cc.Service.UpdatePost(cmd.Context(), args[0], in)
	if err != nil {
		return err
	}

	return showPost(cc, cmd, p)
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	if err := cc.Service.DeletePost(cmd.Context(), args[0]); err != nil {
		return err
	}

	cc.Statusf("Deleted post %s.\n", args[0])

	return nil
}

func showPost(cc *CLIContext, cmd *cobra.Command, p *storefront.Post) error {
	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), p)
	}

	printPosts(cmd, []storefront.Post{*p})

	return nil
}

func printPosts(cmd *cobra.Command, posts []storefront.Post) {
	rows := make([][]string, 0, len(posts))
	for i := range posts {
		p := &posts[i]

		state := "draft"
		if p.Published {
			state = formatTime(p.PublishedAt)
		}

		rows = append(rows, []string{p.ID, p.Slug, truncate(p.Title, descriptionWidth), state})
	}

	printTable(cmd.OutOrStdout(), []string{"ID", "SLUG", "TITLE", "PUBLISHED"}, rows)
}
