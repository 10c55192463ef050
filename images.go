package main

import (
	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/storefront"
)

func newImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Upload and delete hosted images",
	}

	upload := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload image files",
		Long: `Upload image files. Each file is sent in its own request, several at a
time (uploads.parallel_uploads). With --batch all files go in one request.
Files over uploads.max_image_size are rejected before anything is sent.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImagesUpload,
	}
	upload.Flags().String("folder", "", "destination folder on the image host")
	upload.Flags().Bool("batch", false, "send all files in a single request")

	rm := &cobra.Command{
		Use:   "rm <public-id>",
		Short: "Delete a hosted image",
		Args:  cobra.ExactArgs(1),
		RunE:  runImageDelete,
	}

	cmd.AddCommand(upload, rm)

	return cmd
}

func runImagesUpload(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	folder, _ := cmd.Flags().GetString("folder")
	batch, _ := cmd.Flags().GetBool("batch")

	var (
		images []storefront.Image
		err    error
	)

	if batch {
		images, err = cc.Service.UploadBatch(cmd.Context(), args, folder)
	} else {
		images, err = cc.Service.UploadImages(cmd.Context(), args, folder)
	}

	if err != nil {
		return err
	}

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), images)
	}

	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{img.PublicID, img.URL})
	}

	printTable(cmd.OutOrStdout(), []string{"PUBLIC ID", "URL"}, rows)
	cc.Statusf("Uploaded %d image(s), limit %s each.\n", len(images), maxSizeLabel(cc.Cfg.MaxImageSize))

	return nil
}

func runImageDelete(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	if err := cc.Service.DeleteImage(cmd.Context(), args[0]); err != nil {
		return err
	}

	cc.Statusf("Deleted image %s.\n", args[0])

	return nil
}

func maxSizeLabel(n int64) string {
	if n == 0 {
		return "none"
	}

	return formatSize(n)
}
