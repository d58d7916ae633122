package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgonek/telegraph"
	"github.com/rgonek/telegraph/content"
)

var flagConvertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a local file (or stdin) to the content node JSON",
	Long: `Convert runs the content pipeline locally without touching the API:
sanitize, restrict to the supported tag vocabulary, rewrite embeddable
media URLs, and print the resulting node JSON.

Examples:
  telegraph convert --format markdown post.md
  cat page.html | telegraph convert`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Fetch a page and print it as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(convertCmd, uploadCmd, exportCmd)
	convertCmd.Flags().StringVar(&flagConvertFormat, "format", "html", "Input format: html or markdown")
}

func runConvert(_ *cobra.Command, args []string) error {
	mode, err := content.ParseMode(flagConvertFormat)
	if err != nil {
		return err
	}

	var raw []byte
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parsed, err := content.Parse(string(raw), mode)
	if err != nil {
		return err
	}
	return printJSON(parsed)
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	url, err := client.UploadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.GetPage(cmd.Context(), args[0], true)
	if err != nil {
		return err
	}

	markdown, err := telegraph.PageMarkdown(page)
	if err != nil {
		return err
	}
	fmt.Println(markdown)
	return nil
}
