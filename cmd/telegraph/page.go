package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgonek/telegraph"
	"github.com/rgonek/telegraph/content"
)

var (
	flagTitle         string
	flagFile          string
	flagFormat        string
	flagReturnContent bool
	flagPageAuthor    string
	flagPageAuthorURL string
	flagOffset        int
	flagLimit         int
	flagYear          int
	flagMonth         int
	flagDay           int
	flagHour          int
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Publish and inspect pages",
}

var pageCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new page from a file or stdin",
	RunE:  runPageCreate,
}

var pageEditCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Replace an existing page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageEdit,
}

var pageGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Fetch a page with its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's pages",
	RunE:  runPageList,
}

var pageViewsCmd = &cobra.Command{
	Use:   "views <path>",
	Short: "Show view counts for a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageViews,
}

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.AddCommand(pageCreateCmd, pageEditCmd, pageGetCmd, pageListCmd, pageViewsCmd)

	for _, cmd := range []*cobra.Command{pageCreateCmd, pageEditCmd} {
		cmd.Flags().StringVar(&flagTitle, "title", "", "Page title (required)")
		cmd.Flags().StringVar(&flagFile, "file", "", "Content file (default: stdin)")
		cmd.Flags().StringVar(&flagFormat, "format", "html", "Content format: html or markdown")
		cmd.Flags().StringVar(&flagPageAuthor, "author-name", "", "Author name shown on the page")
		cmd.Flags().StringVar(&flagPageAuthorURL, "author-url", "", "Author URL shown on the page")
		cmd.Flags().BoolVar(&flagReturnContent, "return-content", false, "Include content in the response")
	}

	pageListCmd.Flags().IntVar(&flagOffset, "offset", 0, "Sequential number of the first page to return")
	pageListCmd.Flags().IntVar(&flagLimit, "limit", 0, "Number of pages to return (0 = API default)")

	pageViewsCmd.Flags().IntVar(&flagYear, "year", 0, "Limit views to a year")
	pageViewsCmd.Flags().IntVar(&flagMonth, "month", 0, "Limit views to a month (requires --year)")
	pageViewsCmd.Flags().IntVar(&flagDay, "day", 0, "Limit views to a day (requires --month)")
	pageViewsCmd.Flags().IntVar(&flagHour, "hour", 0, "Limit views to an hour (requires --day)")
}

// readContent loads the page body from --file or stdin and converts it.
func readContent() (content.Content, error) {
	mode, err := content.ParseMode(flagFormat)
	if err != nil {
		return content.Content{}, err
	}

	var raw []byte
	if flagFile != "" {
		raw, err = os.ReadFile(flagFile)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return content.Content{}, fmt.Errorf("read content: %w", err)
	}

	return content.Parse(string(raw), mode)
}

func pageRequest() (telegraph.CreatePageRequest, error) {
	if flagTitle == "" {
		return telegraph.CreatePageRequest{}, fmt.Errorf("--title is required")
	}
	parsed, err := readContent()
	if err != nil {
		return telegraph.CreatePageRequest{}, err
	}
	return telegraph.CreatePageRequest{
		Title:         flagTitle,
		AuthorName:    flagPageAuthor,
		AuthorURL:     flagPageAuthorURL,
		Content:       parsed,
		ReturnContent: flagReturnContent,
	}, nil
}

func runPageCreate(cmd *cobra.Command, _ []string) error {
	req, err := pageRequest()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.CreatePage(cmd.Context(), req)
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runPageEdit(cmd *cobra.Command, args []string) error {
	req, err := pageRequest()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.EditPage(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runPageGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.GetPage(cmd.Context(), args[0], true)
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runPageList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	list, err := client.GetPageList(cmd.Context(), flagOffset, flagLimit)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func runPageViews(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	views, err := client.GetViews(cmd.Context(), args[0], telegraph.ViewsFilter{
		Year:  flagYear,
		Month: flagMonth,
		Day:   flagDay,
		Hour:  flagHour,
	})
	if err != nil {
		return err
	}
	return printJSON(views)
}
