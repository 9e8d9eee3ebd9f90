// internal/cli/get.go
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/page-harvest/harvest/internal/extract"
	urlutil "github.com/page-harvest/harvest/internal/utils/url"
	"github.com/page-harvest/harvest/pkg/models"
)

var (
	getMode         string
	getFormat       string
	getTitleTag     string
	getTitleClass   string
	getContentTag   string
	getContentClass string
	getBannerClass  string
	getBannerAttr   string
	getCategory     string
	getOwner        string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Extract one page's title, content, banner and images",
	Long: `Fetches a single page, statically or through a headless browser, and
extracts its title, content area, banner image and image list using
tag/class selectors.`,
	Example: `  # Static fetch with content selectors
  harvest get https://example.com/article --content-class=container

  # Script-rendered page
  harvest get https://example.com/spa-article --mode=rendered

  # Content as markdown
  harvest get https://example.com/article --content-tag=article --format=markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getMode, "mode", "m", "static", "Fetch mode: static or rendered")
	getCmd.Flags().StringVarP(&getFormat, "format", "f", "text", "Output format: text, json, or markdown")
	getCmd.Flags().StringVar(&getTitleTag, "title-tag", "", "Tag of the title element (e.g. h1)")
	getCmd.Flags().StringVar(&getTitleClass, "title-class", "", "Class of the title element")
	getCmd.Flags().StringVar(&getContentTag, "content-tag", "", "Tag of the content area")
	getCmd.Flags().StringVar(&getContentClass, "content-class", "", "Class of the content area")
	getCmd.Flags().StringVar(&getBannerClass, "banner-class", "", "Class of the banner image")
	getCmd.Flags().StringVar(&getBannerAttr, "banner-attr", "src", "Attribute holding the banner URL")
	getCmd.Flags().StringVar(&getCategory, "category", "", "Category metadata for the page")
	getCmd.Flags().StringVar(&getOwner, "owner", "", "Owner source metadata for the page")
}

func runGet(cmd *cobra.Command, args []string) error {
	pageURL := args[0]
	if err := urlutil.Validate(pageURL); err != nil {
		return err
	}

	mode, err := parseMode(getMode)
	if err != nil {
		return err
	}

	fetcher, err := appInstance.Fetcher(mode)
	if err != nil {
		return err
	}

	desc := models.NewPageDescriptor(pageURL, mode)
	if getCategory != "" {
		desc.Category = getCategory
	}
	if getOwner != "" {
		desc.OwnerSource = getOwner
	}

	log.Info().Str("url", pageURL).Str("mode", string(mode)).Msg("Fetching page")
	page, err := extract.New(cmd.Context(), desc, fetcher)
	if err != nil {
		return err
	}

	titleSel := models.Selector{Tag: getTitleTag, Class: getTitleClass}
	contentSel := models.Selector{Tag: getContentTag, Class: getContentClass}

	title, content := page.Content(titleSel, contentSel)
	if title == "" {
		title = page.Title()
	}
	banner := page.BannerImage(getBannerAttr, getBannerClass)
	images := page.Images(contentSel)

	switch strings.ToLower(getFormat) {
	case "json":
		return printJSON(page, title, content, banner, images)
	case "markdown":
		return printMarkdown(page, contentSel, title)
	default:
		fmt.Printf("Title:  %s\n", title)
		fmt.Printf("URL:    %s\n", pageURL)
		if banner != "" {
			fmt.Printf("Banner: %s\n", banner)
		}
		for _, img := range images {
			fmt.Printf("Image:  %s\n", img)
		}
		fmt.Printf("\n%s\n", content)
		return nil
	}
}

func printJSON(page *extract.Page, title, content, banner string, images []string) error {
	out := map[string]interface{}{
		"url":      page.Descriptor().URL,
		"title":    title,
		"content":  content,
		"banner":   banner,
		"images":   images,
		"metadata": page.Metadata(),
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func printMarkdown(page *extract.Page, contentSel models.Selector, title string) error {
	el := page.Document().Find(contentSel)
	if el == nil {
		return fmt.Errorf("content selector matched nothing")
	}
	html, err := el.HTML()
	if err != nil {
		return fmt.Errorf("failed to read content HTML: %w", err)
	}

	converter := md.NewConverter(page.Descriptor().URL, true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return fmt.Errorf("failed to convert to markdown: %w", err)
	}

	if title != "" {
		fmt.Printf("# %s\n\n", title)
	}
	fmt.Println(markdown)
	return nil
}

func parseMode(raw string) (models.FetchMode, error) {
	switch strings.ToLower(raw) {
	case "", "static":
		return models.ModeStatic, nil
	case "rendered":
		return models.ModeRendered, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be static or rendered)", raw)
	}
}
