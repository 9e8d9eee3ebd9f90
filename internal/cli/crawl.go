// internal/cli/crawl.go
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/page-harvest/harvest/internal/crawl"
	"github.com/page-harvest/harvest/internal/sink"
	"github.com/page-harvest/harvest/pkg/models"
)

var (
	crawlMode         string
	crawlStart        int
	crawlEnd          int
	crawlStep         int
	crawlPages        string
	crawlCategory     string
	crawlOwner        string
	crawlAnchorTag    string
	crawlAnchorClass  string
	crawlTitleTag     string
	crawlTitleClass   string
	crawlContentTag   string
	crawlContentClass string
	crawlBannerClass  string
	crawlBannerAttr   string
	crawlImageTag     string
	crawlImageClass   string
	crawlDBPath       string
	crawlDBTable      string
	crawlOutPath      string
	crawlNoProgress   bool
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl <url-template>",
	Short: "Walk a paginated listing and extract every linked article",
	Long: `Expands a URL template over a page range (or an explicit page index
list), collects the article links on every page-list page, extracts each
article's title, content, banner and images, and writes the records to a
SQLite database or stdout as JSON.

The template carries a %d verb for the page index, e.g.
"https://example.com/health-info?page=%d".`,
	Example: `  # Pages 1-5 of a static listing
  harvest crawl "https://example.com/news?page=%d" --end=5 --anchor-class=article-link \
    --title-tag=h1 --content-class=container --banner-class=hero-img

  # Script-rendered listing, explicit page indices, persisted to SQLite
  harvest crawl "https://example.com/c221-pet-cat/p-%d" --mode=rendered --pages=2,4,6 \
    --anchor-class=box-border --db=articles.db`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVarP(&crawlMode, "mode", "m", "static", "Fetch mode: static or rendered")
	crawlCmd.Flags().IntVar(&crawlStart, "start", 1, "First page index")
	crawlCmd.Flags().IntVar(&crawlEnd, "end", 1, "Last page index (inclusive)")
	crawlCmd.Flags().IntVar(&crawlStep, "step", 1, "Page index step")
	crawlCmd.Flags().StringVar(&crawlPages, "pages", "", "Explicit page indices (comma-separated, supersedes the range)")
	crawlCmd.Flags().StringVar(&crawlCategory, "category", "", "Category metadata for all records")
	crawlCmd.Flags().StringVar(&crawlOwner, "owner", "", "Owner source metadata for all records")
	crawlCmd.Flags().StringVar(&crawlAnchorTag, "anchor-tag", "a", "Tag of the article links on page-list pages")
	crawlCmd.Flags().StringVar(&crawlAnchorClass, "anchor-class", "", "Class of the article links on page-list pages")
	crawlCmd.Flags().StringVar(&crawlTitleTag, "title-tag", "", "Tag of the title element on article pages")
	crawlCmd.Flags().StringVar(&crawlTitleClass, "title-class", "", "Class of the title element on article pages")
	crawlCmd.Flags().StringVar(&crawlContentTag, "content-tag", "", "Tag of the content area on article pages")
	crawlCmd.Flags().StringVar(&crawlContentClass, "content-class", "", "Class of the content area on article pages")
	crawlCmd.Flags().StringVar(&crawlBannerClass, "banner-class", "", "Class of the banner image on article pages")
	crawlCmd.Flags().StringVar(&crawlBannerAttr, "banner-attr", "src", "Attribute holding the banner URL")
	crawlCmd.Flags().StringVar(&crawlImageTag, "image-area-tag", "", "Tag of the image search area (defaults to the content area)")
	crawlCmd.Flags().StringVar(&crawlImageClass, "image-area-class", "", "Class of the image search area")
	crawlCmd.Flags().StringVar(&crawlDBPath, "db", "", "SQLite database path")
	crawlCmd.Flags().StringVar(&crawlDBTable, "table", "articles", "SQLite table name")
	crawlCmd.Flags().StringVarP(&crawlOutPath, "out", "o", "", "Output file (.json or .csv); omit along with --db to print JSON to stdout")
	crawlCmd.Flags().BoolVar(&crawlNoProgress, "no-progress", false, "Disable the progress bar")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(crawlMode)
	if err != nil {
		return err
	}

	custom, err := parsePageList(crawlPages)
	if err != nil {
		return err
	}

	cfg := models.CrawlConfig{
		URLTemplate: args[0],
		Mode:        mode,
		Category:    crawlCategory,
		OwnerSource: crawlOwner,
		Pages: models.PageRange{
			Start:  crawlStart,
			End:    crawlEnd,
			Step:   crawlStep,
			Custom: custom,
		},
		AnchorSelector:  models.Selector{Tag: crawlAnchorTag, Class: crawlAnchorClass},
		TitleSelector:   models.Selector{Tag: crawlTitleTag, Class: crawlTitleClass},
		ContentSelector: models.Selector{Tag: crawlContentTag, Class: crawlContentClass},
		BannerClass:     crawlBannerClass,
		BannerAttr:      crawlBannerAttr,
		ImageArea:       models.Selector{Tag: crawlImageTag, Class: crawlImageClass},
	}

	fetcher, err := appInstance.Fetcher(mode)
	if err != nil {
		return err
	}

	crawler, err := crawl.New(fetcher, cfg, crawl.Options{
		Progress: !crawlNoProgress,
	})
	if err != nil {
		return err
	}

	records, err := crawler.Articles(cmd.Context())
	if err != nil {
		return err
	}

	store, dest, err := openSink()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.WriteMany(cmd.Context(), records); err != nil {
			return err
		}
		fmt.Printf("%d records written to %s\n", len(records), dest)
		return nil
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	log.Info().Int("records", len(records)).Msg("Crawl finished")
	return nil
}

// openSink picks the destination from flags. A nil sink with nil error
// means stdout.
func openSink() (sink.Sink, string, error) {
	switch {
	case crawlDBPath != "":
		store, err := sink.NewSQLite(crawlDBPath, crawlDBTable)
		return store, crawlDBPath, err
	case strings.HasSuffix(crawlOutPath, ".csv"):
		store, err := sink.NewCSV(crawlOutPath)
		return store, crawlOutPath, err
	case crawlOutPath != "":
		return sink.NewJSONFile(crawlOutPath), crawlOutPath, nil
	}
	return nil, "", nil
}

func parsePageList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid page index %q: %w", part, err)
		}
		indices = append(indices, n)
	}
	return indices, nil
}
