// internal/paginate/paginate.go
package paginate

import (
	"fmt"
	"strings"

	"github.com/page-harvest/harvest/pkg/models"
)

// Expand turns a URL template plus a page range into the ordered list of
// concrete page-list URLs. A custom index list supersedes the range and
// is emitted in exactly the caller's order, duplicates included; the
// range is inclusive of End when reachable by Step. Malformed input is
// rejected with a *models.ConfigError before any network activity.
func Expand(template string, pages models.PageRange) ([]string, error) {
	if template == "" {
		return nil, &models.ConfigError{Field: "url_template", Message: "is required"}
	}
	if !strings.Contains(template, "%d") {
		return nil, &models.ConfigError{Field: "url_template", Message: "must contain a %d page-index verb"}
	}
	if err := pages.Validate(); err != nil {
		return nil, err
	}

	if len(pages.Custom) > 0 {
		urls := make([]string, 0, len(pages.Custom))
		for _, index := range pages.Custom {
			urls = append(urls, fmt.Sprintf(template, index))
		}
		return urls, nil
	}

	urls := make([]string, 0, (pages.End-pages.Start)/pages.Step+1)
	for index := pages.Start; index <= pages.End; index += pages.Step {
		urls = append(urls, fmt.Sprintf(template, index))
	}
	return urls, nil
}
