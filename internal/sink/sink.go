// internal/sink/sink.go
package sink

import (
	"context"

	"github.com/page-harvest/harvest/pkg/models"
)

// Sink persists an ordered batch of article records. Storage technology,
// batching and connection handling are entirely the implementation's
// concern; the crawl core only hands over the aggregate list.
type Sink interface {
	WriteMany(ctx context.Context, records []models.ArticleRecord) error
	Close() error
}
