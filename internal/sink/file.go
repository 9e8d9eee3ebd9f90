package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/page-harvest/harvest/pkg/models"
)

// CSV appends article records to a CSV file, one row per record with a
// header row written up front.
type CSV struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSV creates (or truncates) the file at path and writes the header.
func NewCSV(path string) (*CSV, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	writer := csv.NewWriter(file)
	header := []string{"id", "title", "content", "banner_url", "images", "category", "owner_source", "source_url", "fetched_at"}
	if err := writer.Write(header); err != nil {
		file.Close()
		return nil, err
	}
	return &CSV{file: file, writer: writer}, nil
}

func (c *CSV) WriteMany(ctx context.Context, records []models.ArticleRecord) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{
			rec.ID.String(),
			rec.Title,
			rec.Content,
			rec.BannerURL,
			strings.Join(rec.Images, " "),
			rec.Category,
			rec.OwnerSource,
			rec.SourceURL,
			rec.FetchedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := c.writer.Write(row); err != nil {
			return err
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSV) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

// JSONFile writes all records as one indented JSON array. The whole
// batch is written on WriteMany; repeated calls overwrite the file.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) WriteMany(ctx context.Context, records []models.ArticleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, content, 0644)
}

func (j *JSONFile) Close() error { return nil }
