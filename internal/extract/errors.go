// internal/extract/errors.go
package extract

import "fmt"

// ExtractionError means the extraction subject itself, the page's
// document, could not be obtained. Selectors that merely match nothing
// degrade to absent values instead; they never raise.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
