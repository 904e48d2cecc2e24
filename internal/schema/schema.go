// Package schema turns fetched markup into card data.
//
// A PageSchema couples the pipeline to one site's markup. When the site
// redesigns, only the schema implementation changes; the fetch, crawl and
// export layers stay as they are.
package schema

import (
	"fmt"

	"github.com/cardex/cardex/internal/card"
)

// PageSchema extracts card data from one site's pages.
type PageSchema interface {
	// ParseListPage extracts card summaries from a list-page document.
	// Relative detail links are resolved against baseURL. A page with no
	// entries yields an empty slice and no error; the crawler uses that
	// as its end-of-results signal.
	ParseListPage(html string, baseURL string) ([]card.Summary, error)

	// ParseDetailPage extracts the rarity token from a detail-page
	// document. Returns a *ParseError when the rarity marker is absent
	// or unrecognized.
	ParseDetailPage(html string) (string, error)

	// Name identifies the schema, e.g. for log output.
	Name() string
}

// ParseError reports markup that doesn't match the schema's expectations.
type ParseError struct {
	Schema string
	What   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse (%s): %s", e.Schema, e.What)
}
