package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cardex/cardex/internal/card"
	"github.com/cardex/cardex/internal/logger"
)

// codePattern splits an image alt text like "FB01-001 Son Goku" into card
// code and display name. The code part is optional: promo images sometimes
// carry a bare name.
var codePattern = regexp.MustCompile(`^([A-Z0-9]+(?:-[A-Z0-9]+){1,2})?\s*(.*)$`)

// FusionWorld parses the dbs-cardgame.com Fusion World card list.
//
// List pages render one li.cardItem per card; the code and name live in
// the card image's alt text, and the detail link in the fancybox anchor's
// data-src attribute. Detail pages carry the rarity in a div.rarity badge.
type FusionWorld struct{}

// NewFusionWorld creates the Fusion World page schema.
func NewFusionWorld() *FusionWorld {
	return &FusionWorld{}
}

// Name identifies the schema.
func (s *FusionWorld) Name() string {
	return "fusionworld"
}

// ParseListPage extracts card summaries from a list page.
func (s *FusionWorld) ParseListPage(html string, baseURL string) ([]card.Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse list page: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}

	var summaries []card.Summary
	doc.Find("li.cardItem").Each(func(i int, item *goquery.Selection) {
		name, code := splitAltText(item.Find("img").First().AttrOr("alt", ""))
		if code == "" {
			logger.Debug("list entry without card code skipped", "index", i, "name", name)
			return
		}

		detail := item.Find(`a[data-fancybox="cards"]`).First().AttrOr("data-src", "")
		if detail == "" {
			logger.Debug("list entry without detail link skipped", "code", code)
			return
		}

		detailURL, err := url.Parse(detail)
		if err != nil {
			logger.Debug("list entry with bad detail link skipped", "code", code, "link", detail)
			return
		}
		if !detailURL.IsAbs() {
			detailURL = base.ResolveReference(detailURL)
		}

		summaries = append(summaries, card.Summary{
			Name:      name,
			Code:      code,
			DetailURL: detailURL.String(),
		})
	})

	return summaries, nil
}

// ParseDetailPage extracts the rarity token from a detail page.
func (s *FusionWorld) ParseDetailPage(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse detail page: %w", err)
	}

	badge := doc.Find("div.rarity").First()
	if badge.Length() == 0 {
		return "", &ParseError{Schema: s.Name(), What: "rarity badge not found"}
	}

	rarity := card.NormalizeRarity(badge.Text())
	if !card.IsKnownRarity(rarity) {
		return "", &ParseError{Schema: s.Name(), What: fmt.Sprintf("unknown rarity token %q", rarity)}
	}

	return rarity, nil
}

// splitAltText separates an image alt text into display name and card
// code. Either part may be empty.
func splitAltText(alt string) (name, code string) {
	alt = strings.TrimSpace(alt)
	if alt == "" {
		return "", ""
	}

	m := codePattern.FindStringSubmatch(alt)
	if m == nil {
		return alt, ""
	}

	code = m[1]
	name = strings.TrimSpace(m[2])
	if name == "" {
		// Alt text was only a code; fall back to the full text so the
		// export never has an empty name column.
		name = alt
	}
	return name, code
}
