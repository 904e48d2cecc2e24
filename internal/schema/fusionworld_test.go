package schema

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const listBaseURL = "https://www.dbs-cardgame.com/fw/en/cardlist/index.php?page=1"

// listEntry renders one li.cardItem the way the live site does.
func listEntry(alt, detailSrc string) string {
	var b strings.Builder
	b.WriteString(`<li class="cardItem">`)
	if detailSrc != "" {
		fmt.Fprintf(&b, `<a data-fancybox="cards" data-src="%s">`, detailSrc)
	}
	fmt.Fprintf(&b, `<img src="/images/card.png" alt="%s">`, alt)
	if detailSrc != "" {
		b.WriteString(`</a>`)
	}
	b.WriteString(`</li>`)
	return b.String()
}

func listPage(entries ...string) string {
	return `<html><body><ul class="cardList">` + strings.Join(entries, "") + `</ul></body></html>`
}

func detailPage(rarity string) string {
	return fmt.Sprintf(`<html><body><div class="cardDetail"><div class="rarity">%s</div></div></body></html>`, rarity)
}

func TestFusionWorld_ParseListPage(t *testing.T) {
	s := NewFusionWorld()
	html := listPage(
		listEntry("FB01-001 Son Goku", "detail.php?card_no=FB01-001"),
		listEntry("FB01-002 Vegeta", "detail.php?card_no=FB01-002"),
	)

	summaries, err := s.ParseListPage(html, listBaseURL)
	if err != nil {
		t.Fatalf("ParseListPage() error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	first := summaries[0]
	if first.Name != "Son Goku" {
		t.Errorf("expected name %q, got %q", "Son Goku", first.Name)
	}
	if first.Code != "FB01-001" {
		t.Errorf("expected code %q, got %q", "FB01-001", first.Code)
	}
	want := "https://www.dbs-cardgame.com/fw/en/cardlist/detail.php?card_no=FB01-001"
	if first.DetailURL != want {
		t.Errorf("expected detail URL %q, got %q", want, first.DetailURL)
	}
}

func TestFusionWorld_ParseListPage_Empty(t *testing.T) {
	s := NewFusionWorld()

	summaries, err := s.ParseListPage(listPage(), listBaseURL)
	if err != nil {
		t.Fatalf("ParseListPage() error: %v", err)
	}

	if len(summaries) != 0 {
		t.Errorf("expected no summaries on an empty page, got %d", len(summaries))
	}
}

func TestFusionWorld_ParseListPage_SkipsEntryWithoutCode(t *testing.T) {
	s := NewFusionWorld()
	html := listPage(
		listEntry("promotional artwork", "detail.php?card_no=PROMO"),
		listEntry("FB01-003 Bulma", "detail.php?card_no=FB01-003"),
	)

	summaries, err := s.ParseListPage(html, listBaseURL)
	if err != nil {
		t.Fatalf("ParseListPage() error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Code != "FB01-003" {
		t.Errorf("expected code FB01-003, got %q", summaries[0].Code)
	}
}

func TestFusionWorld_ParseListPage_SkipsEntryWithoutDetailLink(t *testing.T) {
	s := NewFusionWorld()
	html := listPage(listEntry("FB01-004 Piccolo", ""))

	summaries, err := s.ParseListPage(html, listBaseURL)
	if err != nil {
		t.Fatalf("ParseListPage() error: %v", err)
	}

	if len(summaries) != 0 {
		t.Errorf("expected entry without detail link to be skipped, got %d summaries", len(summaries))
	}
}

func TestFusionWorld_ParseListPage_AbsoluteDetailLink(t *testing.T) {
	s := NewFusionWorld()
	abs := "https://cdn.example.com/cards/FB01-005.html"
	html := listPage(listEntry("FB01-005 Krillin", abs))

	summaries, err := s.ParseListPage(html, listBaseURL)
	if err != nil {
		t.Fatalf("ParseListPage() error: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].DetailURL != abs {
		t.Errorf("absolute detail URL should be kept as-is, got %q", summaries[0].DetailURL)
	}
}

func TestFusionWorld_ParseDetailPage(t *testing.T) {
	s := NewFusionWorld()

	rarity, err := s.ParseDetailPage(detailPage("SCR"))
	if err != nil {
		t.Fatalf("ParseDetailPage() error: %v", err)
	}
	if rarity != "SCR" {
		t.Errorf("expected rarity SCR, got %q", rarity)
	}
}

func TestFusionWorld_ParseDetailPage_NormalizesToken(t *testing.T) {
	s := NewFusionWorld()

	rarity, err := s.ParseDetailPage(detailPage("  sr\n"))
	if err != nil {
		t.Fatalf("ParseDetailPage() error: %v", err)
	}
	if rarity != "SR" {
		t.Errorf("expected rarity SR, got %q", rarity)
	}
}

func TestFusionWorld_ParseDetailPage_MissingBadge(t *testing.T) {
	s := NewFusionWorld()

	_, err := s.ParseDetailPage(`<html><body><p>no badge here</p></body></html>`)
	if err == nil {
		t.Fatal("expected error for missing rarity badge")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestFusionWorld_ParseDetailPage_UnknownToken(t *testing.T) {
	s := NewFusionWorld()

	_, err := s.ParseDetailPage(detailPage("ULTRA"))
	if err == nil {
		t.Fatal("expected error for unknown rarity token")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestSplitAltText(t *testing.T) {
	tests := []struct {
		alt      string
		wantName string
		wantCode string
	}{
		{"FB01-001 Son Goku", "Son Goku", "FB01-001"},
		{"FB01-001-SP Son Goku", "Son Goku", "FB01-001-SP"},
		{"Son Goku", "Son Goku", ""},
		{"FB01-001", "FB01-001", "FB01-001"},
		{"", "", ""},
	}

	for _, tt := range tests {
		name, code := splitAltText(tt.alt)
		if name != tt.wantName || code != tt.wantCode {
			t.Errorf("splitAltText(%q) = (%q, %q), want (%q, %q)",
				tt.alt, name, code, tt.wantName, tt.wantCode)
		}
	}
}
