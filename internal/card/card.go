// Package card defines the data model shared by the crawl pipeline.
package card

import (
	"sort"
	"strings"
)

// Summary is one entry scraped from a card-list page. List pages do not
// carry the rarity, only the link to the detail page that does.
type Summary struct {
	Name      string
	Code      string
	DetailURL string
}

// Record is a fully resolved card: a Summary joined with the rarity read
// from its detail page.
type Record struct {
	Name   string `json:"name" yaml:"name"`
	Code   string `json:"code" yaml:"code"`
	Rarity string `json:"rarity" yaml:"rarity"`
}

// KnownRarities are the rarity tokens the card site currently uses.
var KnownRarities = []string{"C", "UC", "R", "SR", "SCR", "PR", "L"}

// NormalizeRarity canonicalizes a scraped rarity token for comparison
// against a RaritySet.
func NormalizeRarity(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsKnownRarity reports whether the (already normalized) token is one the
// site is known to emit.
func IsKnownRarity(s string) bool {
	for _, r := range KnownRarities {
		if s == r {
			return true
		}
	}
	return false
}

// RaritySet is the allow-set of rarity tokens to retain in the export.
type RaritySet map[string]struct{}

// NewRaritySet builds a set from raw tokens, normalizing each one.
func NewRaritySet(tokens []string) RaritySet {
	set := make(RaritySet, len(tokens))
	for _, t := range tokens {
		t = NormalizeRarity(t)
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether the normalized token is in the set.
func (s RaritySet) Contains(token string) bool {
	_, ok := s[NormalizeRarity(token)]
	return ok
}

// Tokens returns the set's members in sorted order.
func (s RaritySet) Tokens() []string {
	tokens := make([]string, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// String renders the set for log output, e.g. "R,SR,SCR".
func (s RaritySet) String() string {
	return strings.Join(s.Tokens(), ",")
}
