package crawler

import (
	"github.com/cardex/cardex/internal/card"
	"github.com/cardex/cardex/internal/logger"
)

// joinAndFilter merges summaries with their rarities (aligned by index),
// deduplicates by card code and keeps only cards whose rarity is in the
// allow-set. Output order follows summary discovery order. Reprints show
// up under the same code on later pages; the first occurrence wins.
func joinAndFilter(summaries []card.Summary, rarities []string, allow card.RaritySet, stats *Stats) []card.Record {
	seen := make(map[string]bool, len(summaries))
	records := make([]card.Record, 0, len(summaries))

	for i, s := range summaries {
		if seen[s.Code] {
			stats.Duplicates++
			logger.Debug("duplicate card code dropped", "code", s.Code)
			continue
		}
		seen[s.Code] = true

		rarity := rarities[i]
		if rarity == "" {
			stats.Unmatched++
			logger.Debug("card without rarity dropped", "code", s.Code)
			continue
		}

		if !allow.Contains(rarity) {
			stats.FilteredOut++
			continue
		}

		records = append(records, card.Record{
			Name:   s.Name,
			Code:   s.Code,
			Rarity: rarity,
		})
	}

	return records
}
