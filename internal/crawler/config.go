package crawler

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cardex/cardex/internal/card"
)

// Config holds the crawl configuration. It is passed in explicitly; the
// crawler keeps no ambient state.
type Config struct {
	// BaseURL is the card-list search endpoint.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Category is the site's category ID for the expansion to scrape,
	// e.g. "583201" for Manga Booster 01.
	Category string `mapstructure:"category" validate:"required"`

	// StartPage is the first list page to fetch.
	StartPage int `mapstructure:"start_page" validate:"min=1"`

	// Rarities is the allow-set of rarity tokens to retain.
	Rarities []string `mapstructure:"rarities" validate:"required,min=1"`

	// ListDelay is the politeness pause before each list-page request.
	ListDelay time.Duration `mapstructure:"list_delay"`

	// DetailDelay is the politeness pause before each detail-page request.
	DetailDelay time.Duration `mapstructure:"detail_delay"`

	// Concurrency bounds the detail-page worker pool.
	Concurrency int `mapstructure:"concurrency" validate:"min=1"`

	// KeepGoing skips cards whose detail fetch fails instead of aborting
	// the run. Omissions are counted and logged.
	KeepGoing bool `mapstructure:"keep_going"`

	// Search filter ranges forwarded to the site verbatim. The site
	// requires them for a non-empty result set.
	CostMin       int `mapstructure:"cost_min"`
	CostMax       int `mapstructure:"cost_max"`
	PowerMin      int `mapstructure:"power_min"`
	PowerMax      int `mapstructure:"power_max"`
	ComboPowerMin int `mapstructure:"combo_power_min"`
	ComboPowerMax int `mapstructure:"combo_power_max"`
}

// DefaultConfig returns the crawl defaults. The filter ranges cover the
// full span of printed cards so nothing is excluded server-side.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://www.dbs-cardgame.com/fw/en/cardlist/index.php",
		StartPage:     1,
		Rarities:      []string{"R", "SR", "SCR"},
		ListDelay:     time.Second,
		DetailDelay:   500 * time.Millisecond,
		Concurrency:   1,
		CostMax:       9,
		PowerMax:      55000,
		ComboPowerMax: 10000,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid crawl config: %w", err)
	}
	return nil
}

// AllowSet returns the configured rarity allow-set.
func (c Config) AllowSet() card.RaritySet {
	return card.NewRaritySet(c.Rarities)
}

// ListPageURL builds the URL for one list page.
func (c Config) ListPageURL(page int) string {
	params := url.Values{}
	params.Set("search", "true")
	params.Set("category[]", c.Category)
	params.Set("page", strconv.Itoa(page))
	params.Set("cost_min", strconv.Itoa(c.CostMin))
	params.Set("cost_max", strconv.Itoa(c.CostMax))
	params.Set("power_min", strconv.Itoa(c.PowerMin))
	params.Set("power_max", strconv.Itoa(c.PowerMax))
	params.Set("combo_power_min", strconv.Itoa(c.ComboPowerMin))
	params.Set("combo_power_max", strconv.Itoa(c.ComboPowerMax))
	return c.BaseURL + "?" + params.Encode()
}
