// Package commands implements the CLI commands for cardex.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cardex",
	Short: "Card-list scraper with rarity filtering",
	Long: `Cardex scrapes a trading card game's public card list, resolves each
card's rarity from its detail page, and exports the cards matching a
rarity allow-set as CSV (or JSON, JSONL, YAML).

Examples:
  # Export R/SR/SCR cards of one expansion to cards.csv
  cardex scrape --category 583201

  # Only secret rares, as JSON, fetching four detail pages at a time
  cardex scrape --category 583201 --rarity SCR -o scr.json --format json -c 4`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.cardex.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".cardex")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CARDEX")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
