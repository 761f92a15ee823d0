package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quotegrid/cryptoseed/internal/quotefile"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import quotes from a YAML, TOML, or JSON file",
	Long: `Loads quotes from a corpus file into the quotes table.

The format is picked by extension (.yaml, .yml, .toml, .json). Each
entry needs text; author is optional and difficulty defaults to medium.
Quotes whose text is already in the database are skipped.

Example file (YAML):
  quotes:
    - text: "The only way out is through."
      author: Robert Frost
      difficulty: medium

Example:
  cryptoseed import quotes.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quotes, err := quotefile.Load(args[0])
		if err != nil {
			return err
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		if err := database.Init(); err != nil {
			return err
		}

		imported := 0
		skipped := 0
		for i := range quotes {
			inserted, err := database.InsertQuote(&quotes[i])
			if err != nil {
				return fmt.Errorf("failed to import quote %d: %w", i+1, err)
			}
			if inserted {
				imported++
			} else {
				skipped++
			}
		}

		fmt.Printf("Imported %d quotes (%d duplicates skipped)\n", imported, skipped)
		return nil
	},
}
