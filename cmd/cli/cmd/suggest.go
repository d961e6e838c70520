package cmd

import (
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <tracking-code>",
	Short: "Suggest corrections for an invalid tracking code",
	Long: `Suggest generates repaired variants of a tracking code that failed
validation (whitespace, missing or duplicated country suffix, common OCR
confusions) and prints the ones that re-validate at high confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	suggestions, err := client.Suggest(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}
	return formatter.PrintSuggestions(suggestions)
}
