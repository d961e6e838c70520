package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCarrier string

var validateCmd = &cobra.Command{
	Use:   "validate <tracking-code>",
	Short: "Validate a tracking code",
	Long: `Validate checks whether a tracking code matches any known carrier
format with sufficient confidence. With --carrier, the code is confirmed
against that specific carrier's pattern at a stricter threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateCarrier, "carrier", "c", "", "Confirm against a specific carrier ID")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	result, err := client.Validate(args[0], validateCarrier)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if err := formatter.PrintValidation(result); err != nil {
		return err
	}
	if !result.IsValid {
		return fmt.Errorf("invalid tracking code")
	}
	return nil
}
