package cmd

import (
	"github.com/spf13/cobra"
)

var carriersCmd = &cobra.Command{
	Use:     "carriers",
	Aliases: []string{"ls"},
	Short:   "List known carriers",
	Long:    `List the carrier pattern table the detection engine scores against.`,
	RunE:    runCarriers,
}

func init() {
	rootCmd.AddCommand(carriersCmd)
}

func runCarriers(cmd *cobra.Command, args []string) error {
	formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	carriers, err := client.GetCarriers()
	if err != nil {
		formatter.PrintError(err)
		return err
	}
	return formatter.PrintCarriers(carriers)
}
