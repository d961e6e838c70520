package cmd

import (
	"github.com/spf13/cobra"

	"rastreio/internal/handlers"
)

var (
	detectUserID   string
	detectCountry  string
	detectBest     bool
	detectDomestic bool
	detectMinConf  int
	detectMax      int
)

var detectCmd = &cobra.Command{
	Use:   "detect <tracking-code>",
	Short: "Identify the carrier behind a tracking code",
	Long: `Detect scores a tracking code against the carrier pattern table and
prints the ranked candidates with their confidence. With --user, the user's
recent shipment history boosts carriers they use frequently.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectUserID, "user", "u", "", "User ID for history boosting")
	detectCmd.Flags().StringVar(&detectCountry, "country", "", "Country code (default BR)")
	detectCmd.Flags().BoolVar(&detectBest, "best", false, "Return only the best candidate")
	detectCmd.Flags().BoolVar(&detectDomestic, "domestic", false, "Exclude international carriers")
	detectCmd.Flags().IntVar(&detectMinConf, "min-confidence", 0, "Minimum confidence (default 50)")
	detectCmd.Flags().IntVar(&detectMax, "max-results", 0, "Maximum results (default 5)")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	req := &handlers.DetectRequest{
		Code:    args[0],
		UserID:  detectUserID,
		Country: detectCountry,
	}
	if detectDomestic {
		international := false
		req.IncludeInternational = &international
	}
	if detectMinConf > 0 {
		req.MinConfidence = &detectMinConf
	}
	if detectMax > 0 {
		req.MaxResults = &detectMax
	}

	if detectBest {
		result, err := client.DetectBest(req)
		if err != nil {
			formatter.PrintError(err)
			return err
		}
		if result == nil {
			return formatter.PrintDetections(nil)
		}
		return formatter.PrintDetections([]handlers.DetectionResult{*result})
	}

	results, err := client.Detect(req)
	if err != nil {
		formatter.PrintError(err)
		return err
	}
	return formatter.PrintDetections(results)
}
