package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"rastreio/internal/handlers"
	"rastreio/internal/validation"
)

// OutputFormatter handles different output formats
type OutputFormatter struct {
	format  string
	quiet   bool
	noColor bool

	highStyle lipgloss.Style
	midStyle  lipgloss.Style
	lowStyle  lipgloss.Style
	dimStyle  lipgloss.Style
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(format string, quiet, noColor bool) *OutputFormatter {
	return &OutputFormatter{
		format:    format,
		quiet:     quiet,
		noColor:   noColor,
		highStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		midStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		lowStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		dimStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
	}
}

// PrintDetections prints ranked detection candidates
func (f *OutputFormatter) PrintDetections(results []handlers.DetectionResult) error {
	if f.quiet {
		for _, r := range results {
			fmt.Println(r.Carrier)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(results)
	case "table":
		return f.printDetectionsTable(results)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintValidation prints a validation result
func (f *OutputFormatter) PrintValidation(result *validation.Result) error {
	if f.quiet {
		if result.IsValid {
			fmt.Println(result.Carrier)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(result)
	case "table":
		return f.printValidationTable(result)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintSuggestions prints corrected code candidates
func (f *OutputFormatter) PrintSuggestions(suggestions []string) error {
	if f.format == "json" && !f.quiet {
		return json.NewEncoder(os.Stdout).Encode(suggestions)
	}

	if len(suggestions) == 0 {
		if !f.quiet {
			fmt.Println("No confident corrections found.")
		}
		return nil
	}
	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}

// PrintCarriers prints the carrier pattern table
func (f *OutputFormatter) PrintCarriers(carriers []handlers.CarrierInfo) error {
	if f.quiet {
		for _, c := range carriers {
			fmt.Println(c.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(carriers)
	case "table":
		return f.printCarriersTable(carriers)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintError prints an error message
func (f *OutputFormatter) PrintError(err error) {
	if !f.quiet {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
	}
}

// printDetectionsTable prints candidates in table format
func (f *OutputFormatter) printDetectionsTable(results []handlers.DetectionResult) error {
	if len(results) == 0 {
		fmt.Println("No carrier identified.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "CARRIER\tNAME\tCOUNTRY\tCONFIDENCE\tCRITERIA")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Carrier,
			r.CarrierName,
			r.Country,
			f.confidence(r.Confidence),
			strings.Join(r.MatchedCriteria, ","))
	}

	return nil
}

// printValidationTable prints a validation result in table format
func (f *OutputFormatter) printValidationTable(result *validation.Result) error {
	if result.IsValid {
		fmt.Printf("✓ Valid (%s, %s)\n", result.CarrierName, f.confidence(result.Confidence))
	} else {
		fmt.Println("✗ Invalid")
	}

	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", f.dim(warning))
	}
	return nil
}

// printCarriersTable prints carriers in table format
func (f *OutputFormatter) printCarriersTable(carriers []handlers.CarrierInfo) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tCOUNTRY\tPRIORITY\tCHECKSUM")
	for _, c := range carriers {
		checksum := "-"
		if c.HasChecksum {
			checksum = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Country, c.Priority, checksum)
	}

	return nil
}

// confidence renders a confidence value, color-coded by threshold
func (f *OutputFormatter) confidence(value int) string {
	text := fmt.Sprintf("%d%%", value)
	if f.noColor {
		return text
	}
	switch {
	case value >= 80:
		return f.highStyle.Render(text)
	case value >= 50:
		return f.midStyle.Render(text)
	default:
		return f.lowStyle.Render(text)
	}
}

func (f *OutputFormatter) dim(text string) string {
	if f.noColor {
		return text
	}
	return f.dimStyle.Render(text)
}
