package validation

import (
	"context"
	"log/slog"
	"strings"

	"rastreio/internal/detector"
)

// Confidence thresholds. Open discovery accepts a looser match than an
// authoritative carrier-specific confirmation.
const (
	ValidThreshold   = 50
	CarrierThreshold = 70
)

// User-facing messages, surfaced directly by the dashboard and import flows.
const (
	msgEmptyCode      = "Código inválido"
	msgNoCarrier      = "Transportadora não identificada para o código informado"
	msgUnknownCarrier = "Transportadora desconhecida"
	msgLowConfidence  = "Confiança baixa na identificação da transportadora"
	msgFormatMismatch = "Código não corresponde ao formato da transportadora"
)

// Result is the outcome of validating a tracking code. IsValid false is an
// ordinary, actionable outcome, never an error condition.
type Result struct {
	IsValid     bool     `json:"is_valid"`
	Carrier     string   `json:"carrier,omitempty"`
	CarrierName string   `json:"carrier_name,omitempty"`
	Confidence  int      `json:"confidence"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
}

// Validator gates tracking codes on detection confidence before they are
// persisted or displayed.
type Validator struct {
	detector *detector.Detector
	logger   *slog.Logger
}

// New creates a Validator on top of the given detector.
func New(d *detector.Detector, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{detector: d, logger: logger}
}

// Validate checks whether any known carrier confidently matches the code.
// Empty or whitespace-only input is immediately invalid, without invoking
// detection.
func (v *Validator) Validate(ctx context.Context, code string) Result {
	result := Result{Errors: []string{}, Warnings: []string{}}

	if strings.TrimSpace(code) == "" {
		result.Errors = append(result.Errors, msgEmptyCode)
		return result
	}

	best := v.detector.DetectBest(ctx, code, detector.Options{})
	if best == nil {
		result.Errors = append(result.Errors, msgNoCarrier)
		return result
	}

	result.Carrier = best.Carrier.ID
	result.CarrierName = best.Carrier.Name
	result.Confidence = best.Confidence
	result.IsValid = best.Confidence >= ValidThreshold

	if result.IsValid && best.Confidence < CarrierThreshold {
		result.Warnings = append(result.Warnings, msgLowConfidence)
	}
	return result
}

// ValidateForCarrier checks whether the code belongs to one specific carrier,
// scoring against that single pattern with a stricter acceptance threshold.
func (v *Validator) ValidateForCarrier(ctx context.Context, code, carrierID string) Result {
	result := Result{Errors: []string{}, Warnings: []string{}}

	if strings.TrimSpace(code) == "" {
		result.Errors = append(result.Errors, msgEmptyCode)
		return result
	}

	scored, ok := v.detector.ScoreCarrier(code, carrierID)
	if !ok {
		result.Errors = append(result.Errors, msgUnknownCarrier+": "+carrierID)
		return result
	}

	result.Carrier = scored.Carrier.ID
	result.CarrierName = scored.Carrier.Name
	result.Confidence = scored.Confidence
	result.IsValid = scored.Confidence >= CarrierThreshold

	if !result.IsValid {
		result.Errors = append(result.Errors, msgFormatMismatch)
	}
	return result
}
