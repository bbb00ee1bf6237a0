// Package identity cross-checks a claimant's stated name against OCR text
// extracted from their ID card. The check is deliberately conservative:
// substring containment, not fuzzy scoring, because an ID card's OCR output
// is expected to carry the printed name verbatim modulo character folding.
package identity

import (
	"strings"

	"wathiq/internal/names"
)

// FailureReason says why a verification did not pass.
type FailureReason string

const (
	// ReasonOCRUnavailable means no text was recovered from the ID image.
	ReasonOCRUnavailable FailureReason = "ocr_unavailable"
	// ReasonNameInsufficient means the claimed name has fewer than two
	// tokens, so there is nothing safe to compare.
	ReasonNameInsufficient FailureReason = "name_insufficient"
	// ReasonMismatch means the claimed name was not found in the OCR text.
	ReasonMismatch FailureReason = "mismatch"
)

// Result is the outcome of one verification. Ephemeral; never persisted.
type Result struct {
	Passed bool
	Reason FailureReason
}

// Verify checks that the first two tokens of claimedName appear, normalized
// and whitespace-free, as a contiguous substring of the normalized OCR text.
//
// Failure ordering is fixed: empty OCR text is reported before the name is
// inspected, and an insufficient name is reported before any comparison.
func Verify(claimedName, ocrText string) Result {
	if strings.TrimSpace(ocrText) == "" {
		return Result{Reason: ReasonOCRUnavailable}
	}

	tokens := strings.Fields(claimedName)
	if len(tokens) < 2 {
		return Result{Reason: ReasonNameInsufficient}
	}

	claimKey := names.MatchKey(tokens[0] + " " + tokens[1])
	if claimKey == "" {
		// Nothing comparable survived normalization (e.g. a Latin-script
		// name); containment of an empty key would vacuously pass.
		return Result{Reason: ReasonNameInsufficient}
	}

	if !strings.Contains(names.MatchKey(ocrText), claimKey) {
		return Result{Reason: ReasonMismatch}
	}
	return Result{Passed: true}
}
