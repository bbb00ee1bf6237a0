package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		claimed string
		ocr     string
		passed  bool
		reason  FailureReason
	}{
		{
			name:    "name contained in ocr text passes",
			claimed: "احمد علي حسن",
			ocr:     "جمهورية العراق البطاقة الوطنية احمد علي حسن محمد تولد 2001",
			passed:  true,
		},
		{
			name:    "hamza and ya variants fold before comparison",
			claimed: "أحمد على",
			ocr:     "احمد علي حسن",
			passed:  true,
		},
		{
			name:    "only first two tokens are required",
			claimed: "احمد علي حسن جاسم",
			ocr:     "احمد علي",
			passed:  true,
		},
		{
			name:    "different name is a mismatch",
			claimed: "زينب حسين",
			ocr:     "احمد علي حسن",
			reason:  ReasonMismatch,
		},
		{
			name:    "single token fails before comparison",
			claimed: "احمد",
			ocr:     "احمد علي حسن",
			reason:  ReasonNameInsufficient,
		},
		{
			name:    "empty ocr text fails first",
			claimed: "احمد",
			ocr:     "   ",
			reason:  ReasonOCRUnavailable,
		},
		{
			name:    "latin-only name cannot be compared",
			claimed: "John Smith",
			ocr:     "احمد علي حسن",
			reason:  ReasonNameInsufficient,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Verify(tt.claimed, tt.ocr)
			assert.Equal(t, tt.passed, res.Passed)
			if !tt.passed {
				assert.Equal(t, tt.reason, res.Reason)
			}
		})
	}
}
