package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips leading definite article", "الحسن علي", "حسن علي"},
		{"keeps interior definite article", "عبد الرحمن", "عبد الرحمن"},
		{"folds hamza alef variants", "أحمد إبراهيم آمنة", "احمد ابراهيم امنه"},
		{"folds dotless ya", "مصطفى", "مصطفي"},
		{"folds trailing ta marbuta only at end", "فاطمة", "فاطمه"},
		{"drops latin and digits", "احمد Ahmed 123", "احمد"},
		{"drops diacritics", "مُحَمَّد", "محمد"},
		{"collapses whitespace runs", "  احمد   علي\tحسن ", "احمد علي حسن"},
		{"empty input", "", ""},
		{"numeric input", "12345", ""},
		{"non arabic input", "John Smith", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"أحمد علي",
		"الفاطمة الزهراء",
		"مصطفى كامل ـ 42",
		"",
		"Western Name Only",
		"   spaced   out   ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, "احمدعلي", MatchKey("أحمد علي"))
	assert.Equal(t, "احمدعلي", MatchKey("احمد على"))
	assert.Equal(t, "", MatchKey("  "))
}
