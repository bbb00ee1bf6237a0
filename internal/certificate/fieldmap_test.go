package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wathiq/internal/roster"
)

func TestParseGender(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Gender
	}{
		{"male", GenderMale},
		{"ذكر", GenderMale},
		{"female", GenderFemale},
		{"انثى", GenderFemale},
		{"أنثى", GenderFemale},
	} {
		got, err := ParseGender(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseGender("other")
	assert.Error(t, err)
}

func TestFieldMap(t *testing.T) {
	rec := roster.Record{
		FullName: "أحمد علي حسين",
		Attributes: map[string]string{
			roster.AttrFullName:     "أحمد علي حسين",
			roster.AttrDepartment:   "تقنيات الحاسوب",
			roster.AttrAverage:      "87.5",
			roster.AttrAppreciation: "جيد جدا",
		},
	}
	issued := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

	fields := FieldMap(rec, "دائرة صحة بغداد", issued)

	assert.Equal(t, "أحمد علي حسين", fields[roster.AttrFullName])
	assert.Equal(t, "تقنيات الحاسوب", fields[roster.AttrDepartment])
	assert.Equal(t, "دائرة صحة بغداد", fields[FieldDestination])
	assert.Equal(t, "10-03-2026", fields[FieldDate])

	// Attributes the roster row lacks still appear, blank.
	for _, name := range []string{roster.AttrRank, roster.AttrTotal, roster.AttrTopRank, roster.AttrSection, roster.AttrTypeOfStudy} {
		v, ok := fields[name]
		require.True(t, ok, name)
		assert.Empty(t, v, name)
	}
}

func TestFieldMapFallsBackToDisplayName(t *testing.T) {
	rec := roster.Record{FullName: "زينب كاظم", Attributes: map[string]string{}}

	fields := FieldMap(rec, "", time.Now())

	assert.Equal(t, "زينب كاظم", fields[roster.AttrFullName])
}
