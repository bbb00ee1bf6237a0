package certificate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxRendererUnknownGender(t *testing.T) {
	r := NewDocxRenderer("male.docx", "female.docx")

	_, err := r.Render(context.Background(), Gender("other"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template")
}

func TestDocxRendererMissingTemplate(t *testing.T) {
	r := NewDocxRenderer("/nonexistent/male.docx", "/nonexistent/female.docx")

	_, err := r.Render(context.Background(), GenderMale, map[string]string{"full_name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open template")
}
