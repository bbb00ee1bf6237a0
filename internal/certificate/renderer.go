package certificate

import (
	"bytes"
	"context"
	"fmt"

	docx "github.com/lukasjarosch/go-docx"
)

// Renderer produces a filled certificate document. Implementations must be
// safe for concurrent use; the pipeline renders from multiple requests at
// once.
type Renderer interface {
	Render(ctx context.Context, gender Gender, fields map[string]string) ([]byte, error)
}

// DocxRenderer fills a docx template per gender. Each call opens the
// template fresh, so renders never share mutable document state.
type DocxRenderer struct {
	malePath   string
	femalePath string
}

// NewDocxRenderer wires the two template paths. Paths are validated lazily
// on first render rather than at startup so the server can boot on hosts
// where only the API surface is exercised.
func NewDocxRenderer(malePath, femalePath string) *DocxRenderer {
	return &DocxRenderer{malePath: malePath, femalePath: femalePath}
}

func (r *DocxRenderer) templatePath(gender Gender) (string, error) {
	switch gender {
	case GenderMale:
		return r.malePath, nil
	case GenderFemale:
		return r.femalePath, nil
	default:
		return "", fmt.Errorf("no template for gender %q", gender)
	}
}

// Render opens the gender's template, substitutes fields and returns the
// finished document bytes.
func (r *DocxRenderer) Render(ctx context.Context, gender Gender, fields map[string]string) ([]byte, error) {
	path, err := r.templatePath(gender)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}

	placeholders := make(docx.PlaceholderMap, len(fields))
	for name, value := range fields {
		placeholders[name] = value
	}
	if err := doc.ReplaceAll(placeholders); err != nil {
		return nil, fmt.Errorf("substitute fields: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize certificate: %w", err)
	}
	return buf.Bytes(), nil
}
