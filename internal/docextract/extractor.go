package docextract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/empowrai/empowr-backend/internal/monitoring"
	"github.com/empowrai/empowr-backend/internal/types"
)

// ContentGenerator produces model output for an extraction prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Extractor turns raw document text into partial applicant profiles.
type Extractor struct {
	gen    ContentGenerator
	logger *monitoring.Logger
}

// NewExtractor creates an extractor backed by the given generator.
func NewExtractor(gen ContentGenerator, logger *monitoring.Logger) *Extractor {
	return &Extractor{gen: gen, logger: logger}
}

// Extract runs the extraction prompt for documentType against the model and
// parses the response into a partial profile. Sections the document does not
// cover stay nil.
func (e *Extractor) Extract(ctx context.Context, documentType, text string) (types.ApplicantProfile, error) {
	var profile types.ApplicantProfile

	prompt, err := BuildPrompt(documentType, text)
	if err != nil {
		return profile, err
	}

	start := time.Now()
	raw, err := e.gen.GenerateContent(ctx, prompt)
	duration := time.Since(start)

	if err != nil {
		if e.logger != nil {
			e.logger.ExtractionLogger(documentType, len(text), duration, false)
		}
		return profile, fmt.Errorf("document extraction failed: %w", err)
	}

	profile, err = ParseProfileFragment(raw)
	if e.logger != nil {
		e.logger.ExtractionLogger(documentType, len(text), duration, err == nil)
	}
	if err != nil {
		return types.ApplicantProfile{}, err
	}

	return profile, nil
}

// ParseProfileFragment decodes a model response into a partial profile.
// Markdown code fences and surrounding prose are tolerated; the first
// top-level JSON object in the response is decoded.
func ParseProfileFragment(raw string) (types.ApplicantProfile, error) {
	var profile types.ApplicantProfile

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return profile, fmt.Errorf("no JSON object found in extraction response")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &profile); err != nil {
		return types.ApplicantProfile{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return profile, nil
}
