package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/pranav-builds/jobtrackr/internal/config"
)

// ErrLLMDisabled means no API key was configured; extraction is optional and
// everything else works without it.
var ErrLLMDisabled = errors.New("llm extraction is not configured")

type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. Without an API key it returns
// a disabled service instead of failing startup; the extract endpoint then
// answers 503.
func NewLLMService(cfg *config.Config) *LLMService {
	if cfg.LLM.APIKey == "" {
		log.Println("LLM extraction disabled (no GEMINI_API_KEY)")
		return &LLMService{}
	}

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.LLM.APIKey),
		googleai.WithDefaultModel(cfg.LLM.Model),
	)
	if err != nil {
		log.Printf("LLM extraction disabled (client init failed: %v)", err)
		return &LLMService{}
	}
	return &LLMService{Client: llm}
}

// Enabled reports whether a client is configured.
func (s *LLMService) Enabled() bool { return s.Client != nil }

const extractionPrompt = `
You are a job posting extraction assistant. Analyze the raw text or HTML of a
job posting below and extract the fields for a job-application tracker.

Rules:
1. Ignore navigation menus, footers, "similar jobs" lists, and ads.
2. Output valid JSON only. No markdown code fences.
3. If a field is missing from the posting, use null. Do not guess.

Output schema:
{
    "company": "Company name",
    "role": "Job title",
    "location": "Location or 'Remote'",
    "tags": ["Short", "labels", "e.g. Go, Remote, Startup"],
    "notes": "One-paragraph summary of responsibilities and requirements"
}

Raw posting:
%s
`

// ExtractJobDetails turns pasted posting text into a JSON object matching the
// add-job form, for the client to prefill.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawContent string) (string, error) {
	if !s.Enabled() {
		return "", ErrLLMDisabled
	}
	// Postings copied with full page chrome can be huge; the useful content
	// is at the front.
	if len(rawContent) > 20000 {
		rawContent = rawContent[:20000]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(extractionPrompt, rawContent))
	if err != nil {
		return "", fmt.Errorf("llm extraction: %w", err)
	}
	return resp, nil
}
