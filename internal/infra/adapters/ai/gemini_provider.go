package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/genai"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CareerAIProvider = (*GeminiProvider)(nil)

// GeminiProvider implements the provider boundary with the official SDK:
// structured JSON output for jobs and availability, inline image data for the
// banner, and inline PCM audio for speech synthesis.
type GeminiProvider struct {
	client     *genai.Client
	textModel  string
	imageModel string
	ttsModel   string
	voice      string
}

func NewGeminiProvider(ctx context.Context, apiKey, baseURL, textModel, imageModel, ttsModel, voice string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{
		client:     c,
		textModel:  textModel,
		imageModel: imageModel,
		ttsModel:   ttsModel,
		voice:      voice,
	}, nil
}

// jobListingSchema constrains the jobs response: an array of listings, each
// with a nested source review rated 1-5.
var jobListingSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"jobTitle":    {Type: genai.TypeString, Description: "The title of the job position, e.g., 'Junior Software Engineer'."},
			"company":     {Type: genai.TypeString, Description: "The name of the company hiring."},
			"location":    {Type: genai.TypeString, Description: "The city and country where the job is located, e.g., 'Cape Town, South Africa'."},
			"description": {Type: genai.TypeString, Description: "A brief, one or two-sentence summary of the job role."},
			"url":         {Type: genai.TypeString, Description: "A plausible, but placeholder, URL to the full job posting."},
			"source": {
				Type:        genai.TypeObject,
				Description: "A review of the platform or source where the job was found.",
				Properties: map[string]*genai.Schema{
					"name":    {Type: genai.TypeString, Description: "The name of the job source, e.g., 'LinkedIn', 'Indeed', 'Company Careers Page'."},
					"rating":  {Type: genai.TypeNumber, Description: "A rating of the source's reliability for new graduates, from 1 (poor) to 5 (excellent)."},
					"summary": {Type: genai.TypeString, Description: "A short summary explaining the rating and what to expect from this source."},
				},
				Required: []string{"name", "rating", "summary"},
			},
		},
		Required: []string{"jobTitle", "company", "location", "description", "url", "source"},
	},
}

var availabilitySchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"country":           {Type: genai.TypeString},
			"availabilityScore": {Type: genai.TypeNumber, Description: "A score from 1 (low availability) to 10 (high availability)."},
			"summary":           {Type: genai.TypeString, Description: "A brief one-sentence summary explaining the score."},
		},
		Required: []string{"country", "availabilityScore", "summary"},
	},
}

func (g *GeminiProvider) GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   jobListingSchema,
		Temperature:      genai.Ptr[float32](0.7),
	})
	if err != nil {
		return nil, domain.NewProviderError("jobs", "request failed", err)
	}
	text := strings.TrimSpace(resp.Text())
	if !strings.HasPrefix(text, "[") {
		return nil, domain.NewProviderError("jobs", "malformed response", nil)
	}
	var jobs []model.JobListing
	if err := json.Unmarshal([]byte(text), &jobs); err != nil {
		return nil, domain.NewProviderError("jobs", "malformed response", err)
	}
	return jobs, nil
}

func (g *GeminiProvider) GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, domain.NewProviderError("banner", "request failed", err)
	}
	if data := firstInlineData(resp); len(data) > 0 {
		return data, nil
	}
	return nil, domain.NewProviderError("banner", "no image returned", nil)
}

func (g *GeminiProvider) GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   availabilitySchema,
	})
	if err != nil {
		return nil, domain.NewProviderError("availability", "request failed", err)
	}
	var entries []model.CareerAvailability
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text())), &entries); err != nil {
		return nil, domain.NewProviderError("availability", "malformed response", err)
	}
	return entries, nil
}

func (g *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", domain.NewProviderError("summary", "request failed", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.NewProviderError("summary", "empty response", nil)
	}
	return text, nil
}

func (g *GeminiProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.ttsModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	})
	if err != nil {
		return nil, domain.NewProviderError("speech", "request failed", err)
	}
	if data := firstInlineData(resp); len(data) > 0 {
		return data, nil
	}
	return nil, domain.NewProviderError("speech", "no audio returned", nil)
}

func firstInlineData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return p.InlineData.Data
			}
		}
	}
	return nil
}
