package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CareerAIProvider = (*OpenAIProvider)(nil)

// OpenAIProvider is the fallback provider. Text operations instruct the model
// to emit a bare JSON array instead of binding a response schema; the speech
// endpoint returns the same 24 kHz s16le PCM the decode pipeline expects.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty api key")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choice content")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func (o *OpenAIProvider) GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error) {
	text, err := o.complete(ctx, prompt+"\n\nRespond with only the JSON array, no prose and no code fences.")
	if err != nil {
		return nil, domain.NewProviderError("jobs", "request failed", err)
	}
	text = stripFences(text)
	if !strings.HasPrefix(text, "[") {
		return nil, domain.NewProviderError("jobs", "malformed response", nil)
	}
	var jobs []model.JobListing
	if err := json.Unmarshal([]byte(text), &jobs); err != nil {
		return nil, domain.NewProviderError("jobs", "malformed response", err)
	}
	return jobs, nil
}

func (o *OpenAIProvider) GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModelDallE3,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, domain.NewProviderError("banner", "request failed", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, domain.NewProviderError("banner", "no image returned", nil)
	}
	img, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, domain.NewProviderError("banner", "malformed image payload", err)
	}
	return img, nil
}

func (o *OpenAIProvider) GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error) {
	text, err := o.complete(ctx, prompt+"\n\nRespond with only the JSON array, no prose and no code fences.")
	if err != nil {
		return nil, domain.NewProviderError("availability", "request failed", err)
	}
	var entries []model.CareerAvailability
	if err := json.Unmarshal([]byte(stripFences(text)), &entries); err != nil {
		return nil, domain.NewProviderError("availability", "malformed response", err)
	}
	return entries, nil
}

func (o *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := o.complete(ctx, prompt)
	if err != nil {
		return "", domain.NewProviderError("summary", "request failed", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewProviderError("summary", "empty response", nil)
	}
	return text, nil
}

func (o *OpenAIProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	// The PCM response format is raw 16-bit little-endian samples at 24 kHz,
	// the same stream shape Gemini TTS produces.
	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, domain.NewProviderError("speech", "request failed", err)
	}
	defer resp.Body.Close()
	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewProviderError("speech", "reading audio stream failed", err)
	}
	if len(pcm) == 0 {
		return nil, domain.NewProviderError("speech", "no audio returned", nil)
	}
	return pcm, nil
}
