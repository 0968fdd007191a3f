package usecase

import (
	"context"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/adapter"
	"gradscout/internal/infra/audio"
	"gradscout/internal/infra/metrics"
)

// Compile-time check
var _ GatewayUseCase = (*gatewayUC)(nil)

// GatewayUseCase issues the four AI operations, normalizes their results into
// domain objects, and appends every attempted prompt to the per-user history.
// History is an audit trail, not a cache: identical queries re-issue and
// re-log.
type GatewayUseCase interface {
	FetchJobs(ctx context.Context, query model.JobSearchQuery, username string) ([]model.JobListing, error)
	FetchBanner(ctx context.Context, careerField, username string) ([]byte, error)
	FetchAvailability(ctx context.Context, careerField, username string) ([]model.CareerAvailability, error)
	// FetchSummaryAndSpeech runs two dependent calls (text summary, then TTS)
	// and returns the synthesized audio as base64-encoded s16le PCM.
	FetchSummaryAndSpeech(ctx context.Context, jobs []model.JobListing, username string) (string, error)
}

type gatewayUC struct {
	provider adapter.CareerAIProvider
	history  PromptHistoryLog
	enc      *tiktoken.Tiktoken
	log      *zerolog.Logger
}

func NewGatewayUseCase(provider adapter.CareerAIProvider, history PromptHistoryLog, logger *zerolog.Logger) *gatewayUC {
	// Token estimation is best-effort; a missing encoding file must not block
	// the gateway.
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warn().Err(err).Msg("tiktoken encoding unavailable, prompt token metric disabled")
		enc = nil
	}
	return &gatewayUC{provider: provider, history: history, enc: enc, log: logger}
}

func (g *gatewayUC) FetchJobs(ctx context.Context, query model.JobSearchQuery, username string) ([]model.JobListing, error) {
	prompt := jobSearchPrompt(query)
	g.record(ctx, username, model.PromptJobSearch, prompt, model.HistoryPayload{
		CareerField: query.CareerField,
		Location:    query.Location,
	})

	start := time.Now()
	jobs, err := g.provider.GenerateJobListings(ctx, prompt)
	metrics.ObserveProviderCall("jobs", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (g *gatewayUC) FetchBanner(ctx context.Context, careerField, username string) ([]byte, error) {
	prompt := bannerPrompt(careerField)
	g.record(ctx, username, model.PromptImageGeneration, prompt, model.HistoryPayload{CareerField: careerField})

	start := time.Now()
	img, err := g.provider.GenerateBannerImage(ctx, prompt)
	metrics.ObserveProviderCall("banner", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, domain.NewProviderError("banner", "no image returned", nil)
	}
	return img, nil
}

func (g *gatewayUC) FetchAvailability(ctx context.Context, careerField, username string) ([]model.CareerAvailability, error) {
	prompt := availabilityPrompt(careerField)
	g.record(ctx, username, model.PromptCareerAvailability, prompt, model.HistoryPayload{CareerField: careerField})

	start := time.Now()
	entries, err := g.provider.GenerateAvailability(ctx, prompt)
	metrics.ObserveProviderCall("availability", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return nil, err
	}
	// Display order follows the fixed country list, not arrival order.
	return model.OrderAvailability(entries), nil
}

func (g *gatewayUC) FetchSummaryAndSpeech(ctx context.Context, jobs []model.JobListing, username string) (string, error) {
	start := time.Now()
	summary, err := g.provider.GenerateText(ctx, summaryPrompt(jobs))
	metrics.ObserveProviderCall("summary", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return "", err
	}

	script := speechPrompt(summary)
	g.record(ctx, username, model.PromptAudioSummary, script, model.HistoryPayload{JobCount: len(jobs)})

	start = time.Now()
	pcm, err := g.provider.SynthesizeSpeech(ctx, script)
	metrics.ObserveProviderCall("speech", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return "", err
	}
	if len(pcm) == 0 {
		return "", domain.NewProviderError("speech", "no audio returned", nil)
	}
	return audio.EncodeBase64(pcm), nil
}

// record appends the exact prompt text to the user's history. Anonymous calls
// are not logged; append failures are absorbed here and never fail the call.
func (g *gatewayUC) record(ctx context.Context, username string, t model.PromptType, prompt string, payload model.HistoryPayload) {
	if g.enc != nil {
		metrics.AddPromptTokens(string(t), len(g.enc.Encode(prompt, nil, nil)))
	}
	if username == "" {
		return
	}
	if err := g.history.Append(ctx, username, t, prompt, payload); err != nil {
		g.log.Warn().Err(err).Str("type", string(t)).Msg("prompt history append failed")
	}
}
