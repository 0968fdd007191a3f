package ai

import (
	"context"

	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CareerAIProvider = (*limitedProvider)(nil)

type limitedProvider struct {
	inner adapter.CareerAIProvider
	sem   chan struct{}
}

// NewLimitedProvider bounds concurrent provider calls with a semaphore.
func NewLimitedProvider(inner adapter.CareerAIProvider, maxConcurrent int) adapter.CareerAIProvider {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedProvider{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedProvider) GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.GenerateJobListings(ctx, prompt)
}

func (l *limitedProvider) GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.GenerateBannerImage(ctx, prompt)
}

func (l *limitedProvider) GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.GenerateAvailability(ctx, prompt)
}

func (l *limitedProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.GenerateText(ctx, prompt)
}

func (l *limitedProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.SynthesizeSpeech(ctx, text)
}
