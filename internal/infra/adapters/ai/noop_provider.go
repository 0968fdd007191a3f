package ai

import (
	"context"
	"fmt"

	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CareerAIProvider = (*NoopProvider)(nil)

// NoopProvider returns canned data for developer mode so the full search flow
// can run without a provider key.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider { return &NoopProvider{} }

func (n *NoopProvider) GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error) {
	jobs := make([]model.JobListing, 0, 5)
	for i := 1; i <= 5; i++ {
		jobs = append(jobs, model.JobListing{
			JobTitle:    fmt.Sprintf("Graduate Analyst %d", i),
			Company:     fmt.Sprintf("Acme %d", i),
			Location:    "Cape Town, South Africa",
			Description: "Entry-level role for a recent graduate.",
			URL:         fmt.Sprintf("https://example.com/apply/job-%d", i),
			Source: model.JobSource{
				Name:    "LinkedIn",
				Rating:  4,
				Summary: "Widely used and generally reliable for graduate roles.",
			},
		})
	}
	return jobs, nil
}

func (n *NoopProvider) GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error) {
	// 1x1 transparent PNG.
	return []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}, nil
}

func (n *NoopProvider) GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error) {
	out := make([]model.CareerAvailability, 0, len(model.AvailabilityCountries))
	for i, c := range model.AvailabilityCountries {
		out = append(out, model.CareerAvailability{
			Country:           c,
			AvailabilityScore: float64(4 + i%5),
			Summary:           "Stable demand for new graduates.",
		})
	}
	return out, nil
}

func (n *NoopProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "We found 5 promising entry-level roles for you, mostly on major job boards. Good luck!", nil
}

func (n *NoopProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	// 100 ms of silence at 24 kHz s16le mono.
	return make([]byte, 24000/10*2), nil
}
