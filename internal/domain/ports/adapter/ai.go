package adapter

import (
	"context"

	"gradscout/internal/domain/model"
)

// CareerAIProvider is the boundary to the generative-content backend. The
// gateway use case owns prompt construction and history logging; adapters own
// schema binding, transport and payload extraction. Implementations return
// *domain.ProviderError for failed calls and malformed payloads.
type CareerAIProvider interface {
	// GenerateJobListings requests structured JSON conforming to the job
	// listing schema and parses it. The top-level shape must be an array.
	GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error)

	// GenerateBannerImage requests a single inline image and returns its
	// decoded bytes.
	GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error)

	// GenerateAvailability requests the per-country availability schema.
	GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error)

	// GenerateText returns a plain-text completion (used for the spoken
	// summary's script).
	GenerateText(ctx context.Context, prompt string) (string, error)

	// SynthesizeSpeech renders text aloud and returns raw 16-bit little-endian
	// PCM at 24 kHz mono.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
