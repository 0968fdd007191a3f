package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/infra/audio"
	"gradscout/internal/infra/logging"
	"gradscout/internal/infra/metrics"
)

// Slice names one of the three independently-settling result slots.
type Slice string

const (
	SliceJobs         Slice = "jobs"
	SliceBanner       Slice = "banner"
	SliceAvailability Slice = "availability"
)

const (
	msgNoResults  = "No jobs found for your query. Try different keywords."
	msgJobsFailed = "Could not retrieve jobs from AI service."
)

// SearchState is a consistent snapshot of the current search. Banner bytes
// travel base64-encoded so snapshots serialize straight to the wire.
type SearchState struct {
	Generation  uint64               `json:"generation"`
	Query       model.JobSearchQuery `json:"query"`
	HasSearched bool                 `json:"hasSearched"`

	Jobs         []model.JobListing `json:"jobs"`
	JobsLoading  bool               `json:"jobsLoading"`
	NoResults    bool               `json:"noResults"`
	ErrorMessage string             `json:"errorMessage,omitempty"`

	Banner         string `json:"banner,omitempty"`
	BannerLoading  bool   `json:"bannerLoading"`
	BannerAbsorbed bool   `json:"bannerAbsorbed"`

	Availability         []model.CareerAvailability `json:"availability"`
	AvailabilityLoading  bool                       `json:"availabilityLoading"`
	AvailabilityAbsorbed bool                       `json:"availabilityAbsorbed"`
}

// SearchUpdate is emitted every time a slot settles, carrying the snapshot
// after the settle was applied.
type SearchUpdate struct {
	Generation uint64      `json:"generation"`
	Slice      Slice       `json:"slice"`
	State      SearchState `json:"state"`
}

// Compile-time check
var _ SearchOrchestrator = (*searchUC)(nil)

// SearchOrchestrator fires the three search-time AI requests concurrently and
// merges results into one state as each settles. Banner and availability
// failures are absorbed; a jobs failure is the search's primary error. Each
// invocation gets a new generation id and a settle whose generation no longer
// matches is discarded, so a superseding search can never be overwritten by a
// stale result.
type SearchOrchestrator interface {
	Search(ctx context.Context, query model.JobSearchQuery, username string) (<-chan SearchUpdate, error)
	Snapshot() SearchState
	// AudioSummary synthesizes a spoken summary of the current jobs slot and
	// returns it as base64-encoded s16le PCM.
	AudioSummary(ctx context.Context, username string) (string, error)
}

type searchUC struct {
	gateway GatewayUseCase
	timeout time.Duration
	log     *zerolog.Logger

	mu    sync.Mutex
	gen   uint64
	state SearchState
}

func NewSearchOrchestrator(gateway GatewayUseCase, callTimeout time.Duration, logger *zerolog.Logger) *searchUC {
	return &searchUC{gateway: gateway, timeout: callTimeout, log: logger}
}

func (s *searchUC) Search(ctx context.Context, query model.JobSearchQuery, username string) (<-chan SearchUpdate, error) {
	query, err := model.NewJobSearchQuery(query.CareerField, query.Location)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = SearchState{
		Generation:          gen,
		Query:               query,
		HasSearched:         true,
		Jobs:                []model.JobListing{},
		JobsLoading:         true,
		BannerLoading:       true,
		AvailabilityLoading: true,
	}
	s.mu.Unlock()
	metrics.IncSearchStarted()

	ctx = logging.WithSearchGen(ctx, gen)
	log := logging.With(ctx, s.log)
	defer logging.TraceDuration(log, "SearchUC.Search")()

	// In-flight calls survive the caller hanging up; a superseded search is
	// discarded at resolution time, not cancelled.
	base := context.WithoutCancel(ctx)

	updates := make(chan SearchUpdate, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(base, s.timeout)
		defer cancel()
		jobs, err := s.gateway.FetchJobs(cctx, query, username)
		s.settle(gen, SliceJobs, updates, func(st *SearchState) {
			st.JobsLoading = false
			switch {
			case err != nil:
				log.Error().Err(err).Msg("jobs fetch failed")
				st.ErrorMessage = msgJobsFailed
				metrics.IncSearchOutcome("error")
			case len(jobs) == 0:
				st.NoResults = true
				metrics.IncSearchOutcome("no_results")
			default:
				st.Jobs = jobs
				metrics.IncSearchOutcome("results")
			}
		})
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(base, s.timeout)
		defer cancel()
		img, err := s.gateway.FetchBanner(cctx, query.CareerField, username)
		s.settle(gen, SliceBanner, updates, func(st *SearchState) {
			st.BannerLoading = false
			if err != nil {
				// Secondary enrichment: absorbed, never surfaced.
				log.Warn().Err(err).Msg("banner generation failed")
				st.BannerAbsorbed = true
				return
			}
			st.Banner = audio.EncodeBase64(img)
		})
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(base, s.timeout)
		defer cancel()
		entries, err := s.gateway.FetchAvailability(cctx, query.CareerField, username)
		s.settle(gen, SliceAvailability, updates, func(st *SearchState) {
			st.AvailabilityLoading = false
			if err != nil {
				log.Warn().Err(err).Msg("availability fetch failed")
				st.AvailabilityAbsorbed = true
				return
			}
			st.Availability = entries
		})
	}()

	go func() {
		wg.Wait()
		close(updates)
	}()
	return updates, nil
}

// settle applies a slot mutation under the generation guard and emits the
// resulting snapshot. A stale generation is counted and dropped.
func (s *searchUC) settle(gen uint64, slice Slice, updates chan<- SearchUpdate, mut func(*SearchState)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		metrics.IncStaleDropped(string(slice))
		return
	}
	mut(&s.state)
	snap := s.state
	s.mu.Unlock()
	updates <- SearchUpdate{Generation: gen, Slice: slice, State: snap}
}

func (s *searchUC) Snapshot() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *searchUC) AudioSummary(ctx context.Context, username string) (string, error) {
	s.mu.Lock()
	jobs := s.state.Jobs
	s.mu.Unlock()
	if len(jobs) == 0 {
		return "", domain.ErrNoResults
	}
	cctx, cancel := context.WithTimeout(ctx, 2*s.timeout)
	defer cancel()
	return s.gateway.FetchSummaryAndSpeech(cctx, jobs, username)
}
