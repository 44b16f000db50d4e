package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"streakwatch/internal/domain/entity"
	"streakwatch/internal/extract"
	"streakwatch/internal/observability/metrics"
	"streakwatch/internal/source"
)

// Fetcher is the retrieval dependency of the pipeline. Satisfied by
// fetcher.Client.
type Fetcher interface {
	FetchWithHeaders(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Result is a successful acquisition: the match list, the tag of the winning
// source (for outbound messages and logs) and whether the list is an
// incremental tail rather than the full season.
type Result struct {
	Matches     entity.MatchList
	SourceTag   string
	Incremental bool
}

// Config holds acquisition behavior toggles.
type Config struct {
	// LeagueName is the league searched on the structured API when no
	// cached league id exists yet.
	LeagueName string

	// ScrapeFallbackDisabled restricts the run to the structured API.
	// When the API path fails, the run ends instead of hitting scrape
	// targets, leaving state untouched for a fresh retry.
	ScrapeFallbackDisabled bool
}

// Service orchestrates Source Resolver -> Fetcher -> Result Extractor.
type Service struct {
	resolver *source.Resolver
	fetcher  Fetcher
	cfg      Config
	logger   *slog.Logger
}

// NewService creates an acquisition Service.
func NewService(resolver *source.Resolver, fetcher Fetcher, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Acquire tries candidate sources in resolver order and returns the first
// non-empty match list.
//
// A non-zero watermark narrows the query on sources that support incremental
// fetching (the structured API); scrape sources always return everything they
// have. The league id resolved for the API is cached on state so later runs
// skip the lookup.
func (s *Service) Acquire(ctx context.Context, watermark time.Time, st *entity.RunState, now time.Time) (Result, error) {
	season := source.SeasonKey(now)

	if s.resolver.APIConfigured() && st.LeagueID == 0 {
		s.resolveLeagueID(ctx, st)
	}

	candidates := s.resolver.Candidates(season, st.LeagueID)
	extractors := extract.NewSet(s.fetcher, watermark)

	var lastErr error
	for _, src := range candidates {
		if s.cfg.ScrapeFallbackDisabled && src.Kind != entity.PayloadStructuredAPI {
			s.logger.Warn("structured API failed and scrape fallback is disabled, ending run",
				slog.String("season", season))
			break
		}

		url, incremental := s.sourceQuery(src, watermark)
		// The extractor walks pagination from src.URL, so the narrowed
		// locator must replace the template before extraction.
		src.URL = url

		s.logger.Info("trying candidate source",
			slog.String("source", src.Tag),
			slog.String("url", url))

		payload, err := s.fetcher.FetchWithHeaders(ctx, url, src.Headers)
		if err != nil {
			metrics.RecordSourceAttempt(src.Tag, "error")
			s.logger.Warn("source fetch failed, trying next candidate",
				slog.String("source", src.Tag),
				slog.Any("error", err))
			lastErr = err
			continue
		}

		matches, err := extractors[src.Kind].Extract(ctx, payload, src)
		if errors.Is(err, extract.ErrNoMatches) {
			metrics.RecordSourceAttempt(src.Tag, "empty")
			s.logger.Warn("source had nothing usable, trying next candidate",
				slog.String("source", src.Tag))
			continue
		}
		if err != nil {
			metrics.RecordSourceAttempt(src.Tag, "error")
			s.logger.Warn("source extraction failed, trying next candidate",
				slog.String("source", src.Tag),
				slog.Any("error", err))
			lastErr = err
			continue
		}

		metrics.RecordSourceAttempt(src.Tag, "won")
		s.logger.Info("acquired match list",
			slog.String("source", src.Tag),
			slog.Int("matches", len(matches)),
			slog.Bool("incremental", incremental))
		return Result{Matches: matches, SourceTag: src.Tag, Incremental: incremental}, nil
	}

	if lastErr != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrExhaustedSources, lastErr)
	}
	return Result{}, ErrExhaustedSources
}

// sourceQuery returns the locator to fetch and whether the response will be
// an incremental tail. Only the structured API honors the watermark; the
// extractor re-filters by timestamp in case the provider ignores the
// narrowing parameter.
func (s *Service) sourceQuery(src entity.Source, watermark time.Time) (string, bool) {
	if !src.Incremental() || watermark.IsZero() {
		return src.URL, false
	}
	return src.URL + "&from=" + watermark.Format("2006-01-02"), true
}

func (s *Service) resolveLeagueID(ctx context.Context, st *entity.RunState) {
	id, err := extract.ResolveLeagueID(ctx, s.fetcher, s.resolver.APIBaseURL(), s.cfg.LeagueName, s.resolver.APIHeaders())
	if err != nil {
		// Absorbed: the API candidate is skipped this run and the scrape
		// chain takes over, unless fallback is disabled.
		s.logger.Warn("league id resolution failed",
			slog.String("league", s.cfg.LeagueName),
			slog.Any("error", err))
		return
	}
	st.LeagueID = id
	s.logger.Info("resolved league id",
		slog.String("league", s.cfg.LeagueName),
		slog.Int("league_id", id))
}
