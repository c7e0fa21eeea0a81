// Package service coordinates federated searches: it validates requests,
// authorizes callers, fans out to the entity searchers and assembles a page.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"records_portal_backend/internal/events"
	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/searcher"
	"records_portal_backend/platform/apperr"
	"records_portal_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 10 * time.Second

	outcomeOK         = "ok"
	outcomePartial    = "partial"
	outcomeValidation = "validation"
	outcomeForbidden  = "forbidden"
	outcomeUpstream   = "upstream"
	outcomeTimeout    = "timeout"
)

// Recorder receives search timings and counts.
type Recorder interface {
	ObserveSearch(outcome string, duration time.Duration, totalCount int)
	ObserveSearcher(entity string, duration time.Duration, results int, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSearch(string, time.Duration, int)          {}
func (noopRecorder) ObserveSearcher(string, time.Duration, int, error) {}

// Options tunes the coordinator.
type Options struct {
	// Timeout bounds each search. Zero means 10s.
	Timeout time.Duration
	// PartialResults drops failing searchers instead of failing the request.
	// Cancellation and timeouts always fail the request.
	PartialResults bool
}

// Service is the federated search coordinator.
type Service struct {
	searchers map[domain.Kind]searcher.Searcher
	authz     ReadAuthorizer
	opts      Options
	log       *logger.Logger
	metrics   Recorder
	eventBus  events.Bus
}

// New creates a coordinator over searchers.
func New(searchers []searcher.Searcher, authz ReadAuthorizer, opts Options, log *logger.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	byKind := make(map[domain.Kind]searcher.Searcher, len(searchers))
	for _, s := range searchers {
		byKind[s.Kind()] = s
	}
	return &Service{
		searchers: byKind,
		authz:     authz,
		opts:      opts,
		log:       log,
		metrics:   noopRecorder{},
	}
}

// SetMetrics sets the recorder for search metrics.
func (s *Service) SetMetrics(r Recorder) {
	if r != nil {
		s.metrics = r
	}
}

// SetEventBus sets the bus that receives search.performed events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// Search runs one federated search and returns the requested page.
func (s *Service) Search(ctx context.Context, principal Principal, req domain.Request) (domain.Response, error) {
	start := time.Now()
	log := s.log.WithContext(ctx)

	p, err := validate(req)
	if err != nil {
		s.metrics.ObserveSearch(outcomeValidation, time.Since(start), 0)
		return domain.Response{}, err
	}

	if err := s.authorize(principal); err != nil {
		s.metrics.ObserveSearch(outcomeForbidden, time.Since(start), 0)
		return domain.Response{}, err
	}

	merged, degraded, err := s.fanOut(ctx, p)
	if err != nil {
		outcome := outcomeUpstream
		if apperr.Is(err, apperr.KindTimeout) {
			outcome = outcomeTimeout
		}
		s.metrics.ObserveSearch(outcome, time.Since(start), 0)
		log.SearchFailed(p.query, apperr.GetKind(err).String(), err)
		return domain.Response{}, err
	}

	domain.Sort(merged, p.sortBy, p.order)
	page, hasMore := domain.Paginate(merged, p.offset, p.limit)

	resp := domain.Response{
		Results:        page,
		TotalCount:     len(merged),
		HasMore:        hasMore,
		Query:          p.query,
		AppliedFilters: p.filters,
		Warnings:       degraded,
	}

	elapsed := time.Since(start)
	outcome := outcomeOK
	if len(degraded) > 0 {
		outcome = outcomePartial
	}
	s.metrics.ObserveSearch(outcome, elapsed, resp.TotalCount)
	log.SearchExecuted(p.query, kindNames(p.kinds), resp.TotalCount, len(page), elapsed)
	s.publish(ctx, p, resp, elapsed)

	return resp, nil
}

// LoadMore re-runs previous with a new offset. No state is kept between calls.
func (s *Service) LoadMore(ctx context.Context, principal Principal, previous domain.Request, offset int) (domain.Response, error) {
	opts := domain.Options{}
	if previous.Options != nil {
		opts = *previous.Options
	}
	opts.Offset = &offset
	previous.Options = &opts
	return s.Search(ctx, principal, previous)
}

// AvailableFilters returns the filter catalog to authorized callers.
func (s *Service) AvailableFilters(_ context.Context, principal Principal) (domain.FilterCatalog, error) {
	if err := s.authorize(principal); err != nil {
		return domain.FilterCatalog{}, err
	}
	return domain.AvailableFilters(), nil
}

func (s *Service) authorize(principal Principal) error {
	if principal == nil {
		return apperr.Unauthorized("authentication required").WithOp("search.authorize")
	}
	if s.authz == nil || !s.authz.CanRead(principal) {
		return apperr.Forbidden("read access required").WithOp("search.authorize")
	}
	return nil
}

type searcherError struct {
	kind domain.Kind
	err  error
}

func (e *searcherError) Error() string { return fmt.Sprintf("%s searcher: %v", e.kind, e.err) }
func (e *searcherError) Unwrap() error { return e.err }

// fanOut runs the selected searchers concurrently and concatenates their
// results in merge order. In partial mode the plural names of dropped kinds
// are returned alongside the results.
func (s *Service) fanOut(ctx context.Context, p plan) ([]domain.Result, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	selected := make([]searcher.Searcher, 0, len(p.kinds))
	for _, k := range p.kinds {
		if sr, ok := s.searchers[k]; ok {
			selected = append(selected, sr)
		}
	}

	slots := make([][]domain.Result, len(selected))
	failures := make([]error, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, sr := range selected {
		i, sr := i, sr
		g.Go(func() error {
			began := time.Now()
			results, err := sr.Search(gctx, p.query, p.filters, p.dates)
			s.metrics.ObserveSearcher(string(sr.Kind()), time.Since(began), len(results), err)
			if err == nil {
				slots[i] = results
				return nil
			}
			if s.opts.PartialResults && !cancelled(gctx, err) {
				failures[i] = err
				return nil
			}
			return &searcherError{kind: sr.Kind(), err: err}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, classify(ctx, err)
	}

	var degraded []string
	var merged []domain.Result
	for i, sr := range selected {
		if failures[i] != nil {
			s.log.WithContext(ctx).SearcherDegraded(string(sr.Kind()), failures[i])
			degraded = append(degraded, string(sr.Kind().Plural()))
			continue
		}
		merged = append(merged, slots[i]...)
	}

	if len(selected) > 0 && len(degraded) == len(selected) {
		return nil, nil, apperr.Upstream("search failed for all entity types", errors.Join(failures...)).WithOp("search.Search")
	}
	if merged == nil {
		merged = []domain.Result{}
	}
	return merged, degraded, nil
}

func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func classify(ctx context.Context, err error) error {
	if cancelled(ctx, err) {
		return apperr.Timeout("search was cancelled or timed out", err).WithOp("search.Search")
	}
	var se *searcherError
	if errors.As(err, &se) {
		return apperr.Upstream(fmt.Sprintf("search failed for %s", se.kind.Plural()), err).WithOp("search.Search")
	}
	return apperr.Upstream("search failed", err).WithOp("search.Search")
}

func (s *Service) publish(ctx context.Context, p plan, resp domain.Response, elapsed time.Duration) {
	if s.eventBus == nil {
		return
	}
	userID, _ := ctx.Value(logger.UserIDKey).(string)
	s.eventBus.Publish(ctx, events.SearchPerformed{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      userID,
		Query:       p.query,
		EntityKinds: kindNames(p.kinds),
		TotalCount:  resp.TotalCount,
		Returned:    len(resp.Results),
		Offset:      p.offset,
		DurationMs:  elapsed.Milliseconds(),
		Degraded:    resp.Warnings,
	})
}

func kindNames(kinds []domain.Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
