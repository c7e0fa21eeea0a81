package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"records_portal_backend/internal/events"
	"records_portal_backend/internal/search/domain"
	"records_portal_backend/internal/search/searcher"
	"records_portal_backend/platform/apperr"
	"records_portal_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	kind    domain.Kind
	results []domain.Result
	err     error
	block   bool

	mu    sync.Mutex
	calls int
}

func (f *fakeSearcher) Kind() domain.Kind { return f.kind }

func (f *fakeSearcher) Search(ctx context.Context, _ string, _ domain.Filters, _ domain.DateRange) ([]domain.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Result(nil), f.results...), nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *capturingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *capturingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *capturingBus) Subscribe(string, events.Handler) {}

type capturingRecorder struct {
	mu       sync.Mutex
	outcomes []string
	entities map[string]int
}

func (r *capturingRecorder) ObserveSearch(outcome string, _ time.Duration, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *capturingRecorder) ObserveSearcher(entity string, _ time.Duration, _ int, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entities == nil {
		r.entities = map[string]int{}
	}
	r.entities[entity]++
}

type fixture struct {
	projects  *fakeSearcher
	contacts  *fakeSearcher
	companies *fakeSearcher
	documents *fakeSearcher
}

func newFixture() *fixture {
	return &fixture{
		projects:  &fakeSearcher{kind: domain.KindProject},
		contacts:  &fakeSearcher{kind: domain.KindContact},
		companies: &fakeSearcher{kind: domain.KindCompany},
		documents: &fakeSearcher{kind: domain.KindDocument},
	}
}

func (f *fixture) service(opts Options) *Service {
	return New(
		[]searcher.Searcher{f.projects, f.contacts, f.companies, f.documents},
		NewRoleAuthorizer(),
		opts,
		logger.Discard(),
	)
}

var reader = StaticPrincipal{"readonly"}

func intPtr(v int) *int { return &v }

func hit(kind domain.Kind, id, title string, fields ...string) domain.Result {
	return domain.Result{
		ID:            id,
		Kind:          kind,
		Title:         title,
		MatchedFields: fields,
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSearchTowerScenario(t *testing.T) {
	f := newFixture()
	f.projects.results = []domain.Result{hit(domain.KindProject, "p1", "Downtown Corporate Tower", domain.FieldTitle)}
	f.companies.results = []domain.Result{hit(domain.KindCompany, "co1", "Tower Supply Co", domain.FieldName)}
	f.documents.results = []domain.Result{hit(domain.KindDocument, "d1", "Spec sheet", domain.FieldTags)}

	resp, err := f.service(Options{}).Search(context.Background(), reader, domain.Request{Query: "Tower"})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCount)
	assert.False(t, resp.HasMore)
	assert.Equal(t, "Tower", resp.Query)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "p1", resp.Results[0].ID)
	assert.Equal(t, 3, domain.Score(resp.Results[0]))
	assert.Equal(t, "co1", resp.Results[1].ID)
	assert.Equal(t, []string{domain.FieldName}, resp.Results[1].MatchedFields)
	assert.Equal(t, "d1", resp.Results[2].ID)
	assert.Empty(t, resp.Warnings)
}

func TestSearchValidation(t *testing.T) {
	long := make([]byte, domain.MaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name    string
		req     domain.Request
		message string
	}{
		{name: "empty query", req: domain.Request{Query: "   "}, message: msgQueryRequired},
		{name: "long query", req: domain.Request{Query: string(long)}, message: msgQueryTooLong},
		{name: "equal dates", req: domain.Request{Query: "x", Filters: &domain.Filters{DateFrom: "2024-06-01", DateTo: "2024-06-01"}}, message: msgDateOrder},
		{name: "reversed dates", req: domain.Request{Query: "x", Filters: &domain.Filters{DateFrom: "2024-06-02T00:00:00Z", DateTo: "2024-06-01"}}, message: msgDateOrder},
		{name: "bad date", req: domain.Request{Query: "x", Filters: &domain.Filters{DateFrom: "yesterday"}}, message: msgInvalidFrom},
		{name: "limit too small", req: domain.Request{Query: "x", Options: &domain.Options{Limit: intPtr(0)}}, message: msgInvalidLimit},
		{name: "limit too large", req: domain.Request{Query: "x", Options: &domain.Options{Limit: intPtr(101)}}, message: msgInvalidLimit},
		{name: "negative offset", req: domain.Request{Query: "x", Options: &domain.Options{Offset: intPtr(-1)}}, message: msgInvalidOffset},
		{name: "bad sort", req: domain.Request{Query: "x", Options: &domain.Options{SortBy: "size"}}, message: msgInvalidSort},
		{name: "bad order", req: domain.Request{Query: "x", Options: &domain.Options{SortOrder: "up"}}, message: msgInvalidOrder},
		{name: "bad entity", req: domain.Request{Query: "x", Filters: &domain.Filters{EntityTypes: []domain.EntityType{"users"}}}, message: msgInvalidEntity},
		{name: "bad enum", req: domain.Request{Query: "x", Filters: &domain.Filters{ProjectStatus: []string{"archived"}}}, message: msgInvalidFilter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service(Options{}).Search(context.Background(), reader, tc.req)

			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.GetKind(err))
			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.message, appErr.Message)
			assert.Zero(t, f.projects.callCount())
		})
	}
}

func TestSearchAuthorization(t *testing.T) {
	f := newFixture()
	svc := f.service(Options{})

	_, err := svc.Search(context.Background(), nil, domain.Request{Query: "x"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.GetKind(err))

	_, err = svc.Search(context.Background(), StaticPrincipal{"guest"}, domain.Request{Query: "x"})
	assert.Equal(t, apperr.KindForbidden, apperr.GetKind(err))

	assert.Zero(t, f.projects.callCount())
	assert.Zero(t, f.documents.callCount())
}

func TestSearchPagination(t *testing.T) {
	f := newFixture()
	for i := 0; i < 25; i++ {
		f.contacts.results = append(f.contacts.results, hit(domain.KindContact, fmt.Sprint(i), fmt.Sprintf("c%02d", i), domain.FieldEmail))
	}
	svc := f.service(Options{})

	resp, err := svc.Search(context.Background(), reader, domain.Request{
		Query:   "x",
		Options: &domain.Options{Limit: intPtr(20), Offset: intPtr(20)},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
	assert.False(t, resp.HasMore)
	assert.Equal(t, 25, resp.TotalCount)

	resp, err = svc.Search(context.Background(), reader, domain.Request{
		Query:   "x",
		Options: &domain.Options{Limit: intPtr(10), Offset: intPtr(0)},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 10)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 25, resp.TotalCount)
}

func TestSearchRestrictsEntityTypesAndEchoesFilters(t *testing.T) {
	f := newFixture()
	f.contacts.results = []domain.Result{hit(domain.KindContact, "c1", "Ann", domain.FieldName)}
	filters := &domain.Filters{EntityTypes: []domain.EntityType{domain.EntityContacts}, ContactRoles: []string{"executive"}, DateFrom: "2024-01-01"}

	resp, err := f.service(Options{}).Search(context.Background(), reader, domain.Request{Query: "ann", Filters: filters})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, domain.KindContact, resp.Results[0].Kind)
	assert.Equal(t, *filters, resp.AppliedFilters)
	assert.Equal(t, 1, f.contacts.callCount())
	assert.Zero(t, f.projects.callCount())
	assert.Zero(t, f.companies.callCount())
	assert.Zero(t, f.documents.callCount())
}

func TestSearchSortsByTitleAscending(t *testing.T) {
	f := newFixture()
	f.projects.results = []domain.Result{hit(domain.KindProject, "p", "Zeta", domain.FieldTitle)}
	f.companies.results = []domain.Result{hit(domain.KindCompany, "co", "Alpha", domain.FieldName)}

	resp, err := f.service(Options{}).Search(context.Background(), reader, domain.Request{
		Query:   "a",
		Options: &domain.Options{SortBy: domain.SortTitle, SortOrder: domain.SortAsc},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Alpha", resp.Results[0].Title)
	assert.Equal(t, "Zeta", resp.Results[1].Title)
}

func TestSearchStrictModeFailsOnSearcherError(t *testing.T) {
	f := newFixture()
	f.projects.results = []domain.Result{hit(domain.KindProject, "p1", "Tower", domain.FieldTitle)}
	f.documents.err = errors.New("relation does not exist")

	_, err := f.service(Options{}).Search(context.Background(), reader, domain.Request{Query: "tower"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.GetKind(err))
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "search failed for documents", appErr.Message)
	assert.ErrorIs(t, err, f.documents.err)
}

func TestSearchPartialModeReportsWarnings(t *testing.T) {
	f := newFixture()
	f.projects.results = []domain.Result{hit(domain.KindProject, "p1", "Tower", domain.FieldTitle)}
	f.documents.err = errors.New("relation does not exist")
	rec := &capturingRecorder{}
	svc := f.service(Options{PartialResults: true})
	svc.SetMetrics(rec)

	resp, err := svc.Search(context.Background(), reader, domain.Request{Query: "tower"})

	require.NoError(t, err)
	assert.Equal(t, []string{"documents"}, resp.Warnings)
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, []string{outcomePartial}, rec.outcomes)
	assert.Equal(t, 1, rec.entities["document"])
}

func TestSearchPartialModeFailsWhenEverySearcherFails(t *testing.T) {
	f := newFixture()
	f.contacts.err = errors.New("down")

	_, err := f.service(Options{PartialResults: true}).Search(context.Background(), reader, domain.Request{
		Query:   "x",
		Filters: &domain.Filters{EntityTypes: []domain.EntityType{domain.EntityContacts}},
	})

	assert.Equal(t, apperr.KindUpstream, apperr.GetKind(err))
}

func TestSearchTimeoutFailsEvenInPartialMode(t *testing.T) {
	for _, partial := range []bool{false, true} {
		t.Run(fmt.Sprintf("partial=%v", partial), func(t *testing.T) {
			f := newFixture()
			f.companies.block = true

			_, err := f.service(Options{Timeout: 20 * time.Millisecond, PartialResults: partial}).
				Search(context.Background(), reader, domain.Request{Query: "x"})

			require.Error(t, err)
			assert.Equal(t, apperr.KindTimeout, apperr.GetKind(err))
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})
	}
}

func TestSearchCallerCancellation(t *testing.T) {
	f := newFixture()
	f.projects.block = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service(Options{}).Search(ctx, reader, domain.Request{Query: "x"})

	assert.Equal(t, apperr.KindTimeout, apperr.GetKind(err))
}

func TestLoadMoreReusesPreviousRequest(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		f.companies.results = append(f.companies.results, hit(domain.KindCompany, fmt.Sprint(i), fmt.Sprintf("co%02d", i), domain.FieldName))
	}
	previous := domain.Request{
		Query:   "co",
		Options: &domain.Options{SortBy: domain.SortName, SortOrder: domain.SortAsc, Limit: intPtr(10)},
	}

	resp, err := f.service(Options{}).LoadMore(context.Background(), reader, previous, 10)

	require.NoError(t, err)
	require.Len(t, resp.Results, 5)
	assert.Equal(t, "co10", resp.Results[0].Title)
	assert.False(t, resp.HasMore)
	assert.Nil(t, previous.Options.Offset)
}

func TestAvailableFilters(t *testing.T) {
	svc := newFixture().service(Options{})

	catalog, err := svc.AvailableFilters(context.Background(), StaticPrincipal{"staff"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatuses, catalog.ProjectStatuses)

	_, err = svc.AvailableFilters(context.Background(), StaticPrincipal{"guest"})
	assert.Equal(t, apperr.KindForbidden, apperr.GetKind(err))
}

func TestSearchPublishesEvent(t *testing.T) {
	f := newFixture()
	f.projects.results = []domain.Result{hit(domain.KindProject, "p1", "Tower", domain.FieldTitle)}
	bus := &capturingBus{}
	svc := f.service(Options{})
	svc.SetEventBus(bus)
	ctx := context.WithValue(context.Background(), logger.UserIDKey, "user-1")

	_, err := svc.Search(ctx, reader, domain.Request{Query: "tower"})

	require.NoError(t, err)
	require.Len(t, bus.events, 1)
	evt, ok := bus.events[0].(events.SearchPerformed)
	require.True(t, ok)
	assert.Equal(t, "search.performed", evt.EventName())
	assert.Equal(t, "user-1", evt.UserID)
	assert.Equal(t, 1, evt.TotalCount)
	assert.Equal(t, []string{"project", "contact", "company", "document"}, evt.EntityKinds)
}

func TestParseDateRangeFormats(t *testing.T) {
	r, err := parseDateRange("2024-06-01", "2024-06-30T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *r.From)
	assert.True(t, r.To.Equal(time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC)))
}
