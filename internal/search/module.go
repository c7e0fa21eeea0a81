// Package search wires the federated search module: record stores, entity
// searchers, the query coordinator and its HTTP routes.
package search

import (
	"context"

	"records_portal_backend/internal/events"
	apphttp "records_portal_backend/internal/http"
	"records_portal_backend/internal/search/handler"
	"records_portal_backend/internal/search/repository"
	"records_portal_backend/internal/search/searcher"
	"records_portal_backend/internal/search/service"
	"records_portal_backend/internal/search/transport"
	"records_portal_backend/platform/config"
	"records_portal_backend/platform/logger"
	"records_portal_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule builds the module over db. It registers the search validation
// tags on val.
func NewModule(db repository.Querier, val *validator.Validator, cfg config.SearchConfig, log *logger.Logger) (*Module, error) {
	if err := transport.RegisterValidations(val); err != nil {
		return nil, err
	}

	searchers := searcher.NewAll(searcher.Stores{
		Projects:  repository.NewProjectRepository(db),
		Contacts:  repository.NewContactRepository(db),
		Companies: repository.NewCompanyRepository(db),
		Documents: repository.NewDocumentRepository(db),
	}, cfg.GetPhoneDefaultRegion())

	svc := service.New(searchers, service.NewRoleAuthorizer(), service.Options{
		Timeout:        cfg.GetSearchTimeout(),
		PartialResults: cfg.GetSearchPartialResults(),
	}, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		log:     log,
	}, nil
}

// Service exposes the coordinator for non-HTTP callers and cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/search")
	m.handler.RegisterRoutes(group)
}

// RegisterHandlers subscribes the module's event handlers and attaches bus
// to the coordinator.
func (m *Module) RegisterHandlers(bus events.Bus) {
	m.service.SetEventBus(bus)
	bus.Subscribe(events.SearchPerformed{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.SearchPerformed)
		if !ok {
			return nil
		}
		m.log.WithContext(ctx).Info("search performed",
			"user_id", evt.UserID,
			"query", evt.Query,
			"entity_kinds", evt.EntityKinds,
			"total_count", evt.TotalCount,
			"returned", evt.Returned,
			"offset", evt.Offset,
			"duration_ms", evt.DurationMs,
			"degraded", evt.Degraded,
		)
		return nil
	}))
}

var _ apphttp.Module = (*Module)(nil)
