// Command search runs federated searches against the records database from the
// command line, using the same coordinator as the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"records_portal_backend/internal/search"
	"records_portal_backend/internal/search/service"
	"records_portal_backend/internal/search/transport"
	"records_portal_backend/platform/config"
	"records_portal_backend/platform/db"
	"records_portal_backend/platform/logger"
	"records_portal_backend/platform/validator"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "search",
		Usage: "Federated search across projects, contacts, companies and documents",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "role",
				Usage: "Roles the operator acts with",
				Value: cli.NewStringSlice("admin"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json, yaml)",
				Value:   formatTable,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Search records matching text",
				ArgsUsage: "<text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "types",
						Usage: "Comma-separated entity types (projects, contacts, companies, documents, all)",
					},
					&cli.StringFlag{
						Name:  "sort-by",
						Usage: "Sort field (relevance, created_at, updated_at, name, title)",
						Value: "relevance",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Sort order (asc, desc)",
						Value: "desc",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Page size (1-100)",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Results to skip",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Only records created at or after this date (YYYY-MM-DD or RFC 3339)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Only records created at or before this date (YYYY-MM-DD or RFC 3339)",
					},
				},
			},
			{
				Name:   "filters",
				Usage:  "List the accepted filter values",
				Action: filtersCommand,
			},
		},
	}
}

func queryCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one search text argument is required")
	}
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return err
	}

	req := buildRequest(c.Args().First(), c)
	val := validator.New()
	if err := transport.RegisterValidations(val); err != nil {
		return err
	}
	if err := val.Struct(req); err != nil {
		return transport.ValidationError(err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	module, err := search.NewModule(pool, val, cfg, log)
	if err != nil {
		return err
	}

	resp, err := module.Service().Search(ctx, principal(c), req.ToDomain())
	if err != nil {
		return err
	}
	return renderResponse(c.App.Writer, transport.FromDomain(resp), format)
}

func filtersCommand(c *cli.Context) error {
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return err
	}

	svc := service.New(nil, service.NewRoleAuthorizer(), service.Options{}, logger.Discard())
	catalog, err := svc.AvailableFilters(context.Background(), principal(c))
	if err != nil {
		return err
	}
	return renderCatalog(c.App.Writer, transport.CatalogFromDomain(catalog), format)
}

func buildRequest(text string, c *cli.Context) transport.SearchRequest {
	params := transport.SearchQueryParams{
		Query:     text,
		Types:     c.String("types"),
		SortBy:    c.String("sort-by"),
		SortOrder: c.String("order"),
		DateFrom:  c.String("from"),
		DateTo:    c.String("to"),
	}
	limit, offset := c.Int("limit"), c.Int("offset")
	params.Limit = &limit
	params.Offset = &offset
	return params.ToSearchRequest()
}

func principal(c *cli.Context) service.Principal {
	return service.StaticPrincipal(c.StringSlice("role"))
}
