package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"gatehouse/internal/apiclient"
	"gatehouse/internal/auth/backend"
	"gatehouse/internal/auth/engine"
	"gatehouse/internal/errtrack"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/router"
	"gatehouse/internal/routes"
	"gatehouse/internal/session"
	"gatehouse/internal/tenant/resolver"
	"gatehouse/internal/tracing"
)

// clientStack is the fully wired client side: session store, request
// pipeline, tenant resolver, auth engine, and router gate.
type clientStack struct {
	cfg      config.App
	log      *slog.Logger
	sessions *session.File
	resolver *resolver.Resolver
	engine   *engine.Engine
	gate     *router.Gate
}

func buildStack() (*clientStack, error) {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	sessions := session.NewFile(cfg.SessionPath)

	// The pipeline tracer is chosen from environment-level options; the
	// tenant's observability block is re-resolved after bootstrap for the
	// full picture.
	api, err := apiclient.New(cfg.OriginURL,
		apiclient.WithSessionStore(sessions),
		apiclient.WithHost(cfg.Host),
		apiclient.WithTracer(tracing.Select(tracing.Resolve(nil, cfg.Observability))),
		apiclient.WithReporter(errtrack.NewLogReporter(log)),
		apiclient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	res := resolver.New(api, cfg.Host,
		resolver.WithLogger(log),
		resolver.WithMetrics(resolver.NewMetrics(reg)),
	)
	eng := engine.New(backend.NewHTTP(api), sessions, res,
		engine.WithLogger(log),
		engine.WithMetrics(engine.NewMetrics(reg)),
	)
	gate := router.New(res, eng, routes.Default(),
		router.WithLogger(log),
		router.WithMetrics(router.NewMetrics(reg)),
	)

	return &clientStack{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		resolver: res,
		engine:   eng,
		gate:     gate,
	}, nil
}
