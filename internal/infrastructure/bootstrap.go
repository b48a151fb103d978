package infrastructure

import (
	"context"

	"feefines/internal/config"
	"feefines/internal/repository"
	"feefines/internal/service"
	transportHTTP "feefines/internal/transport/http"
	transportNATS "feefines/internal/transport/nats"
	"feefines/internal/worker"
)

// Bootstrap initialises all dependencies from config and wires up the
// application. Module registration with the event registry happens
// here, once, before any server starts; a registration failure aborts
// boot. Returns the App, a cleanup function, or an error.
func Bootstrap(ctx context.Context) (*App, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := connectPostgres(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, db.Close)

	rdb, err := connectRedis(cfg.RedisAddr())
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, func() { _ = rdb.Close() })

	nc, err := connectNats(cfg.NatsAddr(), cfg.ModuleID)
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, nc.Close)

	// One-time startup concern, never part of the request pipeline.
	registrar := transportNATS.NewRegistrar(nc, cfg.ModuleID)
	if err := registrar.Register(ctx); err != nil {
		return nil, runCleanup(cleanupFns), err
	}

	accounts := repository.NewAccountRepo(db, rdb)
	actions := repository.NewActionRepo(db)
	notifier := service.NewPatronNoticeService(transportNATS.NewBus(nc))
	svc := service.NewActionService(accounts, actions, service.NewDefaultActionValidator(), notifier)

	servers := []Server{
		transportNATS.NewHandler(svc, nc),
		worker.NewNoticeWorker(nc),
	}
	if addr, apiErr := cfg.ApiAddr(); apiErr == nil {
		servers = append(servers, transportHTTP.NewServer(addr, svc))
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// runCleanup returns a single function that calls all cleanup
// functions in reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
