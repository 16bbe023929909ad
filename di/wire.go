//go:build wireinject
// +build wireinject

package di

import (
	"workshop/config"
	"workshop/infras/otel"
	"workshop/infras/postgres"
	"workshop/infras/redis"
	"workshop/shared/cache"
	"workshop/transport/http"
	"workshop/transport/http/middleware"
	"workshop/transport/http/router"

	bookingRepository "workshop/internal/domains/booking/repository"
	bookingService "workshop/internal/domains/booking/service"
	overviewService "workshop/internal/domains/overview/service"
	workshopRepository "workshop/internal/domains/workshop/repository"
	workshopService "workshop/internal/domains/workshop/service"

	bookingHandler "workshop/internal/handlers/booking"
	overviewHandler "workshop/internal/handlers/overview"
	workshopHandler "workshop/internal/handlers/workshop"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var workshopDomain = wire.NewSet(
	workshopRepository.New,
	workshopService.New,
)

var overviewDomain = wire.NewSet(
	overviewService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	workshopDomain,
	overviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	workshopHandler.New,
	overviewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
