package router

import (
	"github.com/go-chi/chi/v5"

	"workshop/internal/handlers/booking"
	"workshop/internal/handlers/overview"
	"workshop/internal/handlers/workshop"
)

type DomainHandlers struct {
	Booking  booking.Handler
	Workshop workshop.Handler
	Overview overview.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Workshop.Router(routerGroup)
		r.DomainHandlers.Overview.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
