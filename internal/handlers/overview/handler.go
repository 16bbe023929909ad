package overview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"workshop/infras/otel"
	"workshop/internal/domains/overview/service"
	"workshop/shared/constant"
	"workshop/transport/http/response"
)

type Handler struct {
	service service.Overview
	otel    otel.Otel
}

func New(service service.Overview, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/overview", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/items", handler.GetAllItems)
		routerGroup.Get("/customers", handler.GetCustomers)
	})
}

// GetSummary returns booking and per-stage vehicle counts.
// @Summary Get the dealership summary
// @Description Retrieve booking totals and per-stage vehicle counts. In-progress counts vehicles in the in-bay and repairing stages.
// @Tags Overview
// @Accept json
// @Produce json
// @Success 200 {object} dto.SummaryResponse "Summary counts"
// @Failure 500 {object} response.Error
// @Router /v1/overview/summary [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overview summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Overview summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetAllItems returns bookings and workshop vehicles merged into one listing.
// @Summary Get all bookings and workshop vehicles
// @Description Retrieve one merged listing, newest first, each row marked with its kind.
// @Tags Overview
// @Accept json
// @Produce json
// @Success 200 {object} dto.AllItemsResponse "Merged listing"
// @Failure 500 {object} response.Error
// @Router /v1/overview/items [get]
func (handler *Handler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllItems")
	defer scope.End()

	items, err := handler.service.AllItems(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overview items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Overview items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetCustomers returns each unique customer across both sources.
// @Summary Get unique customers
// @Description Retrieve every customer exactly once, deduplicated on name and phone.
// @Tags Overview
// @Accept json
// @Produce json
// @Success 200 {object} dto.CustomersResponse "Unique customers"
// @Failure 500 {object} response.Error
// @Router /v1/overview/customers [get]
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	customers, err := handler.service.Customers(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overview customers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Overview customers retrieved successfully")

	response.WithJSON(w, http.StatusOK, customers)
}
