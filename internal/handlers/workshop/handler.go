package workshop

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"workshop/infras/otel"
	"workshop/internal/domains/workshop/model"
	"workshop/internal/domains/workshop/model/dto"
	"workshop/internal/domains/workshop/service"
	"workshop/shared/constant"
	gDto "workshop/shared/dto"
	"workshop/shared/validator"
	"workshop/transport/http/response"
)

type Handler struct {
	service service.Workshop
	otel    otel.Otel
}

func New(service service.Workshop, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vehicles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVehicle)
		routerGroup.Get("/", handler.GetVehicles)
		routerGroup.Get("/board", handler.GetBoard)
		routerGroup.Get("/{id}", handler.GetVehicleByID)
		routerGroup.Post("/{id}/advance", handler.AdvanceStage)
		routerGroup.Post("/{id}/regress", handler.RegressStage)
		routerGroup.Put("/{id}/stage", handler.OverrideStage)
	})
}

// CreateVehicle takes a vehicle into the workshop pipeline.
// @Summary Take a vehicle into the workshop
// @Description Record a vehicle entering the workshop. Every vehicle starts at the scheduled stage.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param request body dto.CreateVehicleRequest true "Create Vehicle Request"
// @Success 201 {object} dto.VehicleResponse "Vehicle recorded"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [post]
func (handler *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicle")
	defer scope.End()

	req := dto.CreateVehicleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	vehicle, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create workshop vehicle")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle recorded for plate " + vehicle.Registration)

	response.WithJSON(w, http.StatusCreated, vehicle)
}

// GetVehicles retrieves workshop vehicles with optional filtering and pagination.
// @Summary Get all workshop vehicles
// @Description Retrieve workshop vehicles with optional stage and registration filters.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param stage query string false "Filter by pipeline stage"
// @Param registration query string false "Filter by registration plate"
// @Success 200 {object} dto.GetVehiclesResponse "List of workshop vehicles"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [get]
func (handler *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if stage := r.URL.Query().Get(model.FieldStage); stage != "" {
		if !model.Stage(stage).Valid() {
			err := validator.ValidateVar(stage, "oneof=scheduled in_bay repairing ready")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStage,
			Operator: gDto.FilterOperatorEq,
			Value:    stage,
			Table:    model.TableName,
		})
	}

	if registration := r.URL.Query().Get(model.FieldRegistration); registration != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRegistration,
			Operator: gDto.FilterOperatorLike,
			Value:    registration,
			Table:    model.TableName,
		})
	}

	vehicles, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get workshop vehicles")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Workshop vehicles retrieved successfully")

	response.WithJSON(w, http.StatusOK, vehicles)
}

// GetBoard groups workshop vehicles into one column per pipeline stage.
// @Summary Get the workshop board
// @Description Retrieve every vehicle grouped per stage, in pipeline order. Empty stages yield empty columns.
// @Tags Workshop
// @Accept json
// @Produce json
// @Success 200 {object} dto.BoardResponse "Workshop board"
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/board [get]
func (handler *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoard")
	defer scope.End()

	board, err := handler.service.Board(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get workshop board")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Workshop board retrieved successfully")

	response.WithJSON(w, http.StatusOK, board)
}

// GetVehicleByID retrieves a workshop vehicle by its ID.
// @Summary Get a workshop vehicle by ID
// @Description Retrieve a workshop vehicle by its unique identifier.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse "Vehicle details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [get]
func (handler *Handler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	vehicle, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get workshop vehicle by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Workshop vehicle retrieved successfully")

	response.WithJSON(w, http.StatusOK, vehicle)
}

// AdvanceStage moves a vehicle one stage forward in the pipeline.
// @Summary Advance a vehicle one stage
// @Description Move the vehicle to the next pipeline stage. Advancing a vehicle that is already ready succeeds and changes nothing.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse "Vehicle after the move"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/advance [post]
func (handler *Handler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdvanceStage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	vehicle, err := handler.service.Advance(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to advance vehicle stage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle stage advanced successfully")

	response.WithJSON(w, http.StatusOK, vehicle)
}

// RegressStage moves a vehicle one stage backward in the pipeline.
// @Summary Regress a vehicle one stage
// @Description Move the vehicle to the previous pipeline stage. Regressing a vehicle that is still scheduled succeeds and changes nothing.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse "Vehicle after the move"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/regress [post]
func (handler *Handler) RegressStage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegressStage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	vehicle, err := handler.service.Regress(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to regress vehicle stage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle stage regressed successfully")

	response.WithJSON(w, http.StatusOK, vehicle)
}

// OverrideStage sets a vehicle's stage directly, skipping the step-by-step flow.
// @Summary Override a vehicle's stage
// @Description Set the stage directly regardless of the current one. Every override is audited.
// @Tags Workshop
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body dto.OverrideStageRequest true "Override Stage Request"
// @Success 200 {object} dto.VehicleResponse "Vehicle after the override"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/stage [put]
func (handler *Handler) OverrideStage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OverrideStage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.OverrideStageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	vehicle, err := handler.service.Override(ctx, id, model.Stage(req.Stage))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to override vehicle stage")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)
	scope.AddEvent("Vehicle stage overridden by " + actor)

	response.WithJSON(w, http.StatusOK, vehicle)
}
