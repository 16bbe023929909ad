package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"workshop/config"
	"workshop/infras/otel"
	"workshop/internal/domains/workshop/model"
	"workshop/internal/domains/workshop/model/dto"
	"workshop/internal/domains/workshop/repository"
	"workshop/shared"
	"workshop/shared/cache"
	"workshop/shared/constant"
	gDto "workshop/shared/dto"
	"workshop/shared/failure"
	"workshop/shared/timezone"
)

const (
	cacheGetVehicle    = "vehicle:get"
	cacheGetAllVehicle = "vehicle:gets"
	cacheCountVehicle  = "vehicle:count"
	cacheBoard         = "vehicle:board"

	// The overview service aggregates over workshop vehicles, so every
	// workshop mutation must also drop its cached responses.
	cacheOverview = "overview"
)

type Workshop interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	Get(ctx context.Context, id string) (dto.VehicleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVehiclesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Advance(ctx context.Context, id string) (dto.VehicleResponse, error)
	Regress(ctx context.Context, id string) (dto.VehicleResponse, error)
	Override(ctx context.Context, id string, target model.Stage) (dto.VehicleResponse, error)
	Board(ctx context.Context) (dto.BoardResponse, error)
}

type serviceImpl struct {
	repo  repository.Workshop
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Workshop, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Workshop {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)

	vehicle, err := req.ToModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse workshop intake request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to create workshop vehicle")

		return res, fmt.Errorf("failed to create workshop vehicle: %w", err)
	}

	s.invalidateListings(ctx)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVehicle, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for workshop vehicle")

		return res, nil
	}

	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(vehicle)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save workshop vehicle to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVehicle, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for workshop vehicles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count workshop vehicles")

		return res, fmt.Errorf("failed to count workshop vehicles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get workshop vehicles")

		return res, fmt.Errorf("failed to get workshop vehicles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save workshop vehicles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVehicle, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for workshop vehicle count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count workshop vehicles")

		return res, fmt.Errorf("failed to count workshop vehicles: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save workshop vehicle count to cache")
		}
	}()

	return res, nil
}

// Advance moves the vehicle exactly one stage forward. Advancing past the
// terminal stage is a defined no-op so the board can call it blindly.
func (s *serviceImpl) Advance(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return res, err
	}

	next, ok := vehicle.Stage.Next()
	if !ok {
		log.Debug().Str("id", id).Str("stage", string(vehicle.Stage)).Msg("vehicle already at terminal stage, advance is a no-op")

		res.FromModel(vehicle)

		return res, nil
	}

	if err = s.setStage(ctx, &vehicle, next); err != nil {
		return res, err
	}

	scope.AddEvent("Vehicle advanced to " + string(next))

	res.FromModel(vehicle)

	return res, nil
}

// Regress moves the vehicle exactly one stage backward. Regressing before the
// initial stage is a defined no-op.
func (s *serviceImpl) Regress(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Regress")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return res, err
	}

	prev, ok := vehicle.Stage.Prev()
	if !ok {
		log.Debug().Str("id", id).Str("stage", string(vehicle.Stage)).Msg("vehicle already at initial stage, regress is a no-op")

		res.FromModel(vehicle)

		return res, nil
	}

	if err = s.setStage(ctx, &vehicle, prev); err != nil {
		return res, err
	}

	scope.AddEvent("Vehicle regressed to " + string(prev))

	res.FromModel(vehicle)

	return res, nil
}

// Override sets the stage directly, bypassing the adjacency check. It is an
// explicit admin operation and every use is audited.
func (s *serviceImpl) Override(ctx context.Context, id string, target model.Stage) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Override")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !target.Valid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown stage: %s", target)) // nolint:wrapcheck
	}

	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return res, err
	}

	if vehicle.Stage == target {
		res.FromModel(vehicle)

		return res, nil
	}

	from := vehicle.Stage

	if err = s.setStage(ctx, &vehicle, target); err != nil {
		return res, err
	}

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)
	log.Warn().
		Str("id", id).
		Str("from", string(from)).
		Str("to", string(target)).
		Str("actor", actor).
		Msg("stage override applied")

	res.FromModel(vehicle)

	return res, nil
}

// Board groups vehicles per stage for the kanban view. Every stage yields a
// column, empty ones included, in pipeline order.
func (s *serviceImpl) Board(ctx context.Context) (res dto.BoardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Board")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheBoard, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheBoard).Msg("cache hit for workshop board")

		return res, nil
	}

	byStage := make(map[model.Stage][]model.WorkshopVehicle, len(model.Stages))

	for _, stage := range model.Stages {
		vehicles, err := s.repo.GetAll(ctx, boardOrdering(), stageFilter(stage))
		if err != nil {
			log.Error().Err(err).Str("stage", string(stage)).Msg("failed to get vehicles for stage")

			return res, fmt.Errorf("failed to get vehicles for stage %s: %w", stage, err)
		}

		byStage[stage] = vehicles
	}

	res.FromModels(byStage)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheBoard, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save workshop board to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getVehicle(ctx context.Context, id string) (model.WorkshopVehicle, error) {
	vehicle, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get workshop vehicle")

		return vehicle, fmt.Errorf("failed to get workshop vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty {
		return vehicle, failure.NotFound("workshop vehicle not found") // nolint:wrapcheck
	}

	return vehicle, nil
}

// setStage is the single write path for stage changes.
func (s *serviceImpl) setStage(ctx context.Context, vehicle *model.WorkshopVehicle, target model.Stage) error {
	actor, _ := ctx.Value(constant.ContextKeyActor).(string)
	now := timezone.Now()

	updatedFields := map[string]any{
		model.FieldStage:         string(target),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(vehicle.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle stage")

		return fmt.Errorf("failed to update vehicle stage: %w", err)
	}

	vehicle.Stage = target
	vehicle.ModifiedAt = now
	vehicle.ModifiedBy = actor

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVehicle, vehicle.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete vehicle from cache")
		}
	}()

	s.invalidateListings(ctx)

	return nil
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVehicle)
		shared.InvalidateCaches(c, s.cache, cacheCountVehicle)
		shared.InvalidateCaches(c, s.cache, cacheBoard)
		shared.InvalidateCaches(c, s.cache, cacheOverview)
	}()
}

func boardOrdering() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}
}

func stageFilter(stage model.Stage) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStage,
				Operator: gDto.FilterOperatorEq,
				Value:    string(stage),
				Table:    model.TableName,
			},
		},
	}
}
