package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"workshop/config"
	"workshop/infras/otel"
	bookingModel "workshop/internal/domains/booking/model"
	bookingRepo "workshop/internal/domains/booking/repository"
	workshopModel "workshop/internal/domains/workshop/model"
	workshopRepo "workshop/internal/domains/workshop/repository"
	"workshop/internal/domains/overview/model/dto"
	"workshop/shared/cache"
	"workshop/shared/constant"
	gDto "workshop/shared/dto"
)

const (
	cacheSummary   = "overview:summary"
	cacheAllItems  = "overview:items"
	cacheCustomers = "overview:customers"
)

type Overview interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	AllItems(ctx context.Context) (dto.AllItemsResponse, error)
	Customers(ctx context.Context) (dto.CustomersResponse, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	vehicles workshopRepo.Workshop
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, vehicles workshopRepo.Workshop, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Overview {
	return &serviceImpl{
		bookings: bookings,
		vehicles: vehicles,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Summary aggregates booking and per-stage vehicle counts. In-progress means
// physically being worked on, so it spans the in-bay and repairing stages.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheSummary, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheSummary).Msg("cache hit for overview summary")

		return res, nil
	}

	totalBookings, err := s.bookings.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	byStage := make(map[workshopModel.Stage]int, len(workshopModel.Stages))

	for _, stage := range workshopModel.Stages {
		count, err := s.vehicles.Count(ctx, stageFilter(stage))
		if err != nil {
			log.Error().Err(err).Str("stage", string(stage)).Msg("failed to count vehicles for stage")

			return res, fmt.Errorf("failed to count vehicles for stage %s: %w", stage, err)
		}

		byStage[stage] = count
	}

	res.FromCounts(totalBookings, byStage)

	s.saveCache(ctx, cacheSummary, res)

	return res, nil
}

// AllItems merges bookings and workshop vehicles into one listing, newest
// first, each row marked with its kind.
func (s *serviceImpl) AllItems(ctx context.Context) (res dto.AllItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AllItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheAllItems, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheAllItems).Msg("cache hit for overview items")

		return res, nil
	}

	bookings, vehicles, err := s.fetchAll(ctx)
	if err != nil {
		return res, err
	}

	items := make([]dto.Item, 0, len(bookings)+len(vehicles))

	for _, mod := range bookings {
		var item dto.Item

		item.FromBooking(mod)
		items = append(items, item)
	}

	for _, mod := range vehicles {
		var item dto.Item

		item.FromVehicle(mod)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})

	res.Items = items
	res.TotalData = len(items)

	s.saveCache(ctx, cacheAllItems, res)

	return res, nil
}

// Customers lists each unique customer across both sources exactly once.
// Identity is the (name, phone) pair, case-insensitive on name, and the first
// occurrence wins so the listing keeps intake order.
func (s *serviceImpl) Customers(ctx context.Context) (res dto.CustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customers")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheCustomers, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheCustomers).Msg("cache hit for overview customers")

		return res, nil
	}

	bookings, vehicles, err := s.fetchAll(ctx)
	if err != nil {
		return res, err
	}

	seen := make(map[string]bool)
	customers := []dto.Customer{}

	appendCustomer := func(name, phone string) {
		key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(phone)
		if seen[key] {
			return
		}

		seen[key] = true

		customers = append(customers, dto.Customer{Name: name, Phone: phone})
	}

	for _, mod := range bookings {
		appendCustomer(mod.OwnerName, mod.OwnerPhone)
	}

	for _, mod := range vehicles {
		appendCustomer(mod.CustomerName, mod.CustomerPhone)
	}

	res.Customers = customers
	res.TotalData = len(customers)

	s.saveCache(ctx, cacheCustomers, res)

	return res, nil
}

func (s *serviceImpl) fetchAll(ctx context.Context) ([]bookingModel.ServiceBooking, []workshopModel.WorkshopVehicle, error) {
	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.bookings.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	vehicles, err := s.vehicles.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get workshop vehicles")

		return nil, nil, fmt.Errorf("failed to get workshop vehicles: %w", err)
	}

	return bookings, vehicles, nil
}

func (s *serviceImpl) saveCache(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save overview response to cache")
		}
	}()
}

func stageFilter(stage workshopModel.Stage) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    workshopModel.FieldStage,
				Operator: gDto.FilterOperatorEq,
				Value:    string(stage),
				Table:    workshopModel.TableName,
			},
		},
	}
}
