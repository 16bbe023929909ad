package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"workshop/config"
	otelMocks "workshop/infras/otel/mocks"
	"workshop/internal/domains/workshop/mocks"
	"workshop/internal/domains/workshop/model"
	"workshop/internal/domains/workshop/model/dto"
	cacheMocks "workshop/shared/cache/mocks"
	gDto "workshop/shared/dto"
	"workshop/shared/failure"
	"workshop/shared/timezone"
)

var errCacheMiss = errors.New("cache miss")

func newTestService(t *testing.T) (Workshop, *mocks.MockWorkshop, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockWorkshop(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := New(repoMock, cfg, cacheMock, otelMocks.NewOtel())

	return svc, repoMock, cacheMock
}

func testVehicle(stage model.Stage) model.WorkshopVehicle {
	return model.WorkshopVehicle{
		ID:            "9b3385f6-3a33-41bf-8a55-19b150b16fd7",
		Registration:  "KDK 123A",
		VehicleName:   "Range Rover Autobiography",
		ServiceType:   "major_service",
		Stage:         stage,
		CustomerName:  "Grace Wanjiru",
		CustomerPhone: "+254712345678",
		EnteredAt:     timezone.Now(),
	}
}

func allowAsyncCacheWrites(cacheMock *cacheMocks.MockRedisCache) {
	cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestWorkshopCreate(t *testing.T) {
	ctx := context.Background()

	validReq := dto.CreateVehicleRequest{
		Registration:  "KDK 123A",
		VehicleName:   "Range Rover Autobiography",
		ServiceType:   "major_service",
		CustomerName:  "Grace Wanjiru",
		CustomerPhone: "+254712345678",
	}

	t.Run("success", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		repoMock.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Create(ctx, validReq)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageScheduled), res.Stage)
		assert.Equal(t, "KDK 123A", res.Registration)
		assert.NotEmpty(t, res.ID)
		assert.True(t, res.CanAdvance)
		assert.False(t, res.CanRegress)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req := validReq
		req.EnteredAt = "31-12-2025"

		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("insert fails", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		repoMock.EXPECT().Insert(ctx, gomock.Any()).Return(errors.New("insert failed"))

		_, err := svc.Create(ctx, validReq)

		assert.Error(t, err)
	})
}

func TestWorkshopGet(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		svc, _, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.VehicleResponse)
				res.ID = "cached-id"
				res.Stage = string(model.StageRepairing)

				return nil
			})

		res, err := svc.Get(ctx, "cached-id")

		assert.NoError(t, err)
		assert.Equal(t, "cached-id", res.ID)
		assert.Equal(t, string(model.StageRepairing), res.Stage)
	})

	t.Run("cache miss falls back to repository", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		vehicle := testVehicle(model.StageInBay)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Get(ctx, vehicle.ID)

		assert.NoError(t, err)
		assert.Equal(t, vehicle.ID, res.ID)
		assert.Equal(t, string(model.StageInBay), res.Stage)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(model.WorkshopVehicle{}, nil)

		_, err := svc.Get(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestWorkshopGetAll(t *testing.T) {
	ctx := context.Background()
	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: gDto.SortDirDesc}

	t.Run("success", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		vehicles := []model.WorkshopVehicle{testVehicle(model.StageScheduled), testVehicle(model.StageReady)}

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repoMock.EXPECT().Count(ctx, gomock.Any()).Return(2, nil)
		repoMock.EXPECT().GetAll(ctx, params, gomock.Any()).Return(vehicles, nil)
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.GetAll(ctx, params, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Vehicles, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("repository fails", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
		repoMock.EXPECT().Count(ctx, gomock.Any()).Return(0, errors.New("count failed"))

		_, err := svc.GetAll(ctx, params, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestWorkshopAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("moves one stage forward", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		vehicle := testVehicle(model.StageScheduled)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, string(model.StageInBay), req[model.FieldStage])

				return nil
			})
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Advance(ctx, vehicle.ID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageInBay), res.Stage)
		assert.True(t, res.CanRegress)
	})

	t.Run("terminal stage is a no-op", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		vehicle := testVehicle(model.StageReady)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)

		res, err := svc.Advance(ctx, vehicle.ID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageReady), res.Stage)
		assert.False(t, res.CanAdvance)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(model.WorkshopVehicle{}, nil)

		_, err := svc.Advance(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("update fails", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		vehicle := testVehicle(model.StageInBay)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(errors.New("update failed"))

		_, err := svc.Advance(ctx, vehicle.ID)

		assert.Error(t, err)
	})

	// A stage change must show up immediately in the board, the listings
	// and the overview aggregates, so their cached snapshots are dropped.
	t.Run("drops listing and overview caches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repoMock := mocks.NewMockWorkshop(ctrl)
		memCache := cacheMocks.NewMemoryCache()

		cfg := &config.Config{}
		cfg.Cache.TTL = 60

		svc := New(repoMock, cfg, memCache, otelMocks.NewOtel())

		vehicle := testVehicle(model.StageScheduled)

		assert.NoError(t, memCache.Save(ctx, "vehicle:get:"+vehicle.ID, 1, 60))
		assert.NoError(t, memCache.Save(ctx, "vehicle:gets:1:10", 1, 60))
		assert.NoError(t, memCache.Save(ctx, "vehicle:board", 1, 60))
		assert.NoError(t, memCache.Save(ctx, "overview:summary", 1, 60))
		assert.NoError(t, memCache.Save(ctx, "overview:items", 1, 60))

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Advance(ctx, vehicle.ID)
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			return !memCache.Has("vehicle:get:"+vehicle.ID) &&
				!memCache.Has("vehicle:gets:1:10") &&
				!memCache.Has("vehicle:board") &&
				!memCache.Has("overview:summary") &&
				!memCache.Has("overview:items")
		}, time.Second, 10*time.Millisecond)
	})
}

func TestWorkshopAdvanceToCompletion(t *testing.T) {
	ctx := context.Background()
	svc, repoMock, cacheMock := newTestService(t)

	current := model.StageScheduled

	repoMock.EXPECT().Get(ctx, gomock.Any()).DoAndReturn(
		func(context.Context, gDto.FilterGroup, ...string) (model.WorkshopVehicle, error) {
			return testVehicle(current), nil
		}).Times(4)
	repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			stage, _ := req[model.FieldStage].(string)
			current = model.Stage(stage)

			return nil
		}).Times(3)
	allowAsyncCacheWrites(cacheMock)

	id := testVehicle(current).ID

	for range 3 {
		_, err := svc.Advance(ctx, id)
		assert.NoError(t, err)
	}

	assert.Equal(t, model.StageReady, current)

	// The pipeline ends at ready, so a fourth advance changes nothing.
	res, err := svc.Advance(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, string(model.StageReady), res.Stage)
}

func TestWorkshopRegress(t *testing.T) {
	ctx := context.Background()

	t.Run("moves one stage backward", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		vehicle := testVehicle(model.StageRepairing)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, string(model.StageInBay), req[model.FieldStage])

				return nil
			})
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Regress(ctx, vehicle.ID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageInBay), res.Stage)
	})

	t.Run("initial stage is a no-op", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		vehicle := testVehicle(model.StageScheduled)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)

		res, err := svc.Regress(ctx, vehicle.ID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageScheduled), res.Stage)
		assert.False(t, res.CanRegress)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(model.WorkshopVehicle{}, nil)

		_, err := svc.Regress(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestWorkshopOverride(t *testing.T) {
	ctx := context.Background()

	t.Run("jumps across stages", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		vehicle := testVehicle(model.StageScheduled)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)
		repoMock.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, string(model.StageReady), req[model.FieldStage])

				return nil
			})
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Override(ctx, vehicle.ID, model.StageReady)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageReady), res.Stage)
	})

	t.Run("unknown stage is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Override(ctx, "any", model.Stage("collected"))

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("same stage changes nothing", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		vehicle := testVehicle(model.StageInBay)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(vehicle, nil)

		res, err := svc.Override(ctx, vehicle.ID, model.StageInBay)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StageInBay), res.Stage)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repoMock, _ := newTestService(t)

		repoMock.EXPECT().Get(ctx, gomock.Any()).Return(model.WorkshopVehicle{}, nil)

		_, err := svc.Override(ctx, "missing", model.StageReady)

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestWorkshopBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("groups vehicles per stage in pipeline order", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)

		repoMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.WorkshopVehicle, error) {
				first, _ := filter.Filters[0].(gDto.Filter)
				stage, _ := first.Value.(string)

				if stage == string(model.StageRepairing) {
					return []model.WorkshopVehicle{
						testVehicle(model.StageRepairing),
						testVehicle(model.StageRepairing),
					}, nil
				}

				return nil, nil
			}).Times(4)
		allowAsyncCacheWrites(cacheMock)

		res, err := svc.Board(ctx)

		assert.NoError(t, err)
		assert.Len(t, res.Columns, 4)

		for i, stage := range model.Stages {
			assert.Equal(t, string(stage), res.Columns[i].Stage)
		}

		assert.Equal(t, 2, res.Columns[2].Count)
		assert.Equal(t, 0, res.Columns[0].Count)
		assert.Empty(t, res.Columns[0].Vehicles)
	})

	t.Run("repository fails", func(t *testing.T) {
		svc, repoMock, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repoMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return(nil, errors.New("query failed"))

		_, err := svc.Board(ctx)

		assert.Error(t, err)
	})
}
