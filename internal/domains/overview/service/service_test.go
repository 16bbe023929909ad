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
	bookingMocks "workshop/internal/domains/booking/mocks"
	bookingModel "workshop/internal/domains/booking/model"
	workshopMocks "workshop/internal/domains/workshop/mocks"
	workshopModel "workshop/internal/domains/workshop/model"
	"workshop/internal/domains/overview/model/dto"
	cacheMocks "workshop/shared/cache/mocks"
	gDto "workshop/shared/dto"
	gModel "workshop/shared/model"
)

var errCacheMiss = errors.New("cache miss")

func newTestService(t *testing.T) (Overview, *bookingMocks.MockBooking, *workshopMocks.MockWorkshop, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookingMock := bookingMocks.NewMockBooking(ctrl)
	workshopMock := workshopMocks.NewMockWorkshop(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := New(bookingMock, workshopMock, cfg, cacheMock, otelMocks.NewOtel())

	return svc, bookingMock, workshopMock, cacheMock
}

func booking(id, owner, phone string, createdAt time.Time) bookingModel.ServiceBooking {
	return bookingModel.ServiceBooking{
		ID:         id,
		OwnerName:  owner,
		OwnerPhone: phone,
		Category:   "diagnostics",
		Status:     bookingModel.StatusScheduled,
		Metadata:   gModel.Metadata{CreatedAt: createdAt},
	}
}

func vehicle(id, customer, phone string, stage workshopModel.Stage, createdAt time.Time) workshopModel.WorkshopVehicle {
	return workshopModel.WorkshopVehicle{
		ID:            id,
		CustomerName:  customer,
		CustomerPhone: phone,
		ServiceType:   "major_service",
		Stage:         stage,
		Metadata:      gModel.Metadata{CreatedAt: createdAt},
	}
}

func TestOverviewSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("in progress spans in_bay and repairing", func(t *testing.T) {
		svc, bookingMock, workshopMock, cacheMock := newTestService(t)

		counts := map[workshopModel.Stage]int{
			workshopModel.StageScheduled: 3,
			workshopModel.StageInBay:     2,
			workshopModel.StageRepairing: 4,
			workshopModel.StageReady:     1,
		}

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		bookingMock.EXPECT().Count(ctx, gomock.Any()).Return(8, nil)
		workshopMock.EXPECT().Count(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				first, _ := filter.Filters[0].(gDto.Filter)
				stage, _ := first.Value.(string)

				return counts[workshopModel.Stage(stage)], nil
			}).Times(4)
		cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Summary(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 8, res.TotalBookings)
		assert.Equal(t, 10, res.TotalVehicles)
		assert.Equal(t, 6, res.InProgress)

		assert.Len(t, res.StageCounts, 4)
		for i, stage := range workshopModel.Stages {
			assert.Equal(t, string(stage), res.StageCounts[i].Stage)
			assert.Equal(t, counts[stage], res.StageCounts[i].Count)
		}
	})

	t.Run("count fails", func(t *testing.T) {
		svc, bookingMock, _, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		bookingMock.EXPECT().Count(ctx, gomock.Any()).Return(0, errors.New("count failed"))

		_, err := svc.Summary(ctx)

		assert.Error(t, err)
	})
}

func TestOverviewAllItems(t *testing.T) {
	ctx := context.Background()

	t.Run("merges both sources newest first with kind markers", func(t *testing.T) {
		svc, bookingMock, workshopMock, cacheMock := newTestService(t)

		base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

		b := booking("b-1", "Grace Wanjiru", "0712345678", base.Add(2*time.Hour))
		b.Concierge = true

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		bookingMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]bookingModel.ServiceBooking{b}, nil)
		workshopMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]workshopModel.WorkshopVehicle{
			vehicle("v-1", "James Mwangi", "0722000111", workshopModel.StageRepairing, base.Add(3*time.Hour)),
			vehicle("v-2", "Aisha Omar", "0733111222", workshopModel.StageReady, base),
		}, nil)
		cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.AllItems(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)

		assert.Equal(t, "v-1", res.Items[0].ID)
		assert.Equal(t, dto.ItemKindVehicle, res.Items[0].Kind)
		assert.Equal(t, string(workshopModel.StageRepairing), res.Items[0].Status)

		assert.Equal(t, "b-1", res.Items[1].ID)
		assert.Equal(t, dto.ItemKindBooking, res.Items[1].Kind)
		assert.True(t, res.Items[1].Concierge)

		assert.Equal(t, "v-2", res.Items[2].ID)
	})

	t.Run("booking fetch fails", func(t *testing.T) {
		svc, bookingMock, _, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		bookingMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return(nil, errors.New("query failed"))

		_, err := svc.AllItems(ctx)

		assert.Error(t, err)
	})
}

func TestOverviewCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("dedupes on name and phone, first occurrence wins", func(t *testing.T) {
		svc, bookingMock, workshopMock, cacheMock := newTestService(t)

		now := time.Now()

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errCacheMiss)
		bookingMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]bookingModel.ServiceBooking{
			booking("b-1", "Grace Wanjiru", "0712345678", now),
			booking("b-2", "James Mwangi", "0722000111", now),
		}, nil)
		workshopMock.EXPECT().GetAll(ctx, gomock.Any(), gomock.Any()).Return([]workshopModel.WorkshopVehicle{
			// Same person, different case: still one customer.
			vehicle("v-1", "grace wanjiru", "0712345678", workshopModel.StageInBay, now),
			// Same name, different phone: a different customer.
			vehicle("v-2", "Grace Wanjiru", "0799999999", workshopModel.StageInBay, now),
		}, nil)
		cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Customers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)

		assert.Equal(t, "Grace Wanjiru", res.Customers[0].Name)
		assert.Equal(t, "0712345678", res.Customers[0].Phone)
		assert.Equal(t, "James Mwangi", res.Customers[1].Name)
		assert.Equal(t, "0799999999", res.Customers[2].Phone)
	})

	t.Run("cache hit", func(t *testing.T) {
		svc, _, _, cacheMock := newTestService(t)

		cacheMock.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.CustomersResponse)
				res.TotalData = 5

				return nil
			})

		res, err := svc.Customers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 5, res.TotalData)
	})
}
