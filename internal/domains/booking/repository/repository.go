package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"workshop/infras/otel"
	"workshop/infras/postgres"
	"workshop/internal/domains/booking/model"
	gDto "workshop/shared/dto"
	gRepo "workshop/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.ServiceBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceBooking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ServiceBooking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
