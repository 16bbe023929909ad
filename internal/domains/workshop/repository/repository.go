package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"workshop/infras/otel"
	"workshop/infras/postgres"
	"workshop/internal/domains/workshop/model"
	gDto "workshop/shared/dto"
	gRepo "workshop/shared/repository"
)

type Workshop interface {
	Insert(ctx context.Context, model model.WorkshopVehicle) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WorkshopVehicle, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WorkshopVehicle, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.WorkshopVehicle]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Workshop {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.WorkshopVehicle](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
