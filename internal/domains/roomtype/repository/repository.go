package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/roomtype/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// Price stores the per-day rate overrides of room types.
type Price interface {
	Upsert(ctx context.Context, prices []model.RoomTypePrice) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomTypePrice, error)
	GetPrices(ctx context.Context, roomTypeID string, from, to time.Time) (map[string]decimal.Decimal, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type priceRepositoryImpl struct {
	gRepo.Repository[model.RoomTypePrice]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPrice(db *postgres.Connection, otel otel.Otel) Price {
	return &priceRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomTypePrice](model.PriceEntityName, model.PriceTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the overrides, replacing the price of dates that already have one.
func (r *priceRepositoryImpl) Upsert(ctx context.Context, prices []model.RoomTypePrice) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_type_price.Upsert")
	defer scope.End()

	if len(prices) == 0 {
		return nil
	}

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s",
		model.PriceTableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldRoomTypeID, model.FieldDate,
		model.FieldPrice, model.FieldPrice,
		constant.FieldModifiedAt, constant.FieldModifiedAt,
		constant.FieldModifiedBy, constant.FieldModifiedBy,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.NamedExecContext(ctx, query, prices); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.PriceEntityName, err)
	}

	return nil
}

// GetPrices returns the overrides in [from, to) keyed by YYYY-MM-DD.
func (r *priceRepositoryImpl) GetPrices(ctx context.Context, roomTypeID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_type_price.GetPrices")
	defer scope.End()

	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldRoomTypeID, Value: roomTypeID, Operator: gDto.FilterOperatorEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_from", Field: model.FieldDate, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.PriceTableName},
		gDto.Filter{ArgName: "date_to", Field: model.FieldDate, Value: to, Operator: gDto.FilterOperatorLess, Table: model.PriceTableName},
	)

	rows, err := r.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldDate, model.FieldPrice)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		prices[row.Date.Format(constant.DateOnly)] = row.Price
	}

	return prices, nil
}
