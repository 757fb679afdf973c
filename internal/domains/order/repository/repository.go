package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/order/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Order interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Order) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type Item interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.OrderItem) error
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.OrderItem) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.OrderItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OrderItem, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type History interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.OrderItemHistory) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OrderItemHistory, error)
}

type MenuItem interface {
	Insert(ctx context.Context, model model.MenuItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MenuItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MenuItem, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MenuItem, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

// Repositories groups the stores of dining orders and the menu.
type Repositories struct {
	Order    Order
	Item     Item
	History  History
	MenuItem MenuItem
}

func NewRepositories(db *postgres.Connection, otel otel.Otel) Repositories {
	return Repositories{
		Order:    &orderRepositoryImpl{gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel)},
		Item:     &itemRepositoryImpl{gRepo.NewRepository[model.OrderItem](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel)},
		History:  &historyRepositoryImpl{gRepo.NewRepository[model.OrderItemHistory](model.HistoryEntityName, model.HistoryTableName, model.FieldID, db, otel)},
		MenuItem: &menuItemRepositoryImpl{gRepo.NewRepository[model.MenuItem](model.MenuItemEntityName, model.MenuItemTableName, model.FieldID, db, otel)},
	}
}

type orderRepositoryImpl struct {
	gRepo.Repository[model.Order]
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.OrderItem]
}

type historyRepositoryImpl struct {
	gRepo.Repository[model.OrderItemHistory]
}

type menuItemRepositoryImpl struct {
	gRepo.Repository[model.MenuItem]
}
