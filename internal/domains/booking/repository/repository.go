package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type BookingRoomType interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.BookingRoomType) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.BookingRoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoomType, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoomType, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type BookingRoom interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.BookingRoom) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRoom, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.BookingRoom, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoom, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoom, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type BookingGuest interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.BookingGuest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingGuest, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingGuest, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type CallLog interface {
	Insert(ctx context.Context, model model.CallLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CallLog, error)
}

// Repositories groups the stores of the booking aggregate.
type Repositories struct {
	Booking  Booking
	RoomType BookingRoomType
	Room     BookingRoom
	Guest    BookingGuest
	CallLog  CallLog
}

func NewRepositories(db *postgres.Connection, otel otel.Otel) Repositories {
	return Repositories{
		Booking:  New(db, otel),
		RoomType: &bookingRoomTypeRepositoryImpl{gRepo.NewRepository[model.BookingRoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldID, db, otel)},
		Room:     &bookingRoomRepositoryImpl{gRepo.NewRepository[model.BookingRoom](model.RoomEntityName, model.RoomTableName, model.FieldID, db, otel)},
		Guest:    &bookingGuestRepositoryImpl{gRepo.NewRepository[model.BookingGuest](model.GuestEntityName, model.GuestTableName, model.FieldGuestID, db, otel)},
		CallLog:  &callLogRepositoryImpl{gRepo.NewRepository[model.CallLog](model.CallLogEntityName, model.CallLogTableName, model.FieldID, db, otel)},
	}
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type bookingRoomTypeRepositoryImpl struct {
	gRepo.Repository[model.BookingRoomType]
}

type bookingRoomRepositoryImpl struct {
	gRepo.Repository[model.BookingRoom]
}

type bookingGuestRepositoryImpl struct {
	gRepo.Repository[model.BookingGuest]
}

type callLogRepositoryImpl struct {
	gRepo.Repository[model.CallLog]
}
