package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/invoice/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	revenueWhere = fmt.Sprintf(`i.status <> '%s' AND i.created_at >= $2 AND i.created_at < $3 AND ($1 = '' OR i.hotel_id::text = $1)`,
		model.StatusVoid)

	revenueTotalsQuery = fmt.Sprintf(`SELECT COUNT(*) AS invoices,
	COALESCE(SUM(i.sub_total), 0) AS sub_total,
	COALESCE(SUM(i.discount_amount), 0) AS discount_amount,
	COALESCE(SUM(i.tax_amount), 0) AS tax_amount,
	COALESCE(SUM(i.total_amount), 0) AS total_amount
FROM %s i WHERE %s`, model.TableName, revenueWhere)

	revenueBySourceQuery = fmt.Sprintf(`SELECT l.source_type, COALESCE(SUM(l.amount), 0) AS amount, COUNT(*) AS lines
FROM %s l JOIN %s i ON i.id = l.invoice_id
WHERE %s
GROUP BY l.source_type ORDER BY l.source_type`, model.LineTableName, model.TableName, revenueWhere)
)

type Invoice interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	RevenueTotals(ctx context.Context, hotelID string, from, to time.Time) (model.RevenueTotals, error)
	RevenueBySource(ctx context.Context, hotelID string, from, to time.Time) ([]model.RevenueBySource, error)
}

type Line interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.InvoiceLine) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.InvoiceLine, error)
}

type Promotion interface {
	Insert(ctx context.Context, model model.Promotion) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type SurchargeRule interface {
	Insert(ctx context.Context, model model.SurchargeRule) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SurchargeRule, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

// Repositories groups the stores of invoicing.
type Repositories struct {
	Invoice       Invoice
	Line          Line
	Promotion     Promotion
	SurchargeRule SurchargeRule
}

func NewRepositories(db *postgres.Connection, otel otel.Otel) Repositories {
	return Repositories{
		Invoice:       New(db, otel),
		Line:          &lineRepositoryImpl{gRepo.NewRepository[model.InvoiceLine](model.LineEntityName, model.LineTableName, model.FieldID, db, otel)},
		Promotion:     &promotionRepositoryImpl{gRepo.NewRepository[model.Promotion](model.PromotionEntityName, model.PromotionTableName, model.FieldID, db, otel)},
		SurchargeRule: &surchargeRuleRepositoryImpl{gRepo.NewRepository[model.SurchargeRule](model.SurchargeRuleEntityName, model.SurchargeRuleTableName, model.FieldID, db, otel)},
	}
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RevenueTotals sums the non-void invoices created in [from, to); an empty hotelID covers every hotel.
func (r *repositoryImpl) RevenueTotals(ctx context.Context, hotelID string, from, to time.Time) (model.RevenueTotals, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".invoice.RevenueTotals")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, revenueTotalsQuery)

	var totals model.RevenueTotals
	if err := r.db.Read.GetContext(ctx, &totals, revenueTotalsQuery, hotelID, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return totals, fmt.Errorf("failed to get revenue totals: %w", err)
	}

	return totals, nil
}

// RevenueBySource sums the invoice lines of the same period per source type.
func (r *repositoryImpl) RevenueBySource(ctx context.Context, hotelID string, from, to time.Time) ([]model.RevenueBySource, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".invoice.RevenueBySource")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, revenueBySourceQuery)

	rows := []model.RevenueBySource{}
	if err := r.db.Read.SelectContext(ctx, &rows, revenueBySourceQuery, hotelID, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get revenue by source: %w", err)
	}

	return rows, nil
}

type lineRepositoryImpl struct {
	gRepo.Repository[model.InvoiceLine]
}

type promotionRepositoryImpl struct {
	gRepo.Repository[model.Promotion]
}

type surchargeRuleRepositoryImpl struct {
	gRepo.Repository[model.SurchargeRule]
}
