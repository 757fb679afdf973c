package service

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingRepo "hotel/internal/domains/booking/repository"
	booking "hotel/internal/domains/booking/service"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/repository"
	orderRepo "hotel/internal/domains/order/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetInvoice    = constant.CachePrefixInvoice + "get"
	cacheGetAllInvoice = constant.CachePrefixInvoice + "gets"
	cacheRevenue       = constant.CachePrefixInvoice + "revenue"

	invoiceNumberMin = 100000
	invoiceNumberMax = 999999
)

type Invoice interface {
	CreateBookingInvoice(ctx context.Context, req dto.CreateBookingInvoiceRequest) (dto.InvoiceResponse, error)
	CreateWalkInInvoice(ctx context.Context, req dto.CreateWalkInInvoiceRequest) (dto.InvoiceResponse, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Revenue(ctx context.Context, req dto.RevenueQuery) (dto.RevenueResponse, error)

	AdditionalChargesPreview(ctx context.Context, bookingID string) (dto.AdditionalChargesResponse, error)
	EarlyCheckoutFee(ctx context.Context, req dto.EarlyCheckoutFeeRequest, bookingID string) (dto.EarlyCheckoutFeeResponse, error)

	CreatePromotion(ctx context.Context, req dto.CreatePromotionRequest) (string, error)
	GetPromotions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPromotionsResponse, error)
	DeactivatePromotion(ctx context.Context, id string) error
	SetSurchargeRule(ctx context.Context, req dto.SetSurchargeRuleRequest) (string, error)
	GetSurchargeRules(ctx context.Context, hotelID string) ([]dto.SurchargeRuleResponse, error)
}

type serviceImpl struct {
	repos        repository.Repositories
	bookingRepos bookingRepo.Repositories
	orderRepos   orderRepo.Repositories
	booking      booking.Booking
	availability availability.Availability
	publisher    event.Publisher
	tx           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repos repository.Repositories,
	bookingRepos bookingRepo.Repositories,
	orderRepos orderRepo.Repositories,
	booking booking.Booking,
	availability availability.Availability,
	publisher event.Publisher,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repos:        repos,
		bookingRepos: bookingRepos,
		orderRepos:   orderRepos,
		booking:      booking,
		availability: availability,
		publisher:    publisher,
		tx:           tx,
		cfg:          cfg,
		cache:        cache,
		clock:        clk,
		otel:         otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetInvoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetInvoice, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoice")

		return res, nil
	}

	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	invoice, err := s.repos.Invoice.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == "" {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	lines, err := s.repos.Line.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldInvoiceID, model.LineTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice lines")

		return res, fmt.Errorf("failed to get invoice lines: %w", err)
	}

	res.FromModel(invoice)
	res.WithLines(lines)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllInvoices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvoice, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoices")

		return res, nil
	}

	total, err := s.repos.Invoice.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	invoices, err := s.repos.Invoice.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(invoices, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

// Revenue totals the non-void invoices created between From and To, both days inclusive.
func (s *serviceImpl) Revenue(ctx context.Context, req dto.RevenueQuery) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, err := clock.ParseDate(req.From)
	if err != nil {
		return res, failure.BadRequestFromString("invalid from date") // nolint:wrapcheck
	}

	to, err := clock.ParseDate(req.To)
	if err != nil {
		return res, failure.BadRequestFromString("invalid to date") // nolint:wrapcheck
	}

	if to.Before(from) {
		return res, failure.BadRequestFromString("to date must not be before from date") // nolint:wrapcheck
	}

	hotelID := shared.HotelIDFromContext(ctx, req.HotelID)
	cacheKey := shared.BuildCacheKey(cacheRevenue, hotelID, req.From, req.To)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for revenue")

		return res, nil
	}

	end := clock.AddDays(to, 1)

	totals, err := s.repos.Invoice.RevenueTotals(ctx, hotelID, from, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue totals")

		return res, fmt.Errorf("failed to get revenue totals: %w", err)
	}

	sources, err := s.repos.Invoice.RevenueBySource(ctx, hotelID, from, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue by source")

		return res, fmt.Errorf("failed to get revenue by source: %w", err)
	}

	res.From, res.To = req.From, req.To
	res.FromModels(totals, sources)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save revenue to cache")
		}
	}()

	return res, nil
}

// findPromotion loads the hotel promotion by code and checks it may discount scope on day.
func (s *serviceImpl) findPromotion(ctx context.Context, hotelID, code, scope string) (model.Promotion, error) {
	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.PromotionTableName},
		gDto.Filter{Field: model.FieldCode, Value: code, Operator: gDto.FilterOperatorEq, Table: model.PromotionTableName},
	)

	promo, err := s.repos.Promotion.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return promo, fmt.Errorf("failed to get promotion: %w", err)
	}

	switch {
	case promo.ID == "":
		return promo, failure.BadRequestFromString(fmt.Sprintf("promotion %s not found", code)) // nolint:wrapcheck
	case !promo.ValidOn(clock.Today(s.clock)):
		return promo, failure.BadRequestFromString(fmt.Sprintf("promotion %s is not active", code)) // nolint:wrapcheck
	case !promo.HasScope(scope):
		return promo, failure.BadRequestFromString(fmt.Sprintf("promotion %s cannot be applied to %s", code, scope)) // nolint:wrapcheck
	}

	return promo, nil
}

// created drops cached invoices and reports and publishes the new invoice.
func (s *serviceImpl) created(ctx context.Context, invoice model.Invoice) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixInvoice)

		if invoice.IsWalkIn {
			shared.InvalidateCaches(c, s.cache, constant.CachePrefixOrder)
		}
	}()

	s.publisher.Publish(ctx, event.Event{
		Type:       event.TypeInvoiceCreated,
		EntityID:   invoice.ID,
		HotelID:    invoice.HotelID,
		OccurredAt: s.clock.Now(),
	})
}

func (s *serviceImpl) invoiceNumber() string {
	return fmt.Sprintf("INV-%s-%d", s.clock.Now().Format("0601"), invoiceNumberMin+rand.IntN(invoiceNumberMax-invoiceNumberMin+1)) //nolint:gosec
}

func (s *serviceImpl) taxRate() decimal.Decimal {
	return decimal.NewFromFloat(s.cfg.Booking.TaxRate)
}

// txError logs infrastructure failures; domain failures pass through.
func (s *serviceImpl) txError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
		return failure.Conflict("invoice already exists") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func userFrom(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}

func filterByHotel(hotelID, table string) gDto.FilterGroup {
	return shared.FilterAnd(gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: table})
}
