package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var maxPromotionValue = decimal.NewFromInt(100) //nolint:mnd

func (s *serviceImpl) CreatePromotion(ctx context.Context, req dto.CreatePromotionRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePromotion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := clock.ParseDate(req.StartDate)
	if err != nil {
		return "", failure.BadRequestFromString("invalid start date") // nolint:wrapcheck
	}

	end, err := clock.ParseDate(req.EndDate)
	if err != nil {
		return "", failure.BadRequestFromString("invalid end date") // nolint:wrapcheck
	}

	if end.Before(start) {
		return "", failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	if !req.Value.IsPositive() || req.Value.GreaterThan(maxPromotionValue) {
		return "", failure.BadRequestFromString("promotion value must be between 0 and 100") // nolint:wrapcheck
	}

	req.HotelID = shared.HotelIDFromContext(ctx, req.HotelID)
	promo := req.ToModel(start, end, userFrom(ctx), s.clock.Now())

	if err = s.repos.Promotion.Insert(ctx, promo); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return "", failure.Conflict(fmt.Sprintf("promotion %s already exists", promo.Code)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create promotion")

		return "", fmt.Errorf("failed to create promotion: %w", err)
	}

	return promo.ID, nil
}

func (s *serviceImpl) GetPromotions(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPromotions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.PromotionTableName)

	total, err := s.repos.Promotion.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count promotions")

		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	promotions, err := s.repos.Promotion.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotions")

		return res, fmt.Errorf("failed to get promotions: %w", err)
	}

	res.FromModels(promotions, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) DeactivatePromotion(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivatePromotion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.PromotionTableName), model.PromotionTableName)

	promo, err := s.repos.Promotion.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return fmt.Errorf("failed to get promotion: %w", err)
	}

	if promo.ID == "" {
		return failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldIsActive:      false,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: userFrom(ctx),
	}

	if err = s.repos.Promotion.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate promotion")

		return fmt.Errorf("failed to deactivate promotion: %w", err)
	}

	return nil
}

// SetSurchargeRule creates the rule of its type for the hotel or overwrites the existing one.
func (s *serviceImpl) SetSurchargeRule(ctx context.Context, req dto.SetSurchargeRuleRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetSurchargeRule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Amount.IsNegative() {
		return "", failure.BadRequestFromString("surcharge amount must not be negative") // nolint:wrapcheck
	}

	req.HotelID = shared.HotelIDFromContext(ctx, req.HotelID)

	filter := shared.FilterAnd(
		gDto.Filter{Field: model.FieldHotelID, Value: req.HotelID, Operator: gDto.FilterOperatorEq, Table: model.SurchargeRuleTableName},
		gDto.Filter{Field: model.FieldType, Value: req.Type, Operator: gDto.FilterOperatorEq, Table: model.SurchargeRuleTableName},
	)

	existing, err := s.repos.SurchargeRule.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get surcharge rule")

		return "", fmt.Errorf("failed to get surcharge rule: %w", err)
	}

	if len(existing) == 0 {
		rule := req.ToModel(userFrom(ctx), s.clock.Now())

		if err = s.repos.SurchargeRule.Insert(ctx, rule); err != nil {
			log.Error().Err(err).Msg("failed to create surcharge rule")

			return "", fmt.Errorf("failed to create surcharge rule: %w", err)
		}

		return rule.ID, nil
	}

	fields := map[string]any{
		model.FieldAmount:        req.Amount,
		model.FieldIsPercentage:  req.IsPercentage,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: userFrom(ctx),
	}

	if err = s.repos.SurchargeRule.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update surcharge rule")

		return "", fmt.Errorf("failed to update surcharge rule: %w", err)
	}

	return existing[0].ID, nil
}

func (s *serviceImpl) GetSurchargeRules(ctx context.Context, hotelID string) (res []dto.SurchargeRuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSurchargeRules")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotelID = shared.HotelIDFromContext(ctx, hotelID)
	if hotelID == "" {
		return nil, failure.BadRequestFromString("hotel id is required") // nolint:wrapcheck
	}

	rules, err := s.repos.SurchargeRule.GetAll(ctx, gDto.QueryParams{}, filterByHotel(hotelID, model.SurchargeRuleTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get surcharge rules")

		return nil, fmt.Errorf("failed to get surcharge rules: %w", err)
	}

	res = make([]dto.SurchargeRuleResponse, len(rules))
	for i, rule := range rules {
		res[i].FromModel(rule)
	}

	return res, nil
}
