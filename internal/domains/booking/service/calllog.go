package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) AddCallLog(ctx context.Context, req dto.CreateCallLogRequest, bookingID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddCallLog")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, bookingID); err != nil {
		return "", err
	}

	now := s.clock.Now()

	callTime, err := parseTimestamp(req.CallTime, now)
	if err != nil {
		return "", err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	callLog := model.CallLog{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		CallTime:    callTime,
		Result:      req.Result,
		Notes:       optional(req.Notes),
		StaffUserID: user,
		Metadata:    gModel.NewMetadata(user, now),
	}

	if err = s.repos.CallLog.Insert(ctx, callLog); err != nil {
		log.Error().Err(err).Msg("failed to create call log")

		return "", fmt.Errorf("failed to create call log: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetBooking, bookingID))
	}()

	return callLog.ID, nil
}

func (s *serviceImpl) GetCallLogs(ctx context.Context, bookingID string) (res []dto.CallLogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCallLogs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, bookingID); err != nil {
		return nil, err
	}

	callLogs, err := s.repos.CallLog.GetAll(ctx, callLogParams(), filterByBooking(bookingID, model.CallLogTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get call logs")

		return nil, fmt.Errorf("failed to get call logs: %w", err)
	}

	res = make([]dto.CallLogResponse, len(callLogs))
	for i, callLog := range callLogs {
		res[i].FromModel(callLog)
	}

	return res, nil
}
