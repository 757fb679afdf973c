package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllGuest = "guest:gets"
	idCardDirectory  = "guests/id-cards"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadIDCard(ctx context.Context, req dto.UploadIDCardRequest, id string) (dto.UploadIDCardResponse, error)
}

type serviceImpl struct {
	repo  repository.Guest
	cfg   *config.Config
	cache cache.RedisCache
	s3    s3.S3
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, clk clock.Clock, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		s3:    s3,
		clock: clk,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	guest := req.ToModel(shared.HotelIDFromContext(ctx, req.HotelID), user, s.clock.Now())

	if err = s.repo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return "", fmt.Errorf("failed to create guest: %w", err)
	}

	s.invalidate(ctx)

	return guest.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllGuests")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGuest, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(guests, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Guest, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == "" {
		return guest, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return guest, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateGuestRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user, s.clock.Now())
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return fmt.Errorf("failed to update guest: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("guest is linked to bookings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range []*string{guest.IDCardFrontURL, guest.IDCardBackURL} {
			s.deleteImage(c, url)
		}
	}()

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) UploadIDCard(ctx context.Context, req dto.UploadIDCardRequest, id string) (res dto.UploadIDCardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadIDCard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fileName := fmt.Sprintf("%s-%s-%d%s", guest.ID, req.Side, s.clock.Now().Unix(), filepath.Ext(req.Image.Filename))

	url, err := s.s3.UploadFile(ctx, idCardDirectory, fileName, req.ImageFile, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload id card")

		return res, fmt.Errorf("failed to upload id card: %w", err)
	}

	field, previous := model.FieldIDCardFrontURL, guest.IDCardFrontURL
	if req.Side == model.IDCardSideBack {
		field, previous = model.FieldIDCardBackURL, guest.IDCardBackURL
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := map[string]any{
		field:                    url,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save id card url")

		go s.deleteImage(context.WithoutCancel(ctx), &url)

		return res, fmt.Errorf("failed to save id card url: %w", err)
	}

	go s.deleteImage(context.WithoutCancel(ctx), previous)

	s.invalidate(ctx)

	res.URL = url

	return res, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}

	objectKey := s.s3.ObjectKeyFromURL(*url)
	if objectKey == "" {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Error().Err(err).Str("object_key", objectKey).Msg("failed to delete id card image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
	}()
}
