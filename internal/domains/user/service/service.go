package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Lock(ctx context.Context, req dto.LockUserRequest, id string) error
	Unlock(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, id string) error
	ChangeRole(ctx context.Context, req dto.ChangeRoleRequest, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, clk clock.Clock, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		clock: clk,
		otel:  otel,
	}
}

// Create registers a staff account. Hotel-bound actors can only create accounts of their own hotel.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Level == constant.RoleSuperAdmin && !isSuperAdmin(ctx) {
		return "", failure.Forbidden("only a superadmin can create superadmin accounts") // nolint:wrapcheck
	}

	if hotelID, _ := ctx.Value(constant.ContextKeyHotelID).(string); hotelID != "" {
		req.HotelID = &hotelID
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	emailFilter := shared.FilterByID(req.Email, model.FieldEmail, model.TableName)

	exists, err := s.repo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return "", fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return "", failure.Conflict("email already registered") // nolint:wrapcheck
	}

	if err = password.Check(req.Password); err != nil {
		return "", failure.BadRequest(err) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actorFrom(ctx), hashedPassword, s.clock.Now())
	if err = s.repo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return "", failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return "", fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()

	return user.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = shared.ScopeToHotel(ctx, filter, model.TableName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil && visible(ctx, res.HotelID) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.HotelID != nil && !isSuperAdmin(ctx) {
		return failure.Forbidden("only a superadmin can move accounts between hotels") // nolint:wrapcheck
	}

	if req.Active != nil && !*req.Active && id == actorFrom(ctx) {
		return failure.BadRequestFromString("cannot deactivate your own account") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	fields := shared.TransformFields(req, actorFrom(ctx), s.clock.Now())
	if req.Active != nil {
		fields[model.FieldActive] = *req.Active
	}

	return s.update(ctx, id, fields)
}

// Lock blocks logins for the given number of minutes.
func (s *serviceImpl) Lock(ctx context.Context, req dto.LockUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if id == actorFrom(ctx) {
		return failure.BadRequestFromString("cannot lock your own account") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	now := s.clock.Now()

	return s.update(ctx, id, map[string]any{
		model.FieldLockedUntil:   now.Add(time.Duration(req.Minutes) * time.Minute),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actorFrom(ctx),
	})
}

func (s *serviceImpl) Unlock(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	return s.update(ctx, id, map[string]any{
		model.FieldLockedUntil:   nil,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actorFrom(ctx),
	})
}

// ResetPassword sets a new password for another account without asking for the current one.
func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if user.Level == constant.RoleSuperAdmin && !isSuperAdmin(ctx) {
		return failure.Forbidden("only a superadmin can reset a superadmin password") // nolint:wrapcheck
	}

	if err = password.Check(req.NewPassword); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.update(ctx, id, map[string]any{
		model.FieldPassword:      hashedPassword,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actorFrom(ctx),
	})
}

func (s *serviceImpl) ChangeRole(ctx context.Context, req dto.ChangeRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeRole")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if id == actorFrom(ctx) {
		return failure.BadRequestFromString("cannot change your own role") // nolint:wrapcheck
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if (req.Level == constant.RoleSuperAdmin || user.Level == constant.RoleSuperAdmin) && !isSuperAdmin(ctx) {
		return failure.Forbidden("only a superadmin can grant or revoke superadmin") // nolint:wrapcheck
	}

	if user.Level == req.Level {
		return nil
	}

	return s.update(ctx, id, map[string]any{
		model.FieldLevel:         req.Level,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actorFrom(ctx),
	})
}

// find loads a user visible to the caller.
func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	filter := shared.ScopeToHotel(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()

	return nil
}

func actorFrom(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}

func isSuperAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleSuperAdmin
}

func visible(ctx context.Context, hotelID *string) bool {
	callerHotel, _ := ctx.Value(constant.ContextKeyHotelID).(string)

	return callerHotel == "" || (hotelID != nil && *hotelID == callerHotel)
}
