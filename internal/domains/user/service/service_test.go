package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.User, *userMocks.MockUser) {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, mockCache, clock.Fixed(now), mocks.NewOtel()), repo
}

func actor(id, role, hotelID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyHotelID, hotelID)
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "admin creates staff in own hotel",
			ctx:  actor("admin-1", constant.RoleAdmin, "hotel-1"),
			req:  dto.CreateUserRequest{Email: " Desk@Hotel.com ", Password: "secret123", Level: constant.RoleReceptionist, HotelID: strPtr("hotel-2")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, "desk@hotel.com", user.Email)
					assert.Equal(t, "hotel-1", *user.HotelID)
					assert.True(t, user.Active)
					assert.Equal(t, "admin-1", user.CreatedBy)
					assert.NoError(t, password.Verify("secret123", user.Password))

					return nil
				})
			},
		},
		{
			name:      "admin cannot create superadmin",
			ctx:       actor("admin-1", constant.RoleAdmin, "hotel-1"),
			req:       dto.CreateUserRequest{Email: "root@hotel.com", Password: "secret123", Level: constant.RoleSuperAdmin},
			setupMock: func(_ *userMocks.MockUser) {},
			wantErr:   true,
			wantCode:  403,
		},
		{
			name: "duplicate email",
			ctx:  actor("root", constant.RoleSuperAdmin, ""),
			req:  dto.CreateUserRequest{Email: "desk@hotel.com", Password: "secret123", Level: constant.RoleReceptionist},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "password without a digit",
			ctx:  actor("root", constant.RoleSuperAdmin, ""),
			req:  dto.CreateUserRequest{Email: "desk@hotel.com", Password: "frontdesk", Level: constant.RoleReceptionist},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert fails",
			ctx:  actor("root", constant.RoleSuperAdmin, ""),
			req:  dto.CreateUserRequest{Email: "desk@hotel.com", Password: "secret123", Level: constant.RoleReceptionist},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			id, err := svc.Create(tt.ctx, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "hotel_id")
			assert.Equal(t, "hotel-1", args["scope_hotel_id"])

			return []model.User{{ID: "u-1", Email: "a@hotel.com"}, {ID: "u-2", Email: "b@hotel.com"}}, nil
		})

	res, err := svc.GetAll(actor("admin-1", constant.RoleAdmin, "hotel-1"), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUserService_Get(t *testing.T) {
	svc, repo := newService(t)

	locked := now.Add(time.Hour)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Email: "a@hotel.com", HotelID: strPtr("hotel-1"), LockedUntil: &locked}, nil)

	res, err := svc.Get(actor("admin-1", constant.RoleAdmin, "hotel-1"), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@hotel.com", res.Email)
	require.NotNil(t, res.LockedUntil)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err = svc.Get(actor("admin-1", constant.RoleAdmin, "hotel-1"), "u-9")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestUserService_Update(t *testing.T) {
	ctx := actor("admin-1", constant.RoleAdmin, "hotel-1")

	t.Run("empty request", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(ctx, dto.UpdateUserRequest{}, "u-1")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("admin cannot move hotels", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(ctx, dto.UpdateUserRequest{HotelID: strPtr("hotel-2")}, "u-1")
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("deactivate", func(t *testing.T) {
		svc, repo := newService(t)
		inactive := false

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})

		require.NoError(t, svc.Update(ctx, dto.UpdateUserRequest{Active: &inactive}, "u-1"))
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		svc, _ := newService(t)
		inactive := false

		err := svc.Update(ctx, dto.UpdateUserRequest{Active: &inactive}, "admin-1")
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestUserService_LockUnlock(t *testing.T) {
	ctx := actor("admin-1", constant.RoleAdmin, "hotel-1")

	t.Run("lock sets locked_until", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, now.Add(30*time.Minute), fields[model.FieldLockedUntil])

				return nil
			})

		require.NoError(t, svc.Lock(ctx, dto.LockUserRequest{Minutes: 30}, "u-1"))
	})

	t.Run("cannot lock self", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Lock(ctx, dto.LockUserRequest{Minutes: 30}, "admin-1")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unlock clears locked_until", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				value, ok := fields[model.FieldLockedUntil]
				assert.True(t, ok)
				assert.Nil(t, value)

				return nil
			})

		require.NoError(t, svc.Unlock(ctx, "u-1"))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		err := svc.Unlock(ctx, "u-9")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	t.Run("hashes the new password", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleReceptionist}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, _ := fields[model.FieldPassword].(string)
				assert.NoError(t, password.Verify("newsecret1", hash))

				return nil
			})

		require.NoError(t, svc.ResetPassword(actor("admin-1", constant.RoleAdmin, "hotel-1"), dto.ResetPasswordRequest{NewPassword: "newsecret1"}, "u-1"))
	})

	t.Run("superadmin target needs superadmin", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "root", Level: constant.RoleSuperAdmin}, nil)

		err := svc.ResetPassword(actor("admin-1", constant.RoleAdmin, "hotel-1"), dto.ResetPasswordRequest{NewPassword: "newsecret1"}, "root")
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestUserService_ChangeRole(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		id        string
		level     string
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name:  "promote receptionist",
			ctx:   actor("admin-1", constant.RoleAdmin, "hotel-1"),
			id:    "u-1",
			level: constant.RoleManager,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleReceptionist}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "same role is a no-op",
			ctx:   actor("admin-1", constant.RoleAdmin, "hotel-1"),
			id:    "u-1",
			level: constant.RoleManager,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleManager}, nil)
			},
		},
		{
			name:      "own role",
			ctx:       actor("admin-1", constant.RoleAdmin, "hotel-1"),
			id:        "admin-1",
			level:     constant.RoleManager,
			setupMock: func(_ *userMocks.MockUser) {},
			wantCode:  400,
		},
		{
			name:  "grant superadmin as admin",
			ctx:   actor("admin-1", constant.RoleAdmin, "hotel-1"),
			id:    "u-1",
			level: constant.RoleSuperAdmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleManager}, nil)
			},
			wantCode: 403,
		},
		{
			name:  "grant superadmin as superadmin",
			ctx:   actor("root", constant.RoleSuperAdmin, ""),
			id:    "u-1",
			level: constant.RoleSuperAdmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Level: constant.RoleManager}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			err := svc.ChangeRole(tt.ctx, dto.ChangeRoleRequest{Level: tt.level}, tt.id)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
