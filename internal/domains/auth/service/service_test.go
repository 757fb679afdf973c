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
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	return service.New(mockUserRepo, &config.Config{}, clock.Fixed(now), mocks.NewOtel(), mockJWT), mockUserRepo, mockJWT
}

func validUser(t *testing.T) userModel.User {
	t.Helper()

	hash, err := password.Hash("password")
	require.NoError(t, err)

	hotelID := "hotel-1"

	return userModel.User{
		ID:       "user-id-123",
		Email:    "desk@hotel.com",
		Password: hash,
		Level:    constant.RoleReceptionist,
		HotelID:  &hotelID,
		Active:   true,
		Metadata: gModel.NewMetadata("system", now),
	}
}

var tokens = &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Login(t *testing.T) {
	user := validUser(t)
	subject := jwt.Subject{UserID: user.ID, Email: user.Email, Role: constant.RoleReceptionist, HotelID: "hotel-1"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Desk@Hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "desk@hotel.com", args[userModel.FieldEmail])

						return user, nil
					})
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), subject).Return(tokens, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, now, fields[userModel.FieldLastLogin])

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nobody@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "wrongpassword"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				inactive := user
				inactive.Active = false

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "locked user",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				until := now.Add(time.Hour)
				locked := user
				locked.LockedUntil = &until

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(locked, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "expired lock",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				until := now.Add(-time.Minute)
				expired := user
				expired.LockedUntil = &until

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(expired, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), subject).Return(tokens, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), subject).Return(nil, errors.New("token generation failed"))
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "update last login error",
			req:  dto.LoginRequest{Email: "desk@hotel.com", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), subject).Return(tokens, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtSvc := newService(t)
			tt.setupMock(repo, jwtSvc)

			result, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotNil(t, result.User.LastLogin)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	user := validUser(t)
	claims := &jwt.Claims{UserID: user.ID, Email: user.Email, Role: constant.RoleReceptionist, Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "issues pair with current role",
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				promoted := user
				promoted.Level = constant.RoleManager

				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promoted, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), jwt.Subject{
					UserID: user.ID, Email: user.Email, Role: constant.RoleManager, HotelID: "hotel-1",
				}).Return(tokens, nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(_ *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(nil, errors.New("expired"))
			},
			wantCode: 401,
		},
		{
			name: "deleted user",
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 401,
		},
		{
			name: "locked user",
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				until := now.Add(time.Hour)
				locked := user
				locked.LockedUntil = &until

				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(locked, nil)
			},
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtSvc := newService(t)
			tt.setupMock(repo, jwtSvc)

			res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := validUser(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassw0rd"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("newpassw0rd", hash))
						assert.Equal(t, user.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassw0rd"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpassw0rd"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: 400,
		},
		{
			name: "new password too short",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "desk1"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: 400,
		},
		{
			name: "update error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassw0rd"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.ChangePassword(context.Background(), tt.req, user.ID)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
