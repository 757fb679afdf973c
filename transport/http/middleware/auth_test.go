package middleware_test

import (
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const permissionTable = `{"endpoints":[
	{"path":"/v1/auth/login","method":"POST","permissions":[],"skip":true},
	{"path":"/v1/rooms","method":"GET","permissions":["manager","receptionist","waiter"]},
	{"path":"/v1/menu-items","method":"POST","permissions":["manager"]}
]}`

func newSecuredRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	perms, err := permissions.Load([]byte(permissionTable))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	auth := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), perms, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(role))
	}

	mux := chi.NewRouter()
	mux.Use(auth.APIKey, auth.Auth, auth.RBAC)
	mux.Post("/v1/auth/login", ok)
	mux.Get("/v1/rooms", ok)
	mux.Post("/v1/menu-items", ok)

	return mux
}

func staff(role, hotelID string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "staff@hotel.test", Role: role, HotelID: hotelID, TokenID: "token-1"}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		headers   map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodPost,
			target:   "/v1/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			target:   "/v1/rooms",
			wantCode: http.StatusUnauthorized,
			wantBody: "Missing authorization header",
		},
		{
			name:     "not a bearer token",
			method:   http.MethodGet,
			target:   "/v1/rooms",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid authorization header format",
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Token has expired",
		},
		{
			name:    "claims without email",
			method:  http.MethodGet,
			target:  "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(&jwt.Claims{UserID: "user-1"}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid token claims",
		},
		{
			name:    "waiter lists rooms of own hotel",
			method:  http.MethodGet,
			target:  "/v1/rooms?hotel_id=hotel-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(staff(constant.RoleWaiter, "hotel-1"), nil)
			},
			wantCode: http.StatusOK,
			wantBody: constant.RoleWaiter,
		},
		{
			name:    "waiter cannot edit the menu",
			method:  http.MethodPost,
			target:  "/v1/menu-items",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(staff(constant.RoleWaiter, "hotel-1"), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "another hotel is out of scope",
			method:  http.MethodGet,
			target:  "/v1/rooms?hotel_id=hotel-2",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(staff(constant.RoleManager, "hotel-1"), nil)
			},
			wantCode: http.StatusForbidden,
			wantBody: "hotel is outside the account scope",
		},
		{
			name:    "unscoped account may name any hotel",
			method:  http.MethodGet,
			target:  "/v1/rooms?hotel_id=hotel-2",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer t"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(staff(constant.RoleManager, ""), nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "internal key skips the token",
			method:   http.MethodPost,
			target:   "/v1/menu-items",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong internal key",
			method:   http.MethodGet,
			target:   "/v1/rooms",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			request := httptest.NewRequest(tt.method, tt.target, nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			newSecuredRouter(t, jwtService).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthRole_NoPermissionTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	jwtService.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(staff(constant.RoleSuperAdmin, ""), nil)

	auth := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), nil, &config.Config{})

	mux := chi.NewRouter()
	mux.Use(auth.Auth, auth.RBAC)
	mux.Get("/v1/rooms", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	request := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer t")

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
