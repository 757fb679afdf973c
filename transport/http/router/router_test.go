package router_test

import (
	"hotel/permissions"
	"hotel/transport/http/router"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes_EveryRouteHasPermission(t *testing.T) {
	mux := chi.NewRouter()
	r := router.New(router.DomainHandlers{})
	r.SetupRoutes(mux)

	perms := permissions.Get()
	require.NotNil(t, perms)

	routes := 0
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes++

		permission := perms.FindPermissions(route, method)
		assert.True(t, permission.Skip || len(permission.Roles) > 0, "%s %s has no permission entry", method, route)

		return nil
	})

	require.NoError(t, err)
	assert.Len(t, perms.Endpoints, routes)
}
