package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var staffRoles = []string{
	constant.RoleSuperAdmin,
	constant.RoleAdmin,
	constant.RoleManager,
	constant.RoleReceptionist,
	constant.RoleHousekeeper,
	constant.RoleWaiter,
}

// Permission lists the staff roles allowed on one route pattern.
type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

// Allows reports whether role may call the route. Routes without roles are open to any signed-in user.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	routes map[string]Permission
}

func routeKey(path, method string) string {
	return method + " " + strings.TrimSuffix(path, "/")
}

// FindPermissions looks up a route pattern; a trailing slash is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.routes == nil {
		r.index()
	}

	return r.routes[routeKey(path, method)]
}

func (r *PermissionData) index() {
	r.routes = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		r.routes[routeKey(endpoint.Path, endpoint.Method)] = endpoint
	}
}

// Validate rejects duplicate routes and roles that no staff account can hold.
func (r *PermissionData) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate route %s", key))
		}

		seen[key] = true

		for _, role := range endpoint.Roles {
			if !slices.Contains(staffRoles, role) {
				errs = append(errs, fmt.Errorf("unknown role %q on %s", role, key))
			}
		}
	}

	return errors.Join(errs...)
}

// Load decodes a permission table.
func Load(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.Validate(); err != nil {
		return nil, err
	}

	permissions.index()

	return &permissions, nil
}

// Get returns the embedded permission table, or nil when it is invalid so every guarded route is refused.
func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
