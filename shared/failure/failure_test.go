package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"bad request from error", failure.BadRequest(errors.New("end date must be after start date")), http.StatusBadRequest, "end date must be after start date"},
		{"bad request from string", failure.BadRequestFromString("booking is already cancelled"), http.StatusBadRequest, "booking is already cancelled"},
		{"unauthorized", failure.Unauthorized("Token has expired"), http.StatusUnauthorized, "Token has expired"},
		{"internal", failure.InternalError(errors.New("connection reset")), http.StatusInternalServerError, "connection reset"},
		{"not found", failure.NotFound("room not found"), http.StatusNotFound, "room not found"},
		{"conflict", failure.Conflict("room is already booked for these dates"), http.StatusConflict, "room is already booked for these dates"},
		{"forbidden", failure.Forbidden("hotel is outside the account scope"), http.StatusForbidden, "hotel is outside the account scope"},
		{"predefined forbidden", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestConstructors_NilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failure", failure.NotFound("guest not found"), http.StatusNotFound},
		{"wrapped failure", fmt.Errorf("check in: %w", failure.Conflict("room is not clean")), http.StatusConflict},
		{"plain error", errors.New("pq: deadlock detected"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"client failure", failure.BadRequestFromString("order has no billable items"), "order has no billable items"},
		{"wrapped client failure", fmt.Errorf("create invoice: %w", failure.NotFound("order not found")), "order not found"},
		{"internal failure hides details", failure.InternalError(errors.New("dial tcp 10.0.0.5:5432: timeout")), failure.InternalMessage},
		{"unclassified error hides details", errors.New(`pq: relation "invoices" does not exist`), failure.InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.PublicMessage(tt.err))
		})
	}
}
