package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]string{"id": "b-1"})

	body := decode(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["isSuccess"])
	assert.Equal(t, map[string]any{"id": "b-1"}, body["data"])
	assert.NotContains(t, body, "meta")
}

func TestWithPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithPaginated(rec, http.StatusOK, []string{"a", "b"}, response.Meta{Total: 12, Page: 2, PageSize: 10})

	body := decode(t, rec)
	assert.Equal(t, map[string]any{"total": float64(12), "page": float64(2), "pageSize": float64(10)}, body["meta"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"validation", failure.BadRequestFromString("end date must be after start date"), http.StatusBadRequest, "end date must be after start date"},
		{"not found", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"conflict", failure.Conflict("room already reserved"), http.StatusConflict, "room already reserved"},
		{"wrapped conflict", fmt.Errorf("failed to create booking: %w", failure.Conflict("room already reserved")), http.StatusConflict, "room already reserved"},
		{"infrastructure", errors.New("pq: connection refused"), http.StatusInternalServerError, failure.InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			body := decode(t, rec)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, false, body["isSuccess"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}
