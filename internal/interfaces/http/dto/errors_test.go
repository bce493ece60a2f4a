package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{"REGISTRATION_CLOSED", http.StatusForbidden},
		{"DUPLICATE_APPLICANT", http.StatusBadRequest},
		{"FILE_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"INVALID_FIELD", http.StatusBadRequest},
		{"INVALID_EXPEDICION", http.StatusBadRequest},
		{"MISSING_CEDULA", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponse_RepeatsMessage(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponse("REGISTRATION_CLOSED", "Convocatoria cerrada", "req-1"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Convocatoria cerrada", body["message"])
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "REGISTRATION_CLOSED", errInfo["code"])
	assert.Equal(t, "req-1", errInfo["request_id"])
	assert.NotContains(t, body, "data")
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 21, 2, 10)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Success)

	empty := NewSuccessResponseWithMeta(nil, 0, 1, 0)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}
