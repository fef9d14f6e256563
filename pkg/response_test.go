package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_WritesBareBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, []int{1, 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[1,2]`, rec.Body.String())
}

func TestError_MapsSentinelsToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: Invalid credentials", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: token expired", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: bad sort", ErrBadRequest), http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("sqlite: database is locked"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
}

func TestErrorWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorWithMessage(rec, http.StatusUnauthorized, "Invalid credentials")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())
}
