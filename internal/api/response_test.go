package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "diabcar/internal/errors"
)

func TestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := TimeoutMiddleware(5 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cars", nil))

	require.True(t, ok, "request context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestTimeoutMiddlewareCancelsHungWork(t *testing.T) {
	h := TimeoutMiddleware(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			respondError(w, apperrors.Internal(r.Context().Err()))
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/bookings", nil))

	// A deadline-exceeded call is connection-level and safe to retry.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRespondErrorRetryableConnectionFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, fmt.Errorf("listing cars: %w", sql.ErrConnDone))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "try again")
}

func TestRespondErrorFatalStatementFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, fmt.Errorf("inserting booking: %w", sql.ErrNoRows))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
