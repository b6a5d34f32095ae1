package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	apperrors "diabcar/internal/errors"
)

// envelope is the JSON shape every endpoint answers with: a success
// flag, a human-readable message and the resource payload under its own
// key.
type envelope map[string]interface{}

func respond(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respond(w, status, envelope{"success": true, "message": message})
}

// respondError maps the error's kind to a status code. Internal errors
// are logged with their cause and answered with a generic message so the
// client never sees database detail or a stack trace.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	env := envelope{"success": false}
	switch appErr.Kind {
	case apperrors.KindInternal:
		// Connection-level failures are safe for the client to retry;
		// statement errors are not, so they keep the generic 500.
		if apperrors.IsRetryable(appErr.Err) {
			log.Printf("Retryable connection error: %v", err)
			env["message"] = "Service temporarily unavailable. Please try again."
			respond(w, http.StatusServiceUnavailable, env)
			return
		}
		log.Printf("Internal error: %v", err)
		env["message"] = "An unexpected error occurred. Please try again later."
	default:
		env["message"] = appErr.Message
	}
	if len(appErr.Fields) > 0 {
		env["errors"] = appErr.Fields
	}
	respond(w, apperrors.HTTPStatus(appErr), env)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, envelope{"success": false, "message": "Invalid request body"})
		return false
	}
	return true
}

// TimeoutMiddleware puts a deadline on every request context so a hung
// database call is cancelled instead of holding the handler until the
// client disconnects.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RecoverMiddleware is the process-wide fallback: any panic becomes a
// uniform 500 envelope instead of a dropped connection.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Panic handling %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				respond(w, http.StatusInternalServerError, envelope{
					"success": false,
					"message": "Internal Server Error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler keeps unknown routes inside the JSON envelope too.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, envelope{"success": false, "message": "Route not found"})
	})
}
