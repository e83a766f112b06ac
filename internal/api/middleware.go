package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/nerrad567/knx-ga-studio/internal/auth"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ctxKeyRequestID is the context key for the request ID.
	ctxKeyRequestID contextKey = "request_id"
)

// defaultMaxUpload is the request body limit when none is configured (50 MB).
const defaultMaxUpload = 50 << 20

// corsMaxAge is how long browsers may cache a preflight response (seconds).
const corsMaxAge = 86400

// requestIDMiddleware generates a unique request ID for each request.
// If the client sends an X-Request-ID header, it is used; otherwise one is generated.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
	})
}

// recoveryMiddleware catches panics in handlers and returns a 500 response.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered in HTTP handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", r.Context().Value(ctxKeyRequestID),
				)
				writeInternalError(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware applies the configured CORS policy. An empty origin list
// allows every origin.
func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: s.cfg.CORS.AllowedMethods,
		AllowedHeaders: s.cfg.CORS.AllowedHeaders,
		MaxAge:         corsMaxAge,
	}
	if len(opts.AllowedMethods) == 0 {
		opts.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	}
	if len(opts.AllowedHeaders) == 0 {
		opts.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
	return cors.New(opts).Handler
}

// authMiddleware requires a valid bearer token when api.auth is enabled.
// With auth disabled every request passes through.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.Auth.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeUnauthorized(w, "bearer token required")
			return
		}

		claims, err := auth.ParseToken(token, s.cfg.Auth.Secret)
		if err != nil {
			s.logger.Warn("rejected api token",
				"error", err,
				"path", r.URL.Path,
				"request_id", r.Context().Value(ctxKeyRequestID),
			)
			if errors.Is(err, auth.ErrTokenExpired) {
				writeUnauthorized(w, "token has expired")
				return
			}
			writeUnauthorized(w, "invalid token")
			return
		}

		s.logger.Debug("api token accepted",
			"subject", claims.Subject,
			"path", r.URL.Path,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		next.ServeHTTP(w, r)
	})
}

// bodySizeLimitMiddleware caps request bodies at the configured upload size.
func (s *Server) bodySizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestIDBytes is the number of random bytes used for request IDs.
const requestIDBytes = 8

// generateRequestID creates a random hex request ID.
func generateRequestID() string {
	b := make([]byte, requestIDBytes)
	//nolint:errcheck // crypto/rand.Read always returns len(b) on supported platforms
	rand.Read(b)
	return hex.EncodeToString(b)
}
