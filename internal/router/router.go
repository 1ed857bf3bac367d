// Package router wires the HTTP surface: middleware chain, route
// table, and the split between public auth endpoints and the
// token-gated task endpoints.
package router

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Hanif8193/Hakathon-Todo/internal/account"
	"github.com/Hanif8193/Hakathon-Todo/internal/auth"
	"github.com/Hanif8193/Hakathon-Todo/internal/task"
	"github.com/Hanif8193/Hakathon-Todo/pkg/utilities"
)

// requestTimeout bounds every request, including its datastore calls,
// so pool exhaustion surfaces as a fast 503 instead of a hung client.
const requestTimeout = 5 * time.Second

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware tags each request with a snowflake ID, echoed in
// the X-Request-Id response header for log correlation.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utilities.NewRequestID()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", lrw.Header().Get("X-Request-Id"),
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP
// security headers. Conservative defaults that work with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows the browser frontend to call the API from the
// origins listed in CORS_ORIGINS (comma separated; localhost dev
// servers by default).
func CORSMiddleware() func(http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		allowed = map[string]bool{}
		for _, o := range strings.Split(v, ",") {
			allowed[strings.TrimSpace(o)] = true
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware bounds the request context.
func TimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RegisterRoutes mounts the HTTP handlers on the standard library's
// http.ServeMux. Auth endpoints are public; everything under /tasks
// goes through the identity gate first.
func RegisterRoutes(logger *zap.SugaredLogger, tokens *auth.Tokens, accountHandler *account.Handler, taskHandler *task.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /auth/signup", accountHandler.Signup)
	mux.HandleFunc("POST /auth/login", accountHandler.Login)

	gate := auth.RequireAuth(tokens, logger)
	tasks := http.NewServeMux()
	tasks.HandleFunc("GET /tasks", taskHandler.List)
	tasks.HandleFunc("POST /tasks", taskHandler.Create)
	tasks.HandleFunc("GET /tasks/{id}", taskHandler.Get)
	tasks.HandleFunc("PUT /tasks/{id}", taskHandler.Update)
	tasks.HandleFunc("PATCH /tasks/{id}/complete", taskHandler.ToggleCompletion)
	tasks.HandleFunc("DELETE /tasks/{id}", taskHandler.Delete)
	mux.Handle("/tasks", gate(tasks))
	mux.Handle("/tasks/", gate(tasks))

	chained := RequestIDMiddleware()(
		LoggingMiddleware(logger)(
			SecurityHeadersMiddleware()(
				CORSMiddleware()(
					TimeoutMiddleware(requestTimeout)(mux)))))
	return chained
}
