package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic occurred",
					"error", err,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))
				domain.NewErrorResponse(w, domain.ErrInternal, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
