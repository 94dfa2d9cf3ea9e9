package middleware

import (
	"net/http"

	"github.com/deepgram/chatrelay/pkg/httpext"
	"github.com/rs/zerolog/hlog"
)

// Recover turns a handler panic into a 500 response so a single request can
// never take the process down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				hlog.FromRequest(r).Error().Interface("panic", rec).Msg("Recovered from handler panic")
				httpext.JsonErrorWithDetails(w, http.StatusInternalServerError, httpext.ErrorResponse{
					Error:  "Internal Server Error",
					Detail: "An unexpected error occurred.",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
