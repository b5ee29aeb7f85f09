package user

import (
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// GetUser returns the profile unwrapped, the widget parses it as is.
func GetUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.user")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user, err := handler.GetUser()
		if err != nil {
			logger.Error("get user", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, user)
	}
}
