package user

import (
	"VendorChat/entity"
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// UpdateUser replaces the whole profile with the posted one.
func UpdateUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.user")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.User
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			logger.Warn("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Could not parse the request body"))
			return
		}

		user, err := handler.UpdateUser(r.Context(), req)
		if err != nil {
			logger.Warn("update user", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, user)
	}
}
