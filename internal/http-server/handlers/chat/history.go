package chat

import (
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

func History(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.chat")

		vendorID := chi.URLParam(r, "vendorId")
		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("vendor", vendorID),
		)

		limit, err := queryInt(r, "limit", defaultLimit)
		if err != nil || limit < 1 || limit > maxLimit {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid limit"))
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil || offset < 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid offset"))
			return
		}

		entries, err := handler.GetHistory(r.Context(), vendorID, limit, offset)
		if err != nil {
			logger.Error("get history", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, response.Ok(entries))
	}
}

func queryInt(r *http.Request, name string, def int64) (int64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
