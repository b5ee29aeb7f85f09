package vendors

import (
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Bookings(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.vendor")

		vendorID := chi.URLParam(r, "vendorId")
		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("vendor", vendorID),
		)

		bookings, err := handler.GetBookings(r.Context(), vendorID)
		if err != nil {
			logger.Error("get bookings", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		logger.Debug("bookings", slog.Int("count", len(bookings)))
		render.JSON(w, r, response.Ok(bookings))
	}
}
