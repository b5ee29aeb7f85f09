package vendors

import (
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type ScheduleResponse struct {
	VendorID string      `json:"vendor_id"`
	Date     string      `json:"date"`
	Blocks   interface{} `json:"blocks"`
}

// Schedule returns the blocks of a day, today when no date is given.
func Schedule(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.vendor")

		vendorID := chi.URLParam(r, "vendorId")
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("vendor", vendorID),
			slog.String("date", date),
		)

		blocks, err := handler.GetSchedule(r.Context(), vendorID, date)
		if err != nil {
			logger.Warn("get schedule", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, response.Ok(ScheduleResponse{
			VendorID: vendorID,
			Date:     date,
			Blocks:   blocks,
		}))
	}
}
