package chat

import (
	"VendorChat/entity"
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/lib/api/response"
	"VendorChat/internal/lib/datastream"
	"VendorChat/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Stream answers one chat turn, the reply is streamed in the data stream
// format the widget reads.
func Stream(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.chat")

		vendorID := chi.URLParam(r, "vendorId")
		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("vendor", vendorID),
		)

		var req entity.ChatRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			logger.Warn("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Could not parse the request body"))
			return
		}

		turn, err := handler.ComposeChat(vendorID, &req)
		if err != nil {
			logger.Warn("compose chat", sl.Err(err))
			code, msg := errors.Status(err)
			render.Status(r, code)
			render.JSON(w, r, response.Error(msg))
			return
		}

		datastream.SetHeaders(w)
		w.WriteHeader(http.StatusOK)

		err = handler.StreamChat(r.Context(), turn, datastream.NewWriter(w))
		if err != nil {
			logger.Error("stream chat", sl.Err(err))
			return
		}
		logger.With(slog.Int("messages", len(req.Messages))).Debug("chat turn")
	}
}
