package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/tracking"
)

// MsgEventDuplicate is returned when the event was already counted
const MsgEventDuplicate = "Duplicate event ignored"

// HandleIngestEvent tracks an inbound chat event sent by another platform adapter
// @Summary Ingest a chat event
// @Tags events
// @Accept json
// @Produce json
// @Param request body domain.InboundEvent true "Inbound event"
// @Success 202 {object} SuccessResponse
// @Success 200 {object} SuccessResponse "Duplicate"
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/events [post]
func HandleIngestEvent(svc tracking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.InboundEvent
		if err := DecodeAndValidateRequest(r, w, &req, "ingest event"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		err := svc.Track(r.Context(), &req)
		switch {
		case err == nil:
			log.Debug(LogMsgEventTracked, "user_id", req.UserID, "event_type", req.Type)
			respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgEventTracked})
		case errors.Is(err, domain.ErrDuplicateEvent):
			respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEventDuplicate})
		default:
			log.Warn(LogMsgEventRejected, "user_id", req.UserID, "error", err)
			respondServiceError(w, r, "ingest event", err)
		}
	}
}
