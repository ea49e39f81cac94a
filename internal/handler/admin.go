package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/scheduler"
)

// JobTrigger runs a registered background job on demand.
type JobTrigger interface {
	Trigger(name string) error
	Jobs() []string
}

// JobsResponse lists the registered background jobs
type JobsResponse struct {
	Jobs []string `json:"jobs"`
}

// HandleListJobs returns the registered background jobs
// @Summary List jobs
// @Tags admin
// @Produce json
// @Success 200 {object} JobsResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/jobs [get]
func HandleListJobs(trigger JobTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, JobsResponse{Jobs: trigger.Jobs()})
	}
}

// HandleRunJob enqueues a background job immediately
// @Summary Run job now
// @Tags admin
// @Produce json
// @Param name path string true "Job name"
// @Success 202 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/jobs/{name}/run [post]
func HandleRunJob(trigger JobTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := trigger.Trigger(name); err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgServiceError, "op", "run job", "job", name, "error", err)
			if errors.Is(err, scheduler.ErrJobNotQueued) {
				respondError(w, http.StatusServiceUnavailable, ErrMsgJobNotQueuedError)
				return
			}
			respondError(w, http.StatusNotFound, ErrMsgUnknownJobError)
			return
		}
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgJobTriggered})
	}
}
