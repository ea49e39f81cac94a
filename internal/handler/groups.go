package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/group"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// GroupMembershipRequest identifies the user joining or leaving a group
type GroupMembershipRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// GroupMembersResponse lists the members of one group
type GroupMembersResponse struct {
	Group   string  `json:"group"`
	Members []int64 `json:"members"`
}

// UserGroupsResponse lists the groups one user belongs to
type UserGroupsResponse struct {
	UserID int64    `json:"user_id"`
	Groups []string `json:"groups"`
}

// GroupHandler serves the group registry over HTTP
type GroupHandler struct {
	service group.Service
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(service group.Service) *GroupHandler {
	return &GroupHandler{service: service}
}

// HandleList returns every group ordered by name
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} domain.Group
// @Security ApiKeyAuth
// @Router /api/v1/groups [get]
func (h *GroupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "list groups", err)
		return
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	respondJSON(w, http.StatusOK, groups)
}

// HandleMembers returns the members of a group
// @Summary Group members
// @Tags groups
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} GroupMembersResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/groups/{name} [get]
func (h *GroupHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	members, err := h.service.MembersOf(r.Context(), name)
	if err != nil {
		respondServiceError(w, r, "group members", err)
		return
	}
	respondJSON(w, http.StatusOK, GroupMembersResponse{Group: domain.NormalizeGroupName(name), Members: members})
}

// HandleGroupsOfUser returns the groups a user belongs to
// @Summary Groups of a user
// @Tags groups
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} UserGroupsResponse
// @Security ApiKeyAuth
// @Router /api/v1/groups/user/{user_id} [get]
func (h *GroupHandler) HandleGroupsOfUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetInt64PathParam(r, w, "user_id")
	if !ok {
		return
	}
	names, err := h.service.GroupsOf(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "groups of user", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respondJSON(w, http.StatusOK, UserGroupsResponse{UserID: userID, Groups: names})
}

// HandleJoin adds a user to a group, creating it when absent
// @Summary Join group
// @Tags groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param request body GroupMembershipRequest true "Member"
// @Success 200 {object} domain.GroupResult
// @Success 201 {object} domain.GroupResult
// @Failure 400 {object} domain.GroupResult
// @Failure 409 {object} domain.GroupResult
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/groups/{name}/join [post]
func (h *GroupHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "join group", h.service.Join)
}

// HandleLeave removes a user from a group, deleting it when the user was the last member
// @Summary Leave group
// @Tags groups
// @Accept json
// @Produce json
// @Param name path string true "Group name"
// @Param request body GroupMembershipRequest true "Member"
// @Success 200 {object} domain.GroupResult
// @Failure 400 {object} domain.GroupResult
// @Failure 404 {object} domain.GroupResult
// @Failure 409 {object} domain.GroupResult
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/groups/{name}/leave [post]
func (h *GroupHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "leave group", h.service.Leave)
}

// HandleDelete removes a group regardless of its members
// @Summary Delete group
// @Tags groups
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} domain.GroupResult
// @Failure 400 {object} domain.GroupResult
// @Failure 404 {object} domain.GroupResult
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/groups/{name} [delete]
func (h *GroupHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Delete(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, r, "delete group", err)
		return
	}
	respondGroupResult(w, r, res)
}

func (h *GroupHandler) membership(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, name string, userID int64) (domain.GroupResult, error)) {
	var req GroupMembershipRequest
	if err := DecodeAndValidateRequest(r, w, &req, op); err != nil {
		return
	}

	res, err := fn(r.Context(), chi.URLParam(r, "name"), req.UserID)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondGroupResult(w, r, res)
}

// respondGroupResult maps business outcomes to status codes. The body is always the GroupResult.
func respondGroupResult(w http.ResponseWriter, r *http.Request, res domain.GroupResult) {
	logger.FromContext(r.Context()).Debug(LogMsgGroupOperation, "group", res.Group, "outcome", res.Outcome)

	status := http.StatusOK
	switch res.Outcome {
	case domain.OutcomeCreated:
		status = http.StatusCreated
	case domain.OutcomeInvalidName:
		status = http.StatusBadRequest
	case domain.OutcomeNotFound:
		status = http.StatusNotFound
	case domain.OutcomeAlreadyMember, domain.OutcomeNotMember:
		status = http.StatusConflict
	}
	respondJSON(w, status, res)
}
