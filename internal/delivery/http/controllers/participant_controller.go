package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"slotplanner/internal/delivery/http/helpers"
	"slotplanner/internal/delivery/http/middleware"
	"slotplanner/internal/domain"
)

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ParticipantController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// JoinResponse is the data payload for join endpoints.
type JoinResponse struct {
	Registration *domain.Registration `json:"registration"`
	Created      bool                 `json:"created"`
}

// JoinSuccessResponse is the success envelope for join endpoints.
type JoinSuccessResponse struct {
	Data  JoinResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Join godoc
// @Summary Join an event
// @Description Registers the authenticated user as a participant. Idempotent: joining twice returns the existing registration with created=false.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} controllers.JoinSuccessResponse "data contains registration and created flag"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *ParticipantController) Join(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, created, err := c.Service.Join(r.Context(), eventID, userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	helpers.WriteJSONSuccess(w, status, JoinResponse{Registration: reg, Created: created})
}

// JoinByCode godoc
// @Summary Join an event by join code
// @Description Registers the authenticated user for the event identified by its join code.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param joinCode path string true "Event join code"
// @Success 201 {object} controllers.JoinSuccessResponse "data contains registration and created flag"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/join/{joinCode} [post]
func (c *ParticipantController) JoinByCode(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("joinCode")
	if joinCode == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing joinCode")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, created, err := c.Service.JoinByCode(r.Context(), joinCode, userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	helpers.WriteJSONSuccess(w, status, JoinResponse{Registration: reg, Created: created})
}

// Leave godoc
// @Summary Leave an event
// @Description Removes the authenticated user's registration for the event.
// @Tags participants
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "left"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [delete]
func (c *ParticipantController) Leave(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Leave(r.Context(), eventID, userID); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ParticipantListResponse is the data payload for GET /events/{eventID}/participants.
type ParticipantListResponse struct {
	Participants []*domain.User `json:"participants"`
}

// ParticipantListSuccessResponse is the success envelope for GET /events/{eventID}/participants.
type ParticipantListSuccessResponse struct {
	Data  ParticipantListResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListParticipants godoc
// @Summary List an event's participants
// @Description Returns the users registered for the event, oldest registration first.
// @Tags participants
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ParticipantListSuccessResponse "data contains the participants"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	users, err := c.Service.Participants(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ParticipantListResponse{Participants: users})
}

// InviteRequest is the request body for POST /events/{eventID}/invitations.
type InviteRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	var errs []string
	if len(i.Emails) == 0 {
		errs = append(errs, "emails is required")
	}
	return errs
}

// InviteResponse is the data payload for POST /events/{eventID}/invitations.
type InviteResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// InviteSuccessResponse is the success envelope for POST /events/{eventID}/invitations.
type InviteSuccessResponse struct {
	Data  InviteResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Invite godoc
// @Summary Invite people to an event by email
// @Description Sends one invitation email per address. Only the event owner may invite.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InviteRequest true "Email addresses to invite"
// @Success 200 {object} controllers.InviteSuccessResponse "data contains sent count and failed addresses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *ParticipantController) Invite(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sent, failed, err := c.Service.Invite(r.Context(), eventID, userID, req.Emails)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteResponse{Sent: sent, Failed: failed})
}
