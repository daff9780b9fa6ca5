package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"slotplanner/internal/adapters/ical"
	"slotplanner/internal/delivery/http/helpers"
	"slotplanner/internal/delivery/http/middleware"
	"slotplanner/internal/domain"
)

// EventRequest is the request body for POST /events and PATCH /events/{eventID}.
// The date arrives as three separate integer components; it is validated as a
// real calendar date by the service, not here.
type EventRequest struct {
	Name         string              `json:"name"`
	Date         domain.CalendarDate `json:"date"`
	TimesAllowed []domain.TimeOfDay  `json:"times_allowed"`
}

// Validate implements Validator. Structural checks only; name and
// calendar-date validity are the service's concern and get the catalog
// re-display flow.
func (e EventRequest) Validate() []string {
	var errs []string
	for _, t := range e.TimesAllowed {
		if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
			errs = append(errs, "times_allowed entries must be valid times of day")
			break
		}
	}
	return errs
}

// SlotChoices is the re-display payload attached to recoverable failures:
// the slot catalog, anchored to the event's current date when one exists.
type SlotChoices struct {
	Slots    []domain.TimeOfDay `json:"slots"`
	Anchored []time.Time        `json:"anchored,omitempty"`
}

// EventSuccessResponse is the success envelope for event create/update.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeEventError maps service errors to HTTP responses. Recoverable
// failures (invalid date, field validation) become 422 with the slot
// choices the caller should re-present.
func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var needsInput *domain.NeedsInputError
	if errors.As(err, &needsInput) {
		choices := SlotChoices{Slots: needsInput.Slots}
		if needsInput.AnchorDate != nil {
			choices.Anchored = domain.AnchorSlots(needsInput.Slots, *needsInput.AnchorDate)
		}
		code := helpers.ErrCodeInvalidInput
		if errors.Is(needsInput.Reason, domain.ErrInvalidDate) {
			code = helpers.ErrCodeInvalidDate
		}
		helpers.WriteJSONErrorDetails(w, http.StatusUnprocessableEntity, code, needsInput.Error(), choices)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Propose an event with a calendar date and allowed time slots drawn from the fixed catalog. The authenticated user becomes the owner. An invalid calendar date is rejected with 422 and the unanchored catalog for re-display.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_date or invalid_input; error.details carries slot choices"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, req.Name, req.Date, req.TimesAllowed)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// EventListResponse is the response body for GET /events: all events ordered
// by date, split into the caller's own events and everyone else's.
type EventListResponse struct {
	Mine   []*domain.Event `json:"mine"`
	Others []*domain.Event `json:"others"`
}

// EventListSuccessResponse is the success envelope for GET /events (200).
type EventListSuccessResponse struct {
	Data  EventListResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List all events
// @Description Returns all events ordered by date ascending, partitioned into those owned by the caller and all others.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse "data contains mine and others"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	mine, others, err := c.Service.ListEvents(r.Context(), userID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{Mine: mine, Others: others})
}

// EventDetailResponse is the response body for GET /events/{eventID}.
// DisplayTimes renders the anchored times in the requested hour format.
type EventDetailResponse struct {
	Event        *domain.Event `json:"event"`
	AllowedTimes []time.Time   `json:"allowed_times"`
	DisplayTimes []string      `json:"display_times"`
	Participants []*domain.User `json:"participants"`
}

// EventDetailSuccessResponse is the success envelope for GET /events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  EventDetailResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event, its allowed times anchored to the event date, and its participants. The hour_format query parameter (12 or 24, default 12) only affects display_times.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Param hour_format query int false "Hour format for display_times (12 or 24)"
// @Success 200 {object} controllers.EventDetailSuccessResponse "data contains event, allowed_times, display_times, participants"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	detail, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	hourFormat := helpers.ParseHourFormat(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailResponse{
		Event:        detail.Event,
		AllowedTimes: detail.AllowedTimes,
		DisplayTimes: helpers.FormatTimes(detail.AllowedTimes, hourFormat),
		Participants: detail.Participants,
	})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the event's name, date, and allowed time slots. Only the owner may update. An invalid calendar date is rejected with 422 and the catalog anchored to the event's current date.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "New event data"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_date or invalid_input; error.details carries slot choices"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, req.Name, req.Date, req.TimesAllowed)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event when the caller owns it. A delete by a non-owner is a no-op that still returns 204.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "deleted (or ignored for non-owners)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SlotCatalogResponse is the response body for GET /slots.
type SlotCatalogResponse struct {
	Slots []domain.TimeOfDay `json:"slots"`
}

// SlotCatalogSuccessResponse is the success envelope for GET /slots (200).
type SlotCatalogSuccessResponse struct {
	Data  SlotCatalogResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListSlots godoc
// @Summary List the time-slot catalog
// @Description Returns the fixed catalog of selectable times of day, in display order.
// @Tags slots
// @Produce json
// @Success 200 {object} controllers.SlotCatalogSuccessResponse "data contains the slot catalog"
// @Router /slots [get]
func (c *EventController) ListSlots(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, SlotCatalogResponse{Slots: domain.AllSlots()})
}

// ExportICS godoc
// @Summary Export an event as iCalendar
// @Description Returns the event's anchored allowed times as an ICS document, one VEVENT per slot.
// @Tags events
// @Produce plain
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "text/calendar document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar.ics [get]
func (c *EventController) ExportICS(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	detail, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="event.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ical.Export(detail.Event)))
}
