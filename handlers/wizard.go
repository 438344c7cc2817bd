package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"edupath/metrics"
	"edupath/services/notification"
	"edupath/services/wizard"
	"edupath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard session endpoints.
type WizardHandler struct {
	Sessions wizard.SessionService
	Avail    *wizard.Availability
	Notices  notification.Service
	Logger   *zap.Logger
}

func NewWizardHandler(sessions wizard.SessionService, avail *wizard.Availability, notices notification.Service, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{Sessions: sessions, Avail: avail, Notices: notices, Logger: logger}
}

// StartSession creates a fresh wizard session with an empty draft.
func (h *WizardHandler) StartSession(c *gin.Context) {
	draft, err := h.Sessions.Start(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start wizard session", err.Error())
		return
	}
	metrics.SessionsStartedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"session": draft})
}

// GetSession returns the current draft plus the live price quote.
func (h *WizardHandler) GetSession(c *gin.Context) {
	draft, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": draft,
		"price":   wizard.Quote(*draft),
	})
}

// UpdateSession applies field events to the draft through the reducer.
func (h *WizardHandler) UpdateSession(c *gin.Context) {
	var input struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if len(input.Events) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "no events supplied")
		return
	}

	events := make([]wizard.Event, 0, len(input.Events))
	for _, raw := range input.Events {
		ev, err := wizard.DecodeEvent(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid event", err.Error())
			return
		}
		events = append(events, ev)
	}

	prev, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}

	draft, err := h.Sessions.Apply(c.Request.Context(), c.Param("sessionID"), events)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	// Editing a verified email drops its verified marker so the new address
	// has to go through OTP verification.
	if prev.EmailVerified && prev.Email != draft.Email {
		utils.ClearEmailVerification(prev.Email)
	}

	c.JSON(http.StatusOK, gin.H{
		"session": draft,
		"price":   wizard.Quote(*draft),
	})
}

// NextStep validates the current step and advances on a pass. A validation
// failure is surfaced as a transient notice and the step pointer stays put.
func (h *WizardHandler) NextStep(c *gin.Context) {
	sessionID := c.Param("sessionID")
	draft, err := h.Sessions.Advance(c.Request.Context(), sessionID)

	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		metrics.ValidationFailuresTotal.WithLabelValues(strconv.Itoa(vErr.Step)).Inc()
		if nErr := h.Notices.Transient(c.Request.Context(), sessionID, vErr.Reason); nErr != nil {
			h.Logger.Error("failed to attach validation notice", zap.Error(nErr))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason, "session": draft})
		return
	}
	if err != nil {
		h.sessionError(c, err)
		return
	}

	metrics.StepAdvancesTotal.WithLabelValues(strconv.Itoa(draft.CurrentStep)).Inc()
	c.JSON(http.StatusOK, gin.H{"session": draft})
}

// BackStep moves the wizard one step backward.
func (h *WizardHandler) BackStep(c *gin.Context) {
	draft, err := h.Sessions.Back(c.Request.Context(), c.Param("sessionID"))

	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		return
	}
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": draft})
}

// Availability returns the selectable dates and the slot roster with past
// flags computed against the draft's selected date. Recomputed per request
// since "now" moves.
func (h *WizardHandler) Availability(c *gin.Context) {
	draft, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	selectedDate := draft.SelectedDate
	if selectedDate == "" {
		selectedDate = h.Avail.AvailableDates()[0].Value
	}
	c.JSON(http.StatusOK, gin.H{
		"dates": h.Avail.AvailableDates(),
		"slots": h.Avail.SlotOptions(selectedDate),
	})
}

// Price returns the current quote for the draft.
func (h *WizardHandler) Price(c *gin.Context) {
	draft, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": wizard.Quote(*draft)})
}

// DiscardSession drops the session, e.g. when the user navigates away.
func (h *WizardHandler) DiscardSession(c *gin.Context) {
	if err := h.Sessions.Discard(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to discard session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session discarded"})
}

func (h *WizardHandler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, wizard.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "wizard session not found or expired", "")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "wizard session error", err.Error())
}
