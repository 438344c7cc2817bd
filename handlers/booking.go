package handlers

import (
	"errors"
	"net/http"
	"strings"

	"edupath/metrics"
	"edupath/models"
	"edupath/services/booking"
	"edupath/services/checkout"
	"edupath/services/enquiry"
	"edupath/services/notification"
	"edupath/services/wizard"
	"edupath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler owns submission and the checkout completion callbacks.
type BookingHandler struct {
	Sessions   wizard.SessionService
	Submitter  *booking.Submitter
	Completion *checkout.CompletionHandler
	Notices    notification.Service
	Logger     *zap.Logger
}

func NewBookingHandler(sessions wizard.SessionService, submitter *booking.Submitter, completion *checkout.CompletionHandler, notices notification.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Sessions:   sessions,
		Submitter:  submitter,
		Completion: completion,
		Notices:    notices,
		Logger:     logger,
	}
}

// Submit creates the booking order upstream and returns the checkout handoff.
// The step pointer never advances here; only a successful payment callback
// moves the wizard to the terminal step.
func (h *BookingHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sessionID")

	draft, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "wizard session not found or expired", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "wizard session error", err.Error())
		return
	}

	result, err := h.Submitter.Submit(ctx, *draft)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, enquiry.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again", "redirect": "/login"})
			return
		}
		if nErr := h.Notices.Transient(ctx, sessionID, userFacingSubmitError(err)); nErr != nil {
			h.Logger.Error("failed to attach notice", zap.Error(nErr))
		}
		if strings.Contains(err.Error(), "not ready to submit") {
			utils.JSONError(c, http.StatusBadRequest, "booking is not ready to submit", err.Error())
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "booking submission failed", err.Error())
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, result)
}

// CheckoutComplete is the gateway's success callback. The payload may still
// carry an in-band error object.
func (h *BookingHandler) CheckoutComplete(c *gin.Context) {
	var result models.PaymentResult
	if err := c.ShouldBindJSON(&result); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := h.Completion.HandleSuccess(c.Request.Context(), c.Param("sessionID"), result)
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "wizard session not found or expired", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to process payment result", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": draft})
}

// CheckoutFailed is the gateway's explicit failure event.
func (h *BookingHandler) CheckoutFailed(c *gin.Context) {
	var event models.PaymentFailedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := h.Completion.HandlePaymentFailed(c.Request.Context(), c.Param("sessionID"), event)
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "wizard session not found or expired", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to process payment failure", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": draft})
}

func userFacingSubmitError(err error) string {
	if strings.Contains(err.Error(), "not ready to submit") {
		return err.Error()
	}
	return "booking submission failed, please try again"
}
