package handlers

import (
	"errors"
	"net/http"

	"edupath/config"
	"edupath/metrics"
	"edupath/services/enquiry"
	"edupath/services/notification"
	"edupath/services/wizard"
	"edupath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OTPHandler drives email verification for the contact step.
type OTPHandler struct {
	Sessions wizard.SessionService
	API      enquiry.API
	Notices  notification.Service
	Logger   *zap.Logger
}

func NewOTPHandler(sessions wizard.SessionService, api enquiry.API, notices notification.Service, logger *zap.Logger) *OTPHandler {
	return &OTPHandler{Sessions: sessions, API: api, Notices: notices, Logger: logger}
}

// SendOTP asks the upstream service to mail a one-time password to the
// draft's email address. Sends are throttled per address.
func (h *OTPHandler) SendOTP(c *gin.Context) {
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
	if draft.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "please enter your email first", "")
		return
	}

	if err := utils.MarkOTPRequested(draft.Email); err != nil {
		metrics.OTPEmailsTotal.WithLabelValues("throttled").Inc()
		utils.JSONError(c, http.StatusTooManyRequests, "OTP already sent", err.Error())
		return
	}

	msg, err := h.API.SendOTP(ctx, draft.Email, config.AppConfig.InstitutionName, draft.Mobile)
	if err != nil {
		metrics.OTPEmailsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, enquiry.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again", "redirect": "/login"})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to send OTP", err.Error())
		return
	}

	draft, err = h.Sessions.Apply(ctx, sessionID, []wizard.Event{wizard.OTPSentEvent{}})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update session", err.Error())
		return
	}

	metrics.OTPEmailsTotal.WithLabelValues("sent").Inc()
	c.JSON(http.StatusOK, gin.H{"message": msg, "session": draft})
}

// VerifyOTP checks the typed OTP with the upstream service and marks the
// email verified on success. Recently verified addresses skip the upstream
// round trip.
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sessionID")

	var input struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := h.Sessions.Apply(ctx, sessionID, []wizard.Event{wizard.SetOTPEvent{OTP: input.OTP}})
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "wizard session not found or expired", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "wizard session error", err.Error())
		return
	}
	if draft.Email == "" || draft.OTP == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and OTP are required", "")
		return
	}

	if !utils.IsEmailVerified(draft.Email) {
		if err := h.API.VerifyOTP(ctx, draft.Email, draft.OTP); err != nil {
			if errors.Is(err, enquiry.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again", "redirect": "/login"})
				return
			}
			if nErr := h.Notices.Transient(ctx, sessionID, "OTP verification failed"); nErr != nil {
				h.Logger.Error("failed to attach notice", zap.Error(nErr))
			}
			utils.JSONError(c, http.StatusBadRequest, "OTP verification failed", err.Error())
			return
		}
		if err := utils.MarkEmailVerified(draft.Email); err != nil {
			h.Logger.Error("failed to cache verified email", zap.Error(err))
		}
	}

	draft, err = h.Sessions.Apply(ctx, sessionID, []wizard.Event{wizard.EmailVerifiedEvent{}})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified successfully", "session": draft})
}
