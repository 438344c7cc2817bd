package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edupath_wizard_sessions_started_total",
			Help: "Total number of wizard sessions started",
		},
	)

	StepAdvancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupath_wizard_step_advances_total",
			Help: "Total number of successful step advances",
		},
		[]string{"step"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupath_wizard_validation_failures_total",
			Help: "Total number of step validation failures",
		},
		[]string{"step"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupath_bookings_submitted_total",
			Help: "Total number of booking submissions",
		},
		[]string{"status"},
	)

	BookingsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edupath_bookings_confirmed_total",
			Help: "Total number of bookings confirmed after payment",
		},
	)

	PaymentsFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edupath_payments_failed_total",
			Help: "Total number of failed or rejected payments",
		},
	)

	OTPEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edupath_otp_emails_total",
			Help: "Total number of OTP emails requested",
		},
		[]string{"status"},
	)
)
