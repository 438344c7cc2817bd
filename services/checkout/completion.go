package checkout

import (
	"context"
	"fmt"
	"strings"

	"edupath/cache"
	"edupath/metrics"
	"edupath/models"
	"edupath/services/notification"
	"edupath/services/wizard"
	"edupath/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskEnqueuer is the slice of asynq.Client the completion handler needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CompletionHandler receives the gateway's callbacks once control returns
// from the hosted checkout.
type CompletionHandler struct {
	Sessions wizard.SessionService
	Notices  notification.Service
	Cache    cache.QueryCache
	Tasks    TaskEnqueuer
	Currency string
	Logger   *zap.Logger
}

// HandleSuccess processes the gateway's nominal success callback. A payload
// carrying an error object is an in-band failure: the reason is surfaced and
// booking caches are invalidated defensively, but the step pointer stays put.
// A true success moves the wizard to the terminal step and fires the
// best-effort confirmation email.
func (h *CompletionHandler) HandleSuccess(ctx context.Context, sessionID string, res models.PaymentResult) (*models.BookingDraft, error) {
	draft, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if res.Error != nil {
		reason := res.Error.Description
		if reason == "" {
			reason = "payment could not be completed"
		}
		if err := h.Notices.Sticky(ctx, sessionID, "Payment failed: "+reason); err != nil {
			return nil, err
		}
		h.invalidateBookingCaches(ctx)
		metrics.PaymentsFailedTotal.Inc()
		return h.Sessions.Get(ctx, sessionID)
	}

	_, err = h.Sessions.Apply(ctx, sessionID, []wizard.Event{wizard.BookingConfirmedEvent{}})
	if err != nil {
		return nil, err
	}
	if err := h.Notices.Sticky(ctx, sessionID,
		"Your counselling session is booked! A confirmation email is on its way."); err != nil {
		h.Logger.Error("failed to attach confirmation notice", zap.Error(err))
	}

	h.enqueueConfirmationEmail(*draft, res)
	h.invalidateBookingCaches(ctx)
	metrics.BookingsConfirmedTotal.Inc()

	return h.Sessions.Get(ctx, sessionID)
}

// HandlePaymentFailed processes the gateway's explicit failure event. The
// provider's diagnostic identifiers are surfaced as two separate sticky
// notices; the draft and step pointer are left intact so the user can retry.
func (h *CompletionHandler) HandlePaymentFailed(ctx context.Context, sessionID string, ev models.PaymentFailedEvent) (*models.BookingDraft, error) {
	reason := ev.Error.Description
	if reason == "" {
		reason = "payment failed"
	}
	if err := h.Notices.Sticky(ctx, sessionID, "Payment failed: "+reason); err != nil {
		return nil, err
	}
	ids := fmt.Sprintf("Order ID: %s, Payment ID: %s",
		ev.Error.Metadata.OrderID, ev.Error.Metadata.PaymentID)
	if err := h.Notices.Sticky(ctx, sessionID, ids); err != nil {
		return nil, err
	}
	metrics.PaymentsFailedTotal.Inc()

	return h.Sessions.Get(ctx, sessionID)
}

// enqueueConfirmationEmail queues the confirmation mail. Failures are logged
// and never surfaced; the booking stays confirmed regardless.
func (h *CompletionHandler) enqueueConfirmationEmail(draft models.BookingDraft, res models.PaymentResult) {
	mail := models.ConfirmationEmail{
		UserEmail:      draft.Email,
		UserName:       strings.TrimSpace(draft.FirstName + " " + draft.LastName),
		CounselingType: counselingType(draft),
		Amount:         wizard.AuthoritativeAmount(draft),
		Currency:       h.Currency,
		PaymentID:      res.PaymentID,
		SessionDate:    draft.SelectedDate + " " + draft.SelectedTime,
	}

	task, err := tasks.NewConfirmationTask(mail)
	if err != nil {
		h.Logger.Error("failed to build confirmation email task", zap.Error(err))
		return
	}
	if _, err := h.Tasks.Enqueue(task); err != nil {
		h.Logger.Error("failed to enqueue confirmation email",
			zap.String("email", draft.Email), zap.Error(err))
	}
}

func (h *CompletionHandler) invalidateBookingCaches(ctx context.Context) {
	for _, key := range [][]string{{"trainings"}, {"enquiries", "career"}} {
		if err := h.Cache.Invalidate(ctx, key...); err != nil {
			h.Logger.Error("failed to invalidate booking cache",
				zap.Strings("key", key), zap.Error(err))
		}
	}
}

func counselingType(d models.BookingDraft) string {
	if d.SubStep == models.SubStepSelectService && len(d.Services) > 0 {
		return strings.Join(d.Services, ", ")
	}
	if d.Plan != "" {
		return d.Plan
	}
	return "career counselling"
}
