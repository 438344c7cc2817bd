package notification

import (
	"context"

	"edupath/services/wizard"

	"go.uber.org/zap"
)

// Service surfaces user-facing notices on a wizard session. Transient notices
// auto-dismiss on the client; sticky ones stay until closed.
type Service interface {
	Transient(ctx context.Context, sessionID, message string) error
	Sticky(ctx context.Context, sessionID, message string) error
}

// DefaultService attaches notices to the session draft.
type DefaultService struct {
	Sessions wizard.SessionService
	Logger   *zap.Logger
}

func (s *DefaultService) Transient(ctx context.Context, sessionID, message string) error {
	return s.push(ctx, sessionID, message, false)
}

func (s *DefaultService) Sticky(ctx context.Context, sessionID, message string) error {
	return s.push(ctx, sessionID, message, true)
}

func (s *DefaultService) push(ctx context.Context, sessionID, message string, sticky bool) error {
	if err := s.Sessions.AddNotice(ctx, sessionID, message, sticky); err != nil {
		s.Logger.Error("failed to attach notice",
			zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}
