package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edupath/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a wizard session has expired or never
// existed.
var ErrSessionNotFound = errors.New("wizard session not found or expired")

// ValidationError reports a failed step gate. Its message is user-facing.
type ValidationError struct {
	Step   int
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// SessionService owns wizard drafts for their in-flight lifetime.
type SessionService interface {
	Start(ctx context.Context) (*models.BookingDraft, error)
	Get(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Apply(ctx context.Context, sessionID string, events []Event) (*models.BookingDraft, error)
	Advance(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Back(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	AddNotice(ctx context.Context, sessionID, message string, sticky bool) error
	Discard(ctx context.Context, sessionID string) error
}

// DefaultSessionService keeps drafts in Redis with a sliding TTL, so an
// abandoned wizard evaporates on its own. Drafts are never written anywhere
// durable.
type DefaultSessionService struct {
	Cache     *redis.Client
	Validator *Validator
	TTL       time.Duration
	Logger    *zap.Logger
}

func sessionKey(sessionID string) string {
	return "wizard:session:" + sessionID
}

// Start creates an empty draft and caches it.
func (s *DefaultSessionService) Start(ctx context.Context) (*models.BookingDraft, error) {
	draft := models.NewBookingDraft(uuid.New().String())
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Info("wizard session started", zap.String("sessionID", draft.SessionID))
	return &draft, nil
}

// Get fetches the draft for the session.
func (s *DefaultSessionService) Get(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch wizard session: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &draft, nil
}

// Apply runs the events through the reducer and saves the result.
func (s *DefaultSessionService) Apply(ctx context.Context, sessionID string, events []Event) (*models.BookingDraft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next := *draft
	for _, ev := range events {
		next = Reduce(next, ev)
	}
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Advance validates the current step and, on a pass, moves the draft forward.
// The draft is left untouched when validation fails.
func (s *DefaultSessionService) Advance(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.CurrentStep == models.StepDone {
		return nil, &ValidationError{Step: draft.CurrentStep, Reason: "booking already confirmed"}
	}
	if err := s.Validator.Validate(draft.CurrentStep, *draft); err != nil {
		return draft, &ValidationError{Step: draft.CurrentStep, Reason: err.Error()}
	}
	next := Reduce(*draft, AdvanceEvent{})
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Back moves the draft one step backward. Always permitted except from the
// terminal step.
func (s *DefaultSessionService) Back(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.CurrentStep == models.StepDone {
		return nil, &ValidationError{Step: draft.CurrentStep, Reason: "booking already confirmed"}
	}
	next := Reduce(*draft, BackEvent{})
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// AddNotice appends a user-facing notice to the session.
func (s *DefaultSessionService) AddNotice(ctx context.Context, sessionID, message string, sticky bool) error {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	draft.Notices = append(draft.Notices, models.Notice{
		ID:        uuid.New().String(),
		Message:   message,
		Sticky:    sticky,
		CreatedAt: time.Now(),
	})
	return s.save(ctx, *draft)
}

// Discard drops the session immediately.
func (s *DefaultSessionService) Discard(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to discard wizard session: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) save(ctx context.Context, draft models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(draft.SessionID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to cache wizard session: %w", err)
	}
	return nil
}
