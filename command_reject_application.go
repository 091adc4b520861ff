package admissions

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RejectApplicationHandler marks an application rejected. It touches the
// application record only; identities and teacher profiles are never
// affected. Rejecting an already rejected application re-stamps the review
// fields.
type RejectApplicationHandler struct {
	guard    *AdminGuard
	repo     RepositoryManager
	policy   *ReviewPolicy
	activity ActivitySink
	logger   Logger
	now      Clock
}

// NewRejectApplicationHandler creates a handler with sane defaults.
func NewRejectApplicationHandler(guard *AdminGuard, repo RepositoryManager) *RejectApplicationHandler {
	return &RejectApplicationHandler{
		guard:    guard,
		repo:     repo,
		policy:   NewReviewPolicy(),
		activity: noopActivitySink{},
		logger:   defLogger{},
		now:      time.Now,
	}
}

// WithReviewPolicy overrides the transition policy.
func (h *RejectApplicationHandler) WithReviewPolicy(policy *ReviewPolicy) *RejectApplicationHandler {
	if policy != nil {
		h.policy = policy
	}
	return h
}

// WithActivitySink sets the sink used to emit rejection events.
func (h *RejectApplicationHandler) WithActivitySink(sink ActivitySink) *RejectApplicationHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *RejectApplicationHandler) WithLogger(logger Logger) *RejectApplicationHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithClock injects a custom clock (useful for tests).
func (h *RejectApplicationHandler) WithClock(clock Clock) *RejectApplicationHandler {
	if clock != nil {
		h.now = clock
	}
	return h
}

func (h *RejectApplicationHandler) Execute(ctx context.Context, event RejectApplicationMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during application rejection",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RejectApplicationHandler) execute(ctx context.Context, event RejectApplicationMessage) error {
	adminEmail, err := h.guard.Authorize(ctx)
	if err != nil {
		return err
	}

	event = event.Normalized()
	if err := event.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	app, err := h.repo.Applications().GetByID(ctx, event.ApplicationID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ApplicationNotFound(event.ApplicationID)
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not retrieve application")
	}

	app.EnsureStatus()
	previousStatus := app.Status

	if err := h.policy.Authorize(previousStatus, ApplicationStatusRejected, false); err != nil {
		return err
	}

	now := h.now()
	review := &Application{
		Status:         ApplicationStatusRejected,
		PreviousStatus: previousStatus,
		ReviewedBy:     adminEmail,
		ReviewedAt:     &now,
		UpdatedAt:      &now,
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Applications().MarkReviewedTx(ctx, tx, event.ApplicationID, review); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mark application rejected")
		}
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "application rejection failed")
	}

	evt := ActivityEvent{
		EventType:     ActivityEventApplicationRejected,
		ApplicationID: event.ApplicationID,
		ActorEmail:    adminEmail,
		FromStatus:    previousStatus,
		ToStatus:      ApplicationStatusRejected,
		OccurredAt:    now,
	}
	if err := h.activity.Record(ctx, evt); err != nil {
		h.logger.Error("failed to record rejection activity: %v", err)
	}

	return nil
}
