package admissions

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DeleteApplicationHandler removes an application intake record. The delete
// is unconditional: removing an id that does not exist is a no-op success.
// Teacher profiles and identities are never touched; this is intake cleanup
// only.
type DeleteApplicationHandler struct {
	guard    *AdminGuard
	repo     RepositoryManager
	activity ActivitySink
	logger   Logger
	now      Clock
}

// NewDeleteApplicationHandler creates a handler with sane defaults.
func NewDeleteApplicationHandler(guard *AdminGuard, repo RepositoryManager) *DeleteApplicationHandler {
	return &DeleteApplicationHandler{
		guard:    guard,
		repo:     repo,
		activity: noopActivitySink{},
		logger:   defLogger{},
		now:      time.Now,
	}
}

// WithActivitySink sets the sink used to emit deletion events.
func (h *DeleteApplicationHandler) WithActivitySink(sink ActivitySink) *DeleteApplicationHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *DeleteApplicationHandler) WithLogger(logger Logger) *DeleteApplicationHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithClock injects a custom clock (useful for tests).
func (h *DeleteApplicationHandler) WithClock(clock Clock) *DeleteApplicationHandler {
	if clock != nil {
		h.now = clock
	}
	return h
}

func (h *DeleteApplicationHandler) Execute(ctx context.Context, event DeleteApplicationMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during application deletion",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteApplicationHandler) execute(ctx context.Context, event DeleteApplicationMessage) error {
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

	if err := h.repo.Applications().Purge(ctx, event.ApplicationID); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete application")
	}

	evt := ActivityEvent{
		EventType:     ActivityEventApplicationDeleted,
		ApplicationID: event.ApplicationID,
		ActorEmail:    adminEmail,
		OccurredAt:    h.now(),
	}
	if err := h.activity.Record(ctx, evt); err != nil {
		h.logger.Error("failed to record deletion activity: %v", err)
	}

	return nil
}
