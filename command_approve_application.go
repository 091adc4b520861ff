package admissions

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApprovalReceipt is the success payload of the approval workflow.
type ApprovalReceipt struct {
	TeacherUID uuid.UUID `json:"teacherUid"`
	Email      string    `json:"email"`
}

// ApproveApplicationHandler orchestrates the approval workflow: authorize,
// sanitize, provision the identity, then atomically upsert the teacher
// profile and mark the application approved.
//
// Identity provisioning happens before, and outside of, the document
// transaction: the identity provider is an external system and cannot join
// it. If the transaction fails after provisioning succeeded, the identity
// exists with no matching profile; re-running approval is safe because
// provisioning falls back to reuse on a registered email.
type ApproveApplicationHandler struct {
	guard      *AdminGuard
	repo       RepositoryManager
	identities IdentityProvider
	policy     *ReviewPolicy
	activity   ActivitySink
	logger     Logger
	now        Clock
}

// NewApproveApplicationHandler creates a handler with sane defaults.
func NewApproveApplicationHandler(guard *AdminGuard, repo RepositoryManager, identities IdentityProvider) *ApproveApplicationHandler {
	return &ApproveApplicationHandler{
		guard:      guard,
		repo:       repo,
		identities: identities,
		policy:     NewReviewPolicy(),
		activity:   noopActivitySink{},
		logger:     defLogger{},
		now:        time.Now,
	}
}

// WithReviewPolicy overrides the transition policy.
func (h *ApproveApplicationHandler) WithReviewPolicy(policy *ReviewPolicy) *ApproveApplicationHandler {
	if policy != nil {
		h.policy = policy
	}
	return h
}

// WithActivitySink sets the sink used to emit approval events.
func (h *ApproveApplicationHandler) WithActivitySink(sink ActivitySink) *ApproveApplicationHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *ApproveApplicationHandler) WithLogger(logger Logger) *ApproveApplicationHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithClock injects a custom clock (useful for tests).
func (h *ApproveApplicationHandler) WithClock(clock Clock) *ApproveApplicationHandler {
	if clock != nil {
		h.now = clock
	}
	return h
}

func (h *ApproveApplicationHandler) Execute(ctx context.Context, event ApproveApplicationMessage) (*ApprovalReceipt, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during application approval",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ApproveApplicationHandler) execute(ctx context.Context, event ApproveApplicationMessage) (*ApprovalReceipt, error) {
	adminEmail, err := h.guard.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	event = event.Normalized()
	if err := event.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	app, err := h.repo.Applications().GetByID(ctx, event.ApplicationID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ApplicationNotFound(event.ApplicationID)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not retrieve application")
	}

	app.EnsureStatus()
	previousStatus := app.Status

	if err := h.policy.Authorize(previousStatus, ApplicationStatusApproved, event.Force); err != nil {
		return nil, err
	}

	identity, err := h.provisionIdentity(ctx, event, app)
	if err != nil {
		return nil, err
	}

	now := h.now()

	profile := &TeacherProfile{
		UID:        identity.UID,
		Email:      event.Email,
		FullName:   firstNonEmpty(event.FullName, app.FullName),
		SchoolName: firstNonEmpty(event.SchoolName, app.SchoolName),
		Country:    firstNonEmpty(event.Country, app.Country),
		Phone:      firstNonEmpty(event.Phone, app.Phone),
		Status:     TeacherStatusActive,
		ApprovedBy: adminEmail,
		ApprovedAt: &now,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}

	review := &Application{
		Status:         ApplicationStatusApproved,
		PreviousStatus: previousStatus,
		TeacherUID:     &identity.UID,
		ReviewedBy:     adminEmail,
		ReviewedAt:     &now,
		UpdatedAt:      &now,
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.TeacherProfiles().UpsertTx(ctx, tx, profile); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to upsert teacher profile")
		}

		if _, err := h.repo.Applications().MarkReviewedTx(ctx, tx, event.ApplicationID, review); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mark application approved")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "application approval transaction failed")
	}

	h.recordActivity(ctx, event, identity, adminEmail, previousStatus, now)

	return &ApprovalReceipt{
		TeacherUID: identity.UID,
		Email:      event.Email,
	}, nil
}

// provisionIdentity creates the credential, falling back to reuse when the
// email is already registered: password is reset to the temp password, the
// display name is updated only when a new one was supplied, and a disabled
// account is re-enabled.
func (h *ApproveApplicationHandler) provisionIdentity(ctx context.Context, event ApproveApplicationMessage, app *Application) (*IdentityRecord, error) {
	displayName := firstNonEmpty(event.FullName, app.FullName)

	identity, err := h.identities.CreateIdentity(ctx, event.Email, event.TempPassword, displayName)
	if err == nil {
		return identity, nil
	}

	if !IsIdentityEmailTaken(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "identity provisioning failed")
	}

	existing, err := h.identities.FindIdentityByEmail(ctx, event.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up registered identity")
	}

	update := IdentityUpdate{
		Password: StringPtr(event.TempPassword),
		Disabled: BoolPtr(false),
	}
	if event.FullName != "" {
		update.DisplayName = StringPtr(event.FullName)
	}

	updated, err := h.identities.UpdateIdentity(ctx, existing.UID, update)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update registered identity")
	}

	return updated, nil
}

func (h *ApproveApplicationHandler) recordActivity(ctx context.Context, event ApproveApplicationMessage, identity *IdentityRecord, adminEmail string, from ApplicationStatus, at time.Time) {
	evt := ActivityEvent{
		EventType:     ActivityEventApplicationApproved,
		ApplicationID: event.ApplicationID,
		TeacherUID:    identity.UID.String(),
		ActorEmail:    adminEmail,
		FromStatus:    from,
		ToStatus:      ApplicationStatusApproved,
		OccurredAt:    at,
	}

	if err := h.activity.Record(ctx, evt); err != nil {
		h.logger.Error("failed to record approval activity: %v", err)
	}
}
