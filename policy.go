package admissions

// ReviewPolicy centralizes which application status transitions the review
// workflows may perform. The default graph preserves the historical
// behavior: an already approved or rejected application can be reviewed
// again, with the prior status recorded as a breadcrumb by the workflow.
type ReviewPolicy struct {
	transitions map[ApplicationStatus]map[ApplicationStatus]struct{}
	allowReview bool
}

// ReviewPolicyOption customizes policy construction.
type ReviewPolicyOption func(*ReviewPolicy)

// WithReReviewDisabled makes approved and rejected states sticky: moving out
// of them requires the request to carry an explicit force flag.
func WithReReviewDisabled() ReviewPolicyOption {
	return func(p *ReviewPolicy) {
		p.allowReview = false
	}
}

// NewReviewPolicy returns the default policy.
func NewReviewPolicy(opts ...ReviewPolicyOption) *ReviewPolicy {
	p := &ReviewPolicy{
		allowReview: true,
		transitions: map[ApplicationStatus]map[ApplicationStatus]struct{}{
			ApplicationStatusPending: {
				ApplicationStatusApproved: {},
				ApplicationStatusRejected: {},
			},
			ApplicationStatusApproved: {
				ApplicationStatusApproved: {},
				ApplicationStatusRejected: {},
			},
			ApplicationStatusRejected: {
				ApplicationStatusApproved: {},
				ApplicationStatusRejected: {},
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Authorize reports whether the application may move from its current status
// to target. force bypasses the re-review restriction but never enables a
// transition missing from the graph.
func (p *ReviewPolicy) Authorize(from, to ApplicationStatus, force bool) error {
	if from == "" {
		from = ApplicationStatusPending
	}

	targets, ok := p.transitions[from]
	if !ok {
		return ReviewNotAllowed(map[string]any{
			"from": from,
			"to":   to,
		})
	}

	if _, ok := targets[to]; !ok {
		return ReviewNotAllowed(map[string]any{
			"from": from,
			"to":   to,
		})
	}

	if from != ApplicationStatusPending && !p.allowReview && !force {
		return ReviewNotAllowed(map[string]any{
			"from":   from,
			"to":     to,
			"reason": "re-review disabled, force flag required",
		})
	}

	return nil
}
