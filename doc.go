// Package admissions implements the administrator-gated review workflow that
// turns a pending teacher application into an active, authenticated teacher
// account.
//
// Review lifecycle:
//   - Applications carry an ApplicationStatus (pending, approved, rejected)
//     persisted via Bun. Approval provisions an identity with the configured
//     IdentityProvider and then, in a single transaction, upserts the
//     TeacherProfile and marks the application approved. Rejection and
//     deletion touch the application record only.
//   - ReviewPolicy centralizes the transition graph. The default policy
//     preserves the historical behavior of allowing re-review of an already
//     approved or rejected application (the prior status is recorded as a
//     breadcrumb); use WithReReviewDisabled to make reviewed states sticky.
//
// Authorization:
//   - AdminGuard is the sole authorization boundary. It is constructed with
//     an administrator allow-list and checks the Actor attached to the
//     request context before any other logic runs. There is no per-resource
//     ACL.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter invoked after each
//     successful workflow. Sinks run best-effort (errors are logged) so you
//     can forward to a database or queue without blocking the review flow.
package admissions
