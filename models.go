package admissions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApplicationStatus is the review state of a teacher application
type ApplicationStatus = string

const (
	// ApplicationStatusPending is the intake state, awaiting review
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusApproved means an administrator approved the application
	ApplicationStatusApproved ApplicationStatus = "approved"
	// ApplicationStatusRejected means an administrator rejected the application
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// TeacherStatusActive is the only profile status this package writes.
const TeacherStatusActive = "active"

// Application is the pending-review submission from a prospective teacher.
// Records are created by an external intake process; this package only
// reviews (approve/reject) and deletes them.
type Application struct {
	bun.BaseModel  `bun:"table:teacher_applications,alias:tap"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email          string     `bun:"email" json:"email,omitempty"`
	FullName       string     `bun:"full_name" json:"full_name,omitempty"`
	SchoolName     string     `bun:"school_name" json:"school_name,omitempty"`
	Country        string     `bun:"country" json:"country,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	Status         string     `bun:"status,notnull" json:"status,omitempty"`
	PreviousStatus string     `bun:"previous_status" json:"previous_status,omitempty"`
	TeacherUID     *uuid.UUID `bun:"teacher_uid,nullzero,type:uuid" json:"teacher_uid,omitempty"`
	ReviewedBy     string     `bun:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `bun:"reviewed_at,nullzero" json:"reviewed_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus defaults the status to pending for legacy intake rows.
func (a *Application) EnsureStatus() {
	if a != nil && a.Status == "" {
		a.Status = ApplicationStatusPending
	}
}

// TeacherProfile is the authoritative active-teacher record, keyed by the
// provisioned identity uid. Only the approval workflow creates or updates it.
type TeacherProfile struct {
	bun.BaseModel `bun:"table:teacher_profiles,alias:tpr"`
	UID           uuid.UUID  `bun:"uid,pk,type:uuid" json:"uid,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	FullName      string     `bun:"full_name" json:"full_name,omitempty"`
	SchoolName    string     `bun:"school_name" json:"school_name,omitempty"`
	Country       string     `bun:"country" json:"country,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	Status        string     `bun:"status,notnull" json:"status,omitempty"`
	ApprovedBy    string     `bun:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `bun:"approved_at,nullzero" json:"approved_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// firstNonEmpty picks the first non-empty string, implementing the profile
// merge precedence: explicit override, then application value, then whatever
// is already on the record.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
