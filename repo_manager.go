package admissions

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Applications() Applications
	TeacherProfiles() TeacherProfiles
}

type mngr struct {
	db              *bun.DB
	applications    Applications
	teacherProfiles TeacherProfiles
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:              db,
		applications:    NewApplicationsRepository(db),
		teacherProfiles: NewTeacherProfilesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.applications == nil {
		return errors.New("repository applications should be initialized")
	}

	if m.teacherProfiles == nil {
		return errors.New("repository teacherProfiles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Applications() Applications {
	return m.applications
}

func (m mngr) TeacherProfiles() TeacherProfiles {
	return m.teacherProfiles
}
