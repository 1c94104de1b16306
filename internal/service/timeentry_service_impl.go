package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/timeflowhq/timeflow/internal/budget"
	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/repository"
)

type timeEntryService struct {
	entries repository.TimeEntryRepo
	uow     db.UnitOfWork
}

func NewTimeEntryService(entries repository.TimeEntryRepo, uow db.UnitOfWork) TimeEntryService {
	return &timeEntryService{entries: entries, uow: uow}
}

func (s *timeEntryService) Create(ctx context.Context, e *domain.TimeEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		if err := s.validate(ctx, tx, txEntries, e, ""); err != nil {
			return err
		}
		return txEntries.Create(ctx, e)
	})
}

func (s *timeEntryService) Update(ctx context.Context, e *domain.TimeEntry) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		// Budget and overlap checks must not count the entry's own
		// previous hours against itself.
		if err := s.validate(ctx, tx, txEntries, e, e.ID); err != nil {
			return err
		}
		return txEntries.Update(ctx, e)
	})
}

// validate normalizes the entry and enforces the logging rules inside the
// caller's transaction: clock times form a positive interval and agree with
// any caller-supplied hours, hours land in [0, 24], the project-company link
// exists and its budget admits the hours, and timed entries do not collide
// with the employee's existing entries.
func (s *timeEntryService) validate(ctx context.Context, tx db.DBTX, txEntries repository.TimeEntryRepo, e *domain.TimeEntry, excludeID string) error {
	if e.HasTimes() {
		if *e.EndMin <= *e.StartMin {
			return ErrInvalidTimes
		}
		supplied := e.HoursWorked
		e.RecomputeHours()
		if supplied != 0 && math.Abs(supplied-e.HoursWorked) > 1e-9 {
			return fmt.Errorf("%.2fh given for a %.2fh interval: %w",
				supplied, e.HoursWorked, ErrHoursMismatch)
		}
	}
	if e.HoursWorked < 0 || e.HoursWorked > 24 {
		return ErrHoursOutOfRange
	}

	txLinks := repository.NewSQLiteProjectCompanyRepo(tx)
	link, err := txLinks.Get(ctx, e.ProjectID, e.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("project %s / company %s: %w", e.ProjectID, e.CompanyID, ErrNotLinked)
		}
		return err
	}

	used, err := txEntries.SumHours(ctx, e.ProjectID, e.CompanyID, excludeID)
	if err != nil {
		return err
	}
	snap := budget.LinkSnapshot{
		ProjectID:      e.ProjectID,
		CompanyID:      e.CompanyID,
		AvailableHours: link.AvailableHours,
		UsedHours:      used,
		Unlimited:      link.Unlimited,
	}
	if err := budget.Validate(snap, e.HoursWorked); err != nil {
		return err
	}

	if e.HasTimes() {
		clash, err := txEntries.HasOverlap(ctx, e.EmployeeID, e.Date, *e.StartMin, *e.EndMin, excludeID)
		if err != nil {
			return err
		}
		if clash {
			return fmt.Errorf("%s %02d:%02d-%02d:%02d: %w",
				e.Date.Format("2006-01-02"),
				*e.StartMin/60, *e.StartMin%60, *e.EndMin/60, *e.EndMin%60,
				ErrOverlap)
		}
	}
	return nil
}

func (s *timeEntryService) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *timeEntryService) ListRange(ctx context.Context, start, end time.Time, employeeID string) ([]*domain.TimeEntry, error) {
	return s.entries.ListRange(ctx, start, end, employeeID)
}

func (s *timeEntryService) Delete(ctx context.Context, id, employeeID string) error {
	return s.entries.Delete(ctx, id, employeeID)
}
