// Package borrow holds the client-visible rules of the loan lifecycle:
// which transitions exist, who may trigger them, and how the overdue
// condition is derived. The server enforces the same rules authoritatively;
// these checks decide which controls the client offers at all.
package borrow

import (
	"errors"
	"fmt"
	"time"

	"librio/pkg/domain"
)

// DateLayout is how the server formats loan dates.
const DateLayout = "2006-01-02"

// Loan duration bounds in days. Requests outside the range are clamped,
// never rejected.
const (
	MinDays = 1
	MaxDays = 30
)

// Action is a staff-triggered lifecycle transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReturn  Action = "return"
)

var (
	ErrAlreadyProcessed = errors.New("request has already been processed")
	ErrNotOut           = errors.New("copy is not out on loan")
	ErrRoleNotAllowed   = errors.New("role may not trigger this action")
	ErrFineProcessed    = errors.New("fine has already been processed")
	ErrReasonRequired   = errors.New("a waive reason is required")
)

// ClampDays forces a requested loan duration into [MinDays, MaxDays].
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// DueDate computes the due date for a request submitted now, clamping the
// requested duration first.
func DueDate(now time.Time, days int) string {
	return now.AddDate(0, 0, ClampDays(days)).Format(DateLayout)
}

// IsOverdue derives the overdue condition. The server signals it either as
// an explicit OVERDUE status or as a flag on a BORROWING record; both forms
// and the due date itself are folded into one predicate here, so callers
// never read the raw status or flag for this.
func IsOverdue(rec domain.BorrowRecord, now time.Time) bool {
	switch rec.Status {
	case domain.BorrowOverdue:
		return true
	case domain.BorrowBorrowing:
		if rec.IsOverdue {
			return true
		}
		due, err := time.Parse(DateLayout, rec.DueDate)
		if err != nil {
			return false
		}
		return startOfDay(now).After(due)
	}
	return false
}

// DaysRemaining reports days until the due date, negative when past it.
func DaysRemaining(rec domain.BorrowRecord, now time.Time) (int, error) {
	due, err := time.Parse(DateLayout, rec.DueDate)
	if err != nil {
		return 0, fmt.Errorf("parse due date %q: %w", rec.DueDate, err)
	}
	return int(due.Sub(startOfDay(now)).Hours() / 24), nil
}

// Allowed reports whether action is a legal transition from the record's
// current state.
func Allowed(action Action, rec domain.BorrowRecord) error {
	switch action {
	case ActionApprove, ActionReject:
		if rec.Status != domain.BorrowPending {
			return ErrAlreadyProcessed
		}
		return nil
	case ActionReturn:
		if rec.Status != domain.BorrowBorrowing && rec.Status != domain.BorrowOverdue {
			return ErrNotOut
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", action)
}

// CanTrigger reports whether role may drive lifecycle transitions at all.
// Approve, reject, and return are staff and admin operations.
func CanTrigger(role domain.Role) error {
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}
	return nil
}

// Terminal reports whether no further transitions exist for the record.
func Terminal(rec domain.BorrowRecord) bool {
	return rec.Status == domain.BorrowReturned || rec.Status == domain.BorrowRejected
}

// CanPayFine checks the fine is still open and role may settle it. Staff and
// admin confirm payments.
func CanPayFine(fine domain.Fine, role domain.Role) error {
	if role != domain.RoleStaff && role != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}
	if fine.Status != domain.FinePending {
		return ErrFineProcessed
	}
	return nil
}

// CanWaiveFine checks the fine is still open, the waiver carries a reason,
// and the caller is an admin. Waiving is admin-only.
func CanWaiveFine(fine domain.Fine, role domain.Role, reason string) error {
	if role != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}
	if fine.Status != domain.FinePending {
		return ErrFineProcessed
	}
	if reason == "" {
		return ErrReasonRequired
	}
	return nil
}

// startOfDay normalizes to a UTC midnight so comparisons against parsed
// DateLayout values (which are UTC midnights) stay date-only.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
