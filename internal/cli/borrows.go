package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"librio/internal/borrow"
	"librio/internal/gate"
	"librio/pkg/domain"
)

func (c *CLI) borrowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrows",
		Short: "Your borrow requests and loans",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your borrows",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteMyBorrows, func(cmd *cobra.Command, args []string) error {
			records, err := c.api.MyBorrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	}, &cobra.Command{
		Use:   "current",
		Short: "List loans you still hold",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteMyBorrows, func(cmd *cobra.Command, args []string) error {
			records, err := c.api.MyCurrentBorrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	})
	return cmd
}

func (c *CLI) finesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fines",
		Short: "Your fines",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your fines",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteMyFines, func(cmd *cobra.Command, args []string) error {
			fines, err := c.api.MyFines()
			if err != nil {
				return err
			}
			c.renderFines(fines)
			return nil
		}),
	}, &cobra.Command{
		Use:   "pending",
		Short: "List your unpaid fines",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteMyFines, func(cmd *cobra.Command, args []string) error {
			fines, err := c.api.MyPendingFines()
			if err != nil {
				return err
			}
			c.renderFines(fines)
			return nil
		}),
	}, &cobra.Command{
		Use:   "total",
		Short: "Show your outstanding fine total",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteMyFines, func(cmd *cobra.Command, args []string) error {
			total, err := c.api.MyTotalFine()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "outstanding fines: $%.2f\n", total)
			return nil
		}),
	})
	return cmd
}

// statusLabel folds the derived overdue condition into the displayed status,
// so a BORROWING record past its due date always reads OVERDUE.
func statusLabel(rec domain.BorrowRecord, now time.Time) string {
	if borrow.IsOverdue(rec, now) {
		return string(domain.BorrowOverdue)
	}
	return string(rec.Status)
}

func dueLabel(rec domain.BorrowRecord, now time.Time) string {
	if rec.Status != domain.BorrowBorrowing && rec.Status != domain.BorrowOverdue {
		return ""
	}
	days, err := borrow.DaysRemaining(rec, now)
	if err != nil {
		return ""
	}
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}
